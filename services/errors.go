package services

import "errors"

// Common errors
var (
	ErrNoteNotFound       = errors.New("note not found")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoFile             = errors.New("no file uploaded")
	ErrInvalidToken       = errors.New("invalid token")
)
