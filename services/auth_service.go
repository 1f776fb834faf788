package services

import (
	"crypto/subtle"
	"time"

	"github.com/NguyenHongSon4/app-02/models"
	"github.com/NguyenHongSon4/app-02/utils/token"

	"golang.org/x/crypto/bcrypt"
)

// Use the JWTClaims from token package
type JWTClaims = token.JWTClaims

type AuthServiceInterface interface {
	HashPassword(password string) (string, error)
	ComparePasswords(storedPassword, password string) error
	GenerateToken(account models.Account) (string, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
}

type AuthService struct {
	jwtSecret     []byte
	jwtExpiration time.Duration
	hashPasswords bool
}

// NewAuthService creates the auth service. Passwords are stored as given
// unless hashPasswords is set, in which case bcrypt hashes are stored.
func NewAuthService(jwtSecret string, jwtExpirationHours int, hashPasswords bool) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: time.Duration(jwtExpirationHours) * time.Hour,
		hashPasswords: hashPasswords,
	}
}

func (s *AuthService) HashPassword(password string) (string, error) {
	if !s.hashPasswords {
		return password, nil
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePasswords(storedPassword, password string) error {
	if s.hashPasswords {
		if err := bcrypt.CompareHashAndPassword([]byte(storedPassword), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(storedPassword), []byte(password)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

func (s *AuthService) GenerateToken(account models.Account) (string, error) {
	return token.GenerateToken(account.ID, account.Username, s.jwtSecret, s.jwtExpiration)
}

// ValidateToken uses the token utility to validate tokens
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	claims, err := token.ValidateToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

var AuthServiceInstance AuthServiceInterface
