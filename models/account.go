package models

import "time"

const (
	AccountStatusActive = "active"

	// UserIDOffset is added to the account id to form the display user id.
	UserIDOffset = 1000
)

type Account struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Status    string    `json:"status"`
	LastLogin time.Time `json:"lastLogin"`
	CreatedAt time.Time `json:"createdAt"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func NewAccount(id int, username, password string, now time.Time) Account {
	return Account{
		ID:        id,
		UserID:    UserIDOffset + id,
		Username:  username,
		Password:  password,
		Status:    AccountStatusActive,
		LastLogin: now,
		CreatedAt: now,
	}
}

// RecordLogin stamps a successful login. The stored time never moves
// backwards.
func (a *Account) RecordLogin(now time.Time) {
	if now.Before(a.LastLogin) {
		return
	}
	a.LastLogin = now
}
