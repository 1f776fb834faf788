package services

import (
	"strconv"

	"github.com/NguyenHongSon4/app-02/broker"
	"github.com/NguyenHongSon4/app-02/database"
	"github.com/NguyenHongSon4/app-02/models"
)

type AccountServiceInterface interface {
	GetAccounts(db *database.Database) ([]models.Account, error)
	GetAccountById(db *database.Database, id int) (models.Account, error)
	Register(db *database.Database, creds models.Credentials) (models.Account, error)
	Login(db *database.Database, creds models.Credentials) (models.Account, error)
}

type AccountService struct {
	auth   AuthServiceInterface
	events EventServiceInterface
}

func NewAccountService(auth AuthServiceInterface, events EventServiceInterface) *AccountService {
	return &AccountService{auth: auth, events: events}
}

func accountByID(id int) func(models.Account) bool {
	return func(a models.Account) bool { return a.ID == id }
}

func accountByUsername(username string) func(models.Account) bool {
	return func(a models.Account) bool { return a.Username == username }
}

func (s *AccountService) GetAccounts(db *database.Database) ([]models.Account, error) {
	var accounts []models.Account
	err := db.View(func(tx *database.Tx) error {
		accounts = database.Accounts.All(tx)
		return nil
	})
	return accounts, err
}

func (s *AccountService) GetAccountById(db *database.Database, id int) (models.Account, error) {
	var account models.Account
	err := db.View(func(tx *database.Tx) error {
		var ok bool
		if account, ok = database.Accounts.FindOne(tx, accountByID(id)); !ok {
			return ErrAccountNotFound
		}
		return nil
	})
	return account, err
}

// Register creates an active account. The uniqueness check and the insert
// happen in the same store update, so concurrent registrations of one
// username cannot both succeed.
func (s *AccountService) Register(db *database.Database, creds models.Credentials) (models.Account, error) {
	password, err := s.auth.HashPassword(creds.Password)
	if err != nil {
		return models.Account{}, err
	}

	var account models.Account
	err = db.Update(func(tx *database.Tx) error {
		if _, taken := database.Accounts.FindOne(tx, accountByUsername(creds.Username)); taken {
			return ErrUsernameTaken
		}
		account = models.NewAccount(tx.NextSequence(models.AccountsCollection), creds.Username, password, tx.Now())
		database.Accounts.Insert(tx, account)
		return nil
	})
	if err != nil {
		return models.Account{}, err
	}

	s.publish(broker.AccountRegistered, "create", account)
	return account, nil
}

// Login checks the credentials and records the login time on success. A
// failed login leaves the account untouched.
func (s *AccountService) Login(db *database.Database, creds models.Credentials) (models.Account, error) {
	var candidate models.Account
	err := db.View(func(tx *database.Tx) error {
		var ok bool
		if candidate, ok = database.Accounts.FindOne(tx, accountByUsername(creds.Username)); !ok {
			return ErrInvalidCredentials
		}
		return nil
	})
	if err != nil {
		return models.Account{}, err
	}

	if err := s.auth.ComparePasswords(candidate.Password, creds.Password); err != nil {
		return models.Account{}, ErrInvalidCredentials
	}

	var account models.Account
	err = db.Update(func(tx *database.Tx) error {
		var ok bool
		account, ok = database.Accounts.UpdateOne(tx, accountByID(candidate.ID), func(a *models.Account) {
			a.RecordLogin(tx.Now())
		})
		if !ok {
			return ErrInvalidCredentials
		}
		return nil
	})
	if err != nil {
		return models.Account{}, err
	}

	s.publish(broker.AccountLoggedIn, "login", account)
	return account, nil
}

func (s *AccountService) publish(eventType broker.EventType, operation string, account models.Account) {
	if s.events != nil {
		s.events.Publish(eventType, "account", operation, strconv.Itoa(account.ID), publicAccount(account))
	}
}

var AccountServiceInstance AccountServiceInterface
