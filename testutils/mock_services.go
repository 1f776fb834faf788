package testutils

import (
	"mime/multipart"

	"github.com/NguyenHongSon4/app-02/broker"
	"github.com/NguyenHongSon4/app-02/database"
	"github.com/NguyenHongSon4/app-02/models"
	"github.com/NguyenHongSon4/app-02/utils/token"
	"github.com/stretchr/testify/mock"
)

// MockNoteService mocks the NoteServiceInterface for testing
type MockNoteService struct {
	mock.Mock
}

func (m *MockNoteService) GetNotes(db *database.Database) ([]models.Note, error) {
	args := m.Called(db)
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *MockNoteService) GetNoteById(db *database.Database, id string) (models.Note, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.Note), args.Error(1)
}

func (m *MockNoteService) CreateNote(db *database.Database, input models.NotePatch) (models.Note, error) {
	args := m.Called(db, input)
	return args.Get(0).(models.Note), args.Error(1)
}

func (m *MockNoteService) UpdateNote(db *database.Database, id string, patch models.NotePatch) (models.Note, error) {
	args := m.Called(db, id, patch)
	return args.Get(0).(models.Note), args.Error(1)
}

func (m *MockNoteService) DeleteNote(db *database.Database, id string) error {
	args := m.Called(db, id)
	return args.Error(0)
}

// MockAccountService mocks the AccountServiceInterface for testing
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) GetAccounts(db *database.Database) ([]models.Account, error) {
	args := m.Called(db)
	return args.Get(0).([]models.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountById(db *database.Database, id int) (models.Account, error) {
	args := m.Called(db, id)
	return args.Get(0).(models.Account), args.Error(1)
}

func (m *MockAccountService) Register(db *database.Database, creds models.Credentials) (models.Account, error) {
	args := m.Called(db, creds)
	return args.Get(0).(models.Account), args.Error(1)
}

func (m *MockAccountService) Login(db *database.Database, creds models.Credentials) (models.Account, error) {
	args := m.Called(db, creds)
	return args.Get(0).(models.Account), args.Error(1)
}

// MockAuthService mocks the AuthServiceInterface for testing
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) HashPassword(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ComparePasswords(storedPassword, password string) error {
	args := m.Called(storedPassword, password)
	return args.Error(0)
}

func (m *MockAuthService) GenerateToken(account models.Account) (string, error) {
	args := m.Called(account)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*token.JWTClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.JWTClaims), args.Error(1)
}

// MockUploadService mocks the UploadServiceInterface for testing
type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) SaveImage(file *multipart.FileHeader) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

// MockEventService mocks the EventServiceInterface for testing
type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Publish(eventType broker.EventType, entity, operation, actorID string, data interface{}) {
	m.Called(eventType, entity, operation, actorID, data)
}
