package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/NguyenHongSon4/app-02/config"
	"github.com/NguyenHongSon4/app-02/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// documentRecord is the row the SQL backend stores the document in.
type documentRecord struct {
	Name      string `gorm:"primaryKey;size:64"`
	Body      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (documentRecord) TableName() string {
	return "documents"
}

// SQLBackend stores the document as one row of the documents table.
type SQLBackend struct {
	DB     *gorm.DB
	driver string
}

func NewSQLBackend(db *gorm.DB, driver string) *SQLBackend {
	return &SQLBackend{DB: db, driver: driver}
}

// Setup opens the sqlite or postgres database named by the configuration
// and migrates the documents table.
func Setup(cfg config.Config) (*SQLBackend, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost,
			cfg.DBPort,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.StoreDriver)
	}

	gormConfig := &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Warn),
		PrepareStmt: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)

	log.Println("Running database migrations...")
	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Println("Database migrations completed successfully")

	return NewSQLBackend(db, cfg.StoreDriver), nil
}

func (b *SQLBackend) Name() string {
	return b.driver
}

func (b *SQLBackend) Load(ctx context.Context) (*models.Document, error) {
	var rec documentRecord
	err := b.DB.WithContext(ctx).Where("name = ?", DocumentName).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return decodeDocument([]byte(rec.Body))
}

func (b *SQLBackend) Save(ctx context.Context, doc *models.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	rec := documentRecord{
		Name:      DocumentName,
		Body:      string(data),
		UpdatedAt: time.Now().UTC(),
	}

	return b.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}).Create(&rec).Error
	})
}

func (b *SQLBackend) Ping(ctx context.Context) error {
	sqlDB, err := b.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (b *SQLBackend) Close() error {
	if b.DB == nil {
		log.Println("Database connection is nil, nothing to close.")
		return nil
	}
	sqlDB, err := b.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}
