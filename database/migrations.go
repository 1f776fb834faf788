package database

import (
	"log"

	"gorm.io/gorm"
)

// RunMigrations makes sure the documents table exists
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&documentRecord{}); err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}
	return nil
}
