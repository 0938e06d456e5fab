package database

import (
	"fmt"
	"os"

	"storefront-admin/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=storefront_admin port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates the tables the dashboard owns. Product, category and article
// data live in the storefront API and are never stored here.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.AdminSession{}); err != nil {
		return fmt.Errorf("failed to migrate admin sessions: %w", err)
	}
	return nil
}
