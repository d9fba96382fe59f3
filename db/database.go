// Package db holds the shared gorm handle for the case database. Every
// service and handler in the app goes through DB.
package db

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Initialize opens the sqlite case database. WAL mode is enabled so
// concurrent reads (dashboards, case lists) do not block writers.
func Initialize(dbPath string, environment string) error {
	var err error

	// Query logging is noisy in production; keep it for development
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	dsn := dbPath + "?_journal_mode=WAL"

	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})

	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Case database ready (WAL mode)")
	return nil
}

// AutoMigrate runs schema migrations for the given models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the underlying connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
