package utils

import (
	"fmt"

	"project/backend/config"
	"project/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database selected by the configuration and migrates
// the schema. Postgres is the default; sqlite is used for local
// development and tests.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := MigrateDB(db); err != nil {
		return nil, err
	}

	return db, nil
}

// MigrateDB creates or updates the tables for all models.
func MigrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserSubjects{},
		&models.TaskLog{},
		&models.PlatformLog{},
		&models.TopicProficiency{},
	); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}
