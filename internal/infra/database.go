package infra

import (
	"fmt"

	"stockledger/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for the three tables. TranslateError is on so unique-index
// violations surface as gorm.ErrDuplicatedKey and the services can classify
// them without driver-specific checks.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// RunMigrations creates or updates the schema. Also used by the integration
// test suite against throwaway containers.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Part{},
		&model.Location{},
		&model.InventoryRecord{},
	)
}
