package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openjusticia/corrupcion-api/internal/config"
)

// Initialize opens the PostgreSQL database, configures the connection
// pool and runs migrations
func Initialize(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Migrate runs auto-migration for all models and creates the
// supporting indexes
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Case{},
		&Court{},
		&Judge{},
		&CourtJudge{},
		&Party{},
		&PartyRole{},
		&CrimeType{},
		&CaseCrime{},
		&Jurisdiction{},
		&Forum{},
		&Metadata{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	return createIndexes(db)
}
