package db

import (
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jobsheet-service/internal/config"
)

func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		dialector = postgres.Open(cfg.DB.DSN)
	case config.StoreDriverSQLite:
		dialector = sqlite.Open(cfg.DB.DSN)
	default:
		return nil, fmt.Errorf("store driver %q has no sql database", cfg.Store.Driver)
	}

	logLevel := gormlogger.Warn
	if cfg.Environment == "development" {
		logLevel = gormlogger.Info
	}

	database, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	maxOpen := cfg.DB.MaxOpenConns
	if maxOpen <= 0 && cfg.Store.Driver == config.StoreDriverSQLite {
		// Overlapping sqlite transactions fail with SQLITE_BUSY instead of
		// waiting; one connection queues them.
		maxOpen = 1
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}
	if cfg.DB.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}

	log.Info().Str("driver", cfg.Store.Driver).Msg("database ready")
	return database, nil
}
