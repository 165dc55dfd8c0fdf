package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/manzapp/manz/backend/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the database selected by cfg.DBDriver
func New(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	switch cfg.DBDriver {
	case "postgres":
		log.Printf("Connecting to database at %s:%s as user %s", cfg.DBHost, cfg.DBPort, cfg.DBUser)
		db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("error opening database: %w", err)
		}
		if err := configurePool(db, 25); err != nil {
			return nil, err
		}
		log.Printf("Successfully connected to database")
		return db, nil
	case "sqlite":
		log.Printf("Opening sqlite database %s", cfg.DBPath)
		return OpenSQLite(cfg.DBPath, gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// OpenSQLite opens a sqlite database with foreign keys enforced. sqlite
// allows one writer at a time, so the pool holds a single connection; this
// also keeps a ":memory:" database alive for the life of the pool.
func OpenSQLite(path string, gormCfg *gorm.Config) (*gorm.DB, error) {
	dsn := path + "?_foreign_keys=on"
	if path == ":memory:" {
		dsn = "file::memory:?_foreign_keys=on"
	}

	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}
	if err := configurePool(db, 1); err != nil {
		return nil, err
	}
	return db, nil
}

func configurePool(db *gorm.DB, maxConns int) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("error getting database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxConns)
	sqlDB.SetMaxIdleConns(maxConns)
	if maxConns > 1 {
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("error connecting to the database: %w", err)
	}
	return nil
}

// HealthCheck checks if the database is accessible
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
