package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/manzapp/manz/backend/internal/models"
	"gorm.io/gorm"
)

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version VARCHAR(32) PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Migration is one NNNN_name.up.sql file and its optional .down.sql partner
type Migration struct {
	Version  string
	Name     string
	UpPath   string
	DownPath string
}

// RunMigrations brings the schema up to date. sqlite databases are created
// from the models; everything else runs the SQL files in migrationsDir.
func RunMigrations(db *gorm.DB, migrationsDir string) error {
	if db.Dialector.Name() == "sqlite" {
		log.Printf("Using GORM auto-migration for SQLite")
		return db.AutoMigrate(models.AllModels()...)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	_, err = ApplyMigrations(context.Background(), sqlDB, migrationsDir)
	return err
}

// LoadMigrations lists the migrations in dir ordered by version
func LoadMigrations(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	byVersion := make(map[string]*Migration)
	for _, entry := range entries {
		name := entry.Name()
		var base string
		var up bool
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			base, up = strings.TrimSuffix(name, ".up.sql"), true
		case strings.HasSuffix(name, ".down.sql"):
			base = strings.TrimSuffix(name, ".down.sql")
		default:
			continue
		}

		version, _, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s is not named VERSION_name", name)
		}
		m, exists := byVersion[version]
		if !exists {
			m = &Migration{Version: version, Name: base}
			byVersion[version] = m
		}
		if up {
			m.UpPath = filepath.Join(dir, name)
		} else {
			m.DownPath = filepath.Join(dir, name)
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		if m.UpPath == "" {
			return nil, fmt.Errorf("migration %s has no up file", m.Name)
		}
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// ApplyMigrations runs every migration not yet recorded in schema_migrations,
// each in its own transaction, and returns the names it applied.
func ApplyMigrations(ctx context.Context, db *sql.DB, dir string) ([]string, error) {
	migrations, err := LoadMigrations(dir)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	var applied []string
	for _, m := range migrations {
		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE version = $1", m.Version).Scan(&count); err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			continue
		}

		content, err := os.ReadFile(m.UpPath)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration %s: %w", m.Name, err)
		}

		err = inTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", m.Name, err)
			}
			if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", m.Version, m.Name); err != nil {
				return fmt.Errorf("failed to record migration %s: %w", m.Name, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}

		log.Printf("Applied migration %s", m.Name)
		applied = append(applied, m.Name)
	}
	return applied, nil
}

// ErrNothingToRollback is returned when no migration has been applied
var ErrNothingToRollback = errors.New("no migrations to roll back")

// RollbackLast undoes the most recently applied migration with its down file
func RollbackLast(ctx context.Context, db *sql.DB, dir string) (string, error) {
	var version, name string
	err := db.QueryRowContext(ctx, "SELECT version, name FROM schema_migrations ORDER BY version DESC LIMIT 1").Scan(&version, &name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNothingToRollback
		}
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}

	migrations, err := LoadMigrations(dir)
	if err != nil {
		return "", err
	}
	var downPath string
	for _, m := range migrations {
		if m.Version == version {
			downPath = m.DownPath
		}
	}
	if downPath == "" {
		return "", fmt.Errorf("rollback file not found for migration %s", name)
	}

	content, err := os.ReadFile(downPath)
	if err != nil {
		return "", fmt.Errorf("failed to read rollback file: %w", err)
	}

	err = inTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute rollback: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = $1", version); err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
