package database_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manzapp/manz/backend/config"
	"github.com/manzapp/manz/backend/internal/database"
	"github.com/manzapp/manz/backend/internal/models"
	"github.com/manzapp/manz/backend/internal/testhelpers"
)

func TestLoadMigrations(t *testing.T) {
	migrations, err := database.LoadMigrations(testhelpers.MigrationsDir())
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, "0001", migrations[0].Version)
	assert.Equal(t, "0001_create_users", migrations[0].Name)
	assert.NotEmpty(t, migrations[0].DownPath)
	assert.Equal(t, "0002", migrations[1].Version)
}

func TestLoadMigrationsErrors(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := database.LoadMigrations(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("down without up", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "0001_orphan.down.sql"), []byte("SELECT 1;"), 0o644))
		_, err := database.LoadMigrations(dir)
		assert.ErrorContains(t, err, "no up file")
	})

	t.Run("unversioned name", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "init.up.sql"), []byte("SELECT 1;"), 0o644))
		_, err := database.LoadMigrations(dir)
		assert.Error(t, err)
	})
}

func TestNewSQLite(t *testing.T) {
	cfg := &config.Config{DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "manz.db")}

	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, database.RunMigrations(db, ""))
	assert.True(t, db.Migrator().HasTable(&models.Meal{}))
	assert.True(t, db.Migrator().HasTable("auth_tokens"))
	assert.NoError(t, database.HealthCheck(context.Background(), db))
}

func TestNewUnsupportedDriver(t *testing.T) {
	_, err := database.New(&config.Config{DBDriver: "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestApplyAndRollbackPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := testhelpers.SetupPostgresDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	ctx := context.Background()
	dir := testhelpers.MigrationsDir()

	applied, err := database.ApplyMigrations(ctx, sqlDB, dir)
	require.NoError(t, err)
	assert.Empty(t, applied, "setup already applied every migration")

	name, err := database.RollbackLast(ctx, sqlDB, dir)
	require.NoError(t, err)
	assert.Equal(t, "0002_create_recipes", name)
	assert.False(t, db.Migrator().HasTable("meals"))

	name, err = database.RollbackLast(ctx, sqlDB, dir)
	require.NoError(t, err)
	assert.Equal(t, "0001_create_users", name)

	_, err = database.RollbackLast(ctx, sqlDB, dir)
	assert.ErrorIs(t, err, database.ErrNothingToRollback)

	applied, err = database.ApplyMigrations(ctx, sqlDB, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_create_users", "0002_create_recipes"}, applied)
}
