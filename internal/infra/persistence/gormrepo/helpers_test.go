package gormrepo

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"bookshelf/config"
	"bookshelf/internal/infra/persistence/database"
	"bookshelf/internal/infra/persistence/migrations"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a migrated sqlite database in a temp dir.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.SQLite.Path = filepath.Join(t.TempDir(), "repo.db")

	db, err := database.Open(cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.Up(context.Background(), sqlDB, config.DriverSQLite))

	return db
}
