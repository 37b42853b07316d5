package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"bookshelf/config"

	_ "github.com/glebarez/go-sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrations.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	require.NoError(t, err)

	return count == 1
}

func TestRun_UpAndDown(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Up(ctx, db, config.DriverSQLite))
	assert.True(t, tableExists(t, db, "users"))
	assert.True(t, tableExists(t, db, "books"))

	// idempotent
	require.NoError(t, Up(ctx, db, config.DriverSQLite))

	require.NoError(t, Run(ctx, db, config.DriverSQLite, CommandDown))
	assert.True(t, tableExists(t, db, "users"))
	assert.False(t, tableExists(t, db, "books"))

	require.NoError(t, Run(ctx, db, config.DriverSQLite, CommandStatus))
}

func TestRun_EmailIsUnique(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	require.NoError(t, Up(ctx, db, config.DriverSQLite))

	insert := `INSERT INTO users (name, email, password) VALUES (?, ?, ?)`
	_, err := db.Exec(insert, "Ana", "ana@x.com", "digest")
	require.NoError(t, err)

	_, err = db.Exec(insert, "Outra Ana", "ana@x.com", "digest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNIQUE constraint failed")
}

func TestRun_RejectsUnknownInput(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	assert.Error(t, Up(ctx, db, "oracle"))
	assert.Error(t, Run(ctx, db, config.DriverSQLite, Command("redo-everything")))
}

func TestMigrations_EmbedsEveryDialect(t *testing.T) {
	for _, dir := range []string{"postgres", "sqlite"} {
		entries, err := Migrations.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 2, dir)
	}
}
