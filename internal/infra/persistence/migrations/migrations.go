// Package migrations embeds the goose SQL migrations for every supported dialect.
package migrations

import (
	"context"
	"database/sql"
	"embed"

	"bookshelf/config"

	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Command is a goose operation exposed through cmd/migrate.
type Command string

const (
	CommandUp     Command = "up"
	CommandDown   Command = "down"
	CommandStatus Command = "status"
)

// dialect maps a configured driver to the goose dialect and migration directory.
func dialect(driver string) (string, string, error) {
	switch driver {
	case config.DriverPostgres:
		return "postgres", "postgres", nil
	case config.DriverSQLite:
		return "sqlite3", "sqlite", nil
	default:
		return "", "", errors.Errorf("unsupported database driver %q", driver)
	}
}

// Up applies every pending migration for the driver.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	return Run(ctx, db, driver, CommandUp)
}

// Run executes a goose command against the embedded migrations.
func Run(ctx context.Context, db *sql.DB, driver string, cmd Command) error {
	gooseDialect, dir, err := dialect(driver)
	if err != nil {
		return err
	}

	goose.SetLogger(migrationLogger)
	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect(gooseDialect); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	switch cmd {
	case CommandUp:
		err = goose.UpContext(ctx, db, dir)
	case CommandDown:
		err = goose.DownContext(ctx, db, dir)
	case CommandStatus:
		err = goose.StatusContext(ctx, db, dir)
	default:
		return errors.Errorf("unknown migration command %q", cmd)
	}
	if err != nil {
		return errors.Wrapf(err, "goose %s failed", cmd)
	}

	return nil
}
