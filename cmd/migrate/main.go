// Command migrate applies the embedded schema migrations to the configured database.
//
//	migrate [-timeout 1m] up|down|status
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"bookshelf/config"
	logs "bookshelf/internal/infra/log"
	"bookshelf/internal/infra/persistence/database"
	"bookshelf/internal/infra/persistence/migrations"

	"github.com/pkg/errors"
)

func main() {
	timeout := flag.Duration("timeout", time.Minute, "Maximum time for the migration run")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] up|down|status\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(migrations.Command(flag.Arg(0)), *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd migrations.Command, timeout time.Duration) error {
	switch cmd {
	case migrations.CommandUp, migrations.CommandDown, migrations.CommandStatus:
	default:
		return errors.Errorf("unknown command %q", cmd)
	}

	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "load config")
	}

	logger, err := logs.NewWithWriter(cfg, os.Stderr)
	if err != nil {
		return errors.Wrap(err, "build logger")
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "open database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "get sql.DB")
	}
	defer sqlDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("Running migrations",
		slog.String("command", string(cmd)),
		slog.String("driver", cfg.Database.Driver),
	)

	migrations.SetLogger(logger)

	return migrations.Run(ctx, sqlDB, cfg.Database.Driver, cmd)
}
