package migrations

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pressly/goose/v3"
)

// gooseLogger forwards goose output to slog.
type gooseLogger struct {
	logger *slog.Logger
}

var _ goose.Logger = (*gooseLogger)(nil)

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}

var migrationLogger goose.Logger = goose.NopLogger()

// SetLogger sends goose output to logger. A nil logger silences it.
func SetLogger(logger *slog.Logger) {
	if logger == nil {
		migrationLogger = goose.NopLogger()

		return
	}

	migrationLogger = &gooseLogger{logger: logger.With(slog.String("component", "goose"))}
}
