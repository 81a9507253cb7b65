// Package migrate applies embedded goose migrations for either SQL backend.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// goose keeps its dialect and base FS in package globals.
var mu sync.Mutex

// Up applies every pending migration in fsys to db.
func Up(ctx context.Context, db *sql.DB, dialect string, fsys fs.FS, logger *slog.Logger) error {
	mu.Lock()
	defer mu.Unlock()

	goose.SetBaseFS(fsys)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(&gooseLogger{logger: logger.With("component", "migrate", "dialect", dialect)})

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l *gooseLogger) Fatalf(format string, v ...any) {
	// goose only calls Fatalf from its CLI helpers; never exit from here.
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
