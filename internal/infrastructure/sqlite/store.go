package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ErlanBelekov/task-manager/internal/infrastructure/migrate"
	"github.com/ErlanBelekov/task-manager/internal/infrastructure/sqlite/migrations"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Store implements the user and task repositories over a single SQLite file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path and applies migrations.
func Open(ctx context.Context, path string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	dsn := cleanPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	// single writer; keeps the unique-email check and insert race free
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if err := migrate.Up(ctx, db, migrate.DialectSQLite, migrations.FS, logger); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (s *Store) Tasks() *TaskRepository { return &TaskRepository{s: s} }

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func isUniqueViolation(err error) bool {
	var sqlErr *moderncsqlite.Error
	if !errors.As(err, &sqlErr) {
		return false
	}
	return sqlErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sqlErr.Error(), "UNIQUE")
}

type rowScanner interface {
	Scan(dest ...any) error
}
