package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/task-manager/internal/infrastructure/migrate"
	"github.com/ErlanBelekov/task-manager/internal/infrastructure/postgres/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse db config: %w", err)
	}

	cfg.MaxConns = 25
	cfg.MinConns = 5
	cfg.MaxConnLifetime = 1 * time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

// Migrate brings the schema up to date through a database/sql view of pool.
func Migrate(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	// closes the database/sql wrapper only, pool stays open
	defer db.Close()

	if err := migrate.Up(ctx, db, migrate.DialectPostgres, migrations.FS, logger); err != nil {
		return fmt.Errorf("migrate postgres: %w", err)
	}
	return nil
}
