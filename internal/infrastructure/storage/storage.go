// Package storage opens the backend selected by STORAGE_DRIVER.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/task-manager/config"
	"github.com/ErlanBelekov/task-manager/internal/health"
	"github.com/ErlanBelekov/task-manager/internal/infrastructure/memory"
	"github.com/ErlanBelekov/task-manager/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/task-manager/internal/infrastructure/sqlite"
	"github.com/ErlanBelekov/task-manager/internal/repository"
)

type Backend struct {
	Users repository.UserRepository
	Tasks repository.TaskRepository
	// DB is what the health checker pings.
	DB    health.Pinger
	close func()
}

func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open connects to the configured store and applies pending migrations.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Backend, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
		return &Backend{
			Users: postgres.NewUserRepository(pool),
			Tasks: postgres.NewTaskRepository(pool),
			DB:    pool,
			close: pool.Close,
		}, nil

	case config.StorageSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		return &Backend{
			Users: store.Users(),
			Tasks: store.Tasks(),
			DB:    store,
			close: func() {
				if err := store.Close(); err != nil {
					logger.Error("close sqlite", "error", err)
				}
			},
		}, nil

	case config.StorageMemory:
		logger.Warn("using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &Backend{Users: store.Users(), Tasks: store.Tasks(), DB: store}, nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}
