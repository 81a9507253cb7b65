package storage_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/ErlanBelekov/task-manager/config"
	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/infrastructure/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	for _, driver := range []string{config.StorageMemory, config.StorageSQLite} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			cfg := &config.Config{
				StorageDriver: driver,
				SQLitePath:    filepath.Join(t.TempDir(), "tasks.db"),
			}

			b, err := storage.Open(ctx, cfg, logger)
			require.NoError(t, err)
			defer b.Close()

			require.NoError(t, b.DB.Ping(ctx))
			_, err = b.Users.Create(ctx, &domain.User{ID: "11111111-1111-1111-1111-111111111111", Name: "A", Email: "a@example.com", PasswordHash: "h"})
			require.NoError(t, err)

			n, err := b.Users.Count(ctx)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
		})
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := storage.Open(context.Background(), &config.Config{StorageDriver: "mongo"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}
