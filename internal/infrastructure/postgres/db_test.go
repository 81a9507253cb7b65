package postgres_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/ErlanBelekov/task-manager/internal/infrastructure/postgres"
	"github.com/stretchr/testify/require"
)

// Needs a disposable database: TEST_DATABASE_URL=postgres://... go test ./...
func TestMigrate_LeavesPoolUsable(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	pool, err := postgres.NewPool(ctx, url)
	require.NoError(t, err)
	defer pool.Close()

	require.NoError(t, postgres.Migrate(ctx, pool, logger))
	require.NoError(t, postgres.Migrate(ctx, pool, logger), "second run is a no-op")
	require.NoError(t, pool.Ping(ctx))

	_, err = postgres.NewUserRepository(pool).Count(ctx)
	require.NoError(t, err)
}
