// seed registers a demo user and a handful of tasks in the configured store.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ErlanBelekov/task-manager/config"
	"github.com/ErlanBelekov/task-manager/internal/auth"
	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/email"
	"github.com/ErlanBelekov/task-manager/internal/infrastructure/storage"
	"github.com/ErlanBelekov/task-manager/internal/usecase"
	"github.com/lmittmann/tint"
)

const (
	seedName     = "Demo User"
	seedEmail    = "demo@test.local"
	seedPassword = "Demo-passw0rd"
)

type taskSpec struct {
	title       string
	description string
	completed   bool
}

var tasks = []taskSpec{
	{"Buy groceries", "Milk, eggs, bread", false},
	{"Write report", "Quarterly numbers for the team", false},
	{"Book dentist", "", true},
	{"Renew passport", "Expires in March", false},
	{"Water plants", "", true},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if cfg.StorageDriver == config.StorageMemory {
		log.Fatal("seeding the memory store is pointless, set STORAGE_DRIVER=postgres or sqlite")
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelWarn, TimeFormat: time.Kitchen}))

	backend, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer backend.Close()

	authService, err := auth.NewService(auth.Config{
		Secret:     []byte(cfg.JWTSecret),
		TokenTTL:   cfg.JWTTTL,
		Issuer:     cfg.JWTIssuer,
		BcryptCost: cfg.BcryptCost,
	})
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	users := usecase.NewUserUsecase(backend.Users, authService, email.NewSender("local", "", "", logger), logger)
	taskUsecase := usecase.NewTaskUsecase(backend.Tasks)

	// Re-runs log in instead of failing on the existing account.
	res, err := users.Register(ctx, usecase.RegisterInput{Name: seedName, Email: seedEmail, Password: seedPassword})
	if errors.Is(err, domain.ErrUserExists) {
		res, err = users.Login(ctx, seedEmail, seedPassword)
	}
	if err != nil {
		log.Fatalf("seed user: %v", err)
	}

	var created int
	for _, spec := range tasks {
		task, err := taskUsecase.Create(ctx, usecase.CreateTaskInput{
			UserID:      res.User.ID,
			Title:       spec.title,
			Description: spec.description,
		})
		if err != nil {
			log.Fatalf("create task %q: %v", spec.title, err)
		}
		if spec.completed {
			if _, err := taskUsecase.SetCompleted(ctx, res.User.ID, task.ID, true); err != nil {
				log.Fatalf("complete task %q: %v", spec.title, err)
			}
		}
		created++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Storage:       %s\n", cfg.StorageDriver)
	fmt.Printf("  User:          %s / %s\n", seedEmail, seedPassword)
	fmt.Printf("  User ID:       %s\n", res.User.ID)
	fmt.Printf("  Tasks created: %d\n", created)
	fmt.Printf("  Token expires: %s\n", res.ExpiresAt.Format(time.RFC3339))
	fmt.Println()
	fmt.Println("Try it:")
	fmt.Println()
	fmt.Printf("  export JWT=%s\n", res.Token)
	fmt.Printf("  curl -s http://localhost:%s/api/task -H \"Authorization: Bearer $JWT\"\n", cfg.Port)
	fmt.Printf("  curl -s 'http://localhost:%s/api/task?completed=true' -H \"Authorization: Bearer $JWT\"\n", cfg.Port)
}
