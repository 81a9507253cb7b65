package repository

import (
	"context"

	"github.com/ErlanBelekov/task-manager/internal/domain"
)

type ListTasksInput struct {
	UserID    string
	Completed *bool // nil = all tasks
}

// TaskRepository stores tasks. Every method that takes a userID filters on it
// in the query itself, so a task owned by someone else behaves as missing.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)

	// GetByID is not owner-scoped. The caller must compare task.UserID.
	GetByID(ctx context.Context, id string) (*domain.Task, error)

	// List returns tasks ordered by created_at ASC, id ASC.
	List(ctx context.Context, input ListTasksInput) ([]*domain.Task, error)
	SetCompleted(ctx context.Context, id, userID string, completed bool) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error

	Stats(ctx context.Context) (domain.TaskStats, error)
}
