package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/metrics"
	"github.com/ErlanBelekov/task-manager/internal/repository"
	"github.com/google/uuid"
)

type TaskUsecase struct {
	repo repository.TaskRepository
}

func NewTaskUsecase(repo repository.TaskRepository) *TaskUsecase {
	return &TaskUsecase{repo: repo}
}

type CreateTaskInput struct {
	UserID      string
	Title       string
	Description string
}

func (u *TaskUsecase) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	if input.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, domain.ErrMissingTitle
	}

	created, err := u.repo.Create(ctx, &domain.Task{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		Title:       title,
		Description: input.Description,
		Completed:   false,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	metrics.TaskOperationsTotal.WithLabelValues("create").Inc()
	return created, nil
}

type ListTasksInput struct {
	UserID    string
	Completed *bool
}

func (u *TaskUsecase) List(ctx context.Context, input ListTasksInput) ([]*domain.Task, error) {
	if input.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	tasks, err := u.repo.List(ctx, repository.ListTasksInput{
		UserID:    input.UserID,
		Completed: input.Completed,
	})
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

func (u *TaskUsecase) SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*domain.Task, error) {
	id, err := u.ownedTaskID(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task, err := u.repo.SetCompleted(ctx, id, userID, completed)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	metrics.TaskOperationsTotal.WithLabelValues("update").Inc()
	return task, nil
}

func (u *TaskUsecase) Delete(ctx context.Context, userID, taskID string) error {
	id, err := u.ownedTaskID(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if err := u.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	metrics.TaskOperationsTotal.WithLabelValues("delete").Inc()
	return nil
}

// ownedTaskID validates the ID shape and confirms userID owns the task.
// The repository calls that follow filter on the owner again.
func (u *TaskUsecase) ownedTaskID(ctx context.Context, userID, taskID string) (string, error) {
	if userID == "" {
		return "", domain.ErrUnauthorized
	}

	parsed, err := uuid.Parse(strings.TrimSpace(taskID))
	if err != nil {
		return "", domain.ErrInvalidTaskID
	}
	id := parsed.String()

	task, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return "", domain.ErrTaskNotFound
		}
		return "", fmt.Errorf("get task: %w", err)
	}
	if task.UserID != userID {
		return "", domain.ErrTaskNotOwned
	}
	return id, nil
}
