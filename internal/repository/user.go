package repository

import (
	"context"

	"github.com/ErlanBelekov/task-manager/internal/domain"
)

type UserRepository interface {
	// Create persists a new user. Returns domain.ErrUserExists when the email
	// is already taken; the existing record is never overwritten.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Count(ctx context.Context) (int, error)
}
