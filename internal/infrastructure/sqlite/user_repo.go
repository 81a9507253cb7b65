package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/task-manager/internal/domain"
)

const userColumns = `id, name, email, password_hash, created_at, updated_at`

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := toMillis(r.s.now())
	_, err := r.s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.PasswordHash, now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return r.FindByID(ctx, user.ID)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u                    domain.User
		createdAt, updatedAt int64
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return &u, nil
}
