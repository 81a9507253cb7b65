package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/repository"
)

const taskColumns = `id, user_id, title, description, completed, created_at, updated_at`

type TaskRepository struct {
	s *Store
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	now := toMillis(r.s.now())
	_, err := r.s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, user_id, title, description, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.UserID, task.Title, task.Description, task.Completed, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return r.GetByID(ctx, task.ID)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *TaskRepository) List(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
	args := []any{input.UserID}
	where := []string{"user_id = ?"}

	if input.Completed != nil {
		args = append(args, *input.Completed)
		where = append(where, "completed = ?")
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY created_at ASC, id ASC`

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) SetCompleted(ctx context.Context, id, userID string, completed bool) (*domain.Task, error) {
	res, err := r.s.db.ExecContext(ctx, `
		UPDATE tasks SET completed = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		completed, toMillis(r.s.now()), id, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	} else if n == 0 {
		return nil, domain.ErrTaskNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Stats(ctx context.Context) (domain.TaskStats, error) {
	var st domain.TaskStats
	err := r.s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN completed = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN completed = 1 THEN 1 ELSE 0 END), 0)
		FROM tasks`).Scan(&st.Open, &st.Completed)
	if err != nil {
		return domain.TaskStats{}, fmt.Errorf("task stats: %w", err)
	}
	return st, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t                    domain.Task
		createdAt, updatedAt int64
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	t.CreatedAt = fromMillis(createdAt)
	t.UpdatedAt = fromMillis(updatedAt)
	return &t, nil
}
