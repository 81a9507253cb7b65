package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `id, user_id, title, description, completed, created_at, updated_at`

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	query := `
		INSERT INTO tasks (id, user_id, title, description, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + taskColumns

	row := r.pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Completed,
	)
	return scanTask(row)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	return scanTask(r.pool.QueryRow(ctx, query, id))
}

func (r *TaskRepository) List(ctx context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
	args := []any{input.UserID}
	where := []string{"user_id = $1"}

	if input.Completed != nil {
		args = append(args, *input.Completed)
		where = append(where, fmt.Sprintf("completed = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM tasks
		WHERE %s
		ORDER BY created_at ASC, id ASC`,
		taskColumns, strings.Join(where, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
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
	query := `
		UPDATE tasks
		SET    completed  = $3,
		       updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + taskColumns

	return scanTask(r.pool.QueryRow(ctx, query, id, userID, completed))
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) Stats(ctx context.Context) (domain.TaskStats, error) {
	var st domain.TaskStats
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FILTER (WHERE NOT completed),
		       COUNT(*) FILTER (WHERE completed)
		FROM tasks`).Scan(&st.Open, &st.Completed)
	if err != nil {
		return domain.TaskStats{}, fmt.Errorf("task stats: %w", err)
	}
	return st, nil
}

// pgx.Row and pgx.Rows both implement this.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &t, nil
}
