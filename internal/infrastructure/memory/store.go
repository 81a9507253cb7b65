// Package memory keeps users and tasks in process memory. It backs
// STORAGE_DRIVER=memory and the use case and handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/repository"
)

type Store struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string
	tasks   map[string]*domain.Task
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
		tasks:   make(map[string]*domain.Task),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Ping(_ context.Context) error { return nil }

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

func (s *Store) Tasks() *TaskRepository { return &TaskRepository{s: s} }

type UserRepository struct {
	s *Store
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.byEmail[user.Email]; taken {
		return nil, domain.ErrUserExists
	}

	u := *user
	now := r.s.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = &u
	r.s.byEmail[u.Email] = u.ID

	out := u
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *r.s.users[id]
	return &u, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *UserRepository) Count(_ context.Context) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return len(r.s.users), nil
}

type TaskRepository struct {
	s *Store
}

var _ repository.TaskRepository = (*TaskRepository)(nil)

func (r *TaskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t := *task
	now := r.s.now()
	t.CreatedAt, t.UpdatedAt = now, now
	r.s.tasks[t.ID] = &t

	out := t
	return &out, nil
}

func (r *TaskRepository) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	out := *t
	return &out, nil
}

func (r *TaskRepository) List(_ context.Context, input repository.ListTasksInput) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var tasks []*domain.Task
	for _, t := range r.s.tasks {
		if t.UserID != input.UserID {
			continue
		}
		if input.Completed != nil && t.Completed != *input.Completed {
			continue
		}
		out := *t
		tasks = append(tasks, &out)
	}

	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks, nil
}

func (r *TaskRepository) SetCompleted(_ context.Context, id, userID string, completed bool) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	t.Completed = completed
	t.UpdatedAt = r.s.now()

	out := *t
	return &out, nil
}

func (r *TaskRepository) Delete(_ context.Context, id, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tasks[id]
	if !ok || t.UserID != userID {
		return domain.ErrTaskNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func (r *TaskRepository) Stats(_ context.Context) (domain.TaskStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var st domain.TaskStats
	for _, t := range r.s.tasks {
		if t.Completed {
			st.Completed++
		} else {
			st.Open++
		}
	}
	return st, nil
}
