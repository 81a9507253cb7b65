package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/infrastructure/memory"
	"github.com/ErlanBelekov/task-manager/internal/repository"
	"github.com/ErlanBelekov/task-manager/internal/usecase"
	"github.com/google/uuid"
)

type fakeTaskRepo struct {
	repository.TaskRepository
	getByID func(ctx context.Context, id string) (*domain.Task, error)
	delete  func(ctx context.Context, id, userID string) error
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	return r.getByID(ctx, id)
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id, userID string) error {
	return r.delete(ctx, id, userID)
}

func mustCreate(t *testing.T, uc *usecase.TaskUsecase, userID, title string) *domain.Task {
	t.Helper()
	task, err := uc.Create(context.Background(), usecase.CreateTaskInput{UserID: userID, Title: title})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func TestCreateTask(t *testing.T) {
	uc := usecase.NewTaskUsecase(memory.NewStore().Tasks())

	task, err := uc.Create(context.Background(), usecase.CreateTaskInput{
		UserID:      "alice",
		Title:       "  New Task ",
		Description: "desc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title != "New Task" || task.Completed || task.UserID != "alice" {
		t.Errorf("task = %+v", task)
	}
	if _, err := uuid.Parse(task.ID); err != nil {
		t.Errorf("id %q is not a uuid", task.ID)
	}

	if _, err := uc.Create(context.Background(), usecase.CreateTaskInput{UserID: "alice", Title: " "}); !errors.Is(err, domain.ErrMissingTitle) {
		t.Errorf("blank title err = %v, want ErrMissingTitle", err)
	}
	if _, err := uc.Create(context.Background(), usecase.CreateTaskInput{Title: "x"}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("no user err = %v, want ErrUnauthorized", err)
	}
}

func TestListTasks_EmptyIsNonNil(t *testing.T) {
	uc := usecase.NewTaskUsecase(memory.NewStore().Tasks())

	tasks, err := uc.List(context.Background(), usecase.ListTasksInput{UserID: "nobody"})
	if err != nil {
		t.Fatal(err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("tasks = %#v, want empty non-nil slice", tasks)
	}
}

func TestListTasks_OwnerScopedAndOrdered(t *testing.T) {
	uc := usecase.NewTaskUsecase(memory.NewStore().Tasks())
	first := mustCreate(t, uc, "alice", "first")
	second := mustCreate(t, uc, "alice", "second")
	mustCreate(t, uc, "bob", "bob's")

	tasks, err := uc.List(context.Background(), usecase.ListTasksInput{UserID: "alice"})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len = %d, want 2", len(tasks))
	}
	ids := map[string]bool{tasks[0].ID: true, tasks[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Errorf("unexpected tasks %+v", tasks)
	}

	again, err := uc.List(context.Background(), usecase.ListTasksInput{UserID: "alice"})
	if err != nil {
		t.Fatal(err)
	}
	for i := range tasks {
		if tasks[i].ID != again[i].ID {
			t.Fatal("order changed between identical reads")
		}
	}
}

func TestSetCompleted(t *testing.T) {
	uc := usecase.NewTaskUsecase(memory.NewStore().Tasks())
	task := mustCreate(t, uc, "alice", "t")

	updated, err := uc.SetCompleted(context.Background(), "alice", task.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if !updated.Completed {
		t.Error("task not completed")
	}

	yes := true
	done, err := uc.List(context.Background(), usecase.ListTasksInput{UserID: "alice", Completed: &yes})
	if err != nil || len(done) != 1 {
		t.Errorf("completed list = %v, err = %v", done, err)
	}

	if _, err := uc.SetCompleted(context.Background(), "bob", task.ID, false); !errors.Is(err, domain.ErrTaskNotOwned) {
		t.Errorf("foreign update err = %v, want ErrTaskNotOwned", err)
	}
}

func TestDelete(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewTaskUsecase(store.Tasks())
	task := mustCreate(t, uc, "alice", "t")

	tests := []struct {
		name   string
		userID string
		taskID string
		want   error
	}{
		{"malformed id", "alice", "invalidId", domain.ErrInvalidTaskID},
		{"empty id", "alice", "", domain.ErrInvalidTaskID},
		{"unknown id", "alice", uuid.NewString(), domain.ErrTaskNotFound},
		{"other owner", "bob", task.ID, domain.ErrTaskNotOwned},
		{"no identity", "", task.ID, domain.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := uc.Delete(context.Background(), tt.userID, tt.taskID); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := store.Tasks().GetByID(context.Background(), task.ID); err != nil {
		t.Fatalf("task removed by a failed delete: %v", err)
	}

	if err := uc.Delete(context.Background(), "alice", task.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Tasks().GetByID(context.Background(), task.ID); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Errorf("task still present: %v", err)
	}
}

func TestDelete_AcceptsUppercaseID(t *testing.T) {
	id := uuid.NewString()
	var deleted string
	repo := &fakeTaskRepo{
		getByID: func(_ context.Context, got string) (*domain.Task, error) {
			if got != id {
				return nil, domain.ErrTaskNotFound
			}
			return &domain.Task{ID: id, UserID: "alice"}, nil
		},
		delete: func(_ context.Context, got, _ string) error {
			deleted = got
			return nil
		},
	}
	uc := usecase.NewTaskUsecase(repo)

	upper := []byte(id)
	for i, c := range upper {
		if c >= 'a' && c <= 'f' {
			upper[i] = c - 'a' + 'A'
		}
	}
	if err := uc.Delete(context.Background(), "alice", string(upper)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted != id {
		t.Errorf("deleted %q, want canonical %q", deleted, id)
	}
}

func TestDelete_StoreErrorIsWrapped(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeTaskRepo{
		getByID: func(context.Context, string) (*domain.Task, error) { return nil, boom },
	}
	uc := usecase.NewTaskUsecase(repo)

	err := uc.Delete(context.Background(), "alice", uuid.NewString())
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped boom", err)
	}
	if errors.Is(err, domain.ErrTaskNotFound) {
		t.Error("store failure reported as not found")
	}
}
