package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/identity"
	"github.com/ErlanBelekov/task-manager/internal/usecase"
	"github.com/gin-gonic/gin"
)

type taskUsecaser interface {
	Create(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	List(ctx context.Context, input usecase.ListTasksInput) ([]*domain.Task, error)
	SetCompleted(ctx context.Context, userID, taskID string, completed bool) (*domain.Task, error)
	Delete(ctx context.Context, userID, taskID string) error
}

type TaskHandler struct {
	taskUsecase taskUsecaser
	logger      *slog.Logger
}

func NewTaskHandler(taskUsecase taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTaskRequest struct {
	ID        string `json:"id"`
	Completed *bool  `json:"completed"`
}

type deleteTaskRequest struct {
	ID string `json:"id"`
}

type taskResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// POST /api/task
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidBody})
		return
	}

	ctx := c.Request.Context()
	task, err := h.taskUsecase.Create(ctx, usecase.CreateTaskInput{
		UserID:      identity.FromContext(ctx),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.writeError(c, "create task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgTaskAdded, "task": toTaskResponse(task)})
}

// GET /api/task?completed=true|false
func (h *TaskHandler) List(c *gin.Context) {
	input := usecase.ListTasksInput{UserID: identity.FromContext(c.Request.Context())}

	if raw, ok := c.GetQuery("completed"); ok {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidFilter})
			return
		}
		input.Completed = &completed
	}

	tasks, err := h.taskUsecase.List(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, "list tasks", err)
		return
	}

	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = toTaskResponse(t)
	}
	c.JSON(http.StatusOK, resp)
}

// PATCH /api/task
func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidBody})
		return
	}
	if req.ID == "" || req.Completed == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errMissingFields})
		return
	}

	ctx := c.Request.Context()
	task, err := h.taskUsecase.SetCompleted(ctx, identity.FromContext(ctx), req.ID, *req.Completed)
	if err != nil {
		h.writeError(c, "update task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgTaskUpdated, "task": toTaskResponse(task)})
}

// DELETE /api/task
// The task ID travels in the JSON body.
func (h *TaskHandler) Delete(c *gin.Context) {
	var req deleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidBody})
		return
	}

	ctx := c.Request.Context()
	if err := h.taskUsecase.Delete(ctx, identity.FromContext(ctx), req.ID); err != nil {
		h.writeError(c, "delete task", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgTaskDeleted})
}

// writeError maps task errors to a status. A task owned by someone else is
// reported exactly like a missing one.
func (h *TaskHandler) writeError(c *gin.Context, op string, err error) {
	if msg, ok := validationMessage(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": msg})
		return
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
	case errors.Is(err, domain.ErrInvalidTaskID):
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidTaskID})
	case errors.Is(err, domain.ErrTaskNotFound), errors.Is(err, domain.ErrTaskNotOwned):
		c.JSON(http.StatusNotFound, gin.H{"message": errTaskNotFound})
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
	}
}
