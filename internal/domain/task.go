package domain

import (
	"errors"
	"time"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskNotOwned is reported to clients exactly like ErrTaskNotFound.
	ErrTaskNotOwned  = errors.New("task belongs to another user")
	ErrInvalidTaskID = errors.New("invalid task id")
)

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type TaskStats struct {
	Open      int
	Completed int
}
