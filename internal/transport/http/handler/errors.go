package handler

import (
	"errors"

	"github.com/ErlanBelekov/task-manager/internal/domain"
)

const (
	errInternalServer     = "Internal server error"
	errInvalidBody        = "Invalid request body"
	errMissingFields      = "Please enter all fields"
	errInvalidEmail       = "Please enter a valid email"
	errWeakPassword       = "Please enter a strong password"
	errUserExists         = "User already exists"
	errUserNotFound       = "User does not exist"
	errInvalidCredentials = "Invalid credentials"
	errUnauthorized       = "Unauthorized"
	errMissingTitle       = "Please enter a title"
	errInvalidTaskID      = "Invalid task id"
	errInvalidFilter      = "Invalid completed filter"
	errTaskNotFound       = "Task not found"
)

const (
	msgTaskAdded   = "Task added successfully"
	msgTaskUpdated = "Task updated successfully"
	msgTaskDeleted = "Task deleted successfully"
)

// validationMessage maps a domain validation error to its user-facing text.
// ok is false for anything that is not a validation failure.
func validationMessage(err error) (msg string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return errMissingFields, true
	case errors.Is(err, domain.ErrInvalidEmail):
		return errInvalidEmail, true
	case errors.Is(err, domain.ErrWeakPassword):
		return errWeakPassword, true
	case errors.Is(err, domain.ErrMissingTitle):
		return errMissingTitle, true
	case errors.Is(err, domain.ErrValidation):
		return errMissingFields, true
	}
	return "", false
}
