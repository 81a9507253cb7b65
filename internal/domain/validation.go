package domain

import "errors"

// ErrValidation is the parent of every input validation failure.
var ErrValidation = errors.New("validation failed")

var (
	ErrMissingFields = &ValidationError{Reason: "missing fields"}
	ErrInvalidEmail  = &ValidationError{Reason: "invalid email"}
	ErrWeakPassword  = &ValidationError{Reason: "weak password"}
	ErrMissingTitle  = &ValidationError{Reason: "missing title"}
)

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }
