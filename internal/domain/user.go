package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("token is invalid or expired")
	ErrTokenExpired       = &tokenExpiredError{}
	ErrUnauthorized       = errors.New("unauthorized")
)

// tokenExpiredError matches both ErrTokenExpired and ErrTokenInvalid, so callers
// that only care about validity need a single errors.Is check.
type tokenExpiredError struct{}

func (*tokenExpiredError) Error() string { return "token is expired" }

func (*tokenExpiredError) Is(target error) bool { return target == ErrTokenInvalid }

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Public returns a copy of u without credential material.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
