package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/email"
	"github.com/ErlanBelekov/task-manager/internal/metrics"
	"github.com/ErlanBelekov/task-manager/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	minPasswordLength = 8
	// bcrypt rejects anything longer.
	maxPasswordBytes = 72
)

// credentials is the subset of auth.Service the user usecase needs.
type credentials interface {
	HashPassword(raw string) (string, error)
	VerifyPassword(raw, hash string) bool
	IssueToken(userID string) (string, time.Time, error)
}

type UserUsecase struct {
	users    repository.UserRepository
	auth     credentials
	email    email.Sender
	validate *validator.Validate
	logger   *slog.Logger
}

func NewUserUsecase(users repository.UserRepository, auth credentials, sender email.Sender, logger *slog.Logger) *UserUsecase {
	v := validator.New()
	// only fails for an empty tag or nil func
	_ = v.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})

	return &UserUsecase{
		users:    users,
		auth:     auth,
		email:    sender,
		validate: v,
		logger:   logger.With("component", "user_usecase"),
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Register validates input in a fixed order (missing fields, email format,
// password strength, uniqueness), then persists the user and returns a token.
func (u *UserUsecase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	name := strings.TrimSpace(input.Name)
	addr := strings.TrimSpace(input.Email)

	if name == "" || addr == "" || input.Password == "" {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrMissingFields
	}
	if err := u.validate.Var(addr, "email"); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrInvalidEmail
	}
	if err := u.validate.Var(input.Password, "strongpassword"); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrWeakPassword
	}

	_, err := u.users.FindByEmail(ctx, addr)
	switch {
	case err == nil:
		metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := u.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// The ID is assigned here so the token can be signed before anything is
	// persisted. If the insert fails the token is simply dropped.
	id := uuid.NewString()
	token, expiresAt, err := u.auth.IssueToken(id)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	created, err := u.users.Create(ctx, &domain.User{
		ID:           id,
		Name:         name,
		Email:        addr,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	u.sendWelcome(ctx, created)

	return &AuthResult{User: created.Public(), Token: token, ExpiresAt: expiresAt}, nil
}

func (u *UserUsecase) Login(ctx context.Context, addr, password string) (*AuthResult, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.ErrMissingFields
	}

	user, err := u.users.FindByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("unknown_user").Inc()
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !u.auth.VerifyPassword(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("bad_password").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := u.auth.IssueToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &AuthResult{User: user.Public(), Token: token, ExpiresAt: expiresAt}, nil
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user.Public(), nil
}

func (u *UserUsecase) sendWelcome(ctx context.Context, user *domain.User) {
	if u.email == nil {
		return
	}
	subject, body := email.WelcomeMessage(user.Name)
	if err := u.email.Send(ctx, user.Email, subject, body); err != nil {
		u.logger.WarnContext(ctx, "send welcome email", "user_id", user.ID, "error", err)
	}
}

// isStrongPassword requires minPasswordLength runes, at most maxPasswordBytes
// bytes, and at least one lower-case letter, upper-case letter, digit and
// symbol. A space counts as a symbol.
func isStrongPassword(p string) bool {
	if utf8.RuneCountInString(p) < minPasswordLength || len(p) > maxPasswordBytes {
		return false
	}

	var lower, upper, digit, symbol bool
	for _, r := range p {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case r == ' ' || unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
