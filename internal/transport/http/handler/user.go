package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/identity"
	"github.com/ErlanBelekov/task-manager/internal/usecase"
	"github.com/gin-gonic/gin"
)

// userUsecaser is the subset of UserUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type userUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
}

type UserHandler struct {
	userUsecase userUsecaser
	logger      *slog.Logger
}

func NewUserHandler(userUsecase userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		logger:      logger.With("component", "user_handler"),
	}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type authResponse struct {
	User      userResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// POST /api/register
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidBody})
		return
	}

	res, err := h.userUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if msg, ok := validationMessage(err); ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": msg})
			return
		}
		if errors.Is(err, domain.ErrUserExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": errUserExists})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, authResponse{
		User:      toUserResponse(res.User),
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

// POST /api/login
// Unknown email and wrong password are reported separately.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidBody})
		return
	}

	res, err := h.userUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"message": errMissingFields})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": errUserNotFound})
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidCredentials})
		default:
			h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, authResponse{
		User:      toUserResponse(res.User),
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	})
}

// GET /api/user
func (h *UserHandler) Profile(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := h.userUsecase.GetProfile(ctx, identity.FromContext(ctx))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
		default:
			h.logger.ErrorContext(ctx, "get profile", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": toUserResponse(user)})
}

// bindOptionalJSON treats a missing body as an empty object, so the usecase
// reports the missing fields instead of a malformed request.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
