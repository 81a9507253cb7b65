package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/identity"
	"github.com/ErlanBelekov/task-manager/internal/transport/http/handler"
	"github.com/ErlanBelekov/task-manager/internal/usecase"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeUserUsecase implements the unexported userUsecaser interface via method matching.
type fakeUserUsecase struct {
	register   func(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthResult, error)
	login      func(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	getProfile func(ctx context.Context, userID string) (*domain.User, error)
}

func (f *fakeUserUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthResult, error) {
	return f.register(ctx, input)
}

func (f *fakeUserUsecase) Login(ctx context.Context, email, password string) (*usecase.AuthResult, error) {
	return f.login(ctx, email, password)
}

func (f *fakeUserUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return f.getProfile(ctx, userID)
}

func newUserEngine(uc *fakeUserUsecase, userID string) *gin.Engine {
	h := handler.NewUserHandler(uc, discardLogger())

	r := gin.New()
	r.POST("/api/register", h.Register)
	r.POST("/api/login", h.Login)
	r.GET("/api/user", func(c *gin.Context) {
		if userID != "" {
			c.Request = c.Request.WithContext(identity.WithUserID(c.Request.Context(), userID))
		}
		c.Next()
	}, h.Profile)
	return r
}

func postJSON(r http.Handler, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return body.Message
}

var testUser = &domain.User{
	ID:        "user-1",
	Name:      "Test User",
	Email:     "test@example.com",
	CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
}

func TestRegister_Success(t *testing.T) {
	uc := &fakeUserUsecase{
		register: func(_ context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
			if in.Name != "Test User" || in.Email != "test@example.com" || in.Password != "Passw0rd!" {
				return nil, fmt.Errorf("unexpected input %+v", in)
			}
			return &usecase.AuthResult{User: testUser, Token: "tok"}, nil
		},
	}

	w := postJSON(newUserEngine(uc, ""), "/api/register",
		`{"name":"Test User","email":"test@example.com","password":"Passw0rd!"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["token"] != "tok" {
		t.Errorf("token = %v", resp["token"])
	}
	user, _ := resp["user"].(map[string]any)
	if user["email"] != "test@example.com" {
		t.Errorf("user = %v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("password hash serialised")
	}
}

func TestRegister_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"missing fields", domain.ErrMissingFields, http.StatusBadRequest, "Please enter all fields"},
		{"invalid email", domain.ErrInvalidEmail, http.StatusBadRequest, "Please enter a valid email"},
		{"weak password", domain.ErrWeakPassword, http.StatusBadRequest, "Please enter a strong password"},
		{"duplicate", fmt.Errorf("create user: %w", domain.ErrUserExists), http.StatusBadRequest, "User already exists"},
		{"internal", errors.New("db down"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUserUsecase{
				register: func(context.Context, usecase.RegisterInput) (*usecase.AuthResult, error) {
					return nil, tt.err
				},
			}
			w := postJSON(newUserEngine(uc, ""), "/api/register", `{"name":"a","email":"b","password":"c"}`)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if got := message(t, w); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestRegister_InvalidJSON_Returns400(t *testing.T) {
	w := postJSON(newUserEngine(&fakeUserUsecase{}, ""), "/api/register", `{bad json}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestLogin_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"missing fields", domain.ErrMissingFields, http.StatusBadRequest, "Please enter all fields"},
		{"unknown user", fmt.Errorf("find user: %w", domain.ErrUserNotFound), http.StatusBadRequest, "User does not exist"},
		{"bad password", domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUserUsecase{
				login: func(context.Context, string, string) (*usecase.AuthResult, error) {
					return nil, tt.err
				},
			}
			w := postJSON(newUserEngine(uc, ""), "/api/login", `{"email":"a@b.c","password":"x"}`)
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
			if got := message(t, w); got != tt.wantMsg {
				t.Errorf("message = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestProfile(t *testing.T) {
	uc := &fakeUserUsecase{
		getProfile: func(_ context.Context, userID string) (*domain.User, error) {
			switch userID {
			case "":
				return nil, domain.ErrUnauthorized
			case testUser.ID:
				return testUser, nil
			default:
				return nil, fmt.Errorf("get user: %w", domain.ErrUserNotFound)
			}
		},
	}

	tests := []struct {
		name     string
		userID   string
		wantCode int
	}{
		{"authenticated", testUser.ID, http.StatusOK},
		{"no identity", "", http.StatusUnauthorized},
		{"deleted user", "ghost", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newUserEngine(uc, tt.userID).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/user", nil))
			if w.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", w.Code, tt.wantCode)
			}
		})
	}
}

func TestRegisterAndLogin_EmptyBodyReachesUsecase(t *testing.T) {
	uc := &fakeUserUsecase{
		register: func(_ context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error) {
			if in != (usecase.RegisterInput{}) {
				return nil, fmt.Errorf("unexpected input %+v", in)
			}
			return nil, domain.ErrMissingFields
		},
		login: func(_ context.Context, email, password string) (*usecase.AuthResult, error) {
			if email != "" || password != "" {
				return nil, fmt.Errorf("unexpected credentials")
			}
			return nil, domain.ErrMissingFields
		},
	}

	for _, path := range []string{"/api/register", "/api/login"} {
		w := postJSON(newUserEngine(uc, ""), path, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d, want 400", path, w.Code)
		}
		if got := message(t, w); got != "Please enter all fields" {
			t.Errorf("%s message = %q", path, got)
		}
	}
}
