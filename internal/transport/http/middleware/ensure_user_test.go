package middleware_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/ErlanBelekov/task-manager/internal/infrastructure/memory"
	"github.com/ErlanBelekov/task-manager/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

func TestEnsureUser(t *testing.T) {
	store := memory.NewStore()
	if _, err := store.Users().Create(context.Background(), &domain.User{ID: "u1", Email: "u1@example.com"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		userID string
		want   int
	}{
		{"u1", http.StatusOK},
		{"ghost", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.userID, func(t *testing.T) {
			r := gin.New()
			r.GET("/x", func(c *gin.Context) {
				c.Set("userID", tt.userID)
				c.Next()
			}, middleware.EnsureUser(store.Users(), logger), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
