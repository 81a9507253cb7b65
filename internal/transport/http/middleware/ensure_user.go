package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/task-manager/internal/domain"
	"github.com/gin-gonic/gin"
)

type userFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// EnsureUser runs after Auth. It rejects tokens whose subject no longer
// resolves to a stored user, so task rows never reference a missing owner.
func EnsureUser(users userFinder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("userID")
		if _, err := users.FindByID(c.Request.Context(), userID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
				return
			}
			logger.ErrorContext(c.Request.Context(), "ensure user lookup", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"message": "Internal server error"})
			return
		}
		c.Next()
	}
}
