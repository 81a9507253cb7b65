package middleware

import (
	"net/http"
	"strings"

	"github.com/ErlanBelekov/task-manager/internal/identity"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// TokenVerifier resolves a raw bearer token to a user ID.
type TokenVerifier interface {
	VerifyToken(raw string) (string, error)
}

// Auth validates a Bearer token, attaches the user ID to the request context
// and sets "userID" in the gin context. Anything else is rejected with 401
// before the handler runs.
func Auth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
			return
		}

		rawToken := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if rawToken == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
			return
		}

		userID, err := verifier.VerifyToken(rawToken)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
			return
		}

		ctx := identity.WithUserID(c.Request.Context(), userID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("userID", userID)
		c.Next()
	}
}
