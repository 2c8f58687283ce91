package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wallet/internal/service"
)

// SessionContextKey is where the resolved session lives in the gin context.
const SessionContextKey = "session"

// SessionMiddleware resolves the Authorization bearer token to a session and
// rejects requests without one. Handlers read the session from the context
// instead of any ambient logged-in-user state.
func SessionMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		session, err := auth.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(SessionContextKey, *session)
		c.Next()
	}
}
