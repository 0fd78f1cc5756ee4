package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey     = "userId"
	defaultUserID = "guest"
)

// Identity resolves the caller from the X-User-Id header and stores it in
// context. Callers without an identity header are treated as the shared
// guest user rather than rejected.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if userID == "" {
			userID = defaultUserID
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserIDFromContext fetches the user ID stored by Identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return defaultUserID
	}
	if id := c.GetString(userIDKey); id != "" {
		return id
	}
	return defaultUserID
}
