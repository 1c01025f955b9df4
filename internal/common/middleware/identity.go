package middleware

import (
	"github.com/gin-gonic/gin"
)

// ContextUserKey is where the practice user id lives in the gin context.
const ContextUserKey = "user_id"

// UserIdentity injects the configured practice user id into every request
// context. The service is single-user; handlers and services read the id
// from the context instead of hard-coding it, so a future multi-user
// extension only has to replace this middleware.
func UserIdentity(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserKey, userID)
		c.Next()
	}
}

// CurrentUser returns the practice user id for this request.
func CurrentUser(c *gin.Context) string {
	if v, exists := c.Get(ContextUserKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
