package middleware

import "github.com/gin-gonic/gin"

// contextKey is a private type for context keys to prevent collisions.
type contextKey string

const (
	loggerKey = contextKey("logger")
	userIDKey = "userID"
)

// GetUserIDFromContext retrieves the authenticated caller's ID from the Gin
// context. Set by AuthMiddleware from the token's subject claim.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	userID, ok := v.(string)
	return userID, ok && userID != ""
}
