package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the acting user's global ID in the Gin context.
const userIDKey = contextKey("userID")

// UserIdentityMiddleware copies the authenticated user's global ID from the
// X-User-Global-ID header into the Gin context. Authentication itself happens
// upstream at the gateway; the ledger only records who acted.
func UserIdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := c.GetHeader("X-User-Global-ID"); userID != "" {
			c.Set(string(userIDKey), userID)
		}
		c.Next()
	}
}

// GetUserIDFromContext retrieves the acting user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		return "", false
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}
