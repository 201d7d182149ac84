package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

const (
	userIDKey     = contextKey("userID")
	authMethodKey = "authMethod"
)

// Auth methods recorded on the Gin context.
const (
	AuthMethodJWT    = "jwt"
	AuthMethodAPIKey = "api_key"
)

// APIKeyUserID is the caller identity recorded for requests authenticated by API key.
const APIKeyUserID = "api-key"

// setAuthenticated stores the caller in both the Gin and the request context and
// enriches the request logger with it.
func setAuthenticated(c *gin.Context, userID, method string) {
	c.Set(string(userIDKey), userID)
	c.Set(authMethodKey, method)

	ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
	logger := GetLoggerFromCtx(ctx).With("user_id", userID, "auth_method", method)
	c.Request = c.Request.WithContext(WithLogger(ctx, logger))
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok
	}
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
		return userID, true
	}
	return "", false
}

// UserIDOrAnonymous returns the authenticated user ID, or "anonymous" when the
// auth gate is disabled.
func UserIDOrAnonymous(c *gin.Context) string {
	if userID, ok := GetUserIDFromContext(c); ok && userID != "" {
		return userID
	}
	return "anonymous"
}
