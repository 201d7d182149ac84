package middleware

import (
	"net/http"

	"github.com/SscSPs/balance_dashboard/internal/utils"
	"github.com/gin-gonic/gin"
)

// APIKeyHeader carries the API key.
const APIKeyHeader = "X-API-Key"

// APIKeyAuth authenticates requests carrying an API key that matches the bcrypt hash.
// Requests without the header fall through to the next auth middleware; a wrong key
// is rejected outright.
func APIKeyAuth(apiKeyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		apiKey := c.GetHeader(APIKeyHeader)
		if apiKey == "" || apiKeyHash == "" {
			c.Next()
			return
		}

		if !utils.CheckAPIKey(apiKey, apiKeyHash) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Invalid API key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}

		setAuthenticated(c, APIKeyUserID, AuthMethodAPIKey)
		c.Next()
	}
}
