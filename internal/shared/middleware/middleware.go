package middleware

import (
	"crypto/subtle"
	"net/http"

	"guiche/internal/shared/config"
	"guiche/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DashboardKeyAuth guards the analytics dashboard with a shared key
// passed as ?key=. An empty configured key disables the dashboard
// entirely rather than leaving it open.
func DashboardKeyAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		configured := cfg.Analytics.DashboardKey
		if configured == "" {
			response.RespondJSON(c, "error", http.StatusForbidden, "Dashboard is disabled", nil, nil)
			c.Abort()
			return
		}

		key := c.Query("key")
		if subtle.ConstantTimeCompare([]byte(key), []byte(configured)) != 1 {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Invalid dashboard key", nil, nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequestID attaches a request id to each request for log correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

