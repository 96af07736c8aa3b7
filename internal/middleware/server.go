package middleware

import (
	"time"

	"constru_backend/internal/logger"
	"constru_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const requestIDHeader = "X-Request-ID"

// RequestIDMiddleware assigns (or propagates) a request ID and stores it
// in the request context for the logger.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Header(requestIDHeader, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}

// LoggingMiddleware records one line per request.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.HTTPLog(c.Request.Method, c.Request.URL.Path, c.Writer.Status(),
			time.Since(start), c.Writer.Size())
	}
}

// DBMiddleware attaches the shared *gorm.DB handle to every request so
// handlers pull it with GetDB instead of touching a global.
func DBMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), db.WithContext(c.Request.Context()))
		c.Next()
	}
}
