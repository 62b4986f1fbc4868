package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/trigg3rX/sybil-verifier/pkg/logging"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
	LoggerKey       = "logger"
)

// RequestIDMiddleware reuses the caller's X-Request-ID or generates one, and
// stores a logger tagged with it in the gin context.
func RequestIDMiddleware(baseLogger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		c.Set(RequestIDKey, requestID)
		c.Set(LoggerKey, baseLogger.With(RequestIDKey, requestID))
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetLogger retrieves the request-scoped logger from the gin context
func GetLogger(c *gin.Context) logging.Logger {
	logger, exists := c.Get(LoggerKey)
	if !exists {
		return logging.NewNoOpLogger()
	}
	return logger.(logging.Logger)
}

// GetRequestID retrieves the request id from the gin context
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
