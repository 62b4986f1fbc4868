package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/metrics"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

// RecoveryMiddleware turns panics into 500 responses and counts them
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				endpoint := c.FullPath()
				if endpoint == "" {
					endpoint = c.Request.URL.Path
				}

				metrics.PanicRecoveriesTotal.WithLabelValues(endpoint).Inc()
				GetLogger(c).Errorf("Panic recovered: %v\nStack trace: %s", err, debug.Stack())

				c.AbortWithStatusJSON(http.StatusInternalServerError, types.ErrorResponse{
					Error: "Internal server error",
					Code:  "INTERNAL_ERROR",
				})
			}
		}()

		c.Next()
	}
}
