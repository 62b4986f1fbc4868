package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/metrics"
)

// MetricsMiddleware records request metrics and logs one line per request
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		method := c.Request.Method

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		duration := time.Since(startTime)
		status := c.Writer.Status()

		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()

		GetLogger(c).Debug("Handled request",
			"method", method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", duration.String())
	}
}
