package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/metrics"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

// TimeoutMiddleware bounds the request context. Handlers pass the context to
// outbound calls; if the deadline passed before anything was written the
// request is answered with 504.
func TimeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = c.Request.URL.Path
		}
		metrics.RequestTimeoutsTotal.WithLabelValues(endpoint).Inc()

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, types.ErrorResponse{
				Error: "Request timeout",
				Code:  "REQUEST_TIMEOUT",
			})
		}
	}
}
