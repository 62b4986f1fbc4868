package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthCheckResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Service:   ServiceName,
		Version:   Version,
	})
}
