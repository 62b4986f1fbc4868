package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/api/middleware"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

// Verify handles GET /api/verify?id=<post id>&account=<address>
func (h *Handler) Verify(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req types.VerifyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		logger.Debug("Invalid verify request", "error", err)
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "Invalid request",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		})
		return
	}

	verified, err := h.service.Verify(c.Request.Context(), req.PostID, req.Account)
	if err != nil {
		status, body := statusForError(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, types.VerifyResponse{
		Handle:    verified.Handle,
		Address:   verified.ChecksumAddress(),
		PostID:    verified.PostID,
		Persisted: verified.Persisted,
	})
}
