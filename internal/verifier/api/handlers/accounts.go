package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/api/middleware"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/core"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/service"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

// Account handles GET /api/accounts?address=<address>
func (h *Handler) Account(c *gin.Context) {
	logger := middleware.GetLogger(c)

	var req types.AccountRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "Invalid request",
			Code:    "INVALID_REQUEST",
			Details: err.Error(),
		})
		return
	}

	record, address, err := h.service.Account(c.Request.Context(), req.Address)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrInvalidAddressFormat):
		status, body := statusForError(err)
		c.JSON(status, body)
		return
	case errors.Is(err, interfaces.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error: "No attestation for address",
			Code:  "NOT_FOUND",
		})
		return
	case errors.Is(err, service.ErrStoreDisabled):
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
			Error: "Attestation store is not configured",
			Code:  "STORE_DISABLED",
		})
		return
	default:
		logger.Error("Failed to read attestation", "address", req.Address, "error", err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error: "Failed to read attestation",
			Code:  "STORE_ERROR",
		})
		return
	}

	c.JSON(http.StatusOK, types.AccountResponse{
		Address:   address,
		Handle:    record.Handle,
		Timestamp: record.Timestamp,
		PostID:    record.PostID,
	})
}
