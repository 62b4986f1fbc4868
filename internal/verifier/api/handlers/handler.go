package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/trigg3rX/sybil-verifier/internal/verifier/core"
	"github.com/trigg3rX/sybil-verifier/internal/verifier/interfaces"
	"github.com/trigg3rX/sybil-verifier/pkg/types"
)

const (
	ServiceName = "sybil-verifier"
	Version     = "0.1.0"
)

// VerificationService is the part of the service the HTTP layer calls
type VerificationService interface {
	Verify(ctx context.Context, postID, claimedAddress string) (*core.Verified, error)
	Account(ctx context.Context, address string) (types.AttestationRecord, string, error)
}

type Handler struct {
	service VerificationService
}

func NewHandler(service VerificationService) *Handler {
	return &Handler{service: service}
}

func reasonCode(reason core.Reason) string {
	return strings.ToUpper(strings.ReplaceAll(string(reason), "-", "_"))
}

// statusForError maps a verification error to an HTTP status and body.
func statusForError(err error) (int, types.ErrorResponse) {
	if rejection, ok := core.AsRejection(err); ok {
		body := types.ErrorResponse{
			Error:   string(rejection.Reason),
			Code:    reasonCode(rejection.Reason),
			Stage:   string(rejection.Stage),
			Details: rejection.Error(),
		}
		switch {
		case rejection.Reason != core.ReasonPersistence:
			return http.StatusBadRequest, body
		case errors.Is(err, interfaces.ErrVersionConflict):
			return http.StatusConflict, body
		default:
			return http.StatusInternalServerError, body
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, types.ErrorResponse{
			Error: "Request timeout",
			Code:  "REQUEST_TIMEOUT",
		}
	}
	return http.StatusBadGateway, types.ErrorResponse{
		Error:   "Source lookup failed",
		Code:    "UPSTREAM_ERROR",
		Details: err.Error(),
	}
}
