package dto

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/taskmarket/taskmarket/internal/domain"
)

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error code and message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse creates a new error response.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// MapDomainError maps domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code string, message string) {
	message = err.Error()

	switch {
	// Not found
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, "TASK_NOT_FOUND", message
	case errors.Is(err, domain.ErrDisputeNotFound):
		return http.StatusNotFound, "DISPUTE_NOT_FOUND", message

	// Conflicts: lost races and duplicate protocol steps
	case errors.Is(err, domain.ErrTaskClaimConflict):
		return http.StatusConflict, "TASK_ALREADY_CLAIMED", message
	case errors.Is(err, domain.ErrDisputeAlreadyOpen):
		return http.StatusConflict, "DISPUTE_ALREADY_OPEN", message
	case errors.Is(err, domain.ErrDisputeResolved):
		return http.StatusConflict, "DISPUTE_RESOLVED", message
	case errors.Is(err, domain.ErrAlreadyReviewed):
		return http.StatusConflict, "ALREADY_REVIEWED", message
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict, "INVALID_STATE", message

	// Permission errors
	case errors.Is(err, domain.ErrNotTaskWorker),
		errors.Is(err, domain.ErrNotTaskRequester),
		errors.Is(err, domain.ErrNotDisputeParty),
		errors.Is(err, domain.ErrOwnTaskClaim),
		errors.Is(err, domain.ErrArbitratorRequired),
		errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "INSUFFICIENT_ACCESS", message

	// Credits
	case errors.Is(err, domain.ErrInsufficientCredits):
		return http.StatusPaymentRequired, "INSUFFICIENT_CREDITS", message

	// Agent errors
	case errors.Is(err, domain.ErrAgentNotFound):
		return http.StatusNotFound, "AGENT_NOT_FOUND", message
	case errors.Is(err, domain.ErrAgentInactive):
		return http.StatusUnauthorized, "AGENT_INACTIVE", message
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", message

	// Validation errors
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidDecision),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidEvent):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR", message

	// Default: internal server error
	default:
		// CRITICAL: Log unmapped error for debugging
		slog.Error("unmapped domain error returned to client",
			"error", err,
			"error_type", fmt.Sprintf("%T", err),
		)
		return http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
	}
}
