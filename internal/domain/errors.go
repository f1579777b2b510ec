package domain

import "errors"

// Domain-specific errors for business logic validation. Every rejected
// operation leaves state unchanged.
var (
	// Not found
	ErrTaskNotFound    = errors.New("task not found")
	ErrAgentNotFound   = errors.New("agent not found")
	ErrDisputeNotFound = errors.New("dispute not found")

	// Forbidden: actor lacks the role for the action
	ErrForbidden          = errors.New("permission denied")
	ErrNotTaskWorker      = errors.New("not the assigned worker")
	ErrNotTaskRequester   = errors.New("not the task requester")
	ErrNotDisputeParty    = errors.New("not a party to the dispute")
	ErrOwnTaskClaim       = errors.New("cannot claim own task")
	ErrArbitratorRequired = errors.New("insufficient reputation to arbitrate")

	// Invalid state: operation illegal for the current status
	ErrInvalidState       = errors.New("operation invalid for current status")
	ErrDisputeAlreadyOpen = errors.New("task already has an open dispute")
	ErrDisputeResolved    = errors.New("dispute already resolved")
	ErrAlreadyReviewed    = errors.New("task already reviewed")

	// Invalid input
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidDecision = errors.New("invalid dispute decision")
	ErrInvalidRating   = errors.New("invalid review rating")
	ErrInvalidEvent    = errors.New("unknown reputation event type")

	// Credits
	ErrInsufficientCredits = errors.New("insufficient credits")

	// Conflict: lost a race on a conditional transition
	ErrTaskClaimConflict = errors.New("task state changed concurrently")

	// Agent errors
	ErrAgentInactive = errors.New("agent is inactive")
	ErrInvalidToken  = errors.New("invalid authentication token")
)
