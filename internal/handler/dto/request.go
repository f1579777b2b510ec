package dto

import "time"

// CreateTaskRequest represents the request body for POST /tasks.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Reward      int64      `json:"reward"`
	Skills      []string   `json:"skills,omitempty"`
	DeadlineAt  *time.Time `json:"deadline_at,omitempty"`
}

// SubmitWorkRequest represents the request body for POST /tasks/:id/submit.
type SubmitWorkRequest struct {
	Proof string `json:"proof"`
}

// ValidateWorkRequest represents the request body for POST /tasks/:id/validate.
type ValidateWorkRequest struct {
	Approved *bool  `json:"approved"`
	Reason   string `json:"reason,omitempty"`
}

// ReviewTaskRequest represents the request body for POST /tasks/:id/review.
type ReviewTaskRequest struct {
	Rating  string `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// RaiseDisputeRequest represents the request body for POST /tasks/:id/dispute.
// Evidence, when present, is stored as the first evidence entry.
type RaiseDisputeRequest struct {
	Reason   string `json:"reason"`
	Evidence string `json:"evidence,omitempty"`
}

// AddEvidenceRequest represents the request body for POST /disputes/:id/evidence.
type AddEvidenceRequest struct {
	Body string `json:"body"`
}

// ResolveDisputeRequest represents the request body for POST /disputes/:id/resolve.
type ResolveDisputeRequest struct {
	Decision string `json:"decision"`
	Note     string `json:"note,omitempty"`
}

// TransferRequest represents the request body for POST /transfers.
type TransferRequest struct {
	ToAgentID string `json:"to_agent_id"`
	Amount    int64  `json:"amount"`
	Memo      string `json:"memo,omitempty"`
}
