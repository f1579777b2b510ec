package domain

import "time"

// DisputeStatus represents the lifecycle of a dispute.
type DisputeStatus string

const (
	DisputeStatusOpen     DisputeStatus = "open"
	DisputeStatusResolved DisputeStatus = "resolved"
)

// Decision is the closed set of dispute outcomes.
type Decision string

const (
	DecisionFavorWorker    Decision = "favor_worker"
	DecisionFavorRequester Decision = "favor_requester"
	DecisionSplit          Decision = "split"
	DecisionCancel         Decision = "cancel"
)

// IsValid checks if the decision is one of the allowed outcomes.
func (d Decision) IsValid() bool {
	switch d {
	case DecisionFavorWorker, DecisionFavorRequester, DecisionSplit, DecisionCancel:
		return true
	default:
		return false
	}
}

const (
	// ArbitratorMinReputation is the reputation a non-party agent needs
	// to resolve a dispute.
	ArbitratorMinReputation = 80.0

	// ArbitrationFeeCap bounds the arbitration fee in credits.
	ArbitrationFeeCap int64 = 10

	// ArbitrationFeePercent of the reward paid to a non-party resolver.
	ArbitrationFeePercent int64 = 5
)

// ArbitrationFee returns the fee paid to a non-party arbitrator for a
// dispute over a task with the given reward. The fee is a system subsidy:
// it is credited without a matching debit.
func ArbitrationFee(reward int64) int64 {
	fee := reward * ArbitrationFeePercent / 100
	if fee > ArbitrationFeeCap {
		fee = ArbitrationFeeCap
	}
	return fee
}

// SplitReward divides a reward between the requester (refund) and the
// worker (payment). The refund takes the floor so no credit is created
// or destroyed: refund + payment == reward for any reward.
func SplitReward(reward int64) (refund, payment int64) {
	refund = reward / 2
	payment = reward - refund
	return refund, payment
}

// Dispute represents a contested submitted or completed task. At most one
// open dispute may exist per task.
type Dispute struct {
	ID             string
	TaskID         string
	RaisedByID     string
	Reason         string
	Status         DisputeStatus
	Resolution     *Decision
	ResolutionNote *string
	ResolverID     *string
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

// DisputeEvidence is a single append-only evidence entry.
type DisputeEvidence struct {
	ID        string
	DisputeID string
	AgentID   string
	Body      string
	CreatedAt time.Time
}
