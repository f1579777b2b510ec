package domain

import "time"

// ReputationEventType identifies a scored event in the reputation ledger.
type ReputationEventType string

const (
	RepEventTaskCompleted   ReputationEventType = "TASK_COMPLETED"
	RepEventFirstTask       ReputationEventType = "FIRST_TASK"
	RepEventHighValueTask   ReputationEventType = "HIGH_VALUE_TASK"
	RepEventReviewExcellent ReputationEventType = "REVIEW_EXCELLENT"
	RepEventReviewGood      ReputationEventType = "REVIEW_GOOD"
	RepEventReviewPoor      ReputationEventType = "REVIEW_POOR"
	RepEventEndorsement     ReputationEventType = "ENDORSEMENT"
	RepEventTaskAbandoned   ReputationEventType = "TASK_ABANDONED"
	RepEventTaskRejected    ReputationEventType = "TASK_REJECTED"
	RepEventDisputeWon      ReputationEventType = "DISPUTE_WON"
	RepEventDisputeLost     ReputationEventType = "DISPUTE_LOST"
	RepEventStreak5         ReputationEventType = "STREAK_5"
	RepEventStreak10        ReputationEventType = "STREAK_10"
	RepEventDeadlineMissed  ReputationEventType = "DEADLINE_MISSED"
	RepEventInactiveClaim   ReputationEventType = "INACTIVE_CLAIM"
)

// eventPoints is the fixed point value per event type.
var eventPoints = map[ReputationEventType]float64{
	RepEventTaskCompleted:   3,
	RepEventFirstTask:       5,
	RepEventHighValueTask:   2,
	RepEventReviewExcellent: 2,
	RepEventReviewGood:      1,
	RepEventReviewPoor:      -2,
	RepEventEndorsement:     0.5,
	RepEventTaskAbandoned:   -2,
	RepEventTaskRejected:    -5,
	RepEventDisputeWon:      2,
	RepEventDisputeLost:     -3,
	RepEventStreak5:         3,
	RepEventStreak10:        5,
	RepEventDeadlineMissed:  -3,
	RepEventInactiveClaim:   -1,
}

// Points returns the fixed point value for the event type.
func (t ReputationEventType) Points() (float64, bool) {
	p, ok := eventPoints[t]
	return p, ok
}

const (
	ReputationMin     = 0.0
	ReputationMax     = 100.0
	ReputationInitial = 50.0
)

// ClampScore bounds a reputation score to [ReputationMin, ReputationMax].
func ClampScore(score float64) float64 {
	if score < ReputationMin {
		return ReputationMin
	}
	if score > ReputationMax {
		return ReputationMax
	}
	return score
}

// ReputationEvent is an immutable scored entry in an agent's reputation
// history. The agent's current score is the clamped running sum of all
// deltas plus the initial value.
type ReputationEvent struct {
	ID             string
	AgentID        string
	Type           ReputationEventType
	Delta          float64
	Reason         string
	RelatedTaskID  *string
	RelatedAgentID *string
	CreatedAt      time.Time
}

// Rating is a requester's review of completed work.
type Rating string

const (
	RatingExcellent Rating = "excellent"
	RatingGood      Rating = "good"
	RatingPoor      Rating = "poor"
)

// EventType maps a rating to its reputation event type.
func (r Rating) EventType() (ReputationEventType, bool) {
	switch r {
	case RatingExcellent:
		return RepEventReviewExcellent, true
	case RatingGood:
		return RepEventReviewGood, true
	case RatingPoor:
		return RepEventReviewPoor, true
	default:
		return "", false
	}
}

// Streak lengths that pay a one-time bonus per streak run.
const (
	StreakBonusAt5  = 5
	StreakBonusAt10 = 10
)
