package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskmarket/taskmarket/internal/domain"
)

func TestEventPoints(t *testing.T) {
	tests := []struct {
		eventType domain.ReputationEventType
		want      float64
	}{
		{domain.RepEventTaskCompleted, 3},
		{domain.RepEventFirstTask, 5},
		{domain.RepEventHighValueTask, 2},
		{domain.RepEventReviewExcellent, 2},
		{domain.RepEventReviewGood, 1},
		{domain.RepEventReviewPoor, -2},
		{domain.RepEventEndorsement, 0.5},
		{domain.RepEventTaskAbandoned, -2},
		{domain.RepEventTaskRejected, -5},
		{domain.RepEventDisputeWon, 2},
		{domain.RepEventDisputeLost, -3},
		{domain.RepEventStreak5, 3},
		{domain.RepEventStreak10, 5},
		{domain.RepEventDeadlineMissed, -3},
		{domain.RepEventInactiveClaim, -1},
	}

	for _, tt := range tests {
		points, ok := tt.eventType.Points()
		assert.True(t, ok, "event type %s should be known", tt.eventType)
		assert.Equal(t, tt.want, points, "points for %s", tt.eventType)
	}
}

func TestEventPoints_UnknownType(t *testing.T) {
	_, ok := domain.ReputationEventType("BOGUS").Points()
	assert.False(t, ok)
}

func TestClampScore(t *testing.T) {
	assert.Equal(t, 0.0, domain.ClampScore(-12))
	assert.Equal(t, 100.0, domain.ClampScore(104.5))
	assert.Equal(t, 42.5, domain.ClampScore(42.5))
	assert.Equal(t, 0.0, domain.ClampScore(0))
	assert.Equal(t, 100.0, domain.ClampScore(100))
}

func TestRatingEventType(t *testing.T) {
	et, ok := domain.RatingExcellent.EventType()
	assert.True(t, ok)
	assert.Equal(t, domain.RepEventReviewExcellent, et)

	et, ok = domain.RatingGood.EventType()
	assert.True(t, ok)
	assert.Equal(t, domain.RepEventReviewGood, et)

	et, ok = domain.RatingPoor.EventType()
	assert.True(t, ok)
	assert.Equal(t, domain.RepEventReviewPoor, et)

	_, ok = domain.Rating("meh").EventType()
	assert.False(t, ok)
}

func TestCompletionRate(t *testing.T) {
	// No finished tasks defaults to 0.5.
	fresh := &domain.Agent{}
	assert.Equal(t, 0.5, fresh.CompletionRate())

	agent := &domain.Agent{TasksCompleted: 3, TasksFailed: 1}
	assert.Equal(t, 0.75, agent.CompletionRate())

	allFailed := &domain.Agent{TasksFailed: 4}
	assert.Equal(t, 0.0, allFailed.CompletionRate())
}

func TestTrustScore(t *testing.T) {
	// 0.6*60 + 0.4*(0.75*100) = 36 + 30 = 66
	agent := &domain.Agent{Reputation: 60, TasksCompleted: 3, TasksFailed: 1}
	assert.InDelta(t, 66.0, agent.TrustScore(), 1e-9)

	// New agent: 0.6*50 + 0.4*50 = 50
	fresh := &domain.Agent{Reputation: domain.ReputationInitial}
	assert.InDelta(t, 50.0, fresh.TrustScore(), 1e-9)
}
