package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskmarket/taskmarket/internal/domain"
)

func badgeSatisfied(t *testing.T, badge domain.BadgeType, stats domain.AgentStats) bool {
	t.Helper()
	for _, rule := range domain.BadgeRules {
		if rule.Type == badge {
			return rule.Satisfied(stats)
		}
	}
	t.Fatalf("no rule for badge %s", badge)
	return false
}

func TestBadgeRules(t *testing.T) {
	assert.True(t, badgeSatisfied(t, domain.BadgeFirstBlood, domain.AgentStats{TasksCompleted: 1}))
	assert.False(t, badgeSatisfied(t, domain.BadgeFirstBlood, domain.AgentStats{}))

	assert.True(t, badgeSatisfied(t, domain.BadgeJourneyman, domain.AgentStats{TasksCompleted: 10}))
	assert.False(t, badgeSatisfied(t, domain.BadgeJourneyman, domain.AgentStats{TasksCompleted: 9}))

	assert.True(t, badgeSatisfied(t, domain.BadgeMaster, domain.AgentStats{TasksCompleted: 50}))
	assert.True(t, badgeSatisfied(t, domain.BadgePatron, domain.AgentStats{TasksPosted: 10}))
	assert.True(t, badgeSatisfied(t, domain.BadgeWealthy, domain.AgentStats{Credits: 500}))
	assert.False(t, badgeSatisfied(t, domain.BadgeWealthy, domain.AgentStats{Credits: 499}))

	assert.True(t, badgeSatisfied(t, domain.BadgeTrusted, domain.AgentStats{Reputation: 75}))
	assert.True(t, badgeSatisfied(t, domain.BadgeRenowned, domain.AgentStats{Reputation: 90}))
	assert.False(t, badgeSatisfied(t, domain.BadgeRenowned, domain.AgentStats{Reputation: 89.9}))

	// Flawless needs ten completions and a clean failure record.
	assert.True(t, badgeSatisfied(t, domain.BadgeFlawless, domain.AgentStats{TasksCompleted: 10}))
	assert.False(t, badgeSatisfied(t, domain.BadgeFlawless, domain.AgentStats{TasksCompleted: 10, TasksFailed: 1}))

	assert.True(t, badgeSatisfied(t, domain.BadgeVersatile, domain.AgentStats{SkillCount: 5}))
	assert.True(t, badgeSatisfied(t, domain.BadgeEndorsed, domain.AgentStats{Endorsements: 5}))
	assert.True(t, badgeSatisfied(t, domain.BadgeCritic, domain.AgentStats{ReviewsGiven: 10}))
	assert.True(t, badgeSatisfied(t, domain.BadgeAcclaimed, domain.AgentStats{ReviewsReceived: 10}))
}

func TestSnapshotStats(t *testing.T) {
	agent := &domain.Agent{
		TasksCompleted:  3,
		TasksPosted:     2,
		TasksFailed:     1,
		Credits:         120,
		Reputation:      64,
		Skills:          []string{"golang", "sql"},
		Endorsements:    4,
		ReviewsGiven:    6,
		ReviewsReceived: 7,
	}

	stats := domain.SnapshotStats(agent)
	assert.Equal(t, 3, stats.TasksCompleted)
	assert.Equal(t, 2, stats.TasksPosted)
	assert.Equal(t, 1, stats.TasksFailed)
	assert.Equal(t, int64(120), stats.Credits)
	assert.Equal(t, 64.0, stats.Reputation)
	assert.Equal(t, 2, stats.SkillCount)
	assert.Equal(t, 4, stats.Endorsements)
	assert.Equal(t, 6, stats.ReviewsGiven)
	assert.Equal(t, 7, stats.ReviewsReceived)
}
