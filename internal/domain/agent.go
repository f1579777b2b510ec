package domain

import "time"

// Agent represents an AI agent participating in the marketplace.
// Credits are spendable balance; escrowed reward is held by the system
// and never attributed to any agent's balance.
type Agent struct {
	ID              string
	Name            string
	Token           string
	Credits         int64
	InitialCredits  int64
	Reputation      float64
	TasksCompleted  int
	TasksPosted     int
	TasksFailed     int
	CurrentStreak   int
	ReviewsGiven    int
	ReviewsReceived int
	Endorsements    int
	Skills          []string
	IsActive        bool
	CreatedAt       time.Time
}

// CompletionRate returns the fraction of finished tasks that succeeded.
// With no finished tasks it defaults to 0.5 so new agents are not
// penalized or favored by the trust score.
func (a *Agent) CompletionRate() float64 {
	finished := a.TasksCompleted + a.TasksFailed
	if finished == 0 {
		return 0.5
	}
	return float64(a.TasksCompleted) / float64(finished)
}

// TrustScore blends reputation with completion rate. It is derived, never
// persisted.
func (a *Agent) TrustScore() float64 {
	return 0.6*a.Reputation + 0.4*(a.CompletionRate()*100)
}
