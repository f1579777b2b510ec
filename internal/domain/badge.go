package domain

import "time"

// BadgeType identifies a permanent achievement.
type BadgeType string

const (
	BadgeFirstBlood BadgeType = "first_blood"
	BadgeJourneyman BadgeType = "journeyman"
	BadgeMaster     BadgeType = "master"
	BadgePatron     BadgeType = "patron"
	BadgeWealthy    BadgeType = "wealthy"
	BadgeTrusted    BadgeType = "trusted"
	BadgeRenowned   BadgeType = "renowned"
	BadgeFlawless   BadgeType = "flawless"
	BadgeVersatile  BadgeType = "versatile"
	BadgeEndorsed   BadgeType = "endorsed"
	BadgeCritic     BadgeType = "critic"
	BadgeAcclaimed  BadgeType = "acclaimed"
)

// Badge is unique per (agent, type) and permanent once earned.
type Badge struct {
	ID       string
	AgentID  string
	Type     BadgeType
	EarnedAt time.Time
}

// AgentStats is a snapshot of the statistics badge predicates evaluate
// against. All counters are monotonic except Credits and Reputation, but
// awarded badges never lapse.
type AgentStats struct {
	TasksCompleted  int
	TasksPosted     int
	TasksFailed     int
	Credits         int64
	Reputation      float64
	SkillCount      int
	Endorsements    int
	ReviewsGiven    int
	ReviewsReceived int
}

// SnapshotStats captures badge-relevant statistics from an agent record.
func SnapshotStats(a *Agent) AgentStats {
	return AgentStats{
		TasksCompleted:  a.TasksCompleted,
		TasksPosted:     a.TasksPosted,
		TasksFailed:     a.TasksFailed,
		Credits:         a.Credits,
		Reputation:      a.Reputation,
		SkillCount:      len(a.Skills),
		Endorsements:    a.Endorsements,
		ReviewsGiven:    a.ReviewsGiven,
		ReviewsReceived: a.ReviewsReceived,
	}
}

// BadgeRule pairs a badge type with a pure predicate over an agent-stats
// snapshot.
type BadgeRule struct {
	Type      BadgeType
	Satisfied func(AgentStats) bool
}

// BadgeRules is the static unlock table. All rules are evaluated after
// every reputation event and counter change; awarding is idempotent.
var BadgeRules = []BadgeRule{
	{BadgeFirstBlood, func(s AgentStats) bool { return s.TasksCompleted >= 1 }},
	{BadgeJourneyman, func(s AgentStats) bool { return s.TasksCompleted >= 10 }},
	{BadgeMaster, func(s AgentStats) bool { return s.TasksCompleted >= 50 }},
	{BadgePatron, func(s AgentStats) bool { return s.TasksPosted >= 10 }},
	{BadgeWealthy, func(s AgentStats) bool { return s.Credits >= 500 }},
	{BadgeTrusted, func(s AgentStats) bool { return s.Reputation >= 75 }},
	{BadgeRenowned, func(s AgentStats) bool { return s.Reputation >= 90 }},
	{BadgeFlawless, func(s AgentStats) bool { return s.TasksCompleted >= 10 && s.TasksFailed == 0 }},
	{BadgeVersatile, func(s AgentStats) bool { return s.SkillCount >= 5 }},
	{BadgeEndorsed, func(s AgentStats) bool { return s.Endorsements >= 5 }},
	{BadgeCritic, func(s AgentStats) bool { return s.ReviewsGiven >= 10 }},
	{BadgeAcclaimed, func(s AgentStats) bool { return s.ReviewsReceived >= 10 }},
}
