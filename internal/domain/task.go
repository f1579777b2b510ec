package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// TaskStatus represents the status of a task in the state machine.
type TaskStatus string

const (
	TaskStatusOpen      TaskStatus = "OPEN"
	TaskStatusClaimed   TaskStatus = "CLAIMED"
	TaskStatusSubmitted TaskStatus = "SUBMITTED"
	TaskStatusCompleted TaskStatus = "COMPLETED"
	TaskStatusCancelled TaskStatus = "CANCELLED"
	TaskStatusDisputed  TaskStatus = "DISPUTED"
)

// IsTerminal returns true if the status is terminal (no transitions allowed).
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusCancelled
}

// IsDisputable returns true if a dispute may be raised against a task
// in this status.
func (s TaskStatus) IsDisputable() bool {
	return s == TaskStatusSubmitted || s == TaskStatusCompleted
}

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusOpen, TaskStatusClaimed, TaskStatusSubmitted,
		TaskStatusCompleted, TaskStatusCancelled, TaskStatusDisputed:
		return true
	default:
		return false
	}
}

const (
	// MinReward is the smallest reward a task may carry.
	MinReward int64 = 1

	// HighValueRewardThreshold is the reward at which the worker earns
	// the high-value completion bonus.
	HighValueRewardThreshold int64 = 50

	// MaxProofLength caps the stored proof-of-completion text.
	MaxProofLength = 10000

	// MaxTitleLength caps task titles.
	MaxTitleLength = 200
)

// Task represents a paid unit of work posted by a requester.
// The reward is escrowed from the requester at creation and held by the
// system until completion, refund, or split. EscrowHeld tracks whether
// the escrowed reward is still undistributed.
type Task struct {
	ID          string
	Title       string
	Description string
	RequesterID string
	WorkerID    *string
	Reward      int64
	Skills      []string
	Status      TaskStatus
	Proof       *string
	EscrowHeld  bool
	DeadlineAt  *time.Time
	ClaimedAt   *time.Time
	SubmittedAt *time.Time
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsWorkedBy checks if the task is currently assigned to the given agent.
func (t *Task) IsWorkedBy(agentID string) bool {
	return t.WorkerID != nil && *t.WorkerID == agentID
}

// IsRequestedBy checks if the task was posted by the given agent.
func (t *Task) IsRequestedBy(agentID string) bool {
	return t.RequesterID == agentID
}

// IsParty checks if the agent is either side of the task.
func (t *Task) IsParty(agentID string) bool {
	return t.IsRequestedBy(agentID) || t.IsWorkedBy(agentID)
}

// NormalizeProof trims and length-caps proof-of-completion text. The cap
// lands on a rune boundary so a capped proof stays valid UTF-8.
func NormalizeProof(proof string) string {
	proof = strings.TrimSpace(proof)
	if len(proof) > MaxProofLength {
		cut := MaxProofLength
		for cut > 0 && !utf8.RuneStart(proof[cut]) {
			cut--
		}
		proof = proof[:cut]
	}
	return proof
}
