package domain

import "time"

// TaskAction represents the type of audit entry on a task.
type TaskAction string

const (
	ActionCreated         TaskAction = "created"
	ActionClaimed         TaskAction = "claimed"
	ActionSubmitted       TaskAction = "submitted"
	ActionApproved        TaskAction = "approved"
	ActionRejected        TaskAction = "rejected"
	ActionAbandoned       TaskAction = "abandoned"
	ActionCancelled       TaskAction = "cancelled"
	ActionDisputed        TaskAction = "disputed"
	ActionDisputeResolved TaskAction = "dispute_resolved"
	ActionDeadlineMissed  TaskAction = "deadline_missed"
	ActionInactivityNote  TaskAction = "inactivity_warning"
	ActionReviewed        TaskAction = "reviewed"
)

// TaskEvent is a human-readable audit log entry for a task transition.
// The history backs dispute evidence and UI timelines.
type TaskEvent struct {
	ID        string
	TaskID    string
	ActorID   *string // nil for system events
	Action    TaskAction
	OldStatus *TaskStatus
	NewStatus *TaskStatus
	Detail    string
	CreatedAt time.Time
}

// IsSystemEvent returns true if the event was created by the system.
func (e *TaskEvent) IsSystemEvent() bool {
	return e.ActorID == nil
}
