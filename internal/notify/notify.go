// Package notify defines the outbound notification sink. Delivery is
// fire-and-forget with at-most-once semantics; the core never retries.
package notify

import (
	"context"
	"log/slog"
)

// Event is a notification about a marketplace occurrence.
type Event struct {
	Type    string
	AgentID string
	TaskID  string
	Detail  string
}

// Notifier delivers events to interested agents. Implementations must not
// block the caller on delivery failures; errors are logged and dropped.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// SlogNotifier is the default sink: it records the notification in the
// structured log and nothing else.
type SlogNotifier struct{}

// NewSlogNotifier creates the default log-only notifier.
func NewSlogNotifier() SlogNotifier {
	return SlogNotifier{}
}

// Notify implements Notifier.
func (SlogNotifier) Notify(_ context.Context, event Event) {
	slog.Debug("notification",
		"type", event.Type,
		"agent_id", event.AgentID,
		"task_id", event.TaskID,
		"detail", event.Detail,
	)
}
