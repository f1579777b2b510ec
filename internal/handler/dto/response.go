package dto

import (
	"time"

	"github.com/taskmarket/taskmarket/internal/domain"
)

// TaskListItem represents a task in the list view (without proof and events).
type TaskListItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Reward      int64      `json:"reward"`
	Skills      []string   `json:"skills"`
	RequesterID string     `json:"requester_id"`
	WorkerID    *string    `json:"worker_id"`
	DeadlineAt  *time.Time `json:"deadline_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks  []TaskListItem `json:"tasks"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// TaskDetail represents the full task object.
type TaskDetail struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Reward      int64      `json:"reward"`
	Skills      []string   `json:"skills"`
	RequesterID string     `json:"requester_id"`
	WorkerID    *string    `json:"worker_id"`
	Proof       *string    `json:"proof"`
	EscrowHeld  bool       `json:"escrow_held"`
	DeadlineAt  *time.Time `json:"deadline_at"`
	ClaimedAt   *time.Time `json:"claimed_at"`
	SubmittedAt *time.Time `json:"submitted_at"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TaskDetailResponse represents full task details with the audit history.
type TaskDetailResponse struct {
	Task   TaskDetail      `json:"task"`
	Events []TaskEventInfo `json:"events"`
}

// TaskEventInfo represents an audit log entry.
type TaskEventInfo struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	ActorID   *string   `json:"actor_id"`
	OldStatus *string   `json:"old_status"`
	NewStatus *string   `json:"new_status"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// DisputeResponse represents a dispute.
type DisputeResponse struct {
	ID             string     `json:"id"`
	TaskID         string     `json:"task_id"`
	RaisedByID     string     `json:"raised_by_id"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	Resolution     *string    `json:"resolution"`
	ResolutionNote *string    `json:"resolution_note"`
	ResolverID     *string    `json:"resolver_id"`
	CreatedAt      time.Time  `json:"created_at"`
	ResolvedAt     *time.Time `json:"resolved_at"`
}

// DisputeDetailResponse represents a dispute with its evidence log.
type DisputeDetailResponse struct {
	Dispute  DisputeResponse `json:"dispute"`
	Evidence []EvidenceInfo  `json:"evidence"`
}

// EvidenceInfo represents one evidence entry.
type EvidenceInfo struct {
	ID        string    `json:"id"`
	AgentID   string    `json:"agent_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// AgentProfileResponse represents an agent's public profile.
type AgentProfileResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Credits         int64    `json:"credits"`
	Reputation      float64  `json:"reputation"`
	TrustScore      float64  `json:"trust_score"`
	CompletionRate  float64  `json:"completion_rate"`
	Rank            int      `json:"rank"`
	TasksCompleted  int      `json:"tasks_completed"`
	TasksPosted     int      `json:"tasks_posted"`
	TasksFailed     int      `json:"tasks_failed"`
	CurrentStreak   int      `json:"current_streak"`
	Endorsements    int      `json:"endorsements"`
	Skills          []string `json:"skills"`
	Badges          []string `json:"badges"`
	ReviewsGiven    int      `json:"reviews_given"`
	ReviewsReceived int      `json:"reviews_received"`
}

// TransactionInfo represents a ledger entry.
type TransactionInfo struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Amount         int64     `json:"amount"`
	BalanceAfter   int64     `json:"balance_after"`
	Description    string    `json:"description"`
	RelatedTaskID  *string   `json:"related_task_id"`
	RelatedAgentID *string   `json:"related_agent_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransactionsResponse represents the response for GET /agents/me/transactions.
type TransactionsResponse struct {
	Transactions []TransactionInfo `json:"transactions"`
	Limit        int               `json:"limit"`
	Offset       int               `json:"offset"`
}

// ReputationEventInfo represents one reputation ledger entry.
type ReputationEventInfo struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Delta          float64   `json:"delta"`
	Reason         string    `json:"reason"`
	RelatedTaskID  *string   `json:"related_task_id"`
	RelatedAgentID *string   `json:"related_agent_id"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReputationHistoryResponse represents the response for GET /agents/:id/reputation.
type ReputationHistoryResponse struct {
	AgentID    string                `json:"agent_id"`
	Reputation float64               `json:"reputation"`
	Events     []ReputationEventInfo `json:"events"`
	Limit      int                   `json:"limit"`
	Offset     int                   `json:"offset"`
}

// ToTaskListItem converts domain.Task to TaskListItem.
func ToTaskListItem(task *domain.Task) TaskListItem {
	return TaskListItem{
		ID:          task.ID,
		Title:       task.Title,
		Status:      string(task.Status),
		Reward:      task.Reward,
		Skills:      task.Skills,
		RequesterID: task.RequesterID,
		WorkerID:    task.WorkerID,
		DeadlineAt:  task.DeadlineAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskDetail converts domain.Task to TaskDetail.
func ToTaskDetail(task *domain.Task) TaskDetail {
	return TaskDetail{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Reward:      task.Reward,
		Skills:      task.Skills,
		RequesterID: task.RequesterID,
		WorkerID:    task.WorkerID,
		Proof:       task.Proof,
		EscrowHeld:  task.EscrowHeld,
		DeadlineAt:  task.DeadlineAt,
		ClaimedAt:   task.ClaimedAt,
		SubmittedAt: task.SubmittedAt,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// ToTaskEventInfo converts domain.TaskEvent to TaskEventInfo.
func ToTaskEventInfo(event *domain.TaskEvent) TaskEventInfo {
	var oldStatus, newStatus *string
	if event.OldStatus != nil {
		s := string(*event.OldStatus)
		oldStatus = &s
	}
	if event.NewStatus != nil {
		s := string(*event.NewStatus)
		newStatus = &s
	}

	return TaskEventInfo{
		ID:        event.ID,
		Action:    string(event.Action),
		ActorID:   event.ActorID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Detail:    event.Detail,
		CreatedAt: event.CreatedAt,
	}
}

// ToDisputeResponse converts domain.Dispute to DisputeResponse.
func ToDisputeResponse(d *domain.Dispute) DisputeResponse {
	var resolution *string
	if d.Resolution != nil {
		s := string(*d.Resolution)
		resolution = &s
	}

	return DisputeResponse{
		ID:             d.ID,
		TaskID:         d.TaskID,
		RaisedByID:     d.RaisedByID,
		Reason:         d.Reason,
		Status:         string(d.Status),
		Resolution:     resolution,
		ResolutionNote: d.ResolutionNote,
		ResolverID:     d.ResolverID,
		CreatedAt:      d.CreatedAt,
		ResolvedAt:     d.ResolvedAt,
	}
}

// ToEvidenceInfo converts domain.DisputeEvidence to EvidenceInfo.
func ToEvidenceInfo(e *domain.DisputeEvidence) EvidenceInfo {
	return EvidenceInfo{
		ID:        e.ID,
		AgentID:   e.AgentID,
		Body:      e.Body,
		CreatedAt: e.CreatedAt,
	}
}

// ToAgentProfile converts an agent plus derived fields to a profile response.
func ToAgentProfile(a *domain.Agent, rank int, badges []*domain.Badge) AgentProfileResponse {
	badgeNames := make([]string, len(badges))
	for i, b := range badges {
		badgeNames[i] = string(b.Type)
	}

	return AgentProfileResponse{
		ID:              a.ID,
		Name:            a.Name,
		Credits:         a.Credits,
		Reputation:      a.Reputation,
		TrustScore:      a.TrustScore(),
		CompletionRate:  a.CompletionRate(),
		Rank:            rank,
		TasksCompleted:  a.TasksCompleted,
		TasksPosted:     a.TasksPosted,
		TasksFailed:     a.TasksFailed,
		CurrentStreak:   a.CurrentStreak,
		Endorsements:    a.Endorsements,
		Skills:          a.Skills,
		Badges:          badgeNames,
		ReviewsGiven:    a.ReviewsGiven,
		ReviewsReceived: a.ReviewsReceived,
	}
}

// ToTransactionInfo converts domain.Transaction to TransactionInfo.
func ToTransactionInfo(t *domain.Transaction) TransactionInfo {
	return TransactionInfo{
		ID:             t.ID,
		Type:           string(t.Type),
		Amount:         t.Amount,
		BalanceAfter:   t.BalanceAfter,
		Description:    t.Description,
		RelatedTaskID:  t.RelatedTaskID,
		RelatedAgentID: t.RelatedAgentID,
		CreatedAt:      t.CreatedAt,
	}
}

// ToReputationEventInfo converts domain.ReputationEvent to ReputationEventInfo.
func ToReputationEventInfo(e *domain.ReputationEvent) ReputationEventInfo {
	return ReputationEventInfo{
		ID:             e.ID,
		Type:           string(e.Type),
		Delta:          e.Delta,
		Reason:         e.Reason,
		RelatedTaskID:  e.RelatedTaskID,
		RelatedAgentID: e.RelatedAgentID,
		CreatedAt:      e.CreatedAt,
	}
}
