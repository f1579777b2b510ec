package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskmarket/taskmarket/internal/domain"
	"github.com/taskmarket/taskmarket/internal/notify"
	"github.com/taskmarket/taskmarket/internal/repository"
)

// TaskService owns the task lifecycle state machine. Every operation
// runs as one database transaction: row lock, validation, conditional
// status update, credit movement, reputation events, audit entry. Either
// all of it commits or none of it does.
type TaskService struct {
	pool       *pgxpool.Pool
	taskRepo   *repository.TaskRepository
	eventRepo  *repository.TaskEventRepository
	agentRepo  *repository.AgentRepository
	escrow     *EscrowService
	reputation *ReputationService
	validator  *Validator
	notifier   notify.Notifier
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	pool *pgxpool.Pool,
	taskRepo *repository.TaskRepository,
	eventRepo *repository.TaskEventRepository,
	agentRepo *repository.AgentRepository,
	escrow *EscrowService,
	reputation *ReputationService,
	notifier notify.Notifier,
) *TaskService {
	return &TaskService{
		pool:       pool,
		taskRepo:   taskRepo,
		eventRepo:  eventRepo,
		agentRepo:  agentRepo,
		escrow:     escrow,
		reputation: reputation,
		validator:  NewValidator(),
		notifier:   notifier,
	}
}

// getActiveAgent fetches an agent by ID and verifies it is active.
func (s *TaskService) getActiveAgent(ctx context.Context, agentID string) (*domain.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if !agent.IsActive {
		return nil, domain.ErrAgentInactive
	}
	return agent, nil
}

// auditAndCommit persists an audit entry within the transaction, then commits.
func (s *TaskService) auditAndCommit(ctx context.Context, tx pgx.Tx, event *domain.TaskEvent) error {
	if err := s.eventRepo.Create(ctx, tx, event); err != nil {
		return fmt.Errorf("create audit event: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func auditEntry(taskID string, actorID *string, action domain.TaskAction, oldStatus, newStatus domain.TaskStatus, detail string) *domain.TaskEvent {
	return &domain.TaskEvent{
		TaskID:    taskID,
		ActorID:   actorID,
		Action:    action,
		OldStatus: &oldStatus,
		NewStatus: &newStatus,
		Detail:    detail,
	}
}

// CreateTaskParams holds the inputs for CreateTask.
type CreateTaskParams struct {
	Title       string
	Description string
	Reward      int64
	Skills      []string
	DeadlineAt  *time.Time
}

// CreateTask escrows the reward from the requester and posts the task.
func (s *TaskService) CreateTask(ctx context.Context, requesterID string, params CreateTaskParams) (*domain.Task, error) {
	if err := s.validator.ValidateNewTask(params.Title, params.Description, params.Reward); err != nil {
		return nil, err
	}

	if _, err := s.getActiveAgent(ctx, requesterID); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task := &domain.Task{
		Title:       params.Title,
		Description: params.Description,
		RequesterID: requesterID,
		Reward:      params.Reward,
		Skills:      params.Skills,
		Status:      domain.TaskStatusOpen,
		EscrowHeld:  true,
		DeadlineAt:  params.DeadlineAt,
	}
	if _, err := s.taskRepo.Create(ctx, tx, task); err != nil {
		return nil, err
	}

	// Escrow the reward: the debit and the open task commit together.
	if _, err := s.escrow.RecordTransaction(ctx, tx, requesterID, domain.TxTypeTaskEscrow,
		-params.Reward, fmt.Sprintf("escrow for task %q", task.Title), &task.ID, nil); err != nil {
		return nil, err
	}

	if err := s.agentRepo.IncrementPosted(ctx, tx, requesterID); err != nil {
		return nil, err
	}
	if err := s.reputation.EvaluateBadges(ctx, tx, requesterID); err != nil {
		return nil, err
	}

	event := auditEntry(task.ID, &requesterID, domain.ActionCreated,
		domain.TaskStatusOpen, domain.TaskStatusOpen,
		fmt.Sprintf("Task posted with reward %d", params.Reward))
	if err := s.auditAndCommit(ctx, tx, event); err != nil {
		return nil, err
	}

	slog.Info("task created",
		"task_id", task.ID,
		"requester_id", requesterID,
		"reward", params.Reward,
	)
	s.notifier.Notify(ctx, notify.Event{Type: "task_created", AgentID: requesterID, TaskID: task.ID})

	return task, nil
}

// ClaimTask assigns an open task to the calling agent. The transition is
// a single conditional update guarded by the OPEN status; a lost race
// surfaces as a conflict with no side effects.
func (s *TaskService) ClaimTask(ctx context.Context, taskID, agentID string) (*domain.Task, error) {
	agent, err := s.getActiveAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanClaim(task, agent); err != nil {
		return nil, err
	}

	now := time.Now()
	oldStatus := task.Status
	task.Status = domain.TaskStatusClaimed
	task.WorkerID = &agentID
	task.ClaimedAt = &now

	if err := s.taskRepo.ApplyTransition(ctx, tx, task, oldStatus); err != nil {
		return nil, err
	}

	event := auditEntry(taskID, &agentID, domain.ActionClaimed,
		oldStatus, task.Status, "Task claimed")
	if err := s.auditAndCommit(ctx, tx, event); err != nil {
		return nil, err
	}

	slog.Info("task claimed",
		"task_id", taskID,
		"agent_id", agentID,
	)
	s.notifier.Notify(ctx, notify.Event{Type: "task_claimed", AgentID: task.RequesterID, TaskID: taskID})

	return task, nil
}

// SubmitWork stores the proof of completion and marks the task submitted.
func (s *TaskService) SubmitWork(ctx context.Context, taskID, agentID, proof string) (*domain.Task, error) {
	proof = domain.NormalizeProof(proof)
	if proof == "" {
		return nil, fmt.Errorf("%w: proof is required", domain.ErrInvalidInput)
	}

	agent, err := s.getActiveAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanSubmit(task, agent); err != nil {
		return nil, err
	}

	now := time.Now()
	oldStatus := task.Status
	task.Status = domain.TaskStatusSubmitted
	task.Proof = &proof
	task.SubmittedAt = &now

	if err := s.taskRepo.ApplyTransition(ctx, tx, task, oldStatus); err != nil {
		return nil, err
	}

	event := auditEntry(taskID, &agentID, domain.ActionSubmitted,
		oldStatus, task.Status, "Work submitted for validation")
	if err := s.auditAndCommit(ctx, tx, event); err != nil {
		return nil, err
	}

	slog.Info("work submitted",
		"task_id", taskID,
		"agent_id", agentID,
	)
	s.notifier.Notify(ctx, notify.Event{Type: "work_submitted", AgentID: task.RequesterID, TaskID: taskID})

	return task, nil
}

// ValidateWork lets the requester approve or reject submitted work.
// Approval releases the escrowed reward to the worker and completes the
// task; rejection reopens the task with the escrow economically returned
// to the requester (a net-zero release/re-escrow pair, since the reward
// stays committed to the reopened task).
func (s *TaskService) ValidateWork(ctx context.Context, taskID, agentID string, approved bool, reason string) (*domain.Task, error) {
	agent, err := s.getActiveAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanValidate(task, agent); err != nil {
		return nil, err
	}

	workerID := *task.WorkerID
	oldStatus := task.Status

	var event *domain.TaskEvent
	if approved {
		if err := s.payWorker(ctx, tx, task, workerID); err != nil {
			return nil, err
		}

		now := time.Now()
		task.Status = domain.TaskStatusCompleted
		task.CompletedAt = &now
		task.EscrowHeld = false

		if err := s.taskRepo.ApplyTransition(ctx, tx, task, oldStatus); err != nil {
			return nil, err
		}

		event = auditEntry(taskID, &agentID, domain.ActionApproved,
			oldStatus, task.Status, "Work approved, reward released")
	} else {
		// Economic effect returns to the requester, then the reward is
		// re-escrowed because the task reopens rather than closes. The
		// pair nets to zero; the balance is untouched.
		if _, err := s.escrow.RecordTransaction(ctx, tx, task.RequesterID, domain.TxTypeEscrowRelease,
			task.Reward, "escrow released on rejection", &task.ID, &workerID); err != nil {
			return nil, err
		}
		if _, err := s.escrow.RecordTransaction(ctx, tx, task.RequesterID, domain.TxTypeTaskEscrow,
			-task.Reward, "reward re-escrowed for reopened task", &task.ID, nil); err != nil {
			return nil, err
		}

		if err := s.agentRepo.IncrementFailed(ctx, tx, workerID); err != nil {
			return nil, err
		}

		task.Status = domain.TaskStatusOpen
		task.WorkerID = nil
		task.Proof = nil
		task.ClaimedAt = nil
		task.SubmittedAt = nil

		if err := s.taskRepo.ApplyTransition(ctx, tx, task, oldStatus); err != nil {
			return nil, err
		}

		if _, err := s.reputation.Record(ctx, tx, workerID, domain.RepEventTaskRejected, 1,
			"work rejected", &task.ID, &agentID); err != nil {
			return nil, err
		}

		detail := "Work rejected, task reopened"
		if reason != "" {
			detail = fmt.Sprintf("Work rejected: %s", reason)
		}
		event = auditEntry(taskID, &agentID, domain.ActionRejected,
			oldStatus, task.Status, detail)
	}

	if err := s.auditAndCommit(ctx, tx, event); err != nil {
		return nil, err
	}

	slog.Info("work validated",
		"task_id", taskID,
		"requester_id", agentID,
		"worker_id", workerID,
		"approved", approved,
	)
	eventType := "work_approved"
	if !approved {
		eventType = "work_rejected"
	}
	s.notifier.Notify(ctx, notify.Event{Type: eventType, AgentID: workerID, TaskID: taskID})

	return task, nil
}

// payWorker releases the escrowed reward to the worker, bumps the
// completion counters, and records the completion reputation events
// (first-task, high-value, and streak bonuses included).
func (s *TaskService) payWorker(ctx context.Context, tx pgx.Tx, task *domain.Task, workerID string) error {
	if _, err := s.escrow.RecordTransaction(ctx, tx, workerID, domain.TxTypeTaskPayment,
		task.Reward, fmt.Sprintf("payment for task %q", task.Title), &task.ID, &task.RequesterID); err != nil {
		return err
	}

	completed, streak, err := s.agentRepo.IncrementCompleted(ctx, tx, workerID)
	if err != nil {
		return err
	}

	if _, err := s.reputation.Record(ctx, tx, workerID, domain.RepEventTaskCompleted, 1,
		"task completed", &task.ID, &task.RequesterID); err != nil {
		return err
	}
	if completed == 1 {
		if _, err := s.reputation.Record(ctx, tx, workerID, domain.RepEventFirstTask, 1,
			"first task completed", &task.ID, nil); err != nil {
			return err
		}
	}
	if task.Reward >= domain.HighValueRewardThreshold {
		if _, err := s.reputation.Record(ctx, tx, workerID, domain.RepEventHighValueTask, 1,
			"high-value task bonus", &task.ID, nil); err != nil {
			return err
		}
	}
	switch streak {
	case domain.StreakBonusAt5:
		if _, err := s.reputation.Record(ctx, tx, workerID, domain.RepEventStreak5, 1,
			"5 completions without a failure", &task.ID, nil); err != nil {
			return err
		}
	case domain.StreakBonusAt10:
		if _, err := s.reputation.Record(ctx, tx, workerID, domain.RepEventStreak10, 1,
			"10 completions without a failure", &task.ID, nil); err != nil {
			return err
		}
	}

	return nil
}

// AbandonTask lets the worker release a claimed task back to the pool.
func (s *TaskService) AbandonTask(ctx context.Context, taskID, agentID string) (*domain.Task, error) {
	agent, err := s.getActiveAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanAbandon(task, agent); err != nil {
		return nil, err
	}

	oldStatus := task.Status
	task.Status = domain.TaskStatusOpen
	task.WorkerID = nil
	task.ClaimedAt = nil

	if err := s.taskRepo.ApplyTransition(ctx, tx, task, oldStatus); err != nil {
		return nil, err
	}

	if err := s.agentRepo.ResetStreak(ctx, tx, agentID); err != nil {
		return nil, err
	}
	if _, err := s.reputation.Record(ctx, tx, agentID, domain.RepEventTaskAbandoned, 1,
		"claim abandoned", &task.ID, nil); err != nil {
		return nil, err
	}

	event := auditEntry(taskID, &agentID, domain.ActionAbandoned,
		oldStatus, task.Status, "Claim abandoned, task returned to pool")
	if err := s.auditAndCommit(ctx, tx, event); err != nil {
		return nil, err
	}

	slog.Info("task abandoned",
		"task_id", taskID,
		"agent_id", agentID,
	)
	s.notifier.Notify(ctx, notify.Event{Type: "task_abandoned", AgentID: task.RequesterID, TaskID: taskID})

	return task, nil
}

// CancelTask lets the requester withdraw an unclaimed task and reclaim
// the escrowed reward.
func (s *TaskService) CancelTask(ctx context.Context, taskID, agentID string) (*domain.Task, error) {
	agent, err := s.getActiveAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanCancel(task, agent); err != nil {
		return nil, err
	}

	if _, err := s.escrow.RecordTransaction(ctx, tx, agentID, domain.TxTypeRefund,
		task.Reward, "refund for cancelled task", &task.ID, nil); err != nil {
		return nil, err
	}

	oldStatus := task.Status
	task.Status = domain.TaskStatusCancelled
	task.EscrowHeld = false

	if err := s.taskRepo.ApplyTransition(ctx, tx, task, oldStatus); err != nil {
		return nil, err
	}

	event := auditEntry(taskID, &agentID, domain.ActionCancelled,
		oldStatus, task.Status, "Task cancelled, escrow refunded")
	if err := s.auditAndCommit(ctx, tx, event); err != nil {
		return nil, err
	}

	slog.Info("task cancelled",
		"task_id", taskID,
		"agent_id", agentID,
	)

	return task, nil
}

// ReviewTask records the requester's one-time review of completed work.
func (s *TaskService) ReviewTask(ctx context.Context, taskID, agentID string, rating domain.Rating, comment string) (*domain.ReputationEvent, error) {
	eventType, ok := rating.EventType()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidRating, rating)
	}

	agent, err := s.getActiveAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanReview(task, agent); err != nil {
		return nil, err
	}

	reviews, err := s.eventRepo.CountByAction(ctx, tx, taskID, domain.ActionReviewed)
	if err != nil {
		return nil, err
	}
	if reviews > 0 {
		return nil, fmt.Errorf("%w: task %s", domain.ErrAlreadyReviewed, taskID)
	}

	workerID := *task.WorkerID
	if err := s.agentRepo.IncrementReviews(ctx, tx, agentID, workerID); err != nil {
		return nil, err
	}

	repEvent, err := s.reputation.Record(ctx, tx, workerID, eventType, 1,
		fmt.Sprintf("review: %s", rating), &task.ID, &agentID)
	if err != nil {
		return nil, err
	}
	// Reviewer counters changed too; re-check their badges.
	if err := s.reputation.EvaluateBadges(ctx, tx, agentID); err != nil {
		return nil, err
	}

	event := &domain.TaskEvent{
		TaskID:  taskID,
		ActorID: &agentID,
		Action:  domain.ActionReviewed,
		Detail:  fmt.Sprintf("Rated %s. %s", rating, comment),
	}
	if err := s.auditAndCommit(ctx, tx, event); err != nil {
		return nil, err
	}

	slog.Info("task reviewed",
		"task_id", taskID,
		"requester_id", agentID,
		"worker_id", workerID,
		"rating", rating,
	)
	s.notifier.Notify(ctx, notify.Event{Type: "task_reviewed", AgentID: workerID, TaskID: taskID})

	return repEvent, nil
}
