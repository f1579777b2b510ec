package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskmarket/taskmarket/internal/domain"
	"github.com/taskmarket/taskmarket/internal/notify"
	"github.com/taskmarket/taskmarket/internal/repository"
)

// DeadlineService runs the periodic maintenance sweep over claimed
// tasks: releasing expired claims back to the pool and warning workers
// sitting on a claim past half its window.
type DeadlineService struct {
	pool       *pgxpool.Pool
	taskRepo   *repository.TaskRepository
	eventRepo  *repository.TaskEventRepository
	agentRepo  *repository.AgentRepository
	reputation *ReputationService
	notifier   notify.Notifier
}

// NewDeadlineService creates a new DeadlineService.
func NewDeadlineService(
	pool *pgxpool.Pool,
	taskRepo *repository.TaskRepository,
	eventRepo *repository.TaskEventRepository,
	agentRepo *repository.AgentRepository,
	reputation *ReputationService,
	notifier notify.Notifier,
) *DeadlineService {
	return &DeadlineService{
		pool:       pool,
		taskRepo:   taskRepo,
		eventRepo:  eventRepo,
		agentRepo:  agentRepo,
		reputation: reputation,
		notifier:   notifier,
	}
}

// SweepResult summarizes one maintenance pass.
type SweepResult struct {
	Released int
	Warned   int
	Errors   int
}

// ProcessExpiredDeadlines releases claimed tasks whose deadline has
// passed and warns workers on stale claims. Each task is handled in its
// own transaction so one failure does not abort the sweep; the sweep is
// safe to re-run because every release is guarded by the CLAIMED status
// and warnings are suppressed once logged.
func (s *DeadlineService) ProcessExpiredDeadlines(ctx context.Context) (*SweepResult, error) {
	result := &SweepResult{}

	expired, err := s.taskRepo.FindExpiredClaims(ctx)
	if err != nil {
		return nil, err
	}
	for _, task := range expired {
		if err := s.releaseExpiredClaim(ctx, task.ID); err != nil {
			slog.Error("failed to release expired claim",
				"task_id", task.ID,
				"error", err,
			)
			result.Errors++
			continue
		}
		result.Released++
	}

	inactive, err := s.taskRepo.FindInactiveClaims(ctx)
	if err != nil {
		return nil, err
	}
	for _, task := range inactive {
		if err := s.warnInactiveClaim(ctx, task.ID); err != nil {
			slog.Error("failed to warn inactive claim",
				"task_id", task.ID,
				"error", err,
			)
			result.Errors++
			continue
		}
		result.Warned++
	}

	slog.Info("deadline sweep completed",
		"released", result.Released,
		"warned", result.Warned,
		"errors", result.Errors,
	)

	return result, nil
}

// releaseExpiredClaim returns a single expired claim to the pool,
// penalizes the worker, and records the system audit entry.
func (s *DeadlineService) releaseExpiredClaim(ctx context.Context, taskID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return err
	}

	// The claim may have been submitted or abandoned since the scan.
	if task.Status != domain.TaskStatusClaimed || task.WorkerID == nil {
		return nil
	}
	if task.DeadlineAt == nil || task.DeadlineAt.After(time.Now()) {
		return nil
	}
	workerID := *task.WorkerID

	oldStatus := task.Status
	task.Status = domain.TaskStatusOpen
	task.WorkerID = nil
	task.ClaimedAt = nil

	if err := s.taskRepo.ApplyTransition(ctx, tx, task, oldStatus); err != nil {
		return err
	}

	if err := s.agentRepo.ResetStreak(ctx, tx, workerID); err != nil {
		return err
	}
	if _, err := s.reputation.Record(ctx, tx, workerID, domain.RepEventDeadlineMissed, 1,
		"claim deadline missed", &task.ID, nil); err != nil {
		return err
	}

	event := auditEntry(taskID, nil, domain.ActionDeadlineMissed,
		oldStatus, task.Status, "Deadline missed, claim released")
	if err := s.eventRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("expired claim released",
		"task_id", taskID,
		"worker_id", workerID,
	)
	s.notifier.Notify(ctx, notify.Event{Type: "deadline_missed", AgentID: workerID, TaskID: taskID})

	return nil
}

// warnInactiveClaim applies the inactivity penalty and logs the warning
// event that suppresses further warnings for this claim.
func (s *DeadlineService) warnInactiveClaim(ctx context.Context, taskID string) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return err
	}
	if task.Status != domain.TaskStatusClaimed || task.WorkerID == nil {
		return nil
	}
	workerID := *task.WorkerID

	// Re-check under the lock so two concurrent sweeps warn once.
	warned, err := s.eventRepo.CountByAction(ctx, tx, taskID, domain.ActionInactivityNote)
	if err != nil {
		return err
	}
	if warned > 0 {
		return nil
	}

	if _, err := s.reputation.Record(ctx, tx, workerID, domain.RepEventInactiveClaim, 1,
		"no activity on claimed task", &task.ID, nil); err != nil {
		return err
	}

	event := &domain.TaskEvent{
		TaskID: taskID,
		Action: domain.ActionInactivityNote,
		Detail: "Claim inactive past half its window",
	}
	if err := s.eventRepo.Create(ctx, tx, event); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("inactive claim warned",
		"task_id", taskID,
		"worker_id", workerID,
	)
	s.notifier.Notify(ctx, notify.Event{Type: "inactivity_warning", AgentID: workerID, TaskID: taskID})

	return nil
}
