package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskmarket/taskmarket/internal/domain"
	"github.com/taskmarket/taskmarket/internal/notify"
	"github.com/taskmarket/taskmarket/internal/repository"
)

// DisputeService owns the dispute protocol: raising, evidence, and the
// four resolution outcomes. Resolution settles the task's money in the
// same transaction that closes the dispute. When the escrow is still
// held the settlement distributes it; when the reward was already paid
// out (a dispute over completed work) the settlement claws credits back
// from the worker instead.
type DisputeService struct {
	pool        *pgxpool.Pool
	disputeRepo *repository.DisputeRepository
	taskRepo    *repository.TaskRepository
	eventRepo   *repository.TaskEventRepository
	agentRepo   *repository.AgentRepository
	escrow      *EscrowService
	reputation  *ReputationService
	validator   *Validator
	notifier    notify.Notifier
}

// NewDisputeService creates a new DisputeService.
func NewDisputeService(
	pool *pgxpool.Pool,
	disputeRepo *repository.DisputeRepository,
	taskRepo *repository.TaskRepository,
	eventRepo *repository.TaskEventRepository,
	agentRepo *repository.AgentRepository,
	escrow *EscrowService,
	reputation *ReputationService,
	notifier notify.Notifier,
) *DisputeService {
	return &DisputeService{
		pool:        pool,
		disputeRepo: disputeRepo,
		taskRepo:    taskRepo,
		eventRepo:   eventRepo,
		agentRepo:   agentRepo,
		escrow:      escrow,
		reputation:  reputation,
		validator:   NewValidator(),
		notifier:    notifier,
	}
}

// RaiseDispute opens a dispute over a submitted or completed task and
// freezes the task in DISPUTED status. At most one open dispute may
// exist per task. A non-empty evidence body is appended as the first
// evidence entry in the same transaction.
func (s *DisputeService) RaiseDispute(ctx context.Context, taskID, agentID, reason, evidence string) (*domain.Dispute, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", domain.ErrInvalidInput)
	}
	evidence = strings.TrimSpace(evidence)

	agent, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if !agent.IsActive {
		return nil, domain.ErrAgentInactive
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

	if err := s.validator.CanRaiseDispute(task, agent); err != nil {
		return nil, err
	}

	if _, err := s.disputeRepo.GetOpenByTaskID(ctx, tx, taskID); err == nil {
		return nil, fmt.Errorf("%w: task %s", domain.ErrDisputeAlreadyOpen, taskID)
	} else if !errors.Is(err, domain.ErrDisputeNotFound) {
		return nil, err
	}

	dispute := &domain.Dispute{
		TaskID:     taskID,
		RaisedByID: agentID,
		Reason:     reason,
	}
	if err := s.disputeRepo.Create(ctx, tx, dispute); err != nil {
		return nil, err
	}

	if evidence != "" {
		entry := &domain.DisputeEvidence{
			DisputeID: dispute.ID,
			AgentID:   agentID,
			Body:      evidence,
		}
		if err := s.disputeRepo.AddEvidenceTx(ctx, tx, entry); err != nil {
			return nil, err
		}
	}

	oldStatus := task.Status
	task.Status = domain.TaskStatusDisputed
	if err := s.taskRepo.ApplyTransition(ctx, tx, task, oldStatus); err != nil {
		return nil, err
	}

	event := auditEntry(taskID, &agentID, domain.ActionDisputed,
		oldStatus, task.Status, fmt.Sprintf("Dispute raised: %s", reason))
	if err := s.eventRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("dispute raised",
		"dispute_id", dispute.ID,
		"task_id", taskID,
		"raised_by", agentID,
	)
	counterparty := task.RequesterID
	if task.IsRequestedBy(agentID) && task.WorkerID != nil {
		counterparty = *task.WorkerID
	}
	s.notifier.Notify(ctx, notify.Event{Type: "dispute_raised", AgentID: counterparty, TaskID: taskID})

	return dispute, nil
}

// AddEvidence appends an evidence entry to an open dispute. The raiser
// and both parties to the task may contribute.
func (s *DisputeService) AddEvidence(ctx context.Context, disputeID, agentID, body string) (*domain.DisputeEvidence, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: evidence body is required", domain.ErrInvalidInput)
	}

	agent, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if !agent.IsActive {
		return nil, domain.ErrAgentInactive
	}

	dispute, err := s.disputeRepo.GetByID(ctx, disputeID)
	if err != nil {
		return nil, err
	}
	task, err := s.taskRepo.GetByID(ctx, dispute.TaskID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.CanAddEvidence(dispute, task, agent); err != nil {
		return nil, err
	}

	evidence := &domain.DisputeEvidence{
		DisputeID: disputeID,
		AgentID:   agentID,
		Body:      body,
	}
	if err := s.disputeRepo.AddEvidence(ctx, evidence); err != nil {
		return nil, err
	}

	slog.Info("dispute evidence added",
		"dispute_id", disputeID,
		"agent_id", agentID,
	)

	return evidence, nil
}

// GetDispute returns a dispute with its evidence log.
func (s *DisputeService) GetDispute(ctx context.Context, disputeID string) (*domain.Dispute, []*domain.DisputeEvidence, error) {
	dispute, err := s.disputeRepo.GetByID(ctx, disputeID)
	if err != nil {
		return nil, nil, err
	}
	evidence, err := s.disputeRepo.ListEvidence(ctx, disputeID)
	if err != nil {
		return nil, nil, err
	}
	return dispute, evidence, nil
}

// ResolveDispute settles an open dispute with one of the four decisions.
// A party to the task may resolve (typically conceding); any other agent
// needs arbitrator-level reputation and earns a system-funded fee.
// Money movement depends on whether the escrow is still held: held
// escrow is distributed per the decision, while an already-paid reward
// is clawed back from the worker. A clawback the worker cannot cover
// fails the whole resolution.
func (s *DisputeService) ResolveDispute(ctx context.Context, disputeID, resolverID string, decision domain.Decision, note string) (*domain.Dispute, error) {
	if !decision.IsValid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidDecision, decision)
	}

	resolver, err := s.agentRepo.GetByID(ctx, resolverID)
	if err != nil {
		return nil, err
	}
	if !resolver.IsActive {
		return nil, domain.ErrAgentInactive
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	dispute, err := s.disputeRepo.GetByIDForUpdate(ctx, tx, disputeID)
	if err != nil {
		return nil, err
	}
	if dispute.Status != domain.DisputeStatusOpen {
		return nil, fmt.Errorf("%w: dispute %s", domain.ErrDisputeResolved, disputeID)
	}

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, dispute.TaskID)
	if err != nil {
		return nil, err
	}
	if task.WorkerID == nil {
		return nil, fmt.Errorf("%w: disputed task %s has no worker", domain.ErrInvalidState, task.ID)
	}
	workerID := *task.WorkerID

	if err := s.validator.CanResolveDispute(task, resolver); err != nil {
		return nil, err
	}

	oldStatus := task.Status
	escrowHeld := task.EscrowHeld

	switch decision {
	case domain.DecisionFavorWorker:
		if escrowHeld {
			if _, err := s.escrow.RecordTransaction(ctx, tx, workerID, domain.TxTypeTaskPayment,
				task.Reward, "dispute resolved in worker's favor", &task.ID, &task.RequesterID); err != nil {
				return nil, err
			}
			if _, _, err := s.agentRepo.IncrementCompleted(ctx, tx, workerID); err != nil {
				return nil, err
			}
			now := time.Now()
			task.CompletedAt = &now
		}
		task.Status = domain.TaskStatusCompleted
		task.EscrowHeld = false

		if _, err := s.reputation.Record(ctx, tx, workerID, domain.RepEventDisputeWon, 1,
			"dispute resolved in your favor", &task.ID, &resolverID); err != nil {
			return nil, err
		}
		if _, err := s.reputation.Record(ctx, tx, task.RequesterID, domain.RepEventDisputeLost, 1,
			"dispute resolved against you", &task.ID, &resolverID); err != nil {
			return nil, err
		}

	case domain.DecisionFavorRequester:
		if escrowHeld {
			if _, err := s.escrow.RecordTransaction(ctx, tx, task.RequesterID, domain.TxTypeRefund,
				task.Reward, "dispute resolved in requester's favor", &task.ID, &workerID); err != nil {
				return nil, err
			}
		} else {
			if err := s.clawback(ctx, tx, task, workerID, task.Reward); err != nil {
				return nil, err
			}
		}
		if err := s.agentRepo.IncrementFailed(ctx, tx, workerID); err != nil {
			return nil, err
		}
		task.Status = domain.TaskStatusCancelled
		task.EscrowHeld = false

		if _, err := s.reputation.Record(ctx, tx, task.RequesterID, domain.RepEventDisputeWon, 1,
			"dispute resolved in your favor", &task.ID, &resolverID); err != nil {
			return nil, err
		}
		if _, err := s.reputation.Record(ctx, tx, workerID, domain.RepEventDisputeLost, 1,
			"dispute resolved against you", &task.ID, &resolverID); err != nil {
			return nil, err
		}

	case domain.DecisionSplit:
		refund, payment := domain.SplitReward(task.Reward)
		if escrowHeld {
			if refund > 0 {
				if _, err := s.escrow.RecordTransaction(ctx, tx, task.RequesterID, domain.TxTypeSplitRefund,
					refund, "split resolution refund", &task.ID, &workerID); err != nil {
					return nil, err
				}
			}
			if _, err := s.escrow.RecordTransaction(ctx, tx, workerID, domain.TxTypeSplitPayment,
				payment, "split resolution payment", &task.ID, &task.RequesterID); err != nil {
				return nil, err
			}
			now := time.Now()
			task.CompletedAt = &now
		} else if refund > 0 {
			// Reward already paid out in full; claw back the requester's half.
			if err := s.clawback(ctx, tx, task, workerID, refund); err != nil {
				return nil, err
			}
		}
		task.Status = domain.TaskStatusCompleted
		task.EscrowHeld = false

	case domain.DecisionCancel:
		if escrowHeld {
			if _, err := s.escrow.RecordTransaction(ctx, tx, task.RequesterID, domain.TxTypeRefund,
				task.Reward, "dispute cancelled, escrow returned", &task.ID, &workerID); err != nil {
				return nil, err
			}
		} else {
			if err := s.clawback(ctx, tx, task, workerID, task.Reward); err != nil {
				return nil, err
			}
		}
		task.Status = domain.TaskStatusCancelled
		task.EscrowHeld = false

	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidDecision, decision)
	}

	// Non-party arbitrators earn a system-funded fee. The fee has no
	// matching debit and is excluded from the per-task zero-sum check.
	if !task.IsParty(resolverID) {
		if fee := domain.ArbitrationFee(task.Reward); fee > 0 {
			if _, err := s.escrow.RecordTransaction(ctx, tx, resolverID, domain.TxTypeArbitrationFee,
				fee, "arbitration fee", &task.ID, nil); err != nil {
				return nil, err
			}
		}
	}

	var notePtr *string
	if note = strings.TrimSpace(note); note != "" {
		notePtr = &note
	}
	if err := s.disputeRepo.Resolve(ctx, tx, disputeID, decision, notePtr, resolverID); err != nil {
		return nil, err
	}

	if err := s.taskRepo.ApplyTransition(ctx, tx, task, oldStatus); err != nil {
		return nil, err
	}

	event := auditEntry(task.ID, &resolverID, domain.ActionDisputeResolved,
		oldStatus, task.Status, fmt.Sprintf("Dispute resolved: %s", decision))
	if err := s.eventRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	now := time.Now()
	dispute.Status = domain.DisputeStatusResolved
	dispute.Resolution = &decision
	dispute.ResolutionNote = notePtr
	dispute.ResolverID = &resolverID
	dispute.ResolvedAt = &now

	slog.Info("dispute resolved",
		"dispute_id", disputeID,
		"task_id", task.ID,
		"resolver_id", resolverID,
		"decision", decision,
	)
	s.notifier.Notify(ctx, notify.Event{Type: "dispute_resolved", AgentID: task.RequesterID, TaskID: task.ID, Detail: string(decision)})
	s.notifier.Notify(ctx, notify.Event{Type: "dispute_resolved", AgentID: workerID, TaskID: task.ID, Detail: string(decision)})

	return dispute, nil
}

// clawback reverses an already-paid reward: debit the worker, credit the
// requester. The debit fails with ErrInsufficientCredits if the worker
// has spent the credits, which aborts the resolution.
func (s *DisputeService) clawback(ctx context.Context, tx pgx.Tx, task *domain.Task, workerID string, amount int64) error {
	if _, err := s.escrow.RecordTransaction(ctx, tx, workerID, domain.TxTypeClawback,
		-amount, "reward clawed back by dispute resolution", &task.ID, &task.RequesterID); err != nil {
		return err
	}
	if _, err := s.escrow.RecordTransaction(ctx, tx, task.RequesterID, domain.TxTypeClawback,
		amount, "reward returned by dispute resolution", &task.ID, &workerID); err != nil {
		return err
	}
	return nil
}
