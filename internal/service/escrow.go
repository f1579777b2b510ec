package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskmarket/taskmarket/internal/domain"
	"github.com/taskmarket/taskmarket/internal/repository"
)

// EscrowService is the single funnel for credit movement. Every
// task-driven balance change records a transaction row together with the
// balance mutation, inside the caller's database transaction, so status
// changes and credit movement commit or roll back as one.
type EscrowService struct {
	pool      *pgxpool.Pool
	agentRepo *repository.AgentRepository
	txRepo    *repository.TransactionRepository
}

// NewEscrowService creates a new EscrowService.
func NewEscrowService(
	pool *pgxpool.Pool,
	agentRepo *repository.AgentRepository,
	txRepo *repository.TransactionRepository,
) *EscrowService {
	return &EscrowService{
		pool:      pool,
		agentRepo: agentRepo,
		txRepo:    txRepo,
	}
}

// RecordTransaction applies a signed balance mutation to the agent and
// appends the matching ledger row. A debit that would push the balance
// negative fails with ErrInsufficientCredits and writes nothing.
func (s *EscrowService) RecordTransaction(
	ctx context.Context,
	tx pgx.Tx,
	agentID string,
	typ domain.TransactionType,
	amount int64,
	description string,
	relatedTaskID *string,
	relatedAgentID *string,
) (*domain.Transaction, error) {
	balance, err := s.agentRepo.AdjustCredits(ctx, tx, agentID, amount)
	if err != nil {
		return nil, err
	}

	t := &domain.Transaction{
		AgentID:        agentID,
		Type:           typ,
		Amount:         amount,
		BalanceAfter:   balance,
		Description:    description,
		RelatedTaskID:  relatedTaskID,
		RelatedAgentID: relatedAgentID,
	}
	if err := s.txRepo.Create(ctx, tx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Transfer moves credits directly between two agents outside the task
// flow. Both legs are recorded in one transaction and net to zero.
func (s *EscrowService) Transfer(ctx context.Context, fromID, toID string, amount int64, memo string) error {
	if amount < 1 {
		return fmt.Errorf("%w: transfer amount must be at least 1", domain.ErrInvalidInput)
	}
	if fromID == toID {
		return fmt.Errorf("%w: cannot transfer to self", domain.ErrInvalidInput)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	if _, err := s.agentRepo.GetByIDTx(ctx, tx, toID); err != nil {
		return err
	}

	if _, err := s.RecordTransaction(ctx, tx, fromID, domain.TxTypeTransferOut,
		-amount, memo, nil, &toID); err != nil {
		return err
	}
	if _, err := s.RecordTransaction(ctx, tx, toID, domain.TxTypeTransferIn,
		amount, memo, nil, &fromID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("credits transferred",
		"from_agent_id", fromID,
		"to_agent_id", toID,
		"amount", amount,
	)

	return nil
}

// GetTransactionHistory returns an agent's ledger rows, newest first.
func (s *EscrowService) GetTransactionHistory(ctx context.Context, agentID string, limit, offset int) ([]*domain.Transaction, error) {
	if _, err := s.agentRepo.GetByID(ctx, agentID); err != nil {
		return nil, err
	}
	return s.txRepo.ListByAgent(ctx, agentID, limit, offset)
}

// LedgerViolation describes one failed replay check.
type LedgerViolation struct {
	Kind    string // "agent_balance" or "task_sum"
	AgentID string
	TaskID  string
	Want    int64
	Got     int64
}

// LedgerReport summarizes a full ledger replay.
type LedgerReport struct {
	AgentsChecked int
	TasksChecked  int
	Violations    []LedgerViolation
}

// VerifyLedger replays the append-only transaction log and checks the two
// financial invariants: every agent's balance equals its initial balance
// plus the signed sum of its transactions, and the task-driven movements
// of every task sum to zero (subsidy rows excluded).
func (s *EscrowService) VerifyLedger(ctx context.Context) (*LedgerReport, error) {
	report := &LedgerReport{}

	agentSums, err := s.txRepo.SumByAgent(ctx)
	if err != nil {
		return nil, err
	}
	for _, as := range agentSums {
		agent, err := s.agentRepo.GetByID(ctx, as.AgentID)
		if err != nil {
			return nil, err
		}
		want := agent.InitialCredits + as.Sum
		if agent.Credits != want {
			report.Violations = append(report.Violations, LedgerViolation{
				Kind:    "agent_balance",
				AgentID: as.AgentID,
				Want:    want,
				Got:     agent.Credits,
			})
		}
		report.AgentsChecked++
	}

	taskSums, err := s.txRepo.SumByTask(ctx)
	if err != nil {
		return nil, err
	}
	for _, ts := range taskSums {
		if ts.Sum != 0 {
			report.Violations = append(report.Violations, LedgerViolation{
				Kind:   "task_sum",
				TaskID: ts.TaskID,
				Want:   0,
				Got:    ts.Sum,
			})
		}
		report.TasksChecked++
	}

	return report, nil
}

// rollback rolls back a transaction, logging unexpected failures. A
// commit that already happened reports "tx is closed" and is ignored.
func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
		slog.Error("failed to rollback transaction", "error", err)
	}
}
