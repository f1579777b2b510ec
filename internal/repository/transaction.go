package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskmarket/taskmarket/internal/domain"
)

var transactionColumns = []string{
	"id", "agent_id", "type", "amount", "balance_after", "description",
	"related_task_id", "related_agent_id", "created_at",
}

// TransactionRepository handles the append-only financial ledger.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create appends a transaction row within a transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query, args, err := psql.
		Insert("transactions").
		Columns("agent_id", "type", "amount", "balance_after", "description",
			"related_task_id", "related_agent_id").
		Values(t.AgentID, t.Type, t.Amount, t.BalanceAfter, t.Description,
			t.RelatedTaskID, t.RelatedAgentID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}

	return nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		err := rows.Scan(
			&t.ID,
			&t.AgentID,
			&t.Type,
			&t.Amount,
			&t.BalanceAfter,
			&t.Description,
			&t.RelatedTaskID,
			&t.RelatedAgentID,
			&t.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return txns, nil
}

// ListByAgent retrieves an agent's transactions, newest first.
func (r *TransactionRepository) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]*domain.Transaction, error) {
	query, args, err := psql.
		Select(transactionColumns...).
		From("transactions").
		Where(sq.Eq{"agent_id": agentID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}

	return scanTransactions(rows)
}

// ListByTask retrieves every transaction related to a task, oldest first.
func (r *TransactionRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.Transaction, error) {
	query, args, err := psql.
		Select(transactionColumns...).
		From("transactions").
		Where(sq.Eq{"related_task_id": taskID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query task transactions: %w", err)
	}

	return scanTransactions(rows)
}

// AgentSum is the replayed signed total for one agent.
type AgentSum struct {
	AgentID string
	Sum     int64
}

// SumByAgent replays the full ledger per agent.
func (r *TransactionRepository) SumByAgent(ctx context.Context) ([]AgentSum, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT agent_id, COALESCE(SUM(amount), 0)
		 FROM transactions GROUP BY agent_id`)
	if err != nil {
		return nil, fmt.Errorf("query agent sums: %w", err)
	}
	defer rows.Close()

	var sums []AgentSum
	for rows.Next() {
		var s AgentSum
		if err := rows.Scan(&s.AgentID, &s.Sum); err != nil {
			return nil, fmt.Errorf("scan agent sum: %w", err)
		}
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return sums, nil
}

// TaskSum is the replayed signed total for one task, excluding subsidy rows.
type TaskSum struct {
	TaskID string
	Sum    int64
}

// SumByTask replays task-driven movements per settled task. Subsidy rows
// (arbitration fees) are funded by the system and excluded from the
// zero-sum invariant, as are tasks whose escrow is still held (those
// legitimately sum to -reward until released).
func (r *TransactionRepository) SumByTask(ctx context.Context) ([]TaskSum, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT related_task_id, COALESCE(SUM(amount), 0)
		 FROM transactions
		 WHERE related_task_id IS NOT NULL AND type <> $1
		   AND EXISTS (
		       SELECT 1 FROM tasks t
		       WHERE t.id = related_task_id AND NOT t.escrow_held
		   )
		 GROUP BY related_task_id`,
		domain.TxTypeArbitrationFee)
	if err != nil {
		return nil, fmt.Errorf("query task sums: %w", err)
	}
	defer rows.Close()

	var sums []TaskSum
	for rows.Next() {
		var s TaskSum
		if err := rows.Scan(&s.TaskID, &s.Sum); err != nil {
			return nil, fmt.Errorf("scan task sum: %w", err)
		}
		sums = append(sums, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return sums, nil
}
