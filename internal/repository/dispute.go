package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskmarket/taskmarket/internal/domain"
)

var disputeColumns = []string{
	"id", "task_id", "raised_by_id", "reason", "status", "resolution",
	"resolution_note", "resolver_id", "created_at", "resolved_at",
}

// DisputeRepository handles database operations for disputes.
type DisputeRepository struct {
	pool *pgxpool.Pool
}

// NewDisputeRepository creates a new DisputeRepository.
func NewDisputeRepository(pool *pgxpool.Pool) *DisputeRepository {
	return &DisputeRepository{pool: pool}
}

func scanDispute(row pgx.Row) (*domain.Dispute, error) {
	var d domain.Dispute
	err := row.Scan(
		&d.ID,
		&d.TaskID,
		&d.RaisedByID,
		&d.Reason,
		&d.Status,
		&d.Resolution,
		&d.ResolutionNote,
		&d.ResolverID,
		&d.CreatedAt,
		&d.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDisputeNotFound
		}
		return nil, fmt.Errorf("scan dispute: %w", err)
	}
	return &d, nil
}

// Create inserts a new open dispute within a transaction. The partial
// unique index on open disputes rejects a second open dispute per task.
func (r *DisputeRepository) Create(ctx context.Context, tx pgx.Tx, d *domain.Dispute) error {
	query, args, err := psql.
		Insert("disputes").
		Columns("task_id", "raised_by_id", "reason", "status").
		Values(d.TaskID, d.RaisedByID, d.Reason, domain.DisputeStatusOpen).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("create dispute: %w", err)
	}
	d.Status = domain.DisputeStatusOpen

	return nil
}

// GetByID retrieves a dispute by ID.
func (r *DisputeRepository) GetByID(ctx context.Context, disputeID string) (*domain.Dispute, error) {
	query, args, err := psql.
		Select(disputeColumns...).
		From("disputes").
		Where(sq.Eq{"id": disputeID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for dispute: %w", err)
	}

	return scanDispute(r.pool.QueryRow(ctx, query, args...))
}

// GetByIDForUpdate retrieves a dispute with FOR UPDATE lock (within transaction).
func (r *DisputeRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, disputeID string) (*domain.Dispute, error) {
	query, args, err := psql.
		Select(disputeColumns...).
		From("disputes").
		Where(sq.Eq{"id": disputeID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDForUpdate query for dispute %s: %w", disputeID, err)
	}

	return scanDispute(tx.QueryRow(ctx, query, args...))
}

// GetOpenByTaskID retrieves the open dispute for a task, if any.
func (r *DisputeRepository) GetOpenByTaskID(ctx context.Context, tx pgx.Tx, taskID string) (*domain.Dispute, error) {
	query, args, err := psql.
		Select(disputeColumns...).
		From("disputes").
		Where(sq.Eq{"task_id": taskID, "status": domain.DisputeStatusOpen}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetOpenByTaskID query: %w", err)
	}

	return scanDispute(tx.QueryRow(ctx, query, args...))
}

// Resolve marks an open dispute resolved, guarded by the open status.
func (r *DisputeRepository) Resolve(ctx context.Context, tx pgx.Tx, disputeID string, decision domain.Decision, note *string, resolverID string) error {
	query, args, err := psql.
		Update("disputes").
		Set("status", domain.DisputeStatusResolved).
		Set("resolution", decision).
		Set("resolution_note", note).
		Set("resolver_id", resolverID).
		Set("resolved_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     disputeID,
			"status": domain.DisputeStatusOpen,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build Resolve query for dispute %s: %w", disputeID, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("resolve dispute: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrDisputeResolved
	}

	return nil
}

// AddEvidence appends an evidence entry.
func (r *DisputeRepository) AddEvidence(ctx context.Context, e *domain.DisputeEvidence) error {
	return r.addEvidence(ctx, r.pool, e)
}

// AddEvidenceTx appends an evidence entry within a transaction.
func (r *DisputeRepository) AddEvidenceTx(ctx context.Context, tx pgx.Tx, e *domain.DisputeEvidence) error {
	return r.addEvidence(ctx, tx, e)
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *DisputeRepository) addEvidence(ctx context.Context, q rowQuerier, e *domain.DisputeEvidence) error {
	query, args, err := psql.
		Insert("dispute_evidence").
		Columns("dispute_id", "agent_id", "body").
		Values(e.DisputeID, e.AgentID, e.Body).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = q.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("add evidence: %w", err)
	}

	return nil
}

// ListEvidence retrieves the evidence log for a dispute, oldest first.
func (r *DisputeRepository) ListEvidence(ctx context.Context, disputeID string) ([]*domain.DisputeEvidence, error) {
	query, args, err := psql.
		Select("id", "dispute_id", "agent_id", "body", "created_at").
		From("dispute_evidence").
		Where(sq.Eq{"dispute_id": disputeID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evidence: %w", err)
	}
	defer rows.Close()

	var entries []*domain.DisputeEvidence
	for rows.Next() {
		var e domain.DisputeEvidence
		if err := rows.Scan(&e.ID, &e.DisputeID, &e.AgentID, &e.Body, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return entries, nil
}
