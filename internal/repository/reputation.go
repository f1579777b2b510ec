package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskmarket/taskmarket/internal/domain"
)

// ReputationRepository handles the append-only reputation event log.
type ReputationRepository struct {
	pool *pgxpool.Pool
}

// NewReputationRepository creates a new ReputationRepository.
func NewReputationRepository(pool *pgxpool.Pool) *ReputationRepository {
	return &ReputationRepository{pool: pool}
}

// Create appends a reputation event within a transaction.
func (r *ReputationRepository) Create(ctx context.Context, tx pgx.Tx, e *domain.ReputationEvent) error {
	query, args, err := psql.
		Insert("reputation_events").
		Columns("agent_id", "event_type", "delta", "reason",
			"related_task_id", "related_agent_id").
		Values(e.AgentID, e.Type, e.Delta, e.Reason,
			e.RelatedTaskID, e.RelatedAgentID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create reputation event: %w", err)
	}

	return nil
}

func scanReputationEvents(rows pgx.Rows) ([]*domain.ReputationEvent, error) {
	defer rows.Close()

	var events []*domain.ReputationEvent
	for rows.Next() {
		var e domain.ReputationEvent
		err := rows.Scan(
			&e.ID,
			&e.AgentID,
			&e.Type,
			&e.Delta,
			&e.Reason,
			&e.RelatedTaskID,
			&e.RelatedAgentID,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reputation event: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return events, nil
}

// ListByAgent retrieves an agent's reputation history, newest first.
func (r *ReputationRepository) ListByAgent(ctx context.Context, agentID string, limit, offset int) ([]*domain.ReputationEvent, error) {
	query, args, err := psql.
		Select("id", "agent_id", "event_type", "delta", "reason",
			"related_task_id", "related_agent_id", "created_at").
		From("reputation_events").
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
		return nil, fmt.Errorf("query reputation events: %w", err)
	}

	return scanReputationEvents(rows)
}

// DeltasByAgent returns every delta for an agent in insertion order, for
// recomputing the clamped running score from the log.
func (r *ReputationRepository) DeltasByAgent(ctx context.Context, agentID string) ([]float64, error) {
	query, args, err := psql.
		Select("delta").
		From("reputation_events").
		Where(sq.Eq{"agent_id": agentID}).
		OrderBy("created_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reputation deltas: %w", err)
	}
	defer rows.Close()

	var deltas []float64
	for rows.Next() {
		var d float64
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan delta: %w", err)
		}
		deltas = append(deltas, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return deltas, nil
}

// BadgeRepository handles awarded badges.
type BadgeRepository struct {
	pool *pgxpool.Pool
}

// NewBadgeRepository creates a new BadgeRepository.
func NewBadgeRepository(pool *pgxpool.Pool) *BadgeRepository {
	return &BadgeRepository{pool: pool}
}

// Award inserts a badge if absent. Returns true only when the badge was
// newly awarded, so re-evaluation after the badge exists is a no-op.
func (r *BadgeRepository) Award(ctx context.Context, tx pgx.Tx, agentID string, badge domain.BadgeType) (bool, error) {
	tag, err := tx.Exec(ctx,
		`INSERT INTO badges (agent_id, badge_type) VALUES ($1, $2)
		 ON CONFLICT (agent_id, badge_type) DO NOTHING`,
		agentID, badge,
	)
	if err != nil {
		return false, fmt.Errorf("award badge %s to agent %s: %w", badge, agentID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// ListByAgent retrieves an agent's badges in the order earned.
func (r *BadgeRepository) ListByAgent(ctx context.Context, agentID string) ([]*domain.Badge, error) {
	query, args, err := psql.
		Select("id", "agent_id", "badge_type", "earned_at").
		From("badges").
		Where(sq.Eq{"agent_id": agentID}).
		OrderBy("earned_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query badges: %w", err)
	}
	defer rows.Close()

	var badges []*domain.Badge
	for rows.Next() {
		var b domain.Badge
		if err := rows.Scan(&b.ID, &b.AgentID, &b.Type, &b.EarnedAt); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		badges = append(badges, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return badges, nil
}
