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

// agentColumns is the shared list of columns for agent queries.
var agentColumns = []string{
	"id", "name", "token", "credits", "initial_credits", "reputation",
	"tasks_completed", "tasks_posted", "tasks_failed", "current_streak",
	"reviews_given", "reviews_received", "endorsements", "skills",
	"is_active", "created_at",
}

// AgentRepository handles database operations for agents.
type AgentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository creates a new AgentRepository.
func NewAgentRepository(pool *pgxpool.Pool) *AgentRepository {
	return &AgentRepository{pool: pool}
}

// scanAgent scans a single row into an Agent struct.
func scanAgent(row pgx.Row) (*domain.Agent, error) {
	var agent domain.Agent
	err := row.Scan(
		&agent.ID,
		&agent.Name,
		&agent.Token,
		&agent.Credits,
		&agent.InitialCredits,
		&agent.Reputation,
		&agent.TasksCompleted,
		&agent.TasksPosted,
		&agent.TasksFailed,
		&agent.CurrentStreak,
		&agent.ReviewsGiven,
		&agent.ReviewsReceived,
		&agent.Endorsements,
		&agent.Skills,
		&agent.IsActive,
		&agent.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAgentNotFound
		}
		return nil, fmt.Errorf("scan agent: %w", err)
	}
	return &agent, nil
}

// GetByID retrieves an agent by ID.
func (r *AgentRepository) GetByID(ctx context.Context, agentID string) (*domain.Agent, error) {
	query, args, err := psql.
		Select(agentColumns...).
		From("agents").
		Where(sq.Eq{"id": agentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for agent: %w", err)
	}

	return scanAgent(r.pool.QueryRow(ctx, query, args...))
}

// GetByIDTx retrieves an agent by ID within a transaction.
func (r *AgentRepository) GetByIDTx(ctx context.Context, tx pgx.Tx, agentID string) (*domain.Agent, error) {
	query, args, err := psql.
		Select(agentColumns...).
		From("agents").
		Where(sq.Eq{"id": agentID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDTx query for agent %s: %w", agentID, err)
	}

	return scanAgent(tx.QueryRow(ctx, query, args...))
}

// GetByToken finds an agent by authentication token.
func (r *AgentRepository) GetByToken(ctx context.Context, token string) (*domain.Agent, error) {
	query, args, err := psql.
		Select(agentColumns...).
		From("agents").
		Where(sq.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByToken query: %w", err)
	}

	return scanAgent(r.pool.QueryRow(ctx, query, args...))
}

// AdjustCredits applies a signed delta to an agent's balance and returns
// the resulting balance. The update is guarded so the balance can never
// go negative; a rejected guard surfaces as ErrInsufficientCredits.
func (r *AgentRepository) AdjustCredits(ctx context.Context, tx pgx.Tx, agentID string, delta int64) (int64, error) {
	var balance int64
	err := tx.QueryRow(ctx,
		`UPDATE agents SET credits = credits + $1
		 WHERE id = $2 AND credits + $1 >= 0
		 RETURNING credits`,
		delta, agentID,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientCredits
		}
		return 0, fmt.Errorf("adjust credits for agent %s: %w", agentID, err)
	}
	return balance, nil
}

// ApplyReputationDelta adds a clamped delta to the agent's reputation and
// returns the new score.
func (r *AgentRepository) ApplyReputationDelta(ctx context.Context, tx pgx.Tx, agentID string, delta float64) (float64, error) {
	var score float64
	err := tx.QueryRow(ctx,
		`UPDATE agents SET reputation = LEAST($1, GREATEST($2, reputation + $3))
		 WHERE id = $4
		 RETURNING reputation`,
		domain.ReputationMax, domain.ReputationMin, delta, agentID,
	).Scan(&score)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrAgentNotFound
		}
		return 0, fmt.Errorf("apply reputation delta for agent %s: %w", agentID, err)
	}
	return score, nil
}

// IncrementCompleted bumps the completed counter and the zero-failure
// streak, returning the new values.
func (r *AgentRepository) IncrementCompleted(ctx context.Context, tx pgx.Tx, agentID string) (completed, streak int, err error) {
	err = tx.QueryRow(ctx,
		`UPDATE agents
		 SET tasks_completed = tasks_completed + 1,
		     current_streak = current_streak + 1
		 WHERE id = $1
		 RETURNING tasks_completed, current_streak`,
		agentID,
	).Scan(&completed, &streak)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, domain.ErrAgentNotFound
		}
		return 0, 0, fmt.Errorf("increment completed for agent %s: %w", agentID, err)
	}
	return completed, streak, nil
}

// IncrementFailed bumps the failed counter and resets the streak.
func (r *AgentRepository) IncrementFailed(ctx context.Context, tx pgx.Tx, agentID string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE agents
		 SET tasks_failed = tasks_failed + 1, current_streak = 0
		 WHERE id = $1`,
		agentID,
	)
	if err != nil {
		return fmt.Errorf("increment failed for agent %s: %w", agentID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}

// IncrementPosted bumps the posted counter.
func (r *AgentRepository) IncrementPosted(ctx context.Context, tx pgx.Tx, agentID string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE agents SET tasks_posted = tasks_posted + 1 WHERE id = $1`,
		agentID,
	)
	if err != nil {
		return fmt.Errorf("increment posted for agent %s: %w", agentID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}

// ResetStreak zeroes the agent's zero-failure streak without touching
// the failed counter.
func (r *AgentRepository) ResetStreak(ctx context.Context, tx pgx.Tx, agentID string) error {
	_, err := tx.Exec(ctx,
		`UPDATE agents SET current_streak = 0 WHERE id = $1`,
		agentID,
	)
	if err != nil {
		return fmt.Errorf("reset streak for agent %s: %w", agentID, err)
	}
	return nil
}

// IncrementReviews bumps the giver's reviews_given and the receiver's
// reviews_received counters.
func (r *AgentRepository) IncrementReviews(ctx context.Context, tx pgx.Tx, giverID, receiverID string) error {
	if _, err := tx.Exec(ctx,
		`UPDATE agents SET reviews_given = reviews_given + 1 WHERE id = $1`,
		giverID,
	); err != nil {
		return fmt.Errorf("increment reviews_given for agent %s: %w", giverID, err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE agents SET reviews_received = reviews_received + 1 WHERE id = $1`,
		receiverID,
	); err != nil {
		return fmt.Errorf("increment reviews_received for agent %s: %w", receiverID, err)
	}
	return nil
}

// IncrementEndorsements bumps the endorsement counter.
func (r *AgentRepository) IncrementEndorsements(ctx context.Context, tx pgx.Tx, agentID string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE agents SET endorsements = endorsements + 1 WHERE id = $1`,
		agentID,
	)
	if err != nil {
		return fmt.Errorf("increment endorsements for agent %s: %w", agentID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAgentNotFound
	}
	return nil
}

// ReputationRank returns the agent's 1-based rank ordered by reputation
// descending.
func (r *AgentRepository) ReputationRank(ctx context.Context, agentID string) (int, error) {
	var rank int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) + 1 FROM agents
		 WHERE is_active AND reputation > (SELECT reputation FROM agents WHERE id = $1)`,
		agentID,
	).Scan(&rank)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrAgentNotFound
		}
		return 0, fmt.Errorf("query reputation rank for agent %s: %w", agentID, err)
	}
	return rank, nil
}
