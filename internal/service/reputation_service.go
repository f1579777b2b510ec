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

// ReputationService owns the append-only reputation event log, the
// derived clamped score, and badge unlocks.
type ReputationService struct {
	pool      *pgxpool.Pool
	agentRepo *repository.AgentRepository
	repRepo   *repository.ReputationRepository
	badgeRepo *repository.BadgeRepository
}

// NewReputationService creates a new ReputationService.
func NewReputationService(
	pool *pgxpool.Pool,
	agentRepo *repository.AgentRepository,
	repRepo *repository.ReputationRepository,
	badgeRepo *repository.BadgeRepository,
) *ReputationService {
	return &ReputationService{
		pool:      pool,
		agentRepo: agentRepo,
		repRepo:   repRepo,
		badgeRepo: badgeRepo,
	}
}

// Record appends a scored event and applies the clamped delta to the
// agent's score inside the caller's transaction, then re-evaluates badge
// predicates. The event history is never rewritten.
func (s *ReputationService) Record(
	ctx context.Context,
	tx pgx.Tx,
	agentID string,
	eventType domain.ReputationEventType,
	multiplier float64,
	reason string,
	relatedTaskID *string,
	relatedAgentID *string,
) (*domain.ReputationEvent, error) {
	points, ok := eventType.Points()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidEvent, eventType)
	}
	delta := points * multiplier

	if _, err := s.agentRepo.ApplyReputationDelta(ctx, tx, agentID, delta); err != nil {
		return nil, err
	}

	event := &domain.ReputationEvent{
		AgentID:        agentID,
		Type:           eventType,
		Delta:          delta,
		Reason:         reason,
		RelatedTaskID:  relatedTaskID,
		RelatedAgentID: relatedAgentID,
	}
	if err := s.repRepo.Create(ctx, tx, event); err != nil {
		return nil, err
	}

	if err := s.EvaluateBadges(ctx, tx, agentID); err != nil {
		return nil, err
	}

	return event, nil
}

// RecordEvent is the standalone entry point: it wraps Record in its own
// transaction.
func (s *ReputationService) RecordEvent(
	ctx context.Context,
	agentID string,
	eventType domain.ReputationEventType,
	multiplier float64,
	reason string,
	relatedTaskID *string,
	relatedAgentID *string,
) (*domain.ReputationEvent, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	if _, err := s.agentRepo.GetByIDTx(ctx, tx, agentID); err != nil {
		return nil, err
	}

	event, err := s.Record(ctx, tx, agentID, eventType, multiplier, reason, relatedTaskID, relatedAgentID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("reputation event recorded",
		"agent_id", agentID,
		"event_type", eventType,
		"delta", event.Delta,
	)

	return event, nil
}

// EvaluateBadges checks every badge rule against a fresh stats snapshot
// and awards newly satisfied badges. Awarding is idempotent.
func (s *ReputationService) EvaluateBadges(ctx context.Context, tx pgx.Tx, agentID string) error {
	agent, err := s.agentRepo.GetByIDTx(ctx, tx, agentID)
	if err != nil {
		return err
	}
	stats := domain.SnapshotStats(agent)

	for _, rule := range domain.BadgeRules {
		if !rule.Satisfied(stats) {
			continue
		}
		awarded, err := s.badgeRepo.Award(ctx, tx, agentID, rule.Type)
		if err != nil {
			return err
		}
		if awarded {
			slog.Info("badge awarded", "agent_id", agentID, "badge", rule.Type)
		}
	}

	return nil
}

// RecomputeScore rebuilds the clamped running score from the event log.
// The stored score on the agent record is a cache of this fold; the two
// must agree for any history produced through Record.
func (s *ReputationService) RecomputeScore(ctx context.Context, agentID string) (float64, error) {
	if _, err := s.agentRepo.GetByID(ctx, agentID); err != nil {
		return 0, err
	}

	deltas, err := s.repRepo.DeltasByAgent(ctx, agentID)
	if err != nil {
		return 0, err
	}

	score := domain.ReputationInitial
	for _, d := range deltas {
		score = domain.ClampScore(score + d)
	}
	return score, nil
}

// GetTrustScore derives the trust score for an agent.
func (s *ReputationService) GetTrustScore(ctx context.Context, agentID string) (float64, error) {
	agent, err := s.agentRepo.GetByID(ctx, agentID)
	if err != nil {
		return 0, err
	}
	return agent.TrustScore(), nil
}

// GetReputationHistory returns an agent's reputation events, newest first.
func (s *ReputationService) GetReputationHistory(ctx context.Context, agentID string, limit, offset int) ([]*domain.ReputationEvent, error) {
	if _, err := s.agentRepo.GetByID(ctx, agentID); err != nil {
		return nil, err
	}
	return s.repRepo.ListByAgent(ctx, agentID, limit, offset)
}

// GetReputationRank returns the agent's 1-based rank by reputation.
func (s *ReputationService) GetReputationRank(ctx context.Context, agentID string) (int, error) {
	if _, err := s.agentRepo.GetByID(ctx, agentID); err != nil {
		return 0, err
	}
	return s.agentRepo.ReputationRank(ctx, agentID)
}

// Endorse records a skill endorsement from one agent to another.
func (s *ReputationService) Endorse(ctx context.Context, endorserID, agentID string) (*domain.ReputationEvent, error) {
	if endorserID == agentID {
		return nil, fmt.Errorf("%w: cannot endorse self", domain.ErrInvalidInput)
	}

	endorser, err := s.agentRepo.GetByID(ctx, endorserID)
	if err != nil {
		return nil, err
	}
	if !endorser.IsActive {
		return nil, domain.ErrAgentInactive
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	if err := s.agentRepo.IncrementEndorsements(ctx, tx, agentID); err != nil {
		return nil, err
	}

	event, err := s.Record(ctx, tx, agentID, domain.RepEventEndorsement, 1,
		"skill endorsement", nil, &endorserID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("agent endorsed", "agent_id", agentID, "endorser_id", endorserID)

	return event, nil
}
