package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskmarket/taskmarket/internal/domain"
)

// TaskEventRepository handles database operations for the task audit log.
type TaskEventRepository struct {
	pool *pgxpool.Pool
}

// NewTaskEventRepository creates a new TaskEventRepository.
func NewTaskEventRepository(pool *pgxpool.Pool) *TaskEventRepository {
	return &TaskEventRepository{pool: pool}
}

// Create appends a new audit entry within a transaction.
func (r *TaskEventRepository) Create(ctx context.Context, tx pgx.Tx, event *domain.TaskEvent) error {
	query, args, err := psql.
		Insert("task_events").
		Columns("task_id", "actor_id", "action", "old_status", "new_status", "detail").
		Values(event.TaskID, event.ActorID, event.Action, event.OldStatus, event.NewStatus, event.Detail).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("create task event: %w", err)
	}

	return nil
}

// GetByTaskID retrieves all audit entries for a task, oldest first.
func (r *TaskEventRepository) GetByTaskID(ctx context.Context, taskID string) ([]*domain.TaskEvent, error) {
	query, args, err := psql.
		Select("id", "task_id", "actor_id", "action", "old_status", "new_status", "detail", "created_at").
		From("task_events").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query task events: %w", err)
	}
	defer rows.Close()

	var events []*domain.TaskEvent
	for rows.Next() {
		var event domain.TaskEvent
		err := rows.Scan(
			&event.ID,
			&event.TaskID,
			&event.ActorID,
			&event.Action,
			&event.OldStatus,
			&event.NewStatus,
			&event.Detail,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan task event: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return events, nil
}

// CountByAction counts audit entries of a given action for a task,
// within a transaction so callers can guard one-shot actions.
func (r *TaskEventRepository) CountByAction(ctx context.Context, tx pgx.Tx, taskID string, action domain.TaskAction) (int, error) {
	query, args, err := psql.
		Select("COUNT(*)").
		From("task_events").
		Where(sq.Eq{"task_id": taskID, "action": action}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count task events: %w", err)
	}
	return count, nil
}
