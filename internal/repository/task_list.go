package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/taskmarket/taskmarket/internal/domain"
)

// TaskListFilters holds all supported filters for task listing.
type TaskListFilters struct {
	Statuses    []string // Optional: filter by status
	RequesterID *string  // Optional: filter by requester
	WorkerID    *string  // Optional: filter by worker
	Unclaimed   bool     // Optional: show only tasks without a worker
	Skill       *string  // Optional: tasks requiring a given skill
	MinReward   *int64   // Optional: minimum reward
	Limit       int      // Required: page size
	Offset      int      // Required: page offset
}

// List retrieves tasks with filters and pagination, newest first.
// Returns the page of tasks and the total match count.
func (r *TaskRepository) List(ctx context.Context, filters TaskListFilters) ([]*domain.Task, int, error) {
	qb := psql.Select(taskColumns...).From("tasks")
	cb := psql.Select("COUNT(*)").From("tasks")

	apply := func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(filters.Statuses) > 0 {
			b = b.Where(sq.Eq{"status": filters.Statuses})
		}
		if filters.RequesterID != nil {
			b = b.Where(sq.Eq{"requester_id": *filters.RequesterID})
		}
		if filters.Unclaimed {
			b = b.Where(sq.Eq{"worker_id": nil})
		} else if filters.WorkerID != nil {
			b = b.Where(sq.Eq{"worker_id": *filters.WorkerID})
		}
		if filters.Skill != nil {
			b = b.Where(sq.Expr("? = ANY(skills)", *filters.Skill))
		}
		if filters.MinReward != nil {
			b = b.Where(sq.GtOrEq{"reward": *filters.MinReward})
		}
		return b
	}

	qb = apply(qb).
		OrderBy("created_at DESC").
		Limit(uint64(filters.Limit)).
		Offset(uint64(filters.Offset))
	cb = apply(cb)

	countQuery, countArgs, err := cb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build task count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build task list query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query tasks: %w", err)
	}

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}
