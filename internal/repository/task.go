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

// taskColumns is the shared list of columns for task queries.
var taskColumns = []string{
	"id", "title", "description", "requester_id", "worker_id", "reward",
	"skills", "status", "proof", "escrow_held", "deadline_at",
	"claimed_at", "submitted_at", "completed_at", "created_at", "updated_at",
}

// TaskRepository handles database operations for tasks.
type TaskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

// scanTask scans a single row into a Task struct.
func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.RequesterID,
		&task.WorkerID,
		&task.Reward,
		&task.Skills,
		&task.Status,
		&task.Proof,
		&task.EscrowHeld,
		&task.DeadlineAt,
		&task.ClaimedAt,
		&task.SubmittedAt,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}
	return &task, nil
}

// scanTasks scans multiple rows into a slice of Task structs.
func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return tasks, nil
}

// GetByID retrieves a task by ID.
func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByID query for task: %w", err)
	}

	return scanTask(r.pool.QueryRow(ctx, query, args...))
}

// GetByIDForUpdate retrieves a task by ID with FOR UPDATE lock (within transaction).
func (r *TaskRepository) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, taskID string) (*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"id": taskID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build GetByIDForUpdate query for task %s: %w", taskID, err)
	}

	return scanTask(tx.QueryRow(ctx, query, args...))
}

// Create inserts a new task within a transaction. The created task has
// ID, CreatedAt, and UpdatedAt populated.
func (r *TaskRepository) Create(ctx context.Context, tx pgx.Tx, task *domain.Task) (*domain.Task, error) {
	if task.Skills == nil {
		task.Skills = []string{}
	}

	query, args, err := psql.
		Insert("tasks").
		Columns(
			"title", "description", "requester_id", "worker_id", "reward",
			"skills", "status", "escrow_held", "deadline_at",
		).
		Values(
			task.Title,
			task.Description,
			task.RequesterID,
			task.WorkerID,
			task.Reward,
			task.Skills,
			task.Status,
			task.EscrowHeld,
			task.DeadlineAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build Create query for task: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// ApplyTransition persists the mutable fields of a task (status, worker,
// proof, escrow flag, timestamps) guarded by the status the caller read.
// The guard makes claim and every other transition a single conditional
// update: if another caller moved the task first, no rows match and
// ErrTaskClaimConflict is returned without side effects.
func (r *TaskRepository) ApplyTransition(ctx context.Context, tx pgx.Tx, task *domain.Task, oldStatus domain.TaskStatus) error {
	query, args, err := psql.
		Update("tasks").
		Set("status", task.Status).
		Set("worker_id", task.WorkerID).
		Set("proof", task.Proof).
		Set("escrow_held", task.EscrowHeld).
		Set("claimed_at", task.ClaimedAt).
		Set("submitted_at", task.SubmittedAt).
		Set("completed_at", task.CompletedAt).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{
			"id":     task.ID,
			"status": oldStatus,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build ApplyTransition query for task %s: %w", task.ID, err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("apply task transition: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTaskClaimConflict
	}

	return nil
}

// FindExpiredClaims finds claimed tasks whose deadline has passed.
func (r *TaskRepository) FindExpiredClaims(ctx context.Context) ([]*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"status": domain.TaskStatusClaimed}).
		Where("deadline_at IS NOT NULL AND deadline_at < NOW()").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build FindExpiredClaims query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query expired claims: %w", err)
	}

	return scanTasks(rows)
}

// FindInactiveClaims finds claimed tasks past half their claim window
// that have not yet received an inactivity warning.
func (r *TaskRepository) FindInactiveClaims(ctx context.Context) ([]*domain.Task, error) {
	query, args, err := psql.
		Select(taskColumns...).
		From("tasks").
		Where(sq.Eq{"status": domain.TaskStatusClaimed}).
		Where("deadline_at IS NOT NULL AND claimed_at IS NOT NULL").
		Where("NOW() > claimed_at + (deadline_at - claimed_at) / 2").
		Where("NOW() < deadline_at").
		Where(sq.Expr(
			`NOT EXISTS (
				SELECT 1 FROM task_events e
				WHERE e.task_id = tasks.id
				  AND e.action = ?
				  AND e.created_at > tasks.claimed_at
			)`, domain.ActionInactivityNote,
		)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build FindInactiveClaims query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query inactive claims: %w", err)
	}

	return scanTasks(rows)
}
