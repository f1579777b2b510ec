package service

import (
	"context"

	"github.com/taskmarket/taskmarket/internal/domain"
	"github.com/taskmarket/taskmarket/internal/repository"
)

// GetTask returns a task with its full audit history.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*domain.Task, []*domain.TaskEvent, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	events, err := s.eventRepo.GetByTaskID(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	return task, events, nil
}

// ListTasks returns a filtered page of tasks and the total match count.
func (s *TaskService) ListTasks(ctx context.Context, filters repository.TaskListFilters) ([]*domain.Task, int, error) {
	if filters.Limit <= 0 || filters.Limit > 100 {
		filters.Limit = 50
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}
	return s.taskRepo.List(ctx, filters)
}
