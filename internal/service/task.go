package service

import (
	"context"
	"sync"

	"OnShift/internal/model"
	"OnShift/internal/model/dto"
	"OnShift/pkg/metrics"
	"OnShift/utils"
)

var (
	taskService *TaskService
	taskOnce    sync.Once
)

func Task() *TaskService {
	taskOnce.Do(func() {
		taskService = &TaskService{}
	})
	return taskService
}

type TaskService struct{}

// LogTask appends a note to the worker's own task log.
func (s *TaskService) LogTask(ctx context.Context, workerID string, req *dto.LogTaskRequest) (string, error) {
	id, err := utils.ParseWorkerID(workerID)
	if err != nil {
		return "", err
	}

	return TimeClock().engine.LogTask(ctx, id, req.Description)
}

// ListLoggedTasks returns the worker's task log, newest last.
func (s *TaskService) ListLoggedTasks(ctx context.Context, workerID string) (*dto.TaskListData, error) {
	id, err := utils.ParseWorkerID(workerID)
	if err != nil {
		return nil, err
	}

	rec, _, err := TimeClock().engine.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks := make([]dto.TaskItem, 0, len(rec.TaskLog))
	for _, entry := range rec.TaskLog {
		tasks = append(tasks, dto.TaskItem{
			ID:          entry.ID,
			Description: entry.Description,
			Timestamp:   entry.Timestamp,
		})
	}
	return &dto.TaskListData{Tasks: tasks}, nil
}

// ListAssignedTasks returns the tasks employers assigned to the worker.
func (s *TaskService) ListAssignedTasks(ctx context.Context, workerID string) (*dto.TaskListData, error) {
	id, err := utils.ParseWorkerID(workerID)
	if err != nil {
		return nil, err
	}

	rec, _, err := TimeClock().engine.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.TaskListData{Tasks: assignedTaskItems(rec.AssignedTasks)}, nil
}

// AssignTask adds a pending task to the target worker's list,
// attributed to the assigning employer.
func (s *TaskService) AssignTask(ctx context.Context, targetWorkerID, assignedBy string, req *dto.AssignTaskRequest) (string, error) {
	id, err := utils.ParseWorkerID(targetWorkerID)
	if err != nil {
		return "", err
	}

	return TimeClock().engine.AssignTask(ctx, id, req.Description, assignedBy)
}

// CompleteTask marks one assigned task completed.
func (s *TaskService) CompleteTask(ctx context.Context, workerID, taskID string) error {
	id, err := utils.ParseWorkerID(workerID)
	if err != nil {
		return err
	}

	if err := TimeClock().engine.CompleteTask(ctx, id, taskID); err != nil {
		return err
	}
	metrics.RecordTaskCompleted(ctx)
	return nil
}

func assignedTaskItems(tasks model.AssignedTasks) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, dto.TaskItem{
			ID:          task.ID,
			Description: task.Description,
			Timestamp:   task.Timestamp,
			Status:      string(task.Status),
			AssignedBy:  task.AssignedBy,
		})
	}
	return items
}
