package handler

import (
	"context"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"

	"OnShift/internal/middleware"
	"OnShift/internal/model/dto"
	"OnShift/internal/service"
	"OnShift/pkg/response"
)

// ListLoggedTasks returns the caller's own task log.
// GET /v1/tasks/log
func ListLoggedTasks(ctx context.Context, c *app.RequestContext) {
	workerID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("worker ID not found in context"))
		return
	}

	result, err := service.Task().ListLoggedTasks(ctx, workerID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// LogTask appends a note to the caller's task log.
// POST /v1/tasks/log
func LogTask(ctx context.Context, c *app.RequestContext) {
	workerID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("worker ID not found in context"))
		return
	}

	var req dto.LogTaskRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	id, err := service.Task().LogTask(ctx, workerID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"task_id": id})
}

// ListAssignedTasks returns the tasks assigned to the caller.
// GET /v1/tasks/assigned
func ListAssignedTasks(ctx context.Context, c *app.RequestContext) {
	workerID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("worker ID not found in context"))
		return
	}

	result, err := service.Task().ListAssignedTasks(ctx, workerID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// CompleteTask marks one of the caller's assigned tasks completed.
// POST /v1/tasks/assigned/:task_id/complete
func CompleteTask(ctx context.Context, c *app.RequestContext) {
	workerID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("worker ID not found in context"))
		return
	}

	taskID := c.Param("task_id")
	if err := service.Task().CompleteTask(ctx, workerID, taskID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"task_id": taskID, "status": "completed"})
}
