package handler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"OnShift/internal/middleware"
	"OnShift/internal/model/dto"
	"OnShift/internal/service"
	pkgerrors "OnShift/pkg/errors"
	"OnShift/pkg/response"
)

// requireEmployer resolves the caller and enforces the employer role,
// returning their display name for attribution. The token claim is the
// cheap first gate; the service re-verifies against the database.
func requireEmployer(ctx context.Context, c *app.RequestContext) (string, bool) {
	workerID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("worker ID not found in context"))
		return "", false
	}

	if !middleware.IsEmployer(ctx, c) {
		response.Error(ctx, c, pkgerrors.EmployerOnly)
		return "", false
	}

	name, err := service.Team().RequireEmployer(ctx, workerID)
	if err != nil {
		response.Error(ctx, c, err)
		return "", false
	}
	return name, true
}

// CreateWorker provisions a new employee account.
// POST /v1/team/members
func CreateWorker(ctx context.Context, c *app.RequestContext) {
	if _, ok := requireEmployer(ctx, c); !ok {
		return
	}

	var req dto.CreateWorkerRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.Team().CreateWorker(ctx, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetTeamStatus returns the live team table.
// GET /v1/team/status
func GetTeamStatus(ctx context.Context, c *app.RequestContext) {
	if _, ok := requireEmployer(ctx, c); !ok {
		return
	}

	result, err := service.Team().GetTeamStatus(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// AssignTask assigns a task to a team member.
// POST /v1/team/members/:worker_id/tasks
func AssignTask(ctx context.Context, c *app.RequestContext) {
	assignedBy, ok := requireEmployer(ctx, c)
	if !ok {
		return
	}

	var req dto.AssignTaskRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	targetWorkerID := c.Param("worker_id")
	id, err := service.Task().AssignTask(ctx, targetWorkerID, assignedBy, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{"task_id": id})
}

// GetStatusDistribution backs the status donut chart.
// GET /v1/team/analytics/status-distribution
func GetStatusDistribution(ctx context.Context, c *app.RequestContext) {
	if _, ok := requireEmployer(ctx, c); !ok {
		return
	}

	result, err := service.Team().GetStatusDistribution(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetTotalHours backs the hours-per-employee bar chart.
// GET /v1/team/analytics/total-hours
func GetTotalHours(ctx context.Context, c *app.RequestContext) {
	if _, ok := requireEmployer(ctx, c); !ok {
		return
	}

	result, err := service.Team().GetTotalHours(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// GetDailyHours backs the daily hours trend.
// GET /v1/team/analytics/daily-hours?days=N
func GetDailyHours(ctx context.Context, c *app.RequestContext) {
	if _, ok := requireEmployer(ctx, c); !ok {
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))

	result, err := service.Team().GetDailyHours(ctx, days)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}
