package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/hertz/pkg/app"

	"OnShift/internal/middleware"
	"OnShift/internal/model/dto"
	"OnShift/internal/service"
	"OnShift/internal/timeclock"
	pkgerrors "OnShift/pkg/errors"
	"OnShift/pkg/response"
)

// GetTimeClock returns the caller's record with the live hours-today
// total.
// GET /v1/time-clock
func GetTimeClock(ctx context.Context, c *app.RequestContext) {
	workerID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("worker ID not found in context"))
		return
	}

	result, err := service.TimeClock().GetTimeClock(ctx, workerID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ClockIn opens a session after the geofence check.
// POST /v1/time-clock/clock-in
func ClockIn(ctx context.Context, c *app.RequestContext) {
	workerID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("worker ID not found in context"))
		return
	}

	var req dto.ClockInRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	result, err := service.TimeClock().ClockIn(ctx, workerID, &req)
	if err != nil {
		respondClockError(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// ClockOut ends the open session. Idempotent.
// POST /v1/time-clock/clock-out
func ClockOut(ctx context.Context, c *app.RequestContext) {
	workerID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("worker ID not found in context"))
		return
	}

	result, err := service.TimeClock().ClockOut(ctx, workerID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// StartBreak banks the open session and pauses accrual.
// POST /v1/time-clock/breaks/start
func StartBreak(ctx context.Context, c *app.RequestContext) {
	workerID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("worker ID not found in context"))
		return
	}

	result, err := service.TimeClock().StartBreak(ctx, workerID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// EndBreak resumes work with a fresh session.
// POST /v1/time-clock/breaks/end
func EndBreak(ctx context.Context, c *app.RequestContext) {
	workerID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("worker ID not found in context"))
		return
	}

	result, err := service.TimeClock().EndBreak(ctx, workerID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// SignalSessionEnding queues the best-effort clock-out and returns
// 202 immediately. Clients fire this from unload handlers and cannot
// wait for or act on a real result; delivery is not guaranteed.
// POST /v1/time-clock/session-ending
func SignalSessionEnding(ctx context.Context, c *app.RequestContext) {
	workerID, ok := middleware.GetWorkerID(ctx, c)
	if !ok {
		response.Error(ctx, c, fmt.Errorf("worker ID not found in context"))
		return
	}

	var req dto.SessionEndingRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	service.TimeClock().SignalSessionEnding(ctx, workerID, req.Reason)
	response.Accepted(ctx, c, map[string]interface{}{"queued": true})
}

// respondClockError maps engine error types onto the API error codes,
// attaching the structured details each one carries.
func respondClockError(ctx context.Context, c *app.RequestContext, err error) {
	var gfErr *timeclock.GeofenceError
	if errors.As(err, &gfErr) {
		response.ErrorWithDetails(ctx, c, pkgerrors.GeofenceViolation, map[string]interface{}{
			"distance_meters":     gfErr.DistanceMeters,
			"max_distance_meters": gfErr.MaxDistanceMeters,
		})
		return
	}

	var locErr *timeclock.LocationError
	if errors.As(err, &locErr) {
		response.ErrorWithDetails(ctx, c, pkgerrors.LocationUnavailable, map[string]interface{}{
			"reason": string(locErr.Reason),
		})
		return
	}

	response.Error(ctx, c, err)
}
