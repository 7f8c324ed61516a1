package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"OnShift/config"
	"OnShift/internal/cache"
	"OnShift/internal/model"
	"OnShift/internal/model/dto"
	"OnShift/internal/queue"
	"OnShift/internal/timeclock"
	pkgerrors "OnShift/pkg/errors"
	"OnShift/pkg/logger"
	"OnShift/pkg/metrics"
	"OnShift/utils"
)

var (
	timeClockService *TimeClockService
	timeClockOnce    sync.Once
)

func TimeClock() *TimeClockService {
	timeClockOnce.Do(func() {
		cfg := config.Cfg
		timeClockService = &TimeClockService{
			engine: timeclock.NewEngine(
				gormStore{},
				model.GeoPoint{Latitude: cfg.OfficeLatitude, Longitude: cfg.OfficeLongitude},
				cfg.GeofenceRadiusM,
				time.Duration(cfg.GeoTimeoutSeconds)*time.Second,
			),
		}
	})
	return timeClockService
}

type TimeClockService struct {
	engine *timeclock.Engine
}

// transitionLockTTL bounds how long a crashed request can hold a
// worker's clock lock.
const transitionLockTTL = 10 * time.Second

// withWorkerLock serializes clock transitions per worker across
// server instances and queue consumers.
func (s *TimeClockService) withWorkerLock(ctx context.Context, workerID int64, fn func() error) error {
	lockKey := cache.WorkerLockKey(workerID)
	locked, err := cache.TryLock(ctx, lockKey, transitionLockTTL)
	if err != nil {
		logger.Logger.Warn("Failed to acquire worker lock, proceeding unlocked",
			zap.Int64("worker_id", workerID),
			zap.Error(err),
		)
		// Redis being down should not stop the clock; the store's
		// atomic increments bound what a race can corrupt.
		return fn()
	}
	if !locked {
		return pkgerrors.ConcurrentUpdate
	}
	defer func() {
		if err := cache.Unlock(ctx, lockKey); err != nil {
			logger.Logger.Warn("Failed to release worker lock",
				zap.Int64("worker_id", workerID),
				zap.Error(err),
			)
		}
	}()

	return fn()
}

// GetTimeClock returns the worker's own record with the live
// hours-today total.
func (s *TimeClockService) GetTimeClock(ctx context.Context, workerID string) (*dto.TimeClockData, error) {
	id, err := utils.ParseWorkerID(workerID)
	if err != nil {
		return nil, err
	}

	rec, liveMs, err := s.engine.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	return timeClockData(rec, liveMs), nil
}

// ClockIn validates the geofence and opens a session.
func (s *TimeClockService) ClockIn(ctx context.Context, workerID string, req *dto.ClockInRequest) (*dto.ClockInData, error) {
	id, err := utils.ParseWorkerID(workerID)
	if err != nil {
		return nil, err
	}

	provider := locationProviderFromRequest(req)

	var data *dto.ClockInData
	err = s.withWorkerLock(ctx, id, func() error {
		rec, dm, err := s.engine.ClockIn(ctx, id, provider)
		if err != nil {
			return err
		}
		data = &dto.ClockInData{
			Status:         string(rec.Status),
			SessionStart:   *rec.SessionStart,
			DistanceMeters: dm,
		}
		return nil
	})
	if err != nil {
		recordClockInFailure(ctx, err)
		return nil, err
	}

	metrics.RecordClockIn(ctx)
	s.invalidateTeamStatus(ctx)
	return data, nil
}

func recordClockInFailure(ctx context.Context, err error) {
	var gfErr *timeclock.GeofenceError
	if errors.As(err, &gfErr) {
		metrics.RecordGeofenceViolation(ctx, float64(gfErr.DistanceMeters))
		return
	}
	var locErr *timeclock.LocationError
	if errors.As(err, &locErr) {
		metrics.RecordLocationFailure(ctx, string(locErr.Reason))
	}
}

// ClockOut ends the open session. Idempotent.
func (s *TimeClockService) ClockOut(ctx context.Context, workerID string) (*dto.TimeClockData, error) {
	id, err := utils.ParseWorkerID(workerID)
	if err != nil {
		return nil, err
	}

	var (
		rec     *model.WorkerTimeRecord
		session *model.WorkSession
	)
	err = s.withWorkerLock(ctx, id, func() error {
		var innerErr error
		rec, session, innerErr = s.engine.ClockOut(ctx, id)
		return innerErr
	})
	if err != nil {
		return nil, err
	}

	if session != nil {
		metrics.RecordClockOut(ctx, float64(session.DurationMs)/1000)
	}
	s.invalidateTeamStatus(ctx)
	return timeClockData(rec, rec.AccumulatedMsToday), nil
}

// StartBreak banks the open session and pauses accrual.
func (s *TimeClockService) StartBreak(ctx context.Context, workerID string) (*dto.TimeClockData, error) {
	id, err := utils.ParseWorkerID(workerID)
	if err != nil {
		return nil, err
	}

	var rec *model.WorkerTimeRecord
	err = s.withWorkerLock(ctx, id, func() error {
		var innerErr error
		rec, innerErr = s.engine.StartBreak(ctx, id)
		return innerErr
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTeamStatus(ctx)
	return timeClockData(rec, rec.AccumulatedMsToday), nil
}

// EndBreak resumes work with a fresh session.
func (s *TimeClockService) EndBreak(ctx context.Context, workerID string) (*dto.TimeClockData, error) {
	id, err := utils.ParseWorkerID(workerID)
	if err != nil {
		return nil, err
	}

	var rec *model.WorkerTimeRecord
	err = s.withWorkerLock(ctx, id, func() error {
		var innerErr error
		rec, innerErr = s.engine.EndBreak(ctx, id)
		return innerErr
	})
	if err != nil {
		return nil, err
	}

	s.invalidateTeamStatus(ctx)
	return timeClockData(rec, rec.AccumulatedMsToday), nil
}

// SignalSessionEnding queues the best-effort clock-out. The caller
// gets a 202 regardless; a publish failure is logged and absorbed,
// the scheduler sweep closes what the signal missed.
func (s *TimeClockService) SignalSessionEnding(ctx context.Context, workerID string, reason string) {
	id, err := utils.ParseWorkerID(workerID)
	if err != nil {
		logger.Logger.Warn("Dropping session-ending signal with bad worker ID",
			zap.String("worker_id", workerID),
		)
		return
	}

	msg := model.SessionEndingMessage{
		WorkerID:   id,
		Reason:     reason,
		SignaledAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := queue.PublishSessionEnding(msg); err != nil {
		logger.Logger.Error("Failed to queue session-ending signal",
			zap.Int64("worker_id", id),
			zap.Error(err),
		)
	}
}

// ClockOutWorker is the queue-consumer entry point.
func (s *TimeClockService) ClockOutWorker(ctx context.Context, workerID int64) (bool, error) {
	var session *model.WorkSession
	err := s.withWorkerLock(ctx, workerID, func() error {
		var innerErr error
		_, session, innerErr = s.engine.ClockOut(ctx, workerID)
		return innerErr
	})
	if err != nil {
		return false, err
	}
	if session == nil {
		return false, nil
	}

	metrics.RecordClockOut(ctx, float64(session.DurationMs)/1000)
	s.invalidateTeamStatus(ctx)
	return true, nil
}

// ResetWorkerDay applies the day-boundary reset for one worker.
func (s *TimeClockService) ResetWorkerDay(ctx context.Context, workerID int64) error {
	return s.withWorkerLock(ctx, workerID, func() error {
		return s.engine.ResetDay(ctx, workerID)
	})
}

func (s *TimeClockService) invalidateTeamStatus(ctx context.Context) {
	if err := cache.InvalidateTeamStatus(ctx); err != nil {
		logger.Logger.Warn("Failed to invalidate team status cache", zap.Error(err))
	}
}

func timeClockData(rec *model.WorkerTimeRecord, liveMs int64) *dto.TimeClockData {
	return &dto.TimeClockData{
		Status:             string(rec.Status),
		SessionStart:       rec.SessionStart,
		HoursTodayMs:       liveMs,
		AccumulatedMsToday: rec.AccumulatedMsToday,
		TotalHours:         rec.TotalHours,
	}
}

// locationProviderFromRequest turns the client's reported reading or
// failure into a provider the engine can consume.
func locationProviderFromRequest(req *dto.ClockInRequest) timeclock.LocationProvider {
	if req.SensorFailure != "" {
		return timeclock.FailedProvider{Reason: timeclock.ParseFailureReason(req.SensorFailure)}
	}
	if req.Latitude == nil || req.Longitude == nil {
		return timeclock.FailedProvider{Reason: timeclock.ReasonUnsupported}
	}
	return timeclock.StaticProvider{Point: model.GeoPoint{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	}}
}
