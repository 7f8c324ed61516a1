package timeclock

import (
	"context"
	"time"

	"github.com/google/uuid"

	"OnShift/internal/model"
)

// Engine binds the pure transition functions to a Store and to the
// geofence parameters. It owns no worker state of its own, so a single
// Engine serves every worker.
type Engine struct {
	store      Store
	office     model.GeoPoint
	radiusM    float64
	geoTimeout time.Duration
	now        func() time.Time
	newTaskID  func() string
}

type Option func(*Engine)

// WithClock overrides the engine clock, used in tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithTaskIDs overrides task id generation, used in tests.
func WithTaskIDs(gen func() string) Option {
	return func(e *Engine) { e.newTaskID = gen }
}

func NewEngine(store Store, office model.GeoPoint, radiusM float64, geoTimeout time.Duration, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		office:     office,
		radiusM:    radiusM,
		geoTimeout: geoTimeout,
		now:        time.Now,
		newTaskID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ClockIn reads the worker's position from the provider, enforces the
// geofence and opens a session. The position read is bounded by the
// engine's geolocation timeout; a provider that does not answer in
// time fails with a timeout LocationError rather than hanging the
// request. Returns the updated record and the rounded distance to the
// office in meters.
func (e *Engine) ClockIn(ctx context.Context, workerID int64, provider LocationProvider) (*model.WorkerTimeRecord, int, error) {
	reading, err := e.currentPosition(ctx, provider)
	if err != nil {
		return nil, 0, err
	}

	rec, err := e.store.Get(ctx, workerID)
	if err != nil {
		return nil, 0, err
	}

	dm, err := ApplyClockIn(rec, reading, e.office, e.radiusM, e.now())
	if err != nil {
		return nil, dm, err
	}

	err = e.store.Update(ctx, workerID, map[string]interface{}{
		"status":            rec.Status,
		"session_start":     rec.SessionStart,
		"last_clock_in_lat": rec.LastClockInLat,
		"last_clock_in_lon": rec.LastClockInLon,
	})
	if err != nil {
		return nil, dm, err
	}
	return rec, dm, nil
}

// ClockOut ends the open session and returns the banked session, or
// nil when the worker was not clocked in. Idempotent: repeated
// deliveries of the same clock-out change nothing.
func (e *Engine) ClockOut(ctx context.Context, workerID int64) (*model.WorkerTimeRecord, *model.WorkSession, error) {
	rec, err := e.store.Get(ctx, workerID)
	if err != nil {
		return nil, nil, err
	}

	session, ok := ApplyClockOut(rec, e.now())
	if !ok {
		return rec, nil, nil
	}
	if err := e.bankSession(ctx, rec, session); err != nil {
		return nil, nil, err
	}
	return rec, session, nil
}

// StartBreak banks the open session and parks the worker on a break.
func (e *Engine) StartBreak(ctx context.Context, workerID int64) (*model.WorkerTimeRecord, error) {
	rec, err := e.store.Get(ctx, workerID)
	if err != nil {
		return nil, err
	}

	session, err := ApplyStartBreak(rec, e.now())
	if err != nil {
		return nil, err
	}
	if err := e.bankSession(ctx, rec, session); err != nil {
		return nil, err
	}
	return rec, nil
}

// EndBreak resumes work with a fresh session.
func (e *Engine) EndBreak(ctx context.Context, workerID int64) (*model.WorkerTimeRecord, error) {
	rec, err := e.store.Get(ctx, workerID)
	if err != nil {
		return nil, err
	}

	if err := ApplyEndBreak(rec, e.now()); err != nil {
		return nil, err
	}
	err = e.store.Update(ctx, workerID, map[string]interface{}{
		"status":        rec.Status,
		"session_start": rec.SessionStart,
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Snapshot returns the current record together with the live
// milliseconds worked today.
func (e *Engine) Snapshot(ctx context.Context, workerID int64) (*model.WorkerTimeRecord, int64, error) {
	rec, err := e.store.Get(ctx, workerID)
	if err != nil {
		return nil, 0, err
	}
	return rec, HoursToday(rec, e.now()), nil
}

// LogTask appends a free-form task note to the worker's own log and
// returns its id.
func (e *Engine) LogTask(ctx context.Context, workerID int64, description string) (string, error) {
	rec, err := e.store.Get(ctx, workerID)
	if err != nil {
		return "", err
	}

	id := e.newTaskID()
	if err := ApplyLogTask(rec, id, description, e.now()); err != nil {
		return "", err
	}
	err = e.store.Update(ctx, workerID, map[string]interface{}{
		"task_log": rec.TaskLog,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// AssignTask adds a pending task to the worker's assigned list,
// attributed to the assigning employer.
func (e *Engine) AssignTask(ctx context.Context, workerID int64, description, assignedBy string) (string, error) {
	rec, err := e.store.Get(ctx, workerID)
	if err != nil {
		return "", err
	}

	id := e.newTaskID()
	if err := ApplyAssignTask(rec, id, description, assignedBy, e.now()); err != nil {
		return "", err
	}
	err = e.store.Update(ctx, workerID, map[string]interface{}{
		"assigned_tasks": rec.AssignedTasks,
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// CompleteTask marks a single assigned task completed by id.
func (e *Engine) CompleteTask(ctx context.Context, workerID int64, taskID string) error {
	rec, err := e.store.Get(ctx, workerID)
	if err != nil {
		return err
	}

	if err := ApplyCompleteTask(rec, taskID); err != nil {
		return err
	}
	return e.store.Update(ctx, workerID, map[string]interface{}{
		"assigned_tasks": rec.AssignedTasks,
	})
}

// ResetDay zeroes the daily accumulator. Lifetime totals are left
// untouched. A still-open session is banked first so its time is not
// silently dropped across the boundary.
func (e *Engine) ResetDay(ctx context.Context, workerID int64) error {
	rec, err := e.store.Get(ctx, workerID)
	if err != nil {
		return err
	}

	if session, ok := ApplyClockOut(rec, e.now()); ok {
		if err := e.bankSession(ctx, rec, session); err != nil {
			return err
		}
	}
	return e.store.Update(ctx, workerID, map[string]interface{}{
		"accumulated_ms_today": int64(0),
	})
}

// bankSession persists a closed session: status and session_start via
// Update, the totals via IncrementTotals so the database applies them
// as atomic deltas rather than read-modify-write values.
func (e *Engine) bankSession(ctx context.Context, rec *model.WorkerTimeRecord, session *model.WorkSession) error {
	err := e.store.Update(ctx, rec.WorkerID, map[string]interface{}{
		"status":        rec.Status,
		"session_start": rec.SessionStart,
	})
	if err != nil {
		return err
	}
	deltaHours := float64(session.DurationMs) / msPerHour
	if err := e.store.IncrementTotals(ctx, rec.WorkerID, session.DurationMs, deltaHours); err != nil {
		return err
	}
	return e.store.AppendSession(ctx, session)
}

// currentPosition reads the provider under the geolocation timeout.
func (e *Engine) currentPosition(ctx context.Context, provider LocationProvider) (model.GeoPoint, error) {
	if provider == nil {
		return model.GeoPoint{}, &LocationError{Reason: ReasonUnsupported}
	}

	ctx, cancel := context.WithTimeout(ctx, e.geoTimeout)
	defer cancel()

	type result struct {
		point model.GeoPoint
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		point, err := provider.CurrentPosition(ctx)
		ch <- result{point: point, err: err}
	}()

	select {
	case r := <-ch:
		return r.point, r.err
	case <-ctx.Done():
		return model.GeoPoint{}, &LocationError{Reason: ReasonTimeout}
	}
}
