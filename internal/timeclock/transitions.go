package timeclock

import (
	"math"
	"time"

	"OnShift/internal/model"
	pkgerrors "OnShift/pkg/errors"
)

const msPerHour = 3_600_000.0

// ApplyClockIn validates the geofence and opens a session on the
// record. The record is only mutated on success. Returns the distance
// to the office rounded to the nearest meter.
//
// Re-clocking in while a session is open is rejected rather than
// treated as a no-op or a sessionStart refresh: a refresh would
// silently discard accrued time and a no-op would hide client
// double-submit bugs.
func ApplyClockIn(rec *model.WorkerTimeRecord, reading, office model.GeoPoint, maxDistanceMeters float64, now time.Time) (int, error) {
	if rec.Status == model.StatusClockedIn {
		return 0, pkgerrors.ClockInAlreadyActive
	}

	d := Distance(reading, office)
	dm := int(math.Round(d))
	if d > maxDistanceMeters {
		return dm, &GeofenceError{
			DistanceMeters:    dm,
			MaxDistanceMeters: int(math.Round(maxDistanceMeters)),
		}
	}

	start := now
	rec.Status = model.StatusClockedIn
	rec.SessionStart = &start
	rec.LastClockInLat = &reading.Latitude
	rec.LastClockInLon = &reading.Longitude

	return dm, nil
}

// ApplyClockOut closes the open session, banking its duration into
// AccumulatedMsToday and TotalHours. When no session is open it does
// nothing and reports ok=false: repeated clock-outs (unload handlers,
// the session-ending consumer, a racing user click) must never
// double-count.
//
// The session duration is clamped to >= 0 to guard against clock skew
// between the recorded start and the caller's now.
func ApplyClockOut(rec *model.WorkerTimeRecord, now time.Time) (*model.WorkSession, bool) {
	session, ok := closeSession(rec, now)
	if !ok {
		return nil, false
	}
	rec.Status = model.StatusClockedOut
	return session, true
}

// ApplyStartBreak moves the worker onto a break. Break time does not
// accrue: the open session is banked exactly as a clock-out would,
// which also keeps the sessionStart-iff-clocked-in invariant.
func ApplyStartBreak(rec *model.WorkerTimeRecord, now time.Time) (*model.WorkSession, error) {
	session, ok := closeSession(rec, now)
	if !ok {
		return nil, pkgerrors.NotClockedIn
	}
	rec.Status = model.StatusOnBreak
	return session, nil
}

// ApplyEndBreak resumes work with a fresh session. No geofence
// re-check: the worker never left per the model.
func ApplyEndBreak(rec *model.WorkerTimeRecord, now time.Time) error {
	if rec.Status != model.StatusOnBreak {
		return pkgerrors.NotOnBreak
	}
	start := now
	rec.Status = model.StatusClockedIn
	rec.SessionStart = &start
	return nil
}

func closeSession(rec *model.WorkerTimeRecord, now time.Time) (*model.WorkSession, bool) {
	if rec.Status != model.StatusClockedIn || rec.SessionStart == nil {
		return nil, false
	}

	start := *rec.SessionStart
	durationMs := now.Sub(start).Milliseconds()
	if durationMs < 0 {
		durationMs = 0
	}

	rec.AccumulatedMsToday += durationMs
	rec.TotalHours += float64(durationMs) / msPerHour
	rec.SessionStart = nil

	return &model.WorkSession{
		WorkerID:   rec.WorkerID,
		StartedAt:  start,
		EndedAt:    now,
		DurationMs: durationMs,
		WorkDate:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
	}, true
}

// HoursToday returns the worker's live total for the day in
// milliseconds: banked time plus the open session's elapsed time.
// Pure and read-only; clients poll it every second while a session is
// open and it never mutates stored state.
func HoursToday(rec *model.WorkerTimeRecord, now time.Time) int64 {
	total := rec.AccumulatedMsToday
	if rec.Status == model.StatusClockedIn && rec.SessionStart != nil {
		elapsed := now.Sub(*rec.SessionStart).Milliseconds()
		if elapsed > 0 {
			total += elapsed
		}
	}
	return total
}
