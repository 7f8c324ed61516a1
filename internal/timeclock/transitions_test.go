package timeclock

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"OnShift/internal/model"
	pkgerrors "OnShift/pkg/errors"
)

func clockedOutRecord(workerID int64) *model.WorkerTimeRecord {
	return &model.WorkerTimeRecord{
		WorkerID: workerID,
		Status:   model.StatusClockedOut,
	}
}

func TestApplyClockInInsideGeofence(t *testing.T) {
	rec := clockedOutRecord(1)
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

	dm, err := ApplyClockIn(rec, pointNorthOf(office, 12), office, 30, now)
	require.NoError(t, err)

	assert.Equal(t, 12, dm)
	assert.Equal(t, model.StatusClockedIn, rec.Status)
	require.NotNil(t, rec.SessionStart)
	assert.Equal(t, now, *rec.SessionStart)
	require.NotNil(t, rec.LastClockInLat)
	require.NotNil(t, rec.LastClockInLon)
}

func TestApplyClockInAtOfficeCenter(t *testing.T) {
	rec := clockedOutRecord(1)

	dm, err := ApplyClockIn(rec, office, office, 30, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, dm)
}

func TestApplyClockInAtGeofenceBoundary(t *testing.T) {
	// A reading exactly at the maximum distance is still inside the
	// fence; only readings beyond it are rejected.
	reading := pointNorthOf(office, 30)
	d := Distance(reading, office)

	rec := clockedOutRecord(1)
	dm, err := ApplyClockIn(rec, reading, office, d, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 30, dm)
	assert.Equal(t, model.StatusClockedIn, rec.Status)

	rec = clockedOutRecord(2)
	_, err = ApplyClockIn(rec, reading, office, d-0.001, time.Now())
	var gfErr *GeofenceError
	require.ErrorAs(t, err, &gfErr)
	assert.Equal(t, model.StatusClockedOut, rec.Status)
}

func TestApplyClockInOutsideGeofence(t *testing.T) {
	rec := clockedOutRecord(1)

	_, err := ApplyClockIn(rec, pointNorthOf(office, 31), office, 30, time.Now())
	var gfErr *GeofenceError
	require.ErrorAs(t, err, &gfErr)

	assert.Equal(t, 31, gfErr.DistanceMeters)
	assert.Equal(t, 30, gfErr.MaxDistanceMeters)

	// A rejected clock-in leaves the record untouched.
	assert.Equal(t, model.StatusClockedOut, rec.Status)
	assert.Nil(t, rec.SessionStart)
}

func TestApplyClockInWhileClockedIn(t *testing.T) {
	rec := clockedOutRecord(1)
	_, err := ApplyClockIn(rec, office, office, 30, time.Now())
	require.NoError(t, err)

	_, err = ApplyClockIn(rec, office, office, 30, time.Now())
	assert.True(t, errors.Is(err, pkgerrors.ClockInAlreadyActive))
}

func TestApplyClockOutBanksDuration(t *testing.T) {
	rec := clockedOutRecord(1)
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	_, err := ApplyClockIn(rec, office, office, 30, start)
	require.NoError(t, err)

	end := start.Add(3700 * time.Second)
	session, banked := ApplyClockOut(rec, end)
	require.True(t, banked)

	assert.Equal(t, int64(3_700_000), rec.AccumulatedMsToday)
	assert.InDelta(t, 3_700_000.0/3_600_000.0, rec.TotalHours, 1e-9)
	assert.Equal(t, model.StatusClockedOut, rec.Status)
	assert.Nil(t, rec.SessionStart)

	require.NotNil(t, session)
	assert.Equal(t, int64(1), session.WorkerID)
	assert.Equal(t, start, session.StartedAt)
	assert.Equal(t, end, session.EndedAt)
	assert.Equal(t, int64(3_700_000), session.DurationMs)
}

func TestApplyClockOutIsIdempotent(t *testing.T) {
	rec := clockedOutRecord(1)
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	_, err := ApplyClockIn(rec, office, office, 30, start)
	require.NoError(t, err)

	_, banked := ApplyClockOut(rec, start.Add(time.Hour))
	require.True(t, banked)
	accumulated, total := rec.AccumulatedMsToday, rec.TotalHours

	session, banked := ApplyClockOut(rec, start.Add(2*time.Hour))
	assert.False(t, banked)
	assert.Nil(t, session)
	assert.Equal(t, accumulated, rec.AccumulatedMsToday)
	assert.Equal(t, total, rec.TotalHours)
}

func TestApplyClockOutClampsNegativeDuration(t *testing.T) {
	rec := clockedOutRecord(1)
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	_, err := ApplyClockIn(rec, office, office, 30, start)
	require.NoError(t, err)

	// Clock skew: wall time moved backwards during the session.
	session, banked := ApplyClockOut(rec, start.Add(-time.Minute))
	require.True(t, banked)
	assert.Equal(t, int64(0), session.DurationMs)
	assert.Equal(t, int64(0), rec.AccumulatedMsToday)
	assert.Equal(t, 0.0, rec.TotalHours)
}

func TestApplyStartBreakBanksLikeClockOut(t *testing.T) {
	rec := clockedOutRecord(1)
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	_, err := ApplyClockIn(rec, office, office, 30, start)
	require.NoError(t, err)

	session, err := ApplyStartBreak(rec, start.Add(30*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, model.StatusOnBreak, rec.Status)
	assert.Nil(t, rec.SessionStart)
	assert.Equal(t, int64(1_800_000), rec.AccumulatedMsToday)
	assert.Equal(t, int64(1_800_000), session.DurationMs)
}

func TestApplyStartBreakRequiresOpenSession(t *testing.T) {
	rec := clockedOutRecord(1)
	_, err := ApplyStartBreak(rec, time.Now())
	assert.True(t, errors.Is(err, pkgerrors.NotClockedIn))
}

func TestApplyEndBreakResumesWithFreshSession(t *testing.T) {
	rec := clockedOutRecord(1)
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	_, err := ApplyClockIn(rec, office, office, 30, start)
	require.NoError(t, err)
	_, err = ApplyStartBreak(rec, start.Add(time.Hour))
	require.NoError(t, err)

	resume := start.Add(90 * time.Minute)
	require.NoError(t, ApplyEndBreak(rec, resume))

	assert.Equal(t, model.StatusClockedIn, rec.Status)
	require.NotNil(t, rec.SessionStart)
	assert.Equal(t, resume, *rec.SessionStart)
	// Break time itself never accrues.
	assert.Equal(t, int64(3_600_000), rec.AccumulatedMsToday)
}

func TestApplyEndBreakRequiresBreak(t *testing.T) {
	rec := clockedOutRecord(1)
	err := ApplyEndBreak(rec, time.Now())
	assert.True(t, errors.Is(err, pkgerrors.NotOnBreak))
}

func TestHoursTodayWhileClockedOut(t *testing.T) {
	rec := clockedOutRecord(1)
	rec.AccumulatedMsToday = 10_000
	assert.Equal(t, int64(10_000), HoursToday(rec, time.Now()))
}

func TestHoursTodayIncludesOpenSession(t *testing.T) {
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	rec := &model.WorkerTimeRecord{
		WorkerID:           1,
		Status:             model.StatusClockedIn,
		SessionStart:       &start,
		AccumulatedMsToday: 10_000,
	}

	now := start.Add(5 * time.Second)
	assert.Equal(t, int64(15_000), HoursToday(rec, now))

	// Read-only: polling must not mutate the record.
	assert.Equal(t, int64(10_000), rec.AccumulatedMsToday)
	assert.Equal(t, &start, rec.SessionStart)
}

func TestHoursTodayIgnoresSkewedStart(t *testing.T) {
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	rec := &model.WorkerTimeRecord{
		WorkerID:           1,
		Status:             model.StatusClockedIn,
		SessionStart:       &start,
		AccumulatedMsToday: 7_500,
	}
	assert.Equal(t, int64(7_500), HoursToday(rec, start.Add(-time.Second)))
}
