package timeclock

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"OnShift/internal/model"
	pkgerrors "OnShift/pkg/errors"
)

type stalledProvider struct{}

func (stalledProvider) CurrentPosition(ctx context.Context) (model.GeoPoint, error) {
	<-ctx.Done()
	return model.GeoPoint{}, ctx.Err()
}

func newTestEngine(t *testing.T, start time.Time) (*Engine, *MemoryStore, *time.Time) {
	t.Helper()

	now := start
	store := NewMemoryStore()
	store.Seed(clockedOutRecord(1))

	var seq int
	eng := NewEngine(store, office, 30, 10*time.Second,
		WithClock(func() time.Time { return now }),
		WithTaskIDs(func() string {
			seq++
			return fmt.Sprintf("task-%d", seq)
		}),
	)
	return eng, store, &now
}

func TestEngineClockInAndOut(t *testing.T) {
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	eng, store, now := newTestEngine(t, start)
	ctx := context.Background()

	rec, dm, err := eng.ClockIn(ctx, 1, StaticProvider{Point: pointNorthOf(office, 10)})
	require.NoError(t, err)
	assert.Equal(t, 10, dm)
	assert.Equal(t, model.StatusClockedIn, rec.Status)

	stored, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusClockedIn, stored.Status)
	require.NotNil(t, stored.SessionStart)

	*now = start.Add(3700 * time.Second)
	rec, session, err := eng.ClockOut(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, int64(3_700_000), session.DurationMs)
	assert.Equal(t, model.StatusClockedOut, rec.Status)

	stored, err = store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3_700_000), stored.AccumulatedMsToday)
	assert.InDelta(t, 3_700_000.0/3_600_000.0, stored.TotalHours, 1e-9)
	assert.Nil(t, stored.SessionStart)

	sessions := store.Sessions()
	require.Len(t, sessions, 1)
	assert.Equal(t, int64(3_700_000), sessions[0].DurationMs)
}

func TestEngineClockOutIdempotentAgainstStore(t *testing.T) {
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	eng, store, now := newTestEngine(t, start)
	ctx := context.Background()

	_, _, err := eng.ClockIn(ctx, 1, StaticProvider{Point: office})
	require.NoError(t, err)

	*now = start.Add(time.Hour)
	_, session, err := eng.ClockOut(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, session)

	// Duplicate delivery, e.g. the unload handler firing after the
	// user already clocked out.
	*now = start.Add(2 * time.Hour)
	_, session, err = eng.ClockOut(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, session)

	stored, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3_600_000), stored.AccumulatedMsToday)
	assert.Len(t, store.Sessions(), 1)
}

func TestEngineClockInGeofenceRejection(t *testing.T) {
	eng, store, _ := newTestEngine(t, time.Now())
	ctx := context.Background()

	_, dm, err := eng.ClockIn(ctx, 1, StaticProvider{Point: pointNorthOf(office, 250)})
	var gfErr *GeofenceError
	require.ErrorAs(t, err, &gfErr)
	assert.Equal(t, 250, dm)

	stored, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusClockedOut, stored.Status)
}

func TestEngineClockInSensorTimeout(t *testing.T) {
	store := NewMemoryStore()
	store.Seed(clockedOutRecord(1))
	eng := NewEngine(store, office, 30, 20*time.Millisecond)

	_, _, err := eng.ClockIn(context.Background(), 1, stalledProvider{})
	var locErr *LocationError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, ReasonTimeout, locErr.Reason)
}

func TestEngineClockInFailedSensor(t *testing.T) {
	eng, _, _ := newTestEngine(t, time.Now())

	_, _, err := eng.ClockIn(context.Background(), 1, FailedProvider{Reason: ReasonPermissionDenied})
	var locErr *LocationError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, ReasonPermissionDenied, locErr.Reason)
}

func TestEngineBreakPausesAccrual(t *testing.T) {
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	eng, store, now := newTestEngine(t, start)
	ctx := context.Background()

	_, _, err := eng.ClockIn(ctx, 1, StaticProvider{Point: office})
	require.NoError(t, err)

	*now = start.Add(time.Hour)
	rec, err := eng.StartBreak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOnBreak, rec.Status)

	// Half an hour of break, then back to work for thirty minutes.
	*now = start.Add(90 * time.Minute)
	rec, err = eng.EndBreak(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusClockedIn, rec.Status)

	*now = start.Add(2 * time.Hour)
	_, session, err := eng.ClockOut(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, session)

	stored, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(5_400_000), stored.AccumulatedMsToday)
	assert.Len(t, store.Sessions(), 2)
}

func TestEngineSnapshotLiveTotal(t *testing.T) {
	start := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	eng, store, now := newTestEngine(t, start)
	ctx := context.Background()

	require.NoError(t, store.IncrementTotals(ctx, 1, 10_000, 10.0/3600.0))
	_, _, err := eng.ClockIn(ctx, 1, StaticProvider{Point: office})
	require.NoError(t, err)

	*now = start.Add(5 * time.Second)
	_, liveMs, err := eng.Snapshot(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(15_000), liveMs)

	// Snapshot never writes.
	stored, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(10_000), stored.AccumulatedMsToday)
}

func TestEngineResetDayPreservesTotalHours(t *testing.T) {
	eng, store, _ := newTestEngine(t, time.Now())
	ctx := context.Background()

	require.NoError(t, store.IncrementTotals(ctx, 1, 28_800_000, 8.0))

	require.NoError(t, eng.ResetDay(ctx, 1))

	stored, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stored.AccumulatedMsToday)
	assert.Equal(t, 8.0, stored.TotalHours)
}

func TestEngineResetDayBanksOpenSession(t *testing.T) {
	start := time.Date(2026, 8, 30, 22, 0, 0, 0, time.UTC)
	eng, store, now := newTestEngine(t, start)
	ctx := context.Background()

	_, _, err := eng.ClockIn(ctx, 1, StaticProvider{Point: office})
	require.NoError(t, err)

	*now = start.Add(2 * time.Hour)
	require.NoError(t, eng.ResetDay(ctx, 1))

	stored, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, model.StatusClockedOut, stored.Status)
	assert.Equal(t, int64(0), stored.AccumulatedMsToday)
	assert.InDelta(t, 2.0, stored.TotalHours, 1e-9)
	assert.Len(t, store.Sessions(), 1)
}

func TestEngineTaskFlow(t *testing.T) {
	eng, store, _ := newTestEngine(t, time.Now())
	ctx := context.Background()

	logID, err := eng.LogTask(ctx, 1, "counted stock")
	require.NoError(t, err)
	assert.Equal(t, "task-1", logID)

	assignedID, err := eng.AssignTask(ctx, 1, "Restock aisle four", "Priya")
	require.NoError(t, err)
	require.NoError(t, eng.CompleteTask(ctx, 1, assignedID))

	stored, err := store.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, stored.TaskLog, 1)
	require.Len(t, stored.AssignedTasks, 1)
	assert.Equal(t, model.TaskStatusCompleted, stored.AssignedTasks[0].Status)
}

func TestEngineUnknownWorker(t *testing.T) {
	eng, _, _ := newTestEngine(t, time.Now())

	_, _, err := eng.ClockIn(context.Background(), 99, StaticProvider{Point: office})
	assert.True(t, errors.Is(err, pkgerrors.WorkerNotFound))
}

func TestMemoryStoreWatchNotifies(t *testing.T) {
	store := NewMemoryStore()
	store.Seed(clockedOutRecord(1))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan model.SessionStatus, 1)
	require.NoError(t, store.Watch(ctx, 1, func(rec *model.WorkerTimeRecord) {
		changes <- rec.Status
	}))

	require.NoError(t, store.Update(ctx, 1, map[string]interface{}{
		"status": model.StatusClockedIn,
	}))

	select {
	case status := <-changes:
		assert.Equal(t, model.StatusClockedIn, status)
	case <-time.After(time.Second):
		t.Fatal("no change notification")
	}
}
