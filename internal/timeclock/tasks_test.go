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

func TestApplyLogTaskAppends(t *testing.T) {
	rec := clockedOutRecord(1)
	now := time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC)

	require.NoError(t, ApplyLogTask(rec, "t-1", "  reviewed invoices  ", now))
	require.Len(t, rec.TaskLog, 1)

	entry := rec.TaskLog[0]
	assert.Equal(t, "t-1", entry.ID)
	assert.Equal(t, "reviewed invoices", entry.Description)
	assert.Equal(t, now, entry.Timestamp)
}

func TestApplyLogTaskRejectsBlank(t *testing.T) {
	rec := clockedOutRecord(1)

	for _, desc := range []string{"", "   ", "\t\n"} {
		err := ApplyLogTask(rec, "t-1", desc, time.Now())
		require.Error(t, err)
		var def pkgerrors.Definition
		require.ErrorAs(t, err, &def)
		assert.Equal(t, pkgerrors.ValidationError.Code, def.Code)
	}
	assert.Empty(t, rec.TaskLog)
}

func TestApplyAssignTask(t *testing.T) {
	rec := clockedOutRecord(1)
	now := time.Date(2026, 8, 30, 11, 0, 0, 0, time.UTC)

	require.NoError(t, ApplyAssignTask(rec, "t-1", "Restock aisle four", "Priya", now))
	require.Len(t, rec.AssignedTasks, 1)

	task := rec.AssignedTasks[0]
	assert.Equal(t, model.TaskStatusPending, task.Status)
	assert.Equal(t, "Priya", task.AssignedBy)
	assert.Equal(t, now, task.Timestamp)
}

func TestApplyAssignTaskRejectsShortDescription(t *testing.T) {
	rec := clockedOutRecord(1)

	err := ApplyAssignTask(rec, "t-1", "door", "Priya", time.Now())
	require.Error(t, err)
	assert.Empty(t, rec.AssignedTasks)

	// Exactly at the minimum length passes.
	require.NoError(t, ApplyAssignTask(rec, "t-2", "doors", "Priya", time.Now()))
}

func TestApplyCompleteTaskTargetsOnlyMatch(t *testing.T) {
	rec := clockedOutRecord(1)
	now := time.Now()
	require.NoError(t, ApplyAssignTask(rec, "t-1", "Restock aisle four", "Priya", now))
	require.NoError(t, ApplyAssignTask(rec, "t-2", "Close out register", "Priya", now))

	require.NoError(t, ApplyCompleteTask(rec, "t-2"))

	assert.Equal(t, model.TaskStatusPending, rec.AssignedTasks[0].Status)
	assert.Equal(t, model.TaskStatusCompleted, rec.AssignedTasks[1].Status)
}

func TestApplyCompleteTaskUnknownID(t *testing.T) {
	rec := clockedOutRecord(1)
	require.NoError(t, ApplyAssignTask(rec, "t-1", "Restock aisle four", "Priya", time.Now()))

	err := ApplyCompleteTask(rec, "t-404")
	assert.True(t, errors.Is(err, pkgerrors.TaskNotFound))
	assert.Equal(t, model.TaskStatusPending, rec.AssignedTasks[0].Status)
}
