package timeclock

import (
	"strings"
	"time"

	"OnShift/internal/model"
	pkgerrors "OnShift/pkg/errors"
)

// assignedTaskMinLen is a data-quality guard on employer-assigned
// descriptions, not a security boundary.
const assignedTaskMinLen = 5

// ApplyLogTask appends one entry to the worker's append-only task log.
// The description must be non-empty after trimming.
func ApplyLogTask(rec *model.WorkerTimeRecord, id, description string, now time.Time) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return pkgerrors.WithField("description")
	}

	rec.TaskLog = append(rec.TaskLog, model.TaskLogEntry{
		ID:          id,
		Description: description,
		Timestamp:   now,
	})
	return nil
}

// ApplyAssignTask appends a pending task created by an employer.
func ApplyAssignTask(rec *model.WorkerTimeRecord, id, description, assignedBy string, now time.Time) error {
	description = strings.TrimSpace(description)
	if len(description) < assignedTaskMinLen {
		return pkgerrors.WithField("description")
	}

	rec.AssignedTasks = append(rec.AssignedTasks, model.AssignedTask{
		ID:          id,
		Description: description,
		Timestamp:   now,
		Status:      model.TaskStatusPending,
		AssignedBy:  assignedBy,
	})
	return nil
}

// ApplyCompleteTask marks exactly the matching task completed.
// Every other field of that task and every other task is untouched.
func ApplyCompleteTask(rec *model.WorkerTimeRecord, taskID string) error {
	for i := range rec.AssignedTasks {
		if rec.AssignedTasks[i].ID == taskID {
			rec.AssignedTasks[i].Status = model.TaskStatusCompleted
			return nil
		}
	}
	return pkgerrors.TaskNotFound
}
