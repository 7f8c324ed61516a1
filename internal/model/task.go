package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// TaskStatus applies to assigned tasks only; the worker's own log
// entries have no status.
type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
)

// TaskLogEntry is one item in a worker's append-only daily task log.
type TaskLogEntry struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// AssignedTask is created by an employer; only its status is mutated,
// and only by the assigned worker.
type AssignedTask struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Timestamp   time.Time  `json:"timestamp"`
	Status      TaskStatus `json:"status"`
	AssignedBy  string     `json:"assigned_by"` // employer public ID
}

// TaskLogEntries is stored as a JSONB array on the time record.
type TaskLogEntries []TaskLogEntry

func (t TaskLogEntries) Value() (driver.Value, error) {
	if t == nil {
		t = TaskLogEntries{}
	}
	return json.Marshal(t)
}

func (t *TaskLogEntries) Scan(value interface{}) error {
	return scanJSONB(value, t)
}

// AssignedTasks is stored as a JSONB array on the time record.
type AssignedTasks []AssignedTask

func (t AssignedTasks) Value() (driver.Value, error) {
	if t == nil {
		t = AssignedTasks{}
	}
	return json.Marshal(t)
}

func (t *AssignedTasks) Scan(value interface{}) error {
	return scanJSONB(value, t)
}

func scanJSONB(value, dest interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", value)
	}
}
