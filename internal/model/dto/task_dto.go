package dto

import "time"

type LogTaskRequest struct {
	Description string `json:"description"`
}

type AssignTaskRequest struct {
	Description string `json:"description"`
}

// TaskItem renders both log entries and assigned tasks; Status and
// AssignedBy are empty for plain log entries.
type TaskItem struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status,omitempty"`
	AssignedBy  string    `json:"assigned_by,omitempty"`
}

type TaskListData struct {
	Tasks []TaskItem `json:"tasks"`
}
