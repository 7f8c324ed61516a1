package model

import "time"

// SessionStatus is the clock state enumeration. Exactly one value is
// active at any time for a given worker.
type SessionStatus string

const (
	StatusClockedIn  SessionStatus = "clocked_in"
	StatusClockedOut SessionStatus = "clocked_out"
	StatusOnBreak    SessionStatus = "on_break"
)

// GeoPoint is a latitude/longitude pair in decimal degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WorkerTimeRecord is the per-worker clock state.
//
// Invariant: SessionStart is set if and only if Status == StatusClockedIn.
// Leaving clocked_in banks the elapsed session into AccumulatedMsToday
// and TotalHours and clears SessionStart.
type WorkerTimeRecord struct {
	BaseModel
	WorkerID int64 `gorm:"uniqueIndex;not null" json:"worker_id"`

	Status       SessionStatus `gorm:"type:varchar(16);not null;default:'clocked_out';index:idx_time_records_status" json:"status"`
	SessionStart *time.Time    `gorm:"type:timestamptz" json:"session_start,omitempty"`

	// AccumulatedMsToday is the duration banked from completed sessions
	// within the current day. Reset to zero by the scheduler at the
	// worker's local day boundary.
	AccumulatedMsToday int64 `gorm:"not null;default:0" json:"accumulated_ms_today"`

	// TotalHours is the lifetime cumulative hours counter. It is
	// monotonically non-decreasing and incremented only when a session
	// closes; the daily reset never touches it.
	TotalHours float64 `gorm:"not null;default:0" json:"total_hours"`

	// Last accepted clock-in reading, kept for the employer view.
	LastClockInLat *float64 `gorm:"type:double precision" json:"last_clock_in_lat,omitempty"`
	LastClockInLon *float64 `gorm:"type:double precision" json:"last_clock_in_lon,omitempty"`

	TaskLog       TaskLogEntries `gorm:"type:jsonb;default:'[]'" json:"task_log"`
	AssignedTasks AssignedTasks  `gorm:"type:jsonb;default:'[]'" json:"assigned_tasks"`
}

func (WorkerTimeRecord) TableName() string {
	return "worker_time_records"
}

// WorkSession is one closed clocked-in interval. Rows are appended on
// every clock-out or break start and feed the daily-hours analytics.
type WorkSession struct {
	BaseModel
	WorkerID   int64     `gorm:"not null;index:idx_work_sessions_worker_date" json:"worker_id"`
	StartedAt  time.Time `gorm:"type:timestamptz;not null" json:"started_at"`
	EndedAt    time.Time `gorm:"type:timestamptz;not null" json:"ended_at"`
	DurationMs int64     `gorm:"not null" json:"duration_ms"`
	WorkDate   time.Time `gorm:"type:date;not null;index:idx_work_sessions_worker_date" json:"work_date"`
}

func (WorkSession) TableName() string {
	return "work_sessions"
}
