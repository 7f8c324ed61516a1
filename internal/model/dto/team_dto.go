package dto

import "time"

// CreateWorkerRequest provisions a new employee account together with
// its zeroed time record.
type CreateWorkerRequest struct {
	Name     string `json:"name" vd:"len($)>0"`
	Email    string `json:"email" vd:"len($)>0"`
	Password string `json:"password" vd:"len($)>7"`
	Phone    string `json:"phone"`
	Timezone string `json:"timezone"`
}

type CreateWorkerData struct {
	WorkerID string `json:"worker_id"`
	Email    string `json:"email"`
}

// TeamMemberStatus is one row of the employer's live team table.
type TeamMemberStatus struct {
	WorkerID     string     `json:"worker_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Status       string     `json:"status"`
	SessionStart *time.Time `json:"session_start,omitempty"`
	HoursTodayMs int64      `json:"hours_today_ms"`
	TotalHours   float64    `json:"total_hours"`
	TaskCount    int        `json:"task_count"`
}

type TeamStatusData struct {
	Members []TeamMemberStatus `json:"members"`
	AsOf    time.Time          `json:"as_of"`
}

// StatusDistributionData backs the status donut chart.
type StatusDistributionData struct {
	ClockedIn  int `json:"clocked_in"`
	ClockedOut int `json:"clocked_out"`
	OnBreak    int `json:"on_break"`
}

// WorkerHours backs the total-hours-per-employee bar chart.
type WorkerHours struct {
	WorkerID   string  `json:"worker_id"`
	Name       string  `json:"name"`
	TotalHours float64 `json:"total_hours"`
}

type TotalHoursData struct {
	Workers []WorkerHours `json:"workers"`
}

// DailyHours is one point of the daily hours trend across the team.
type DailyHours struct {
	Date  string  `json:"date"` // 2006-01-02
	Hours float64 `json:"hours"`
}

type DailyHoursData struct {
	Days []DailyHours `json:"days"`
}
