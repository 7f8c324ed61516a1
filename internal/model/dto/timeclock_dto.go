package dto

import "time"

// ClockInRequest carries the client's geolocation reading. The reading
// is optional at the wire level: a missing reading maps to the
// "unsupported" location failure, not a bind error, so the engine owns
// the error taxonomy.
type ClockInRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	AccuracyM *float64 `json:"accuracy_m"`
	// Set by clients whose geolocation acquisition failed before the
	// request was made: permission_denied, position_unavailable, timeout.
	SensorFailure string `json:"sensor_failure,omitempty"`
}

// SessionEndingRequest is the best-effort fire-and-forget clock-out
// trigger. No acknowledgment beyond 202 is given.
type SessionEndingRequest struct {
	Reason string `json:"reason"` // tab_close, backgrounded, logout
}

// TimeClockData is the worker-facing snapshot of their own record.
type TimeClockData struct {
	Status       string     `json:"status"`
	SessionStart *time.Time `json:"session_start,omitempty"`
	// HoursTodayMs is the live total: banked time plus the open
	// session's elapsed time at response time. Clients re-derive it
	// each second from session_start; this value anchors the display.
	HoursTodayMs       int64   `json:"hours_today_ms"`
	AccumulatedMsToday int64   `json:"accumulated_ms_today"`
	TotalHours         float64 `json:"total_hours"`
}

// ClockInData is returned on a successful clock-in.
type ClockInData struct {
	Status         string    `json:"status"`
	SessionStart   time.Time `json:"session_start"`
	DistanceMeters int       `json:"distance_meters"`
}
