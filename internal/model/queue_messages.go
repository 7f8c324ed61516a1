package model

// SessionEndingMessage is the best-effort clock-out signal. Clients
// fire it on tab close or app backgrounding; delivery is not
// guaranteed and the consumer's clock-out is idempotent, so a
// duplicate or a late user-initiated clock-out never double-counts.
type SessionEndingMessage struct {
	MessageID  string `json:"message_id"`
	WorkerID   int64  `json:"worker_id"`   // public ID
	Reason     string `json:"reason"`      // tab_close, backgrounded, logout
	SignaledAt string `json:"signaled_at"` // RFC3339
}

// MissedClockOutMessage asks the worker process to send a reminder SMS
// to a worker whose session has been open past the configured limit.
type MissedClockOutMessage struct {
	MessageID    string `json:"message_id"`
	WorkerID     int64  `json:"worker_id"`
	Phone        string `json:"phone,omitempty"`
	OpenSinceUTC string `json:"open_since_utc"`
	DelaySeconds int    `json:"delay_seconds"`
}

// DailyResetMessage marks one worker's day-boundary reset, published
// by the scheduler so resets survive a scheduler restart mid-sweep.
type DailyResetMessage struct {
	MessageID string `json:"message_id"`
	WorkerID  int64  `json:"worker_id"`
	ResetDate string `json:"reset_date"` // 2006-01-02, worker-local
}
