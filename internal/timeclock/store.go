package timeclock

import (
	"context"

	"OnShift/internal/model"
)

// Store is the record persistence contract the engine writes through.
// Implementations: the gorm-backed store in internal/service and the
// in-memory store below for tests.
type Store interface {
	// Get returns the time record keyed by the worker's public ID.
	Get(ctx context.Context, workerID int64) (*model.WorkerTimeRecord, error)

	// Update applies a partial field update (column name -> value).
	Update(ctx context.Context, workerID int64, fields map[string]interface{}) error

	// IncrementTotals applies the session-close deltas atomically where
	// the backend supports it, instead of writing the whole record.
	IncrementTotals(ctx context.Context, workerID int64, deltaMs int64, deltaHours float64) error

	// AppendSession records one closed session for analytics.
	AppendSession(ctx context.Context, session *model.WorkSession) error
}

// Watcher is an optional extension: backends that can push change
// notifications deliver a snapshot after each visible change until ctx
// is cancelled. Best-effort; backends may coalesce updates.
type Watcher interface {
	Watch(ctx context.Context, workerID int64, onChange func(*model.WorkerTimeRecord)) error
}
