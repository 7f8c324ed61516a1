package timeclock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"OnShift/internal/model"
	pkgerrors "OnShift/pkg/errors"
)

// MemoryStore is an in-memory Store used in tests and as the reference
// implementation of the store contract. It deliberately replaces the
// shared-mutable-slice style of backend fake: all state is private
// behind the interface.
type MemoryStore struct {
	mu        sync.RWMutex
	records   map[int64]*model.WorkerTimeRecord
	sessions  []model.WorkSession
	watchers  map[int64]map[int]func(*model.WorkerTimeRecord)
	watcherID int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:  make(map[int64]*model.WorkerTimeRecord),
		watchers: make(map[int64]map[int]func(*model.WorkerTimeRecord)),
	}
}

// Seed installs a record, keyed by its WorkerID.
func (s *MemoryStore) Seed(rec *model.WorkerTimeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.records[rec.WorkerID] = &cp
}

func (s *MemoryStore) Get(ctx context.Context, workerID int64) (*model.WorkerTimeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[workerID]
	if !ok {
		return nil, pkgerrors.WorkerNotFound
	}
	cp := *rec
	return &cp, nil
}

func (s *MemoryStore) Update(ctx context.Context, workerID int64, fields map[string]interface{}) error {
	s.mu.Lock()
	rec, ok := s.records[workerID]
	if !ok {
		s.mu.Unlock()
		return pkgerrors.WorkerNotFound
	}

	for column, value := range fields {
		if err := applyField(rec, column, value); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	rec.UpdatedAt = time.Now()
	snapshot := *rec
	watchers := make([]func(*model.WorkerTimeRecord), 0, len(s.watchers[workerID]))
	for _, w := range s.watchers[workerID] {
		watchers = append(watchers, w)
	}
	s.mu.Unlock()

	for _, onChange := range watchers {
		onChange(&snapshot)
	}
	return nil
}

func (s *MemoryStore) IncrementTotals(ctx context.Context, workerID int64, deltaMs int64, deltaHours float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[workerID]
	if !ok {
		return pkgerrors.WorkerNotFound
	}
	rec.AccumulatedMsToday += deltaMs
	rec.TotalHours += deltaHours
	return nil
}

func (s *MemoryStore) AppendSession(ctx context.Context, session *model.WorkSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = append(s.sessions, *session)
	return nil
}

// Sessions returns a copy of the recorded closed sessions.
func (s *MemoryStore) Sessions() []model.WorkSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.WorkSession{}, s.sessions...)
}

func (s *MemoryStore) Watch(ctx context.Context, workerID int64, onChange func(*model.WorkerTimeRecord)) error {
	s.mu.Lock()
	s.watcherID++
	id := s.watcherID
	if s.watchers[workerID] == nil {
		s.watchers[workerID] = make(map[int]func(*model.WorkerTimeRecord))
	}
	s.watchers[workerID][id] = onChange
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.watchers[workerID], id)
		s.mu.Unlock()
	}()
	return nil
}

func applyField(rec *model.WorkerTimeRecord, column string, value interface{}) error {
	switch column {
	case "status":
		switch v := value.(type) {
		case model.SessionStatus:
			rec.Status = v
		case string:
			rec.Status = model.SessionStatus(v)
		default:
			return fmt.Errorf("unexpected type %T for status", value)
		}
	case "session_start":
		switch v := value.(type) {
		case *time.Time:
			rec.SessionStart = v
		case time.Time:
			rec.SessionStart = &v
		case nil:
			rec.SessionStart = nil
		default:
			return fmt.Errorf("unexpected type %T for session_start", value)
		}
	case "accumulated_ms_today":
		v, ok := value.(int64)
		if !ok {
			return fmt.Errorf("unexpected type %T for accumulated_ms_today", value)
		}
		rec.AccumulatedMsToday = v
	case "last_clock_in_lat":
		rec.LastClockInLat = asFloatPtr(value)
	case "last_clock_in_lon":
		rec.LastClockInLon = asFloatPtr(value)
	case "task_log":
		v, ok := value.(model.TaskLogEntries)
		if !ok {
			return fmt.Errorf("unexpected type %T for task_log", value)
		}
		rec.TaskLog = v
	case "assigned_tasks":
		v, ok := value.(model.AssignedTasks)
		if !ok {
			return fmt.Errorf("unexpected type %T for assigned_tasks", value)
		}
		rec.AssignedTasks = v
	default:
		return fmt.Errorf("unknown column %q", column)
	}
	return nil
}

func asFloatPtr(value interface{}) *float64 {
	switch v := value.(type) {
	case *float64:
		return v
	case float64:
		return &v
	default:
		return nil
	}
}
