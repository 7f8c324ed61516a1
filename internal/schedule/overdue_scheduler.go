package schedule

// Overdue session scheduler: finds workers whose session has been open
// longer than the configured limit and queues a reminder SMS.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"OnShift/config"
	"OnShift/internal/cache"
	"OnShift/internal/model"
	"OnShift/internal/queue"
	"OnShift/internal/service"
	"OnShift/pkg/logger"
	"OnShift/utils"
)

var (
	overdueOnce sync.Once
	overdueInst *OverdueScheduler
)

type OverdueScheduler struct {
	logger    *zap.Logger
	running   bool
	runningMu sync.Mutex
}

func GetOverdueScheduler() *OverdueScheduler {
	overdueOnce.Do(func() {
		overdueInst = &OverdueScheduler{
			logger: logger.Logger,
		}
	})
	return overdueInst
}

// SweepOverdueSessions publishes a reminder for every session open
// past MISSED_CLOCKOUT_HOURS. The notification consumer dedupes per
// worker per date, but the sweep also checks the sent marker so a
// long-open session does not flood the queue on every run.
func (s *OverdueScheduler) SweepOverdueSessions(ctx context.Context) error {
	s.runningMu.Lock()
	if s.running {
		s.runningMu.Unlock()
		s.logger.Info("Overdue session sweep already running, skipping")
		return nil
	}
	s.running = true
	s.runningMu.Unlock()

	defer func() {
		s.runningMu.Lock()
		s.running = false
		s.runningMu.Unlock()
	}()

	startTime := time.Now()

	cutoff := startTime.Add(-time.Duration(config.Cfg.MissedClockOutHours) * time.Hour)
	overdue, err := service.Team().ListOverdueSessions(ctx, cutoff)
	if err != nil {
		s.logger.Error("Failed to list overdue sessions", zap.Error(err))
		return fmt.Errorf("failed to list overdue sessions: %w", err)
	}

	if len(overdue) == 0 {
		s.logger.Debug("No overdue sessions found")
		return nil
	}

	s.logger.Info("Found overdue sessions",
		zap.Int("count", len(overdue)),
		zap.Time("cutoff", cutoff),
	)

	today := utils.DateKey(startTime, time.UTC)

	var published, skipped, failed int
	for _, session := range overdue {
		sent, err := cache.IsReminderSent(ctx, today, session.WorkerID)
		if err != nil {
			s.logger.Warn("Failed to check reminder sent status",
				zap.Int64("worker_id", session.WorkerID),
				zap.Error(err),
			)
		} else if sent {
			skipped++
			continue
		}

		msg := model.MissedClockOutMessage{
			WorkerID:     session.WorkerID,
			Phone:        session.Phone,
			OpenSinceUTC: session.SessionStart.UTC().Format(time.RFC3339),
		}
		if err := queue.PublishMissedClockOutReminder(msg); err != nil {
			s.logger.Error("Failed to publish missed clock-out reminder",
				zap.Int64("worker_id", session.WorkerID),
				zap.Error(err),
			)
			failed++
			continue
		}
		published++
	}

	s.logger.Info("Overdue session sweep completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("published", published),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)

	if failed > 0 {
		return fmt.Errorf("overdue sweep completed with %d failures", failed)
	}
	return nil
}
