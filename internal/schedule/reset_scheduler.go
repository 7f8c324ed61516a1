package schedule

// Daily reset scheduler: sweeps every worker around their local
// midnight and publishes a reset message that banks any open session
// and zeroes the day's accumulated time.

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"OnShift/internal/cache"
	"OnShift/internal/model"
	"OnShift/internal/queue"
	"OnShift/internal/service"
	"OnShift/pkg/logger"
	"OnShift/utils"
)

var (
	resetOnce sync.Once
	resetInst *ResetScheduler
)

type ResetScheduler struct {
	logger    *zap.Logger
	running   bool
	runningMu sync.Mutex
}

func GetResetScheduler() *ResetScheduler {
	resetOnce.Do(func() {
		resetInst = &ResetScheduler{
			logger: logger.Logger,
		}
	})
	return resetInst
}

// SweepDayBoundaries publishes one reset message per worker whose
// local clock has crossed midnight since the last sweep. The sweep
// runs often enough that every worker is seen during their local
// midnight hour; a Redis marker keeps each reset to once per date.
func (s *ResetScheduler) SweepDayBoundaries(ctx context.Context) error {
	s.runningMu.Lock()
	if s.running {
		s.runningMu.Unlock()
		s.logger.Info("Daily reset sweep already running, skipping")
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

	workers, err := service.Team().ListWorkers(ctx)
	if err != nil {
		s.logger.Error("Failed to list workers for daily reset", zap.Error(err))
		return fmt.Errorf("failed to list workers: %w", err)
	}

	var published, skipped, failed int
	for _, w := range workers {
		loc := utils.LoadLocation(w.Timezone)
		nowLocal := startTime.In(loc)

		// Only act during the first hour of the worker's local day;
		// earlier sweeps in the same hour are deduped below.
		if nowLocal.Hour() != 0 {
			continue
		}

		date := utils.DateKey(startTime, loc)
		scheduled, err := cache.IsResetScheduled(ctx, date, w.WorkerID)
		if err != nil {
			s.logger.Warn("Failed to check reset scheduled status",
				zap.Int64("worker_id", w.WorkerID),
				zap.Error(err),
			)
			continue
		}
		if scheduled {
			skipped++
			continue
		}

		msg := model.DailyResetMessage{
			WorkerID:  w.WorkerID,
			ResetDate: date,
		}
		if err := queue.PublishDailyReset(msg); err != nil {
			s.logger.Error("Failed to publish daily reset",
				zap.Int64("worker_id", w.WorkerID),
				zap.String("reset_date", date),
				zap.Error(err),
			)
			failed++
			continue
		}

		if err := cache.MarkResetScheduled(ctx, date, w.WorkerID); err != nil {
			s.logger.Warn("Failed to mark reset scheduled after publish",
				zap.Int64("worker_id", w.WorkerID),
				zap.Error(err),
			)
		}
		published++
	}

	s.logger.Info("Daily reset sweep completed",
		zap.Duration("duration", time.Since(startTime)),
		zap.Int("published", published),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)

	if failed > 0 {
		return fmt.Errorf("daily reset sweep completed with %d failures", failed)
	}
	return nil
}
