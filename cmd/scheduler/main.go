package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"OnShift/config"
	"OnShift/internal/queue"
	"OnShift/internal/schedule"
	"OnShift/pkg/logger"
	"OnShift/pkg/snowflake"
	"OnShift/storage"
)

const (
	resetSweepInterval   = 5 * time.Minute
	overdueSweepInterval = 15 * time.Minute
	sweepTimeout         = 5 * time.Minute
)

func main() {
	logger.Init()
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Logger.Info("Scheduler received shutdown signal",
			zap.String("signal", sig.String()),
		)
		cancel()
	}()

	if err := storage.Init(); err != nil {
		logger.Logger.Fatal("Failed to initialize storage for scheduler", zap.Error(err))
	}
	defer storage.Close()

	if err := queue.EnsureTopology(); err != nil {
		logger.Logger.Fatal("Failed to declare queue topology", zap.Error(err))
	}

	if err := snowflake.Init(config.Cfg.SnowflakeMachineID, config.Cfg.SnowflakeDataCenter); err != nil {
		logger.Logger.Fatal("Failed to initialize snowflake for scheduler", zap.Error(err))
	}

	logger.Logger.Info("Scheduler service starting",
		zap.String("service", "onshift-scheduler"),
		zap.String("environment", config.Cfg.Environment),
	)

	go runResetLoop(ctx)
	go runOverdueLoop(ctx)

	<-ctx.Done()

	logger.Logger.Info("Scheduler service shutting down gracefully")
}

// runResetLoop sweeps day boundaries every few minutes. The sweep
// itself only acts on workers inside their local midnight hour and
// dedupes per date, so the short interval just bounds reset latency.
func runResetLoop(ctx context.Context) {
	s := schedule.GetResetScheduler()

	ticker := time.NewTicker(resetSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
			if err := s.SweepDayBoundaries(runCtx); err != nil {
				logger.Logger.Error("Daily reset sweep failed", zap.Error(err))
			}
			cancel()
		}
	}
}

// runOverdueLoop queues reminders for sessions left open too long.
func runOverdueLoop(ctx context.Context) {
	s := schedule.GetOverdueScheduler()

	ticker := time.NewTicker(overdueSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runCtx, cancel := context.WithTimeout(ctx, sweepTimeout)
			if err := s.SweepOverdueSessions(runCtx); err != nil {
				logger.Logger.Error("Overdue session sweep failed", zap.Error(err))
			}
			cancel()
		}
	}
}
