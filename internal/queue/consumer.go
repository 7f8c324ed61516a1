package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"OnShift/internal/cache"
	"OnShift/internal/model"
	pkgerrors "OnShift/pkg/errors"
	"OnShift/pkg/logger"
	"OnShift/storage/mq"
)

// TimeClockService is the slice of the service layer the consumers
// need. Injected at worker startup to keep the dependency pointing
// one way.
type TimeClockService interface {
	ClockOutWorker(ctx context.Context, workerID int64) (banked bool, err error)
	ResetWorkerDay(ctx context.Context, workerID int64) error
}

// ReminderSender delivers the missed-clock-out SMS.
type ReminderSender interface {
	SendMissedClockOutReminder(ctx context.Context, msg model.MissedClockOutMessage) error
}

var (
	timeClockService TimeClockService
	reminderSender   ReminderSender
)

func SetTimeClockService(s TimeClockService) {
	timeClockService = s
}

func SetReminderSender(s ReminderSender) {
	reminderSender = s
}

// dedupe claims the message id before running fn, releases the claim
// on failure and upgrades it on success.
func dedupe(ctx context.Context, messageID string, fn func() error) error {
	claimed, err := cache.TryMarkMessageProcessing(ctx, messageID, 24*time.Hour)
	if err != nil {
		logger.Logger.Warn("Failed to check message processed status",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		// Fall through and process; a rare duplicate beats a stall.
	} else if !claimed {
		logger.Logger.Info("Message already processed or being processed, skipping",
			zap.String("message_id", messageID),
		)
		return nil
	}

	if err := fn(); err != nil {
		if unmarkErr := cache.UnmarkMessageProcessing(ctx, messageID); unmarkErr != nil {
			logger.Logger.Warn("Failed to unmark message processing",
				zap.String("message_id", messageID),
				zap.Error(unmarkErr),
			)
		}
		return err
	}

	if err := cache.MarkMessageProcessed(ctx, messageID, 48*time.Hour); err != nil {
		logger.Logger.Warn("Failed to mark message as processed",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
	return nil
}

// StartSessionEndingConsumer drains the best-effort clock-out queue.
// The service-level clock-out is idempotent, so a signal racing a
// user-initiated clock-out is harmless.
func StartSessionEndingConsumer(ctx context.Context) error {
	if timeClockService == nil {
		return fmt.Errorf("time clock service not set")
	}

	handler := func(body []byte) error {
		var msg model.SessionEndingMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return &pkgerrors.SkipMessageError{Reason: fmt.Sprintf("malformed session-ending message: %v", err)}
		}

		return dedupe(ctx, msg.MessageID, func() error {
			banked, err := timeClockService.ClockOutWorker(ctx, msg.WorkerID)
			if err != nil {
				return fmt.Errorf("failed to clock out worker %d: %w", msg.WorkerID, err)
			}
			logger.Logger.Info("Processed session-ending message",
				zap.String("message_id", msg.MessageID),
				zap.Int64("worker_id", msg.WorkerID),
				zap.String("reason", msg.Reason),
				zap.Bool("banked", banked),
			)
			return nil
		})
	}

	return mq.Consume(ctx, mq.ConsumeOptions{
		Queue:         SessionEndingQueue,
		ConsumerTag:   "session_ending_consumer",
		PrefetchCount: 10,
		Handler:       wrapSkip(handler),
	})
}

// StartDailyResetConsumer applies day-boundary resets.
func StartDailyResetConsumer(ctx context.Context) error {
	if timeClockService == nil {
		return fmt.Errorf("time clock service not set")
	}

	handler := func(body []byte) error {
		var msg model.DailyResetMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return &pkgerrors.SkipMessageError{Reason: fmt.Sprintf("malformed daily reset message: %v", err)}
		}

		return dedupe(ctx, msg.MessageID, func() error {
			if err := timeClockService.ResetWorkerDay(ctx, msg.WorkerID); err != nil {
				return fmt.Errorf("failed to reset day for worker %d: %w", msg.WorkerID, err)
			}
			logger.Logger.Info("Processed daily reset",
				zap.String("message_id", msg.MessageID),
				zap.Int64("worker_id", msg.WorkerID),
				zap.String("reset_date", msg.ResetDate),
			)
			return nil
		})
	}

	return mq.Consume(ctx, mq.ConsumeOptions{
		Queue:         DailyResetQueue,
		ConsumerTag:   "daily_reset_consumer",
		PrefetchCount: 50,
		Handler:       wrapSkip(handler),
	})
}

// StartReminderConsumer sends missed-clock-out reminder SMS.
func StartReminderConsumer(ctx context.Context) error {
	if reminderSender == nil {
		return fmt.Errorf("reminder sender not set")
	}

	handler := func(body []byte) error {
		var msg model.MissedClockOutMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return &pkgerrors.SkipMessageError{Reason: fmt.Sprintf("malformed reminder message: %v", err)}
		}

		return dedupe(ctx, msg.MessageID, func() error {
			if err := reminderSender.SendMissedClockOutReminder(ctx, msg); err != nil {
				return fmt.Errorf("failed to send reminder to worker %d: %w", msg.WorkerID, err)
			}
			return nil
		})
	}

	return mq.Consume(ctx, mq.ConsumeOptions{
		Queue:         ReminderQueue,
		ConsumerTag:   "reminder_consumer",
		PrefetchCount: 10,
		Handler:       wrapSkip(handler),
	})
}

// StartAllConsumers runs every consumer until ctx is cancelled.
func StartAllConsumers(ctx context.Context) {
	var wg sync.WaitGroup

	consumers := []struct {
		name  string
		start func(context.Context) error
	}{
		{"session_ending", StartSessionEndingConsumer},
		{"daily_reset", StartDailyResetConsumer},
		{"reminder", StartReminderConsumer},
	}

	for _, c := range consumers {
		wg.Add(1)
		go func(name string, start func(context.Context) error) {
			defer wg.Done()
			if err := start(ctx); err != nil && ctx.Err() == nil {
				logger.Logger.Error("Consumer exited with error",
					zap.String("consumer", name),
					zap.Error(err),
				)
			}
		}(c.name, c.start)
	}

	wg.Wait()
}

// wrapSkip turns SkipMessageError into an ack so poison messages do
// not loop through the queue forever.
func wrapSkip(handler mq.MessageHandler) mq.MessageHandler {
	return func(body []byte) error {
		err := handler(body)
		if pkgerrors.IsSkipMessageError(err) {
			logger.Logger.Warn("Skipping message", zap.Error(err))
			return nil
		}
		return err
	}
}
