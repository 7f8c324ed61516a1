package queue

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"OnShift/internal/model"
	"OnShift/pkg/logger"
	"OnShift/pkg/snowflake"
	"OnShift/storage/mq"
)

// PublishSessionEnding publishes the best-effort clock-out signal.
// Callers treat failures as logged-and-dropped: the scheduler sweep
// is the backstop for a session the signal never closes.
func PublishSessionEnding(msg model.SessionEndingMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			logger.Logger.Error("Failed to generate message ID",
				zap.Int64("worker_id", msg.WorkerID),
				zap.Error(err),
			)
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("session_end_%d", id)
	}

	if err := mq.PublishMessage(EventsExchange, SessionEndingQueue, msg); err != nil {
		logger.Logger.Error("Failed to publish session-ending message",
			zap.String("message_id", msg.MessageID),
			zap.Int64("worker_id", msg.WorkerID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published session-ending message",
		zap.String("message_id", msg.MessageID),
		zap.Int64("worker_id", msg.WorkerID),
		zap.String("reason", msg.Reason),
	)

	return nil
}

// PublishDailyReset publishes one worker's day-boundary reset.
func PublishDailyReset(msg model.DailyResetMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("daily_reset_%d", id)
	}

	if err := mq.PublishMessage(EventsExchange, DailyResetQueue, msg); err != nil {
		logger.Logger.Error("Failed to publish daily reset message",
			zap.String("message_id", msg.MessageID),
			zap.Int64("worker_id", msg.WorkerID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// PublishMissedClockOutReminder publishes a delayed reminder message.
// Delays past 24 hours are rejected, the delayed exchange does not
// support them; the scheduler re-sweeps instead.
func PublishMissedClockOutReminder(msg model.MissedClockOutMessage) error {
	if msg.MessageID == "" {
		id, err := snowflake.NextID()
		if err != nil {
			return fmt.Errorf("failed to generate message ID: %w", err)
		}
		msg.MessageID = fmt.Sprintf("reminder_%d", id)
	}

	delay := time.Duration(msg.DelaySeconds) * time.Second
	if delay > 24*time.Hour {
		return fmt.Errorf("delay %v exceeds 24 hours limit, use scheduled task instead", delay)
	}

	err := mq.PublishDelayedMessage(DelayedExchange, ReminderQueue, delay, msg)
	if err != nil {
		logger.Logger.Error("Failed to publish missed clock-out reminder",
			zap.String("message_id", msg.MessageID),
			zap.Int64("worker_id", msg.WorkerID),
			zap.Error(err),
		)
		return err
	}

	logger.Logger.Info("Published missed clock-out reminder",
		zap.String("message_id", msg.MessageID),
		zap.Int64("worker_id", msg.WorkerID),
		zap.Duration("delay", delay),
	)

	return nil
}
