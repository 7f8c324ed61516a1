package cache

import (
	"context"
	"fmt"
	"time"

	"OnShift/storage/redis"
)

const (
	messageProcessedPrefix = "message:processed"
	reminderSentPrefix     = "reminder:sent"
	resetScheduledPrefix   = "reset:scheduled"

	processedTTL = 48 * time.Hour
	reminderTTL  = 24 * time.Hour
	resetTTL     = 48 * time.Hour
)

// TryMarkMessageProcessing atomically claims a message id via SETNX.
// Returns true on first claim, false when a duplicate delivery is
// already in flight or done.
func TryMarkMessageProcessing(ctx context.Context, messageID string, ttl time.Duration) (bool, error) {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}

	result, err := redis.Client().SetNX(ctx, key, "processing", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark message as processing: %w", err)
	}
	return result, nil
}

// UnmarkMessageProcessing releases the claim so a failed message can
// be retried.
func UnmarkMessageProcessing(ctx context.Context, messageID string) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	return redis.Client().Del(ctx, key).Err()
}

// MarkMessageProcessed upgrades the claim to completed and extends
// the TTL.
func MarkMessageProcessed(ctx context.Context, messageID string, ttl time.Duration) error {
	key := redis.Key(messageProcessedPrefix, messageID)
	if ttl <= 0 {
		ttl = processedTTL
	}
	return redis.Client().Set(ctx, key, "completed", ttl).Err()
}

// IsReminderSent reports whether a missed-clock-out reminder already
// went out to this worker today.
func IsReminderSent(ctx context.Context, date string, workerID int64) (bool, error) {
	key := redis.Key(reminderSentPrefix, date, fmt.Sprintf("%d", workerID))
	result, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check reminder sent status: %w", err)
	}
	return result > 0, nil
}

// MarkReminderSent records that today's reminder went out.
func MarkReminderSent(ctx context.Context, date string, workerID int64) error {
	key := redis.Key(reminderSentPrefix, date, fmt.Sprintf("%d", workerID))
	return redis.Client().Set(ctx, key, "1", reminderTTL).Err()
}

// IsResetScheduled reports whether this worker's day-boundary reset
// was already published for the given local date.
func IsResetScheduled(ctx context.Context, date string, workerID int64) (bool, error) {
	key := redis.Key(resetScheduledPrefix, date, fmt.Sprintf("%d", workerID))
	result, err := redis.Client().Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check reset scheduled status: %w", err)
	}
	return result > 0, nil
}

// MarkResetScheduled records that the reset message was published.
func MarkResetScheduled(ctx context.Context, date string, workerID int64) error {
	key := redis.Key(resetScheduledPrefix, date, fmt.Sprintf("%d", workerID))
	return redis.Client().Set(ctx, key, "1", resetTTL).Err()
}
