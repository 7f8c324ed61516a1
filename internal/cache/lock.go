package cache

import (
	"context"
	"fmt"
	"time"

	"OnShift/storage/redis"
)

const lockPrefix = "lock"

// TryLock takes a best-effort distributed lock via SETNX. Used to
// serialize clock transitions per worker across server instances and
// queue consumers.
func TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	fullKey := redis.Key(lockPrefix, key)

	result, err := redis.Client().SetNX(ctx, fullKey, 1, ttl).Result()
	if err != nil {
		return false, err
	}

	return result, nil
}

func Unlock(ctx context.Context, key string) error {
	fullKey := redis.Key(lockPrefix, key)

	return redis.Client().Del(ctx, fullKey).Err()
}

// WorkerLockKey names the per-worker clock transition lock.
func WorkerLockKey(workerID int64) string {
	return fmt.Sprintf("worker:%d", workerID)
}
