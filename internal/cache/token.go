package cache

import (
	"context"
	"time"

	"OnShift/config"
	"OnShift/storage/redis"
)

const tokenPrefix = "token"

// SetRefreshToken stores the worker's current refresh token. Issuing
// a new pair overwrites it, which invalidates the old one.
func SetRefreshToken(ctx context.Context, workerID, refreshToken string) error {
	key := redis.Key(tokenPrefix, "refresh", workerID)
	ttl := time.Duration(config.Cfg.JWTRefreshDays) * 24 * time.Hour

	return redis.Client().Set(ctx, key, refreshToken, ttl).Err()
}

func GetRefreshToken(ctx context.Context, workerID string) (string, error) {
	key := redis.Key(tokenPrefix, "refresh", workerID)
	return redis.Client().Get(ctx, key).Result()
}

// DeleteRefreshToken revokes the refresh token on logout.
func DeleteRefreshToken(ctx context.Context, workerID string) error {
	key := redis.Key(tokenPrefix, "refresh", workerID)
	return redis.Client().Del(ctx, key).Err()
}

// ValidateRefreshTokenExists checks the presented token against the
// stored one.
func ValidateRefreshTokenExists(ctx context.Context, workerID, refreshToken string) bool {
	storedToken, err := GetRefreshToken(ctx, workerID)
	if err != nil {
		return false
	}
	return storedToken == refreshToken
}
