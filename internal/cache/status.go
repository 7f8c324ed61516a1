package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"OnShift/internal/model/dto"
	"OnShift/storage/redis"
)

const (
	teamStatusKey = "team:status"

	// Short TTL: the dashboard polls and tolerates slightly stale
	// data, the database does not tolerate a poll per worker per
	// second.
	teamStatusTTL = 15 * time.Second
)

// GetTeamStatus returns the cached dashboard snapshot, or (nil, nil)
// on a miss.
func GetTeamStatus(ctx context.Context) (*dto.TeamStatusData, error) {
	raw, err := redis.Client().Get(ctx, redis.Key(teamStatusKey)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team status cache: %w", err)
	}

	var data dto.TeamStatusData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode team status cache: %w", err)
	}
	return &data, nil
}

// SetTeamStatus stores the dashboard snapshot.
func SetTeamStatus(ctx context.Context, data *dto.TeamStatusData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode team status cache: %w", err)
	}
	return redis.Client().Set(ctx, redis.Key(teamStatusKey), raw, teamStatusTTL).Err()
}

// InvalidateTeamStatus drops the snapshot after any clock transition
// so the dashboard converges quickly.
func InvalidateTeamStatus(ctx context.Context) error {
	return redis.Client().Del(ctx, redis.Key(teamStatusKey)).Err()
}
