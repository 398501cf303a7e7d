package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/lodge-registration/internal/domain"
	"github.com/spec-kit/lodge-registration/internal/persistence"
)

const statsCacheKey = "lodge:application_stats"

// redisStatsCache keeps dashboard counters in Redis with a short TTL so the
// polling admin dashboard does not hit Postgres on every refresh. A cache
// miss or Redis outage just falls through to the store.
type redisStatsCache struct {
	redis  *persistence.Redis
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisStatsCache builds a StatsCache over the shared Redis client.
func NewRedisStatsCache(redis *persistence.Redis, ttl time.Duration, logger *zap.Logger) StatsCache {
	return &redisStatsCache{redis: redis, ttl: ttl, logger: logger}
}

func (c *redisStatsCache) Get(ctx context.Context) (*domain.ApplicationStats, bool) {
	if c.redis == nil || c.redis.Client == nil {
		return nil, false
	}
	raw, err := c.redis.Client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var stats domain.ApplicationStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.logger.Warn("discarding malformed cached stats", zap.Error(err))
		return nil, false
	}
	return &stats, true
}

func (c *redisStatsCache) Set(ctx context.Context, stats *domain.ApplicationStats) {
	if c.redis == nil || c.redis.Client == nil || stats == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.redis.Client.Set(ctx, statsCacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("unable to cache stats", zap.Error(err))
	}
}

func (c *redisStatsCache) Invalidate(ctx context.Context) {
	if c.redis == nil || c.redis.Client == nil {
		return
	}
	if err := c.redis.Client.Del(ctx, statsCacheKey).Err(); err != nil {
		c.logger.Warn("unable to invalidate cached stats", zap.Error(err))
	}
}
