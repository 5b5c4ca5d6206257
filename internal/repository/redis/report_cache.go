package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iamasit07/connect4-minimax/internal/service/simulation"
	"github.com/redis/go-redis/v9"
)

const latestReportKey = "simulation:latest"

// ReportCache keeps the newest simulation report as JSON under a single key.
type ReportCache struct {
	cache *RedisCache
	ttl   time.Duration
}

func NewReportCache(client *redis.Client, ttl time.Duration) *ReportCache {
	return &ReportCache{cache: NewRedisCache(client), ttl: ttl}
}

func (c *ReportCache) SetLatest(ctx context.Context, report *simulation.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return c.cache.Set(ctx, latestReportKey, data, c.ttl)
}

func (c *ReportCache) GetLatest(ctx context.Context) (*simulation.Report, error) {
	data, err := c.cache.Get(ctx, latestReportKey)
	if errors.Is(err, redis.Nil) {
		return nil, simulation.ErrNoReport
	}
	if err != nil {
		return nil, err
	}

	var report simulation.Report
	if err := json.Unmarshal([]byte(data), &report); err != nil {
		// a corrupt entry is dropped so the store gets asked next time
		c.cache.Del(ctx, latestReportKey)
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, nil
}
