package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/catering/backend/internal/application/report"
	"github.com/catering/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultDashboardKey is the Redis key holding the summary JSON
const DefaultDashboardKey = "catering:dashboard:summary"

// RedisDashboardCache shares the dashboard summary across instances
type RedisDashboardCache struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRedisDashboardCache connects to Redis and verifies the connection
func NewRedisDashboardCache(cfg config.RedisConfig, logger *zap.Logger) (*RedisDashboardCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisDashboardCacheWithClient(client, DefaultDashboardKey, logger), nil
}

// NewRedisDashboardCacheWithClient wraps an existing client
func NewRedisDashboardCacheWithClient(client *redis.Client, key string, logger *zap.Logger) *RedisDashboardCache {
	if key == "" {
		key = DefaultDashboardKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisDashboardCache{client: client, key: key, logger: logger}
}

// Get reads and decodes the summary; a missing key is a miss, not an error
func (c *RedisDashboardCache) Get(ctx context.Context) (*report.DashboardSummary, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard cache: %w", err)
	}

	var summary report.DashboardSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		// a corrupt entry is dropped and treated as a miss
		c.logger.Warn("discarding undecodable dashboard cache entry", zap.Error(err))
		_ = c.client.Del(ctx, c.key).Err()
		return nil, nil
	}
	return &summary, nil
}

// Set encodes and stores the summary with ttl
func (c *RedisDashboardCache) Set(ctx context.Context, summary *report.DashboardSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode dashboard summary: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write dashboard cache: %w", err)
	}
	return nil
}

// Invalidate deletes the cached summary
func (c *RedisDashboardCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate dashboard cache: %w", err)
	}
	return nil
}

// Close releases the Redis connection pool
func (c *RedisDashboardCache) Close() error {
	return c.client.Close()
}

var _ report.DashboardCache = (*RedisDashboardCache)(nil)
