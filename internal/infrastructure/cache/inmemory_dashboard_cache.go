package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/catering/backend/internal/application/report"
	"go.uber.org/zap"
)

// cacheEntry wraps a cached value with its expiry
type cacheEntry[T any] struct {
	value     *T
	expiresAt time.Time
}

func (e *cacheEntry[T]) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// InMemoryDashboardCache keeps the dashboard summary in process memory.
// It is the fallback when Redis is disabled or unreachable.
type InMemoryDashboardCache struct {
	mu     sync.RWMutex
	entry  *cacheEntry[report.DashboardSummary]
	now    func() time.Time
	logger *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// InMemoryDashboardCacheOption configures the cache
type InMemoryDashboardCacheOption func(*InMemoryDashboardCache)

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryDashboardCacheOption {
	return func(c *InMemoryDashboardCache) {
		c.logger = logger
	}
}

// WithNow overrides the time source, used by tests
func WithNow(now func() time.Time) InMemoryDashboardCacheOption {
	return func(c *InMemoryDashboardCache) {
		c.now = now
	}
}

// NewInMemoryDashboardCache creates an empty cache
func NewInMemoryDashboardCache(opts ...InMemoryDashboardCacheOption) *InMemoryDashboardCache {
	c := &InMemoryDashboardCache{
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns a copy of the cached summary, or nil on a miss
func (c *InMemoryDashboardCache) Get(_ context.Context) (*report.DashboardSummary, error) {
	c.mu.RLock()
	entry := c.entry
	c.mu.RUnlock()

	if entry == nil || entry.expired(c.now()) {
		c.misses.Add(1)
		c.logger.Debug("dashboard cache miss")
		return nil, nil
	}
	c.hits.Add(1)
	out := *entry.value
	return &out, nil
}

// Set stores a copy of summary for ttl
func (c *InMemoryDashboardCache) Set(_ context.Context, summary *report.DashboardSummary, ttl time.Duration) error {
	if summary == nil {
		return nil
	}
	stored := *summary
	c.mu.Lock()
	c.entry = &cacheEntry[report.DashboardSummary]{value: &stored, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Invalidate drops the cached summary
func (c *InMemoryDashboardCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()
	return nil
}

// Stats returns hit and miss counters
func (c *InMemoryDashboardCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

var _ report.DashboardCache = (*InMemoryDashboardCache)(nil)
