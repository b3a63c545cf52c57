package cache

import (
	"github.com/catering/backend/internal/application/report"
	"github.com/catering/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewDashboardCache returns a Redis-backed cache when Redis is enabled and
// reachable, otherwise an in-memory one. The in-memory cache is not shared
// between instances, so each instance may serve a summary up to one TTL old.
func NewDashboardCache(cfg config.RedisConfig, logger *zap.Logger) report.DashboardCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Info("redis disabled, using in-memory dashboard cache")
		return NewInMemoryDashboardCache(WithInMemoryLogger(logger))
	}

	redisCache, err := NewRedisDashboardCache(cfg, logger)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory dashboard cache",
			zap.String("addr", cfg.Addr()),
			zap.Error(err),
		)
		return NewInMemoryDashboardCache(WithInMemoryLogger(logger))
	}

	logger.Info("using redis dashboard cache", zap.String("addr", cfg.Addr()))
	return redisCache
}
