package cache

import (
	"github.com/chatforge/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewSettingsCache creates a settings cache backed by Redis when it is
// reachable, falling back to the in-memory cache otherwise. The
// fallback keeps single-instance deployments working without Redis.
func NewSettingsCache(cfg config.RedisConfig, logger *zap.Logger) SettingsCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	redisCache, err := NewRedisSettingsCache(cfg, WithCacheLogger(logger))
	if err != nil {
		logger.Warn("Redis unavailable, using in-memory settings cache",
			zap.String("host", cfg.Host),
			zap.Error(err))
		return NewInMemorySettingsCache(logger)
	}

	logger.Info("using Redis settings cache", zap.String("host", cfg.Host))
	return redisCache
}
