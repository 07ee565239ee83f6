package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/chatforge/backend/internal/domain/settings"
	"github.com/chatforge/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const maintenanceCacheKey = "settings:maintenance"

// RedisSettingsCache implements SettingsCache using Redis, sharing
// invalidations across instances.
type RedisSettingsCache struct {
	client     *redis.Client
	ownsClient bool
	logger     *zap.Logger
}

// RedisSettingsCacheOption is a functional option for configuring the cache
type RedisSettingsCacheOption func(*RedisSettingsCache)

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisSettingsCacheOption {
	return func(c *RedisSettingsCache) {
		c.logger = logger
	}
}

// NewRedisSettingsCache creates a Redis-backed settings cache
func NewRedisSettingsCache(cfg config.RedisConfig, opts ...RedisSettingsCacheOption) (*RedisSettingsCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisSettingsCache{
		client:     client,
		ownsClient: true,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache, nil
}

// NewRedisSettingsCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisSettingsCacheWithClient(client *redis.Client, opts ...RedisSettingsCacheOption) *RedisSettingsCache {
	cache := &RedisSettingsCache{
		client:     client,
		ownsClient: false,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// GetMaintenance returns the cached maintenance settings, or nil on a miss
func (c *RedisSettingsCache) GetMaintenance(ctx context.Context) (*settings.MaintenanceSettings, error) {
	data, err := c.client.Get(ctx, maintenanceCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read maintenance settings from cache: %w", err)
	}

	var s settings.MaintenanceSettings
	if err := json.Unmarshal(data, &s); err != nil {
		// Corrupt entry, treat as a miss and drop it
		c.logger.Warn("dropping corrupt maintenance settings cache entry", zap.Error(err))
		_ = c.client.Del(ctx, maintenanceCacheKey).Err()
		return nil, nil
	}
	return &s, nil
}

// SetMaintenance stores the maintenance settings with the given TTL
func (c *RedisSettingsCache) SetMaintenance(ctx context.Context, s *settings.MaintenanceSettings, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	if ttl == 0 {
		ttl = DefaultSettingsTTL
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal maintenance settings: %w", err)
	}
	return c.client.Set(ctx, maintenanceCacheKey, data, ttl).Err()
}

// InvalidateMaintenance drops the cached maintenance settings
func (c *RedisSettingsCache) InvalidateMaintenance(ctx context.Context) error {
	if err := c.client.Del(ctx, maintenanceCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate maintenance settings cache: %w", err)
	}
	c.logger.Debug("maintenance settings cache invalidated")
	return nil
}

// Close closes the Redis client when the cache owns it
func (c *RedisSettingsCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisSettingsCache implements SettingsCache
var _ SettingsCache = (*RedisSettingsCache)(nil)
