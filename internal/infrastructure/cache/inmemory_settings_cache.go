package cache

import (
	"context"
	"sync"
	"time"

	"github.com/chatforge/backend/internal/domain/settings"
	"go.uber.org/zap"
)

// InMemorySettingsCache implements SettingsCache with process-local
// storage. Suitable for single-instance deployments; in a multi-node
// setup invalidations do not propagate, so the TTL is the upper bound
// on staleness.
type InMemorySettingsCache struct {
	mu          sync.RWMutex
	maintenance *settings.MaintenanceSettings
	expiresAt   time.Time
	logger      *zap.Logger
}

// NewInMemorySettingsCache creates a new in-memory settings cache
func NewInMemorySettingsCache(logger *zap.Logger) *InMemorySettingsCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemorySettingsCache{logger: logger}
}

// GetMaintenance returns the cached maintenance settings, or nil on a
// miss or after expiry
func (c *InMemorySettingsCache) GetMaintenance(ctx context.Context) (*settings.MaintenanceSettings, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.maintenance == nil || time.Now().After(c.expiresAt) {
		return nil, nil
	}
	return c.maintenance, nil
}

// SetMaintenance stores the maintenance settings with the given TTL
func (c *InMemorySettingsCache) SetMaintenance(ctx context.Context, s *settings.MaintenanceSettings, ttl time.Duration) error {
	if s == nil {
		return nil
	}
	if ttl == 0 {
		ttl = DefaultSettingsTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.maintenance = s
	c.expiresAt = time.Now().Add(ttl)
	return nil
}

// InvalidateMaintenance drops the cached maintenance settings
func (c *InMemorySettingsCache) InvalidateMaintenance(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maintenance = nil
	c.logger.Debug("maintenance settings cache invalidated")
	return nil
}

// Ensure InMemorySettingsCache implements SettingsCache
var _ SettingsCache = (*InMemorySettingsCache)(nil)
