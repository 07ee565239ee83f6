// Package cache provides caching for the singleton settings documents.
// The maintenance document is read on every public request, so the
// admin panel invalidates the cache instead of letting TTLs lapse.
package cache

import (
	"context"
	"time"

	"github.com/chatforge/backend/internal/domain/settings"
)

// DefaultSettingsTTL bounds staleness when an invalidation is lost,
// for example when another instance updates the document.
const DefaultSettingsTTL = 30 * time.Second

// SettingsCache caches the maintenance settings document. Get returns
// (nil, nil) on a miss; errors are reserved for backend failures.
type SettingsCache interface {
	GetMaintenance(ctx context.Context) (*settings.MaintenanceSettings, error)
	SetMaintenance(ctx context.Context, s *settings.MaintenanceSettings, ttl time.Duration) error
	InvalidateMaintenance(ctx context.Context) error
}
