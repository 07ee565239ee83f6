package cache

import (
	"context"
	"testing"
	"time"

	"github.com/chatforge/backend/internal/domain/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemorySettingsCache(t *testing.T) {
	ctx := context.Background()

	t.Run("returns nil on cold cache", func(t *testing.T) {
		cache := NewInMemorySettingsCache(nil)

		got, err := cache.GetMaintenance(ctx)

		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("returns stored settings before expiry", func(t *testing.T) {
		cache := NewInMemorySettingsCache(nil)
		stored := settings.DefaultMaintenanceSettings()
		stored.Enabled = true
		stored.Message = "Back soon."

		require.NoError(t, cache.SetMaintenance(ctx, stored, time.Minute))

		got, err := cache.GetMaintenance(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Enabled)
		assert.Equal(t, "Back soon.", got.Message)
	})

	t.Run("expires after TTL", func(t *testing.T) {
		cache := NewInMemorySettingsCache(nil)

		require.NoError(t, cache.SetMaintenance(ctx, settings.DefaultMaintenanceSettings(), time.Millisecond))
		time.Sleep(5 * time.Millisecond)

		got, err := cache.GetMaintenance(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		cache := NewInMemorySettingsCache(nil)

		require.NoError(t, cache.SetMaintenance(ctx, settings.DefaultMaintenanceSettings(), time.Minute))
		require.NoError(t, cache.InvalidateMaintenance(ctx))

		got, err := cache.GetMaintenance(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ignores nil settings", func(t *testing.T) {
		cache := NewInMemorySettingsCache(nil)

		require.NoError(t, cache.SetMaintenance(ctx, nil, time.Minute))

		got, err := cache.GetMaintenance(ctx)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
