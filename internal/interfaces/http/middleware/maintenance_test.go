package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chatforge/backend/internal/domain/settings"
	"github.com/chatforge/backend/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubMaintenanceReader struct {
	settings *settings.MaintenanceSettings
	err      error
	calls    int
}

func (r *stubMaintenanceReader) Maintenance(_ context.Context) (*settings.MaintenanceSettings, error) {
	r.calls++
	return r.settings, r.err
}

func newGateRouter(settingsCache cache.SettingsCache, reader MaintenanceReader, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if role != "" {
			c.Set(JWTRoleKey, role)
		}
		c.Next()
	})
	r.Use(MaintenanceGate(settingsCache, reader, zap.NewNop()))
	r.GET("/probe", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestMaintenanceGate(t *testing.T) {
	t.Run("disabled passes through", func(t *testing.T) {
		reader := &stubMaintenanceReader{settings: settings.DefaultMaintenanceSettings()}
		router := newGateRouter(cache.NewInMemorySettingsCache(zap.NewNop()), reader, "")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("enabled rejects anonymous with message", func(t *testing.T) {
		enabled := settings.DefaultMaintenanceSettings()
		enabled.Enabled = true
		enabled.Message = "Back at noon"
		reader := &stubMaintenanceReader{settings: enabled}
		router := newGateRouter(cache.NewInMemorySettingsCache(zap.NewNop()), reader, "")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "MAINTENANCE_MODE")
		assert.Contains(t, w.Body.String(), "Back at noon")
	})

	t.Run("enabled admits allowlisted role", func(t *testing.T) {
		enabled := settings.DefaultMaintenanceSettings()
		enabled.Enabled = true
		reader := &stubMaintenanceReader{settings: enabled}
		router := newGateRouter(cache.NewInMemorySettingsCache(zap.NewNop()), reader, "admin")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("second request served from cache", func(t *testing.T) {
		reader := &stubMaintenanceReader{settings: settings.DefaultMaintenanceSettings()}
		router := newGateRouter(cache.NewInMemorySettingsCache(zap.NewNop()), reader, "")

		for range 2 {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		assert.Equal(t, 1, reader.calls)
	})

	t.Run("settings read failure fails open", func(t *testing.T) {
		reader := &stubMaintenanceReader{err: errors.New("store down")}
		router := newGateRouter(cache.NewInMemorySettingsCache(zap.NewNop()), reader, "")

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
