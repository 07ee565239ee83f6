package middleware

import (
	"context"
	"net/http"

	"github.com/chatforge/backend/internal/domain/settings"
	"github.com/chatforge/backend/internal/infrastructure/cache"
	"github.com/chatforge/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaintenanceReader supplies the current maintenance settings, normally
// the settings application service.
type MaintenanceReader interface {
	Maintenance(ctx context.Context) (*settings.MaintenanceSettings, error)
}

// MaintenanceGate rejects requests with 503 while maintenance mode is
// enabled, unless the authenticated role is on the allowlist. Settings
// are read through the cache; a read failure fails open so a broken
// settings store never locks operators out.
func MaintenanceGate(settingsCache cache.SettingsCache, reader MaintenanceReader, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		current, err := settingsCache.GetMaintenance(ctx)
		if err != nil {
			logger.Warn("Maintenance cache read failed", zap.Error(err))
		}
		if current == nil {
			current, err = reader.Maintenance(ctx)
			if err != nil {
				logger.Warn("Maintenance settings read failed, allowing request", zap.Error(err))
				c.Next()
				return
			}
			if err := settingsCache.SetMaintenance(ctx, current, cache.DefaultSettingsTTL); err != nil {
				logger.Warn("Maintenance cache write failed", zap.Error(err))
			}
		}

		if !current.Enabled {
			c.Next()
			return
		}

		role := GetJWTRole(c)
		for _, allowed := range current.AllowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		message := current.Message
		if message == "" {
			message = "Service temporarily unavailable for maintenance"
		}
		c.AbortWithStatusJSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse(dto.ErrCodeMaintenance, message))
	}
}
