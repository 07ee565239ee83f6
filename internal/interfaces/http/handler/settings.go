package handler

import (
	"time"

	settingsapp "github.com/chatforge/backend/internal/application/settings"
	"github.com/chatforge/backend/internal/domain/settings"
	"github.com/chatforge/backend/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler handles the security and maintenance settings panels
type SettingsHandler struct {
	BaseHandler
	service       *settingsapp.Service
	settingsCache cache.SettingsCache
	logger        *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(service *settingsapp.Service, settingsCache cache.SettingsCache, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, settingsCache: settingsCache, logger: logger}
}

// SecuritySettingsResponse is the security panel read model
type SecuritySettingsResponse struct {
	RequireTwoFactor      bool      `json:"require_two_factor"`
	SessionTimeoutMinutes int       `json:"session_timeout_minutes"`
	IPAllowlist           []string  `json:"ip_allowlist"`
	MinPasswordLength     int       `json:"min_password_length"`
	RequirePasswordMixed  bool      `json:"require_password_mixed"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// MaintenanceSettingsResponse is the maintenance panel read model
type MaintenanceSettingsResponse struct {
	Enabled      bool      `json:"enabled"`
	Message      string    `json:"message"`
	AllowedRoles []string  `json:"allowed_roles"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateSecurityRequest is the security panel form
type UpdateSecurityRequest struct {
	RequireTwoFactor      bool     `json:"require_two_factor"`
	SessionTimeoutMinutes int      `json:"session_timeout_minutes" binding:"required,min=1"`
	IPAllowlist           []string `json:"ip_allowlist"`
	MinPasswordLength     int      `json:"min_password_length" binding:"required,min=1"`
	RequirePasswordMixed  bool     `json:"require_password_mixed"`
}

// UpdateMaintenanceRequest is the maintenance panel form
type UpdateMaintenanceRequest struct {
	Enabled      bool     `json:"enabled"`
	Message      string   `json:"message" binding:"max=1000"`
	AllowedRoles []string `json:"allowed_roles"`
}

// GetSecurity returns the current security settings
func (h *SettingsHandler) GetSecurity(c *gin.Context) {
	current, err := h.service.Security(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSecurityResponse(current))
}

// UpdateSecurity persists the security panel
func (h *SettingsHandler) UpdateSecurity(c *gin.Context) {
	var req UpdateSecurityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	updated, err := h.service.UpdateSecurity(c.Request.Context(), settingsapp.UpdateSecurityInput{
		RequireTwoFactor:      req.RequireTwoFactor,
		SessionTimeoutMinutes: req.SessionTimeoutMinutes,
		IPAllowlist:           req.IPAllowlist,
		MinPasswordLength:     req.MinPasswordLength,
		RequirePasswordMixed:  req.RequirePasswordMixed,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toSecurityResponse(updated))
}

// GetMaintenance returns the current maintenance settings
func (h *SettingsHandler) GetMaintenance(c *gin.Context) {
	current, err := h.service.Maintenance(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toMaintenanceResponse(current))
}

// UpdateMaintenance persists the maintenance panel and drops the cached
// document so the gate picks up the change immediately
func (h *SettingsHandler) UpdateMaintenance(c *gin.Context) {
	var req UpdateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	updated, err := h.service.UpdateMaintenance(c.Request.Context(), settingsapp.UpdateMaintenanceInput{
		Enabled:      req.Enabled,
		Message:      req.Message,
		AllowedRoles: req.AllowedRoles,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.settingsCache.InvalidateMaintenance(c.Request.Context()); err != nil {
		h.logger.Warn("Failed to invalidate maintenance cache", zap.Error(err))
	}

	h.Success(c, toMaintenanceResponse(updated))
}

func toSecurityResponse(s *settings.SecuritySettings) SecuritySettingsResponse {
	return SecuritySettingsResponse{
		RequireTwoFactor:      s.RequireTwoFactor,
		SessionTimeoutMinutes: s.SessionTimeoutMinutes,
		IPAllowlist:           s.IPAllowlist,
		MinPasswordLength:     s.MinPasswordLength,
		RequirePasswordMixed:  s.RequirePasswordMixed,
		UpdatedAt:             s.UpdatedAt,
	}
}

func toMaintenanceResponse(s *settings.MaintenanceSettings) MaintenanceSettingsResponse {
	return MaintenanceSettingsResponse{
		Enabled:      s.Enabled,
		Message:      s.Message,
		AllowedRoles: s.AllowedRoles,
		UpdatedAt:    s.UpdatedAt,
	}
}
