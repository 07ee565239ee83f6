package settings

import (
	"context"

	"github.com/chatforge/backend/internal/domain/shared"
)

// SecuritySettings is the singleton security configuration document
// edited from the admin security panel.
type SecuritySettings struct {
	shared.BaseEntity
	RequireTwoFactor      bool
	SessionTimeoutMinutes int
	IPAllowlist           []string
	MinPasswordLength     int
	RequirePasswordMixed  bool
}

// DefaultSecuritySettings returns the settings applied before an
// operator has ever saved the panel.
func DefaultSecuritySettings() *SecuritySettings {
	return &SecuritySettings{
		BaseEntity:            shared.NewBaseEntity(),
		RequireTwoFactor:      false,
		SessionTimeoutMinutes: 60,
		MinPasswordLength:     8,
		RequirePasswordMixed:  true,
	}
}

// Validate checks the settings before they are persisted
func (s *SecuritySettings) Validate() error {
	if s.SessionTimeoutMinutes < 5 || s.SessionTimeoutMinutes > 24*60 {
		return shared.NewDomainError("INVALID_TIMEOUT", "Session timeout must be between 5 minutes and 24 hours")
	}
	if s.MinPasswordLength < 8 || s.MinPasswordLength > 128 {
		return shared.NewDomainError("INVALID_PASSWORD_LENGTH", "Minimum password length must be between 8 and 128")
	}
	return nil
}

// MaintenanceSettings is the singleton maintenance-mode document.
// When enabled, the public site serves the configured message while
// roles on the allowlist keep dashboard access.
type MaintenanceSettings struct {
	shared.BaseEntity
	Enabled      bool
	Message      string
	AllowedRoles []string
}

// DefaultMaintenanceSettings returns maintenance mode switched off
func DefaultMaintenanceSettings() *MaintenanceSettings {
	return &MaintenanceSettings{
		BaseEntity:   shared.NewBaseEntity(),
		Enabled:      false,
		Message:      "We are performing scheduled maintenance. Please check back shortly.",
		AllowedRoles: []string{"admin"},
	}
}

// Validate checks the settings before they are persisted
func (s *MaintenanceSettings) Validate() error {
	if s.Enabled && len(s.Message) == 0 {
		return shared.NewDomainError("INVALID_MESSAGE", "Maintenance message cannot be empty while enabled")
	}
	if len(s.Message) > 1000 {
		return shared.NewDomainError("INVALID_MESSAGE", "Maintenance message cannot exceed 1000 characters")
	}
	return nil
}

// Repository persists the two singleton settings documents. Get always
// succeeds: when no row exists yet the defaults are returned.
type Repository interface {
	GetSecurity(ctx context.Context) (*SecuritySettings, error)
	SaveSecurity(ctx context.Context, settings *SecuritySettings) error
	GetMaintenance(ctx context.Context) (*MaintenanceSettings, error)
	SaveMaintenance(ctx context.Context, settings *MaintenanceSettings) error
}
