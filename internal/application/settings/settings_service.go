package settings

import (
	"context"

	"github.com/chatforge/backend/internal/domain/settings"
	"github.com/chatforge/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// UpdateSecurityInput carries the security panel form
type UpdateSecurityInput struct {
	RequireTwoFactor      bool
	SessionTimeoutMinutes int
	IPAllowlist           []string
	MinPasswordLength     int
	RequirePasswordMixed  bool
}

// UpdateMaintenanceInput carries the maintenance panel form
type UpdateMaintenanceInput struct {
	Enabled      bool
	Message      string
	AllowedRoles []string
}

// Service reads and updates the two singleton settings documents. Reads
// go through the repository, which is expected to cache; updates write
// through and let the repository invalidate.
type Service struct {
	repo   settings.Repository
	logger *zap.Logger
}

// NewService creates a new settings service
func NewService(repo settings.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Security returns the current security settings
func (s *Service) Security(ctx context.Context) (*settings.SecuritySettings, error) {
	current, err := s.repo.GetSecurity(ctx)
	if err != nil {
		s.logger.Error("Failed to read security settings", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}
	return current, nil
}

// UpdateSecurity validates and persists the security panel
func (s *Service) UpdateSecurity(ctx context.Context, input UpdateSecurityInput) (*settings.SecuritySettings, error) {
	current, err := s.repo.GetSecurity(ctx)
	if err != nil {
		s.logger.Error("Failed to read security settings", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	current.RequireTwoFactor = input.RequireTwoFactor
	current.SessionTimeoutMinutes = input.SessionTimeoutMinutes
	current.IPAllowlist = input.IPAllowlist
	current.MinPasswordLength = input.MinPasswordLength
	current.RequirePasswordMixed = input.RequirePasswordMixed
	current.Touch()

	if err := current.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.SaveSecurity(ctx, current); err != nil {
		s.logger.Error("Failed to save security settings", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	s.logger.Info("Security settings updated",
		zap.Bool("two_factor", current.RequireTwoFactor),
		zap.Int("session_timeout_minutes", current.SessionTimeoutMinutes))

	return current, nil
}

// Maintenance returns the current maintenance settings
func (s *Service) Maintenance(ctx context.Context) (*settings.MaintenanceSettings, error) {
	current, err := s.repo.GetMaintenance(ctx)
	if err != nil {
		s.logger.Error("Failed to read maintenance settings", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}
	return current, nil
}

// UpdateMaintenance validates and persists the maintenance panel
func (s *Service) UpdateMaintenance(ctx context.Context, input UpdateMaintenanceInput) (*settings.MaintenanceSettings, error) {
	current, err := s.repo.GetMaintenance(ctx)
	if err != nil {
		s.logger.Error("Failed to read maintenance settings", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	current.Enabled = input.Enabled
	current.Message = input.Message
	current.AllowedRoles = input.AllowedRoles
	current.Touch()

	if err := current.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.SaveMaintenance(ctx, current); err != nil {
		s.logger.Error("Failed to save maintenance settings", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	s.logger.Info("Maintenance settings updated", zap.Bool("enabled", current.Enabled))

	return current, nil
}
