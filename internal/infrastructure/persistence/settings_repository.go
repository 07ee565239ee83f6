package persistence

import (
	"context"
	"errors"

	"github.com/chatforge/backend/internal/domain/settings"
	"github.com/chatforge/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSettingsRepository implements settings.Repository using GORM.
// Both documents are singletons: reads take the single row and fall
// back to defaults when none has been saved yet.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// GetSecurity returns the security settings, or the defaults when the
// panel has never been saved
func (r *GormSettingsRepository) GetSecurity(ctx context.Context) (*settings.SecuritySettings, error) {
	var model models.SecuritySettingsModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings.DefaultSecuritySettings(), nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveSecurity persists the security settings document
func (r *GormSettingsRepository) SaveSecurity(ctx context.Context, s *settings.SecuritySettings) error {
	model := models.SecuritySettingsModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// GetMaintenance returns the maintenance settings, or the defaults when
// the panel has never been saved
func (r *GormSettingsRepository) GetMaintenance(ctx context.Context) (*settings.MaintenanceSettings, error) {
	var model models.MaintenanceSettingsModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return settings.DefaultMaintenanceSettings(), nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SaveMaintenance persists the maintenance settings document
func (r *GormSettingsRepository) SaveMaintenance(ctx context.Context, s *settings.MaintenanceSettings) error {
	model := models.MaintenanceSettingsModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormSettingsRepository implements settings.Repository
var _ settings.Repository = (*GormSettingsRepository)(nil)
