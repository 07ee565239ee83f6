package models

import (
	"github.com/chatforge/backend/internal/domain/settings"
)

// SecuritySettingsModel is the persistence model for the singleton
// security settings document. At most one row exists.
type SecuritySettingsModel struct {
	BaseModel
	RequireTwoFactor      bool   `gorm:"not null;default:false"`
	SessionTimeoutMinutes int    `gorm:"not null;default:60"`
	IPAllowlist           string `gorm:"type:text;not null;default:'[]'"`
	MinPasswordLength     int    `gorm:"not null;default:8"`
	RequirePasswordMixed  bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SecuritySettingsModel) TableName() string {
	return "security_settings"
}

// ToDomain converts the persistence model to domain SecuritySettings.
func (m *SecuritySettingsModel) ToDomain() *settings.SecuritySettings {
	return &settings.SecuritySettings{
		BaseEntity:            m.BaseModel.ToDomain(),
		RequireTwoFactor:      m.RequireTwoFactor,
		SessionTimeoutMinutes: m.SessionTimeoutMinutes,
		IPAllowlist:           unmarshalStrings(m.IPAllowlist),
		MinPasswordLength:     m.MinPasswordLength,
		RequirePasswordMixed:  m.RequirePasswordMixed,
	}
}

// FromDomain populates the persistence model from domain SecuritySettings.
func (m *SecuritySettingsModel) FromDomain(s *settings.SecuritySettings) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.RequireTwoFactor = s.RequireTwoFactor
	m.SessionTimeoutMinutes = s.SessionTimeoutMinutes
	m.IPAllowlist = marshalStrings(s.IPAllowlist)
	m.MinPasswordLength = s.MinPasswordLength
	m.RequirePasswordMixed = s.RequirePasswordMixed
}

// SecuritySettingsModelFromDomain creates a persistence model from domain settings
func SecuritySettingsModelFromDomain(s *settings.SecuritySettings) *SecuritySettingsModel {
	m := &SecuritySettingsModel{}
	m.FromDomain(s)
	return m
}

// MaintenanceSettingsModel is the persistence model for the singleton
// maintenance-mode document. At most one row exists.
type MaintenanceSettingsModel struct {
	BaseModel
	Enabled      bool   `gorm:"not null;default:false"`
	Message      string `gorm:"type:text"`
	AllowedRoles string `gorm:"type:text;not null;default:'[]'"`
}

// TableName returns the table name for GORM
func (MaintenanceSettingsModel) TableName() string {
	return "maintenance_settings"
}

// ToDomain converts the persistence model to domain MaintenanceSettings.
func (m *MaintenanceSettingsModel) ToDomain() *settings.MaintenanceSettings {
	return &settings.MaintenanceSettings{
		BaseEntity:   m.BaseModel.ToDomain(),
		Enabled:      m.Enabled,
		Message:      m.Message,
		AllowedRoles: unmarshalStrings(m.AllowedRoles),
	}
}

// FromDomain populates the persistence model from domain MaintenanceSettings.
func (m *MaintenanceSettingsModel) FromDomain(s *settings.MaintenanceSettings) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Enabled = s.Enabled
	m.Message = s.Message
	m.AllowedRoles = marshalStrings(s.AllowedRoles)
}

// MaintenanceSettingsModelFromDomain creates a persistence model from domain settings
func MaintenanceSettingsModelFromDomain(s *settings.MaintenanceSettings) *MaintenanceSettingsModel {
	m := &MaintenanceSettingsModel{}
	m.FromDomain(s)
	return m
}
