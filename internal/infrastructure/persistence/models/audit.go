package models

import (
	"github.com/chatforge/backend/internal/domain/audit"
)

// AuditEntryModel is the persistence model for audit trail entries
type AuditEntryModel struct {
	BaseModel
	Actor         string `gorm:"type:varchar(255);not null;index"`
	Action        string `gorm:"type:varchar(50);not null;index"`
	Target        string `gorm:"type:varchar(255)"`
	AffectedCount int    `gorm:"not null;default:0"`
	Detail        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the persistence model to a domain audit entry.
func (m *AuditEntryModel) ToDomain() *audit.Entry {
	return &audit.Entry{
		BaseEntity:    m.BaseModel.ToDomain(),
		Actor:         m.Actor,
		Action:        audit.Action(m.Action),
		Target:        m.Target,
		AffectedCount: m.AffectedCount,
		Detail:        m.Detail,
	}
}

// FromDomain populates the persistence model from a domain audit entry.
func (m *AuditEntryModel) FromDomain(e *audit.Entry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Actor = e.Actor
	m.Action = string(e.Action)
	m.Target = e.Target
	m.AffectedCount = e.AffectedCount
	m.Detail = e.Detail
}

// AuditEntryModelFromDomain creates a persistence model from a domain entry
func AuditEntryModelFromDomain(e *audit.Entry) *AuditEntryModel {
	m := &AuditEntryModel{}
	m.FromDomain(e)
	return m
}
