package models

import (
	"github.com/chatforge/backend/internal/domain/intake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContactMessageModel is the persistence model for contact-form submissions.
type ContactMessageModel struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(200);not null;index"`
	Subject string `gorm:"type:varchar(500)"`
	Message string `gorm:"type:text;not null"`
	Read    bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ContactMessageModel) TableName() string {
	return "contact_messages"
}

// ToDomain converts the persistence model to a domain ContactMessage entity.
func (m *ContactMessageModel) ToDomain() *intake.ContactMessage {
	return &intake.ContactMessage{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Email:      m.Email,
		Subject:    m.Subject,
		Message:    m.Message,
		Read:       m.Read,
	}
}

// FromDomain populates the persistence model from a domain ContactMessage entity.
func (m *ContactMessageModel) FromDomain(c *intake.ContactMessage) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Email = c.Email
	m.Subject = c.Subject
	m.Message = c.Message
	m.Read = c.Read
}

// ContactMessageModelFromDomain creates a new persistence model from a domain entity.
func ContactMessageModelFromDomain(c *intake.ContactMessage) *ContactMessageModel {
	m := &ContactMessageModel{}
	m.FromDomain(c)
	return m
}

// BuildRequestModel is the persistence model for website-build requests.
// SelectedFeatures is stored as JSON text for postgres/sqlite portability.
type BuildRequestModel struct {
	BaseModel
	ProjectName      string          `gorm:"type:varchar(200);not null"`
	Description      string          `gorm:"type:text"`
	BusinessType     string          `gorm:"type:varchar(100)"`
	SelectedFeatures string          `gorm:"type:text;not null;default:'[]'"`
	Timeline         string          `gorm:"type:varchar(100)"`
	Budget           string          `gorm:"type:varchar(100)"`
	Status           string          `gorm:"type:varchar(20);not null;index"`
	EstimatedCost    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CompanyID        *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (BuildRequestModel) TableName() string {
	return "build_requests"
}

// ToDomain converts the persistence model to a domain BuildRequest entity.
func (m *BuildRequestModel) ToDomain() *intake.BuildRequest {
	return &intake.BuildRequest{
		BaseEntity:       m.BaseModel.ToDomain(),
		ProjectName:      m.ProjectName,
		Description:      m.Description,
		BusinessType:     m.BusinessType,
		SelectedFeatures: unmarshalStrings(m.SelectedFeatures),
		Timeline:         m.Timeline,
		Budget:           m.Budget,
		Status:           intake.BuildRequestStatus(m.Status),
		EstimatedCost:    m.EstimatedCost,
		CompanyID:        m.CompanyID,
	}
}

// FromDomain populates the persistence model from a domain BuildRequest entity.
func (m *BuildRequestModel) FromDomain(r *intake.BuildRequest) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ProjectName = r.ProjectName
	m.Description = r.Description
	m.BusinessType = r.BusinessType
	m.SelectedFeatures = marshalStrings(r.SelectedFeatures)
	m.Timeline = r.Timeline
	m.Budget = r.Budget
	m.Status = string(r.Status)
	m.EstimatedCost = r.EstimatedCost
	m.CompanyID = r.CompanyID
}

// BuildRequestModelFromDomain creates a new persistence model from a domain entity.
func BuildRequestModelFromDomain(r *intake.BuildRequest) *BuildRequestModel {
	m := &BuildRequestModel{}
	m.FromDomain(r)
	return m
}

// TemplateModel is the persistence model for gallery templates.
type TemplateModel struct {
	BaseModel
	Name        string `gorm:"type:varchar(200);not null"`
	Category    string `gorm:"type:varchar(100);not null;index"`
	Description string `gorm:"type:text"`
	PreviewURL  string `gorm:"type:varchar(500)"`
	Features    string `gorm:"type:text;not null;default:'[]'"`
	Active      bool   `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (TemplateModel) TableName() string {
	return "templates"
}

// ToDomain converts the persistence model to a domain Template entity.
func (m *TemplateModel) ToDomain() *intake.Template {
	return &intake.Template{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Category:    m.Category,
		Description: m.Description,
		PreviewURL:  m.PreviewURL,
		Features:    unmarshalStrings(m.Features),
		Active:      m.Active,
	}
}

// FromDomain populates the persistence model from a domain Template entity.
func (m *TemplateModel) FromDomain(t *intake.Template) {
	m.FromDomainBaseEntity(t.BaseEntity)
	m.Name = t.Name
	m.Category = t.Category
	m.Description = t.Description
	m.PreviewURL = t.PreviewURL
	m.Features = marshalStrings(t.Features)
	m.Active = t.Active
}

// TemplateModelFromDomain creates a new persistence model from a domain entity.
func TemplateModelFromDomain(t *intake.Template) *TemplateModel {
	m := &TemplateModel{}
	m.FromDomain(t)
	return m
}
