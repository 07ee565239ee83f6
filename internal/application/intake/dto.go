package intake

import (
	"time"

	"github.com/chatforge/backend/internal/domain/intake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContactMessageDTO is the read model for a contact-form submission
type ContactMessageDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// BuildRequestDTO is the read model for a website-build request
type BuildRequestDTO struct {
	ID               uuid.UUID       `json:"id"`
	ProjectName      string          `json:"projectName"`
	Description      string          `json:"description"`
	BusinessType     string          `json:"businessType"`
	SelectedFeatures []string        `json:"selectedFeatures"`
	Timeline         string          `json:"timeline"`
	Budget           string          `json:"budget"`
	Status           string          `json:"status"`
	EstimatedCost    decimal.Decimal `json:"estimatedCost"`
	CompanyID        *uuid.UUID      `json:"companyId,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// FeatureDTO is a catalog entry exposed to the public intake form
type FeatureDTO struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// TemplateDTO is the read model for a gallery template
type TemplateDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	PreviewURL  string    `json:"previewUrl"`
	Features    []string  `json:"features"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toContactMessageDTO(m *intake.ContactMessage) ContactMessageDTO {
	return ContactMessageDTO{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

func toContactMessageDTOs(messages []intake.ContactMessage) []ContactMessageDTO {
	dtos := make([]ContactMessageDTO, len(messages))
	for i := range messages {
		dtos[i] = toContactMessageDTO(&messages[i])
	}
	return dtos
}

func toBuildRequestDTO(r *intake.BuildRequest) BuildRequestDTO {
	return BuildRequestDTO{
		ID:               r.ID,
		ProjectName:      r.ProjectName,
		Description:      r.Description,
		BusinessType:     r.BusinessType,
		SelectedFeatures: r.SelectedFeatures,
		Timeline:         r.Timeline,
		Budget:           r.Budget,
		Status:           string(r.Status),
		EstimatedCost:    r.EstimatedCost,
		CompanyID:        r.CompanyID,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func toBuildRequestDTOs(requests []intake.BuildRequest) []BuildRequestDTO {
	dtos := make([]BuildRequestDTO, len(requests))
	for i := range requests {
		dtos[i] = toBuildRequestDTO(&requests[i])
	}
	return dtos
}

func toTemplateDTO(t *intake.Template) TemplateDTO {
	return TemplateDTO{
		ID:          t.ID,
		Name:        t.Name,
		Category:    t.Category,
		Description: t.Description,
		PreviewURL:  t.PreviewURL,
		Features:    t.Features,
		Active:      t.Active,
		CreatedAt:   t.CreatedAt,
	}
}

func toTemplateDTOs(templates []intake.Template) []TemplateDTO {
	dtos := make([]TemplateDTO, len(templates))
	for i := range templates {
		dtos[i] = toTemplateDTO(&templates[i])
	}
	return dtos
}
