package intake

import (
	"context"
	"errors"

	"github.com/chatforge/backend/internal/domain/intake"
	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateTemplateInput carries gallery template fields from the admin
// panel, for both creation and full updates.
type CreateTemplateInput struct {
	Name        string
	Category    string
	Description string
	PreviewURL  string
	Features    []string
}

// TemplateService manages the public template gallery
type TemplateService struct {
	templateRepo intake.TemplateRepository
	logger       *zap.Logger
}

// NewTemplateService creates a new template service
func NewTemplateService(templateRepo intake.TemplateRepository, logger *zap.Logger) *TemplateService {
	return &TemplateService{templateRepo: templateRepo, logger: logger}
}

// Create adds a template to the gallery in published state
func (s *TemplateService) Create(ctx context.Context, input CreateTemplateInput) (*TemplateDTO, error) {
	template, err := intake.NewTemplate(input.Name, input.Category, input.Description, input.PreviewURL, input.Features)
	if err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		s.logger.Error("Failed to store template", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	dto := toTemplateDTO(template)
	return &dto, nil
}

// ListActive returns published templates for the public gallery,
// optionally restricted to one category.
func (s *TemplateService) ListActive(ctx context.Context, category string) ([]TemplateDTO, error) {
	templates, err := s.templateRepo.FindActive(ctx, category)
	if err != nil {
		s.logger.Error("Failed to list active templates", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}
	return toTemplateDTOs(templates), nil
}

// ListAll returns every template, published or not, for the admin panel
func (s *TemplateService) ListAll(ctx context.Context, filter shared.Filter) ([]TemplateDTO, error) {
	templates, err := s.templateRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list templates", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}
	return toTemplateDTOs(templates), nil
}

// Update replaces a template's descriptive fields
func (s *TemplateService) Update(ctx context.Context, id uuid.UUID, input CreateTemplateInput) (*TemplateDTO, error) {
	template, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TEMPLATE_NOT_FOUND", "Template not found")
		}
		s.logger.Error("Failed to read template", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	if err := template.UpdateDetails(input.Name, input.Category, input.Description, input.PreviewURL, input.Features); err != nil {
		return nil, err
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		s.logger.Error("Failed to update template", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	dto := toTemplateDTO(template)
	return &dto, nil
}

// SetPublished publishes or unpublishes a template
func (s *TemplateService) SetPublished(ctx context.Context, id uuid.UUID, published bool) (*TemplateDTO, error) {
	template, err := s.templateRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("TEMPLATE_NOT_FOUND", "Template not found")
		}
		s.logger.Error("Failed to read template", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	if published {
		template.Publish()
	} else {
		template.Unpublish()
	}
	if err := s.templateRepo.Save(ctx, template); err != nil {
		s.logger.Error("Failed to update template", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	dto := toTemplateDTO(template)
	return &dto, nil
}

// Delete removes a template from the gallery permanently
func (s *TemplateService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.templateRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("TEMPLATE_NOT_FOUND", "Template not found")
		}
		s.logger.Error("Failed to delete template", zap.Error(err))
		return shared.ErrStoreUnavailable
	}
	return nil
}
