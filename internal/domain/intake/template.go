package intake

import (
	"context"
	"strings"

	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Template is a website template offered in the public gallery
type Template struct {
	shared.BaseEntity
	Name        string
	Category    string
	Description string
	PreviewURL  string
	Features    []string
	Active      bool
}

// NewTemplate creates an active gallery template
func NewTemplate(name, category, description, previewURL string, features []string) (*Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if strings.TrimSpace(category) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Template category cannot be empty")
	}
	if len(previewURL) > 500 {
		return nil, shared.NewDomainError("INVALID_URL", "Preview URL cannot exceed 500 characters")
	}

	return &Template{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(name),
		Category:    strings.TrimSpace(category),
		Description: description,
		PreviewURL:  previewURL,
		Features:    append([]string(nil), features...),
		Active:      true,
	}, nil
}

// UpdateDetails replaces the template's descriptive fields. Validation
// matches NewTemplate; the published state is untouched.
func (t *Template) UpdateDetails(name, category, description, previewURL string, features []string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if strings.TrimSpace(category) == "" {
		return shared.NewDomainError("INVALID_CATEGORY", "Template category cannot be empty")
	}
	if len(previewURL) > 500 {
		return shared.NewDomainError("INVALID_URL", "Preview URL cannot exceed 500 characters")
	}

	t.Name = strings.TrimSpace(name)
	t.Category = strings.TrimSpace(category)
	t.Description = description
	t.PreviewURL = previewURL
	t.Features = append([]string(nil), features...)
	t.Touch()
	return nil
}

// Publish makes the template visible in the public gallery
func (t *Template) Publish() {
	t.Active = true
	t.Touch()
}

// Unpublish hides the template from the public gallery without deleting it
func (t *Template) Unpublish() {
	t.Active = false
	t.Touch()
}

// TemplateRepository defines persistence operations for gallery templates
type TemplateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Template, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Template, error)
	FindActive(ctx context.Context, category string) ([]Template, error)
	Save(ctx context.Context, template *Template) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}
