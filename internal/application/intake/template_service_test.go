package intake

import (
	"context"
	"testing"

	"github.com/chatforge/backend/internal/domain/intake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTemplateFixture() (*TemplateService, *MockTemplateRepository) {
	templateRepo := new(MockTemplateRepository)
	service := NewTemplateService(templateRepo, zap.NewNop())
	return service, templateRepo
}

func TestCreateTemplate(t *testing.T) {
	t.Run("new template is published", func(t *testing.T) {
		service, templateRepo := newTemplateFixture()
		templateRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		dto, err := service.Create(context.Background(), CreateTemplateInput{
			Name:     "Cafe Classic",
			Category: "restaurant",
			Features: []string{"booking", "menu"},
		})

		require.NoError(t, err)
		assert.True(t, dto.Active)
	})

	t.Run("missing category rejected", func(t *testing.T) {
		service, templateRepo := newTemplateFixture()

		_, err := service.Create(context.Background(), CreateTemplateInput{Name: "Cafe Classic"})

		assert.ErrorContains(t, err, "category")
		templateRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUpdateTemplate(t *testing.T) {
	t.Run("descriptive fields replaced, published state kept", func(t *testing.T) {
		service, templateRepo := newTemplateFixture()
		template, err := intake.NewTemplate("Cafe Classic", "restaurant", "", "", nil)
		require.NoError(t, err)
		template.Unpublish()

		templateRepo.On("FindByID", mock.Anything, template.ID).Return(template, nil)
		templateRepo.On("Save", mock.Anything, template).Return(nil)

		dto, err := service.Update(context.Background(), template.ID, CreateTemplateInput{
			Name:     "Bistro Modern",
			Category: "restaurant",
			Features: []string{"reservations"},
		})

		require.NoError(t, err)
		assert.Equal(t, "Bistro Modern", dto.Name)
		assert.False(t, dto.Active)
	})

	t.Run("empty name rejected without a write", func(t *testing.T) {
		service, templateRepo := newTemplateFixture()
		template, err := intake.NewTemplate("Cafe Classic", "restaurant", "", "", nil)
		require.NoError(t, err)

		templateRepo.On("FindByID", mock.Anything, template.ID).Return(template, nil)

		_, err = service.Update(context.Background(), template.ID, CreateTemplateInput{Category: "restaurant"})

		assert.ErrorContains(t, err, "name")
		templateRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestSetPublished(t *testing.T) {
	service, templateRepo := newTemplateFixture()
	template, err := intake.NewTemplate("Cafe Classic", "restaurant", "", "", nil)
	require.NoError(t, err)

	templateRepo.On("FindByID", mock.Anything, template.ID).Return(template, nil)
	templateRepo.On("Save", mock.Anything, template).Return(nil)

	dto, err := service.SetPublished(context.Background(), template.ID, false)

	require.NoError(t, err)
	assert.False(t, dto.Active)
}

func TestListActive(t *testing.T) {
	service, templateRepo := newTemplateFixture()
	template, err := intake.NewTemplate("Cafe Classic", "restaurant", "", "", nil)
	require.NoError(t, err)

	templateRepo.On("FindActive", mock.Anything, "restaurant").
		Return([]intake.Template{*template}, nil)

	dtos, err := service.ListActive(context.Background(), "restaurant")

	require.NoError(t, err)
	require.Len(t, dtos, 1)
	assert.Equal(t, "Cafe Classic", dtos[0].Name)
}
