package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/chatforge/backend/internal/domain/intake"
	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/chatforge/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBuildRequestRepository implements BuildRequestRepository using GORM
type GormBuildRequestRepository struct {
	db *gorm.DB
}

// NewGormBuildRequestRepository creates a new GormBuildRequestRepository
func NewGormBuildRequestRepository(db *gorm.DB) *GormBuildRequestRepository {
	return &GormBuildRequestRepository{db: db}
}

// FindByID finds a build request by its ID
func (r *GormBuildRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*intake.BuildRequest, error) {
	var model models.BuildRequestModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all build requests matching the filter
func (r *GormBuildRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]intake.BuildRequest, error) {
	var requestModels []models.BuildRequestModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.BuildRequestModel{}), filter)

	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return toDomainBuildRequests(requestModels), nil
}

// FindByStatus finds build requests in the given workflow state
func (r *GormBuildRequestRepository) FindByStatus(ctx context.Context, status intake.BuildRequestStatus, filter shared.Filter) ([]intake.BuildRequest, error) {
	var requestModels []models.BuildRequestModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.BuildRequestModel{}).
			Where("status = ?", string(status)),
		filter,
	)

	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return toDomainBuildRequests(requestModels), nil
}

// Save creates or updates a build request
func (r *GormBuildRequestRepository) Save(ctx context.Context, request *intake.BuildRequest) error {
	model := models.BuildRequestModelFromDomain(request)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a build request
func (r *GormBuildRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BuildRequestModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all build requests
func (r *GormBuildRequestRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.BuildRequestModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormBuildRequestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(project_name) LIKE ? OR LOWER(business_type) LIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "business_type":
			query = query.Where("business_type = ?", value)
		case "company_id":
			query = query.Where("company_id = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, BuildRequestSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

func toDomainBuildRequests(requestModels []models.BuildRequestModel) []intake.BuildRequest {
	requests := make([]intake.BuildRequest, len(requestModels))
	for i, model := range requestModels {
		requests[i] = *model.ToDomain()
	}
	return requests
}

// Ensure GormBuildRequestRepository implements BuildRequestRepository
var _ intake.BuildRequestRepository = (*GormBuildRequestRepository)(nil)
