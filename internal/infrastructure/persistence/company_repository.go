package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/chatforge/backend/internal/domain/identity"
	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/chatforge/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// approvalRecordFilter excludes rows that would render as blank entries
// in approval lists. Rows failing the filter stay in the table; they are
// surfaced by the integrity report instead.
const approvalRecordFilter = "TRIM(company_name) <> '' AND TRIM(email) <> ''"

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUserID finds the company linked to a user
func (r *GormCompanyRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*identity.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a company by email
func (r *GormCompanyRepository) FindByEmail(ctx context.Context, email string) (*identity.Company, error) {
	if email == "" {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all companies matching the filter
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Company, error) {
	var companyModels []models.CompanyModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CompanyModel{}), filter)

	if err := query.Find(&companyModels).Error; err != nil {
		return nil, err
	}
	return toDomainCompanies(companyModels), nil
}

// FindByApprovalStatus finds companies in the given approval state,
// restricted to rows passing the approval-record integrity filter
func (r *GormCompanyRepository) FindByApprovalStatus(ctx context.Context, status identity.ApprovalStatus, filter shared.Filter) ([]identity.Company, error) {
	var companyModels []models.CompanyModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.CompanyModel{}).
			Where("approval_status = ?", string(status)).
			Where(approvalRecordFilter),
		filter,
	)

	if err := query.Find(&companyModels).Error; err != nil {
		return nil, err
	}
	return toDomainCompanies(companyModels), nil
}

// FindPending returns the full pending queue, newest first
func (r *GormCompanyRepository) FindPending(ctx context.Context) ([]identity.Company, error) {
	return r.FindByApprovalStatus(ctx, identity.ApprovalStatusPending, shared.Unpaged())
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *identity.Company) error {
	model := models.CompanyModelFromDomain(company)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a company
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CompanyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all companies
func (r *GormCompanyRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CompanyModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByApprovalStatus counts companies in the given approval state
func (r *GormCompanyRepository) CountByApprovalStatus(ctx context.Context, status identity.ApprovalStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CompanyModel{}).
		Where("approval_status = ?", string(status)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountMissingApprovalStatus counts legacy rows persisted before the
// approval status column existed
func (r *GormCompanyRepository) CountMissingApprovalStatus(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.CompanyModel{}).
		Where("approval_status IS NULL OR approval_status = ''").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormCompanyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CompanySortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCompanyRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(company_name) LIKE ? OR LOWER(email) LIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "approval_status":
			query = query.Where("approval_status = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "subscription_plan":
			query = query.Where("subscription_plan = ?", value)
		case "has_user":
			if value == true {
				query = query.Where("user_id IS NOT NULL")
			} else {
				query = query.Where("user_id IS NULL")
			}
		}
	}

	return query
}

func toDomainCompanies(companyModels []models.CompanyModel) []identity.Company {
	companies := make([]identity.Company, len(companyModels))
	for i, model := range companyModels {
		companies[i] = *model.ToDomain()
	}
	return companies
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ identity.CompanyRepository = (*GormCompanyRepository)(nil)
