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

// GormContactMessageRepository implements ContactMessageRepository using GORM
type GormContactMessageRepository struct {
	db *gorm.DB
}

// NewGormContactMessageRepository creates a new GormContactMessageRepository
func NewGormContactMessageRepository(db *gorm.DB) *GormContactMessageRepository {
	return &GormContactMessageRepository{db: db}
}

// FindByID finds a contact message by its ID
func (r *GormContactMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*intake.ContactMessage, error) {
	var model models.ContactMessageModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all contact messages matching the filter
func (r *GormContactMessageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]intake.ContactMessage, error) {
	var messageModels []models.ContactMessageModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ContactMessageModel{}), filter)

	if err := query.Find(&messageModels).Error; err != nil {
		return nil, err
	}

	messages := make([]intake.ContactMessage, len(messageModels))
	for i, model := range messageModels {
		messages[i] = *model.ToDomain()
	}
	return messages, nil
}

// Save creates or updates a contact message
func (r *GormContactMessageRepository) Save(ctx context.Context, message *intake.ContactMessage) error {
	model := models.ContactMessageModelFromDomain(message)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a contact message
func (r *GormContactMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ContactMessageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all contact messages
func (r *GormContactMessageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ContactMessageModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountUnread counts messages not yet marked read
func (r *GormContactMessageRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ContactMessageModel{}).
		Where("read = ?", false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormContactMessageRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "read":
			query = query.Where("read = ?", value)
		case "email":
			query = query.Where("email = ?", value)
		}
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ContactMessageSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// Ensure GormContactMessageRepository implements ContactMessageRepository
var _ intake.ContactMessageRepository = (*GormContactMessageRepository)(nil)
