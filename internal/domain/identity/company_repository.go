package identity

import (
	"context"

	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository defines the persistence operations for companies.
// List reads are ordered by created_at descending; ties fall back to
// the store's natural row order.
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*Company, error)
	FindByEmail(ctx context.Context, email string) (*Company, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Company, error)
	// FindByApprovalStatus returns only rows passing the approval-record
	// integrity filter (non-empty name and email).
	FindByApprovalStatus(ctx context.Context, status ApprovalStatus, filter shared.Filter) ([]Company, error)
	FindPending(ctx context.Context) ([]Company, error)
	Save(ctx context.Context, company *Company) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountByApprovalStatus(ctx context.Context, status ApprovalStatus) (int64, error)
	// CountMissingApprovalStatus counts legacy rows persisted without an
	// approval status field.
	CountMissingApprovalStatus(ctx context.Context) (int64, error)
}

// UserRepository defines the persistence operations for users
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]User, error)
	Save(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountByApprovalStatus(ctx context.Context, status ApprovalStatus) (int64, error)
}
