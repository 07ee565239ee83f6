package identity

import (
	"strings"

	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents a platform account created at signup. Within the
// approval workflow a user is mostly a collaborator: its approval
// status mirrors its company's whenever corrective actions run, and the
// company link is what the reconciliation engine repairs.
type User struct {
	shared.BaseEntity
	Email          string
	PasswordHash   string
	CompanyName    string // display hint captured at signup, may be empty
	CompanyID      *uuid.UUID
	ApprovalStatus ApprovalStatus
}

// NewUser creates a new user in the pending approval state
func NewUser(email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "User email is not a valid address")
	}
	return &User{
		BaseEntity:     shared.NewBaseEntity(),
		Email:          email,
		ApprovalStatus: ApprovalStatusPending,
	}, nil
}

// SetPassword hashes and stores the password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return shared.NewDomainError("HASH_FAILED", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// LinkCompany attaches the user to a company and resets the mirrored
// approval status to pending, matching the freshly created company.
func (u *User) LinkCompany(companyID uuid.UUID) {
	id := companyID
	u.CompanyID = &id
	u.ApprovalStatus = ApprovalStatusPending
	u.Touch()
}

// MirrorApprovalStatus copies the linked company's approval status onto
// the user. The two writes are independent; a failure in between leaves
// divergent state for the reconciliation scan to find.
func (u *User) MirrorApprovalStatus(status ApprovalStatus) {
	u.ApprovalStatus = status
	u.Touch()
}

// HasCompany reports whether the user carries a company link
func (u *User) HasCompany() bool {
	return u.CompanyID != nil
}
