package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ApprovalStatus is the onboarding gate for a company. It is separate
// from the operational CompanyStatus: approval decides whether the
// tenant may activate at all, status governs ongoing availability.
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
	// ApprovalStatusUnknown marks legacy rows persisted without an
	// approval status at all. New writes never produce it; only the
	// blanket reset normalizes it back to pending.
	ApprovalStatusUnknown ApprovalStatus = ""
)

// IsKnown reports whether the status is one of the three first-class values.
func (s ApprovalStatus) IsKnown() bool {
	switch s {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
		return true
	}
	return false
}

// String returns the wire representation, with unknown spelled out for
// diagnostics output.
func (s ApprovalStatus) String() string {
	if s == ApprovalStatusUnknown {
		return "unknown"
	}
	return string(s)
}

// CompanyStatus represents the operational state of a company
type CompanyStatus string

const (
	CompanyStatusActive    CompanyStatus = "active"
	CompanyStatusInactive  CompanyStatus = "inactive"
	CompanyStatusSuspended CompanyStatus = "suspended"
)

// SubscriptionPlan represents the subscription plan of a company
type SubscriptionPlan string

const (
	SubscriptionPlanFree       SubscriptionPlan = "free"
	SubscriptionPlanStarter    SubscriptionPlan = "starter"
	SubscriptionPlanPro        SubscriptionPlan = "pro"
	SubscriptionPlanEnterprise SubscriptionPlan = "enterprise"
)

// Subscription holds the billing state of a company
type Subscription struct {
	Plan   SubscriptionPlan `json:"plan"`
	Status string           `json:"status"`
}

// DefaultSubscription returns the subscription for a newly registered company
func DefaultSubscription() Subscription {
	return Subscription{
		Plan:   SubscriptionPlanFree,
		Status: "inactive",
	}
}

// Company represents a tenant organization gated behind the approval
// workflow. It is the aggregate root for approval operations.
type Company struct {
	shared.BaseEntity
	CompanyName    string
	Email          string
	Phone          string
	Website        string
	Industry       string
	EmployeeCount  int
	Domain         string
	Description    string
	UserID         *uuid.UUID
	ApprovalStatus ApprovalStatus
	Status         CompanyStatus
	Subscription   Subscription
}

// NewCompany creates a new company in the pending approval state
func NewCompany(name, email string) (*Company, error) {
	if err := validateCompanyName(name); err != nil {
		return nil, err
	}
	if err := validateCompanyEmail(email); err != nil {
		return nil, err
	}

	return &Company{
		BaseEntity:     shared.NewBaseEntity(),
		CompanyName:    name,
		Email:          strings.ToLower(strings.TrimSpace(email)),
		ApprovalStatus: ApprovalStatusPending,
		Status:         CompanyStatusActive,
		Subscription:   DefaultSubscription(),
	}, nil
}

// NewCompanyForUser synthesizes a pending company for an orphaned user.
// The name falls back to a placeholder derived from the email local part
// when the user carries no company-name hint.
func NewCompanyForUser(user *User) (*Company, error) {
	name := strings.TrimSpace(user.CompanyName)
	if name == "" {
		name = fmt.Sprintf("Company for %s", emailLocalPart(user.Email))
	}

	company, err := NewCompany(name, user.Email)
	if err != nil {
		return nil, err
	}
	userID := user.ID
	company.UserID = &userID
	return company, nil
}

// NewSyntheticCompany creates a clearly-marked probe record used to
// validate the write path end to end. The timestamped name keeps
// repeated probes unique and easy to spot in the admin list.
func NewSyntheticCompany(now time.Time) *Company {
	name := fmt.Sprintf("Synthetic Test Company %s", now.Format("20060102-150405"))
	company := &Company{
		BaseEntity:     shared.NewBaseEntity(),
		CompanyName:    name,
		Email:          fmt.Sprintf("synthetic+%d@chatforge.test", now.Unix()),
		Description:    "Diagnostic write-path probe. Safe to delete.",
		ApprovalStatus: ApprovalStatusPending,
		Status:         CompanyStatusInactive,
		Subscription:   DefaultSubscription(),
	}
	return company
}

// Approve transitions the company from pending to approved.
// Approving an already-approved company is a no-op write.
func (c *Company) Approve() error {
	return c.transitionTo(ApprovalStatusApproved)
}

// Reject transitions the company from pending to rejected.
// Rejecting an already-rejected company is a no-op write.
func (c *Company) Reject() error {
	return c.transitionTo(ApprovalStatusRejected)
}

// transitionTo enforces the approval state machine: pending may move to
// approved or rejected; approved and rejected are terminal except
// through ResetToPending. Re-applying the current status is allowed so
// the single-record operations stay idempotent.
func (c *Company) transitionTo(target ApprovalStatus) error {
	if c.ApprovalStatus == target {
		c.Touch()
		return nil
	}
	if c.ApprovalStatus != ApprovalStatusPending {
		return shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot move company from %s to %s", c.ApprovalStatus.String(), target.String()))
	}
	c.ApprovalStatus = target
	c.Touch()
	return nil
}

// ResetToPending unconditionally returns the company to the pending
// state. It is the only transition out of approved, rejected, or the
// legacy unknown state, and is reserved for the blanket reset operation.
func (c *Company) ResetToPending() {
	c.ApprovalStatus = ApprovalStatusPending
	c.Touch()
}

// LinkUser attaches the reciprocal user link
func (c *Company) LinkUser(userID uuid.UUID) {
	c.UserID = &userID
	c.Touch()
}

// HasUser reports whether the company carries a user link
func (c *Company) HasUser() bool {
	return c.UserID != nil
}

// IsApproved reports whether the company has passed the onboarding gate
func (c *Company) IsApproved() bool {
	return c.ApprovalStatus == ApprovalStatusApproved
}

// IsPending reports whether the company awaits an approval decision
func (c *Company) IsPending() bool {
	return c.ApprovalStatus == ApprovalStatusPending
}

// HasValidApprovalRecord reports whether the row satisfies the
// display-layer integrity filter: both name and email must be present
// for the company to appear in approval lists. Rows failing the filter
// are excluded from reads, never deleted.
func (c *Company) HasValidApprovalRecord() bool {
	return strings.TrimSpace(c.CompanyName) != "" && strings.TrimSpace(c.Email) != ""
}

// Activate sets the operational status to active
func (c *Company) Activate() error {
	if c.Status == CompanyStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Company is already active")
	}
	c.Status = CompanyStatusActive
	c.Touch()
	return nil
}

// Deactivate sets the operational status to inactive
func (c *Company) Deactivate() error {
	if c.Status == CompanyStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Company is already inactive")
	}
	c.Status = CompanyStatusInactive
	c.Touch()
	return nil
}

// Suspend sets the operational status to suspended
func (c *Company) Suspend() error {
	if c.Status == CompanyStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Company is already suspended")
	}
	c.Status = CompanyStatusSuspended
	c.Touch()
	return nil
}

// SetProfile updates the descriptive profile fields
func (c *Company) SetProfile(phone, website, industry, domain, description string, employeeCount int) error {
	if employeeCount < 0 {
		return shared.NewDomainError("INVALID_EMPLOYEE_COUNT", "Employee count cannot be negative")
	}
	if len(description) > 2000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 2000 characters")
	}
	c.Phone = phone
	c.Website = website
	c.Industry = industry
	c.Domain = strings.ToLower(strings.TrimSpace(domain))
	c.Description = description
	c.EmployeeCount = employeeCount
	c.Touch()
	return nil
}

// SetSubscription updates the subscription plan and billing status
func (c *Company) SetSubscription(plan SubscriptionPlan, status string) error {
	switch plan {
	case SubscriptionPlanFree, SubscriptionPlanStarter, SubscriptionPlanPro, SubscriptionPlanEnterprise:
	default:
		return shared.NewDomainError("INVALID_PLAN", "Invalid subscription plan")
	}
	c.Subscription = Subscription{Plan: plan, Status: status}
	c.Touch()
	return nil
}

func validateCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}
	return nil
}

func validateCompanyEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Company email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Company email cannot exceed 200 characters")
	}
	if !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_EMAIL", "Company email is not a valid address")
	}
	return nil
}

func emailLocalPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
