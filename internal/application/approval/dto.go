package approval

import (
	"time"

	"github.com/chatforge/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// CompanyDTO represents company data returned to the admin surface
type CompanyDTO struct {
	ID             uuid.UUID  `json:"id"`
	CompanyName    string     `json:"company_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	Website        string     `json:"website,omitempty"`
	Industry       string     `json:"industry,omitempty"`
	EmployeeCount  int        `json:"employee_count,omitempty"`
	Domain         string     `json:"domain,omitempty"`
	Description    string     `json:"description,omitempty"`
	UserID         *uuid.UUID `json:"user_id,omitempty"`
	ApprovalStatus string     `json:"approval_status"`
	Status         string     `json:"status"`
	Plan           string     `json:"plan"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// UserDTO represents user data returned to the admin surface
type UserDTO struct {
	ID             uuid.UUID  `json:"id"`
	Email          string     `json:"email"`
	CompanyName    string     `json:"company_name,omitempty"`
	CompanyID      *uuid.UUID `json:"company_id,omitempty"`
	ApprovalStatus string     `json:"approval_status"`
	CreatedAt      time.Time  `json:"created_at"`
}

// StatusCounts holds per-approval-status record counts for one collection
type StatusCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
	Unknown  int `json:"unknown"`
}

// DiagnosticsSnapshot is a point-in-time aggregate computed by a full
// scan of both collections. Orphan sets are recomputed on every scan
// and never persisted.
type DiagnosticsSnapshot struct {
	Timestamp         time.Time    `json:"timestamp"`
	Users             StatusCounts `json:"users"`
	Companies         StatusCounts `json:"companies"`
	OrphanedUsers     []UserDTO    `json:"orphaned_users"`
	OrphanedCompanies []CompanyDTO `json:"orphaned_companies"`
}

// Statistics holds rates derived from a snapshot. Rates are percentages
// of total companies rounded to one decimal; all zero when the store is
// empty.
type Statistics struct {
	TotalCompanies    int     `json:"total_companies"`
	TotalUsers        int     `json:"total_users"`
	ApprovalRate      float64 `json:"approval_rate"`
	RejectionRate     float64 `json:"rejection_rate"`
	PendingRate       float64 `json:"pending_rate"`
	OrphanedUsers     int     `json:"orphaned_users"`
	OrphanedCompanies int     `json:"orphaned_companies"`
}

// IntegrityIssue is a reported finding from ValidateIntegrity. Findings
// are reports only; repair is a separate operator action.
type IntegrityIssue struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// BulkResult is the aggregate outcome of a batch operation. Individual
// record failures are folded into Failed, never itemized back.
type BulkResult struct {
	Requested int `json:"requested"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// CompanyCounts is the per-status company tally for the dashboard header
type CompanyCounts struct {
	Total         int64 `json:"total"`
	Pending       int64 `json:"pending"`
	Approved      int64 `json:"approved"`
	Rejected      int64 `json:"rejected"`
	MissingStatus int64 `json:"missing_status"`
}

// ExportDocument is the portable diagnostics dump, consumed by a human
// only; no forward-compatibility contract.
type ExportDocument struct {
	Timestamp         time.Time           `json:"timestamp"`
	DebugData         DiagnosticsSnapshot `json:"debugData"`
	Approvals         []CompanyDTO        `json:"approvals"`
	ApprovedCompanies []CompanyDTO        `json:"approvedCompanies"`
	DeniedCompanies   []CompanyDTO        `json:"deniedCompanies"`
}

func toCompanyDTO(c *identity.Company) CompanyDTO {
	return CompanyDTO{
		ID:             c.ID,
		CompanyName:    c.CompanyName,
		Email:          c.Email,
		Phone:          c.Phone,
		Website:        c.Website,
		Industry:       c.Industry,
		EmployeeCount:  c.EmployeeCount,
		Domain:         c.Domain,
		Description:    c.Description,
		UserID:         c.UserID,
		ApprovalStatus: c.ApprovalStatus.String(),
		Status:         string(c.Status),
		Plan:           string(c.Subscription.Plan),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func toUserDTO(u *identity.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Email:          u.Email,
		CompanyName:    u.CompanyName,
		CompanyID:      u.CompanyID,
		ApprovalStatus: u.ApprovalStatus.String(),
		CreatedAt:      u.CreatedAt,
	}
}

func toCompanyDTOs(companies []identity.Company) []CompanyDTO {
	dtos := make([]CompanyDTO, len(companies))
	for i := range companies {
		dtos[i] = toCompanyDTO(&companies[i])
	}
	return dtos
}

func toUserDTOs(users []identity.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i := range users {
		dtos[i] = toUserDTO(&users[i])
	}
	return dtos
}
