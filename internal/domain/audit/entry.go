package audit

import (
	"context"

	"github.com/chatforge/backend/internal/domain/shared"
)

// Action identifies an audited operation
type Action string

const (
	ActionApprove             Action = "approve"
	ActionReject              Action = "reject"
	ActionApproveAllPending   Action = "approve_all_pending"
	ActionResetAllToPending   Action = "reset_all_to_pending"
	ActionFixAllOrphans       Action = "fix_all_orphans"
	ActionDeleteOrphans       Action = "delete_orphan_companies"
	ActionDeleteCompany       Action = "delete_company"
	ActionSyntheticWriteProbe Action = "synthetic_write_probe"
)

// Entry records who ran a destructive or bulk operation, against what,
// and how many records it touched. The blanket operations have no
// selective filter, so the trail is the only record of their blast
// radius after the fact.
type Entry struct {
	shared.BaseEntity
	Actor         string
	Action        Action
	Target        string
	AffectedCount int
	Detail        string
}

// NewEntry creates an audit entry
func NewEntry(actor string, action Action, target string, affectedCount int, detail string) *Entry {
	return &Entry{
		BaseEntity:    shared.NewBaseEntity(),
		Actor:         actor,
		Action:        action,
		Target:        target,
		AffectedCount: affectedCount,
		Detail:        detail,
	}
}

// Repository persists audit entries. Append is best-effort from the
// caller's perspective: services log append failures and continue.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	FindRecent(ctx context.Context, limit int) ([]Entry, error)
}
