package approval

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chatforge/backend/internal/domain/audit"
	"github.com/chatforge/backend/internal/domain/identity"
	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/chatforge/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ArchiveStore persists one-way JSON documents (pre-delete backups,
// diagnostics exports) to object storage.
type ArchiveStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// WorkflowService is the facade the admin surface invokes for approval
// decisions. Single-record operations transition one company (and
// mirror onto its linked user); the bulk operations fan writes out
// concurrently and report one aggregate result.
type WorkflowService struct {
	companyRepo identity.CompanyRepository
	userRepo    identity.UserRepository
	auditRepo   audit.Repository
	archive     ArchiveStore
	logger      *zap.Logger
}

// NewWorkflowService creates a new approval workflow service
func NewWorkflowService(
	companyRepo identity.CompanyRepository,
	userRepo identity.UserRepository,
	auditRepo audit.Repository,
	archive ArchiveStore,
	logger *zap.Logger,
) *WorkflowService {
	return &WorkflowService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		auditRepo:   auditRepo,
		archive:     archive,
		logger:      logger,
	}
}

// ListPending returns all companies awaiting an approval decision,
// most recent first. Rows failing the approval-record integrity filter
// are excluded by the repository, never deleted.
func (s *WorkflowService) ListPending(ctx context.Context) ([]CompanyDTO, error) {
	companies, err := s.companyRepo.FindPending(ctx)
	if err != nil {
		s.logger.Error("Failed to list pending companies", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}
	return toCompanyDTOs(companies), nil
}

// ListByStatus returns companies with the given approval status,
// ordered by created_at descending.
func (s *WorkflowService) ListByStatus(ctx context.Context, status identity.ApprovalStatus, filter shared.Filter) ([]CompanyDTO, error) {
	companies, err := s.companyRepo.FindByApprovalStatus(ctx, status, filter)
	if err != nil {
		s.logger.Error("Failed to list companies by status",
			zap.Error(err), zap.String("status", status.String()))
		return nil, shared.ErrStoreUnavailable
	}
	return toCompanyDTOs(companies), nil
}

// Counts returns the per-status company totals for the dashboard
// header, straight from the store without a full scan.
func (s *WorkflowService) Counts(ctx context.Context) (*CompanyCounts, error) {
	counts := &CompanyCounts{}
	var err error
	if counts.Total, err = s.companyRepo.Count(ctx); err != nil {
		s.logger.Error("Failed to count companies", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}
	statuses := []struct {
		status identity.ApprovalStatus
		dest   *int64
	}{
		{identity.ApprovalStatusPending, &counts.Pending},
		{identity.ApprovalStatusApproved, &counts.Approved},
		{identity.ApprovalStatusRejected, &counts.Rejected},
	}
	for _, s2 := range statuses {
		if *s2.dest, err = s.companyRepo.CountByApprovalStatus(ctx, s2.status); err != nil {
			s.logger.Error("Failed to count companies by status",
				zap.Error(err), zap.String("status", s2.status.String()))
			return nil, shared.ErrStoreUnavailable
		}
	}
	if counts.MissingStatus, err = s.companyRepo.CountMissingApprovalStatus(ctx); err != nil {
		s.logger.Error("Failed to count companies missing approval status", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}
	return counts, nil
}

// Approve transitions one company from pending to approved
func (s *WorkflowService) Approve(ctx context.Context, actor string, companyID uuid.UUID) (*CompanyDTO, error) {
	return s.decide(ctx, actor, companyID, identity.ApprovalStatusApproved, audit.ActionApprove)
}

// Reject transitions one company from pending to rejected
func (s *WorkflowService) Reject(ctx context.Context, actor string, companyID uuid.UUID) (*CompanyDTO, error) {
	return s.decide(ctx, actor, companyID, identity.ApprovalStatusRejected, audit.ActionReject)
}

// decide applies a single approval decision and mirrors it onto the
// linked user. The mirror is a second, independent write: its failure
// is logged but does not fail the decision; the reconciliation scan
// exists precisely to find the resulting divergence.
func (s *WorkflowService) decide(ctx context.Context, actor string, companyID uuid.UUID, target identity.ApprovalStatus, action audit.Action) (*CompanyDTO, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "approval", string(action))
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCompanyID, companyID.String(),
		telemetry.SpanAttrApprovalStatus, target.String(),
		telemetry.SpanAttrActor, actor,
	)

	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
		}
		s.logger.Error("Failed to read company", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	switch target {
	case identity.ApprovalStatusApproved:
		err = company.Approve()
	case identity.ApprovalStatusRejected:
		err = company.Reject()
	default:
		err = shared.ErrInvalidState
	}
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to save approval decision", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	s.mirrorToUser(ctx, company, target)
	s.writeAudit(ctx, actor, action, company.CompanyName, 1, "")
	telemetry.SetOK(span)

	s.logger.Info("Approval decision applied",
		zap.String("company_id", companyID.String()),
		zap.String("status", target.String()))

	return dtoPtr(company), nil
}

// mirrorToUser copies the company's approval status onto its linked
// user, if any. Best-effort by design.
func (s *WorkflowService) mirrorToUser(ctx context.Context, company *identity.Company, status identity.ApprovalStatus) {
	if company.UserID == nil {
		return
	}
	user, err := s.userRepo.FindByID(ctx, *company.UserID)
	if err != nil {
		s.logger.Warn("Linked user not readable for status mirror",
			zap.Error(err), zap.String("user_id", company.UserID.String()))
		return
	}
	user.MirrorApprovalStatus(status)
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Warn("Failed to mirror approval status onto user",
			zap.Error(err), zap.String("user_id", user.ID.String()))
	}
}

// ApproveAllPending approves every pending company, updating each
// company and its linked user concurrently and joining on completion.
// Per-record errors fold into the aggregate; the operator sees one
// result, not an itemized list.
func (s *WorkflowService) ApproveAllPending(ctx context.Context, actor string) (*BulkResult, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "approval", "approve_all_pending")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrActor, actor)

	pending, err := s.companyRepo.FindPending(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to list pending companies", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	result := &BulkResult{Requested: len(pending)}
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i := range pending {
		wg.Add(1)
		go func(company identity.Company) {
			defer wg.Done()
			if err := company.Approve(); err == nil {
				err = s.companyRepo.Save(ctx, &company)
			}
			if err != nil {
				s.logger.Warn("Approve failed inside batch, continuing",
					zap.Error(err), zap.String("company_id", company.ID.String()))
				mu.Lock()
				result.Failed++
				mu.Unlock()
				return
			}
			s.mirrorToUser(ctx, &company, identity.ApprovalStatusApproved)
			mu.Lock()
			result.Succeeded++
			mu.Unlock()
		}(pending[i])
	}
	wg.Wait()

	s.writeAudit(ctx, actor, audit.ActionApproveAllPending, "companies", result.Succeeded,
		fmt.Sprintf("%d of %d pending companies approved", result.Succeeded, result.Requested))
	telemetry.SetAttribute(span, telemetry.SpanAttrAffectedCount, result.Succeeded)

	return result, nil
}

// ResetAllConfirmation is the phrase an operator must type before the
// blanket reset runs. The operation has no selective filter, so the
// confirmation is the only brake.
const ResetAllConfirmation = "RESET ALL"

// ResetAllToPending unconditionally returns every company document to
// the pending state, regardless of current status, including legacy
// rows with no status at all. Users are not touched; the next scan
// reports the resulting divergence.
func (s *WorkflowService) ResetAllToPending(ctx context.Context, actor, confirmation string) (*BulkResult, error) {
	if confirmation != ResetAllConfirmation {
		return nil, shared.ErrConfirmationFailed
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "approval", "reset_all_to_pending")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrActor, actor)

	companies, err := s.companyRepo.FindAll(ctx, shared.Unpaged())
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to read companies collection", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	result := &BulkResult{Requested: len(companies)}
	for i := range companies {
		company := &companies[i]
		company.ResetToPending()
		if err := s.companyRepo.Save(ctx, company); err != nil {
			s.logger.Warn("Reset failed for company, continuing",
				zap.Error(err), zap.String("company_id", company.ID.String()))
			result.Failed++
			continue
		}
		result.Succeeded++
	}

	s.writeAudit(ctx, actor, audit.ActionResetAllToPending, "companies", result.Succeeded,
		fmt.Sprintf("%d of %d companies reset to pending", result.Succeeded, result.Requested))
	telemetry.SetAttribute(span, telemetry.SpanAttrAffectedCount, result.Succeeded)

	s.logger.Info("Blanket reset complete",
		zap.String("actor", actor),
		zap.Int("reset", result.Succeeded),
		zap.Int("failed", result.Failed))

	return result, nil
}

// DeleteCompany removes a company after a typed confirmation and a
// mandatory backup. The confirmation must equal the company name
// exactly and is checked before any store write; a failed backup
// aborts the delete.
func (s *WorkflowService) DeleteCompany(ctx context.Context, actor string, companyID uuid.UUID, typedConfirmation string) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "approval", "delete_company")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrCompanyID, companyID.String(),
		telemetry.SpanAttrActor, actor,
	)

	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("COMPANY_NOT_FOUND", "Company not found")
		}
		s.logger.Error("Failed to read company", zap.Error(err))
		return shared.ErrStoreUnavailable
	}

	if typedConfirmation != company.CompanyName {
		return shared.ErrConfirmationFailed
	}

	backup, err := json.MarshalIndent(toCompanyDTO(company), "", "  ")
	if err != nil {
		return shared.NewDomainError("BACKUP_FAILED", "Failed to serialize company backup")
	}
	key := fmt.Sprintf("backups/companies/%s-%s.json",
		company.ID, time.Now().UTC().Format("20060102T150405Z"))
	if err := s.archive.Put(ctx, key, "application/json", backup); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Company backup failed, delete aborted",
			zap.Error(err), zap.String("company_id", companyID.String()))
		return shared.NewDomainError("BACKUP_FAILED", "Backup failed; company was not deleted")
	}

	if err := s.companyRepo.Delete(ctx, companyID); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to delete company", zap.Error(err))
		return shared.ErrStoreUnavailable
	}

	s.writeAudit(ctx, actor, audit.ActionDeleteCompany, company.CompanyName, 1,
		"backup at "+key)
	telemetry.SetOK(span)

	s.logger.Info("Company deleted",
		zap.String("company_id", companyID.String()),
		zap.String("backup_key", key))

	return nil
}

// CreateSyntheticCompany inserts a clearly-marked probe record to
// validate the write path end to end. It writes to the live store;
// the record is named so it cannot be mistaken for a real tenant.
func (s *WorkflowService) CreateSyntheticCompany(ctx context.Context, actor string) (*CompanyDTO, error) {
	company := identity.NewSyntheticCompany(time.Now())
	if err := s.companyRepo.Save(ctx, company); err != nil {
		s.logger.Error("Synthetic write probe failed", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	s.writeAudit(ctx, actor, audit.ActionSyntheticWriteProbe, company.CompanyName, 1, "")

	return dtoPtr(company), nil
}

func (s *WorkflowService) writeAudit(ctx context.Context, actor string, action audit.Action, target string, count int, detail string) {
	entry := audit.NewEntry(actor, action, target, count, detail)
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit entry",
			zap.Error(err), zap.String("action", string(action)))
	}
}

func dtoPtr(c *identity.Company) *CompanyDTO {
	dto := toCompanyDTO(c)
	return &dto
}
