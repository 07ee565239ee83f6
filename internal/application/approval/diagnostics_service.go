package approval

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/chatforge/backend/internal/domain/identity"
	"github.com/chatforge/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DiagnosticsService aggregates counts and orphan findings into
// operator-facing reports. It validates and reports only; repair lives
// in the ReconciliationService.
type DiagnosticsService struct {
	companyRepo    identity.CompanyRepository
	reconciliation *ReconciliationService
	archive        ArchiveStore
	logger         *zap.Logger
}

// NewDiagnosticsService creates a new diagnostics service
func NewDiagnosticsService(
	companyRepo identity.CompanyRepository,
	reconciliation *ReconciliationService,
	archive ArchiveStore,
	logger *zap.Logger,
) *DiagnosticsService {
	return &DiagnosticsService{
		companyRepo:    companyRepo,
		reconciliation: reconciliation,
		archive:        archive,
		logger:         logger,
	}
}

// ComputeStatistics derives approval/rejection/pending rates from a
// snapshot as percentages of total companies, rounded to one decimal.
// All rates are zero when the store holds no companies.
func ComputeStatistics(snapshot *DiagnosticsSnapshot) Statistics {
	stats := Statistics{
		TotalCompanies:    snapshot.Companies.Total,
		TotalUsers:        snapshot.Users.Total,
		OrphanedUsers:     len(snapshot.OrphanedUsers),
		OrphanedCompanies: len(snapshot.OrphanedCompanies),
	}
	total := snapshot.Companies.Total
	if total == 0 {
		return stats
	}
	stats.ApprovalRate = rate(snapshot.Companies.Approved, total)
	stats.RejectionRate = rate(snapshot.Companies.Rejected, total)
	stats.PendingRate = rate(snapshot.Companies.Pending, total)
	return stats
}

func rate(count, total int) float64 {
	return math.Round(float64(count)/float64(total)*1000) / 10
}

// Statistics runs a fresh scan and returns the derived rates
func (s *DiagnosticsService) Statistics(ctx context.Context) (*Statistics, error) {
	snapshot, err := s.reconciliation.Scan(ctx)
	if err != nil {
		return nil, err
	}
	stats := ComputeStatistics(snapshot)
	return &stats, nil
}

// ValidateIntegrity flags invariant violations found in a snapshot:
// non-empty orphan sets and companies persisted with no approval
// status at all. Findings are reports, never repairs.
func ValidateIntegrity(snapshot *DiagnosticsSnapshot) []IntegrityIssue {
	issues := []IntegrityIssue{}
	if n := len(snapshot.OrphanedUsers); n > 0 {
		issues = append(issues, IntegrityIssue{
			Kind:    "orphaned_users",
			Message: "Users with no company record pointing back at them",
			Count:   n,
		})
	}
	if n := len(snapshot.OrphanedCompanies); n > 0 {
		issues = append(issues, IntegrityIssue{
			Kind:    "orphaned_companies",
			Message: "Companies whose linked user no longer exists",
			Count:   n,
		})
	}
	if n := snapshot.Companies.Unknown; n > 0 {
		issues = append(issues, IntegrityIssue{
			Kind:    "missing_approval_status",
			Message: "Companies persisted without an approval status field",
			Count:   n,
		})
	}
	return issues
}

// ExportSnapshot runs a fresh scan, bundles it with the current
// approval lists into a timestamped JSON document, archives the
// document, and returns it for download.
func (s *DiagnosticsService) ExportSnapshot(ctx context.Context) (string, []byte, error) {
	snapshot, err := s.reconciliation.Scan(ctx)
	if err != nil {
		return "", nil, err
	}

	pending, err := s.companyRepo.FindPending(ctx)
	if err != nil {
		s.logger.Error("Failed to read pending companies for export", zap.Error(err))
		return "", nil, shared.ErrStoreUnavailable
	}
	approved, err := s.companyRepo.FindByApprovalStatus(ctx, identity.ApprovalStatusApproved, shared.Unpaged())
	if err != nil {
		s.logger.Error("Failed to read approved companies for export", zap.Error(err))
		return "", nil, shared.ErrStoreUnavailable
	}
	rejected, err := s.companyRepo.FindByApprovalStatus(ctx, identity.ApprovalStatusRejected, shared.Unpaged())
	if err != nil {
		s.logger.Error("Failed to read rejected companies for export", zap.Error(err))
		return "", nil, shared.ErrStoreUnavailable
	}

	document := ExportDocument{
		Timestamp:         snapshot.Timestamp,
		DebugData:         *snapshot,
		Approvals:         toCompanyDTOs(pending),
		ApprovedCompanies: toCompanyDTOs(approved),
		DeniedCompanies:   toCompanyDTOs(rejected),
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return "", nil, shared.NewDomainError("EXPORT_FAILED", "Failed to serialize diagnostics snapshot")
	}

	filename := fmt.Sprintf("diagnostics-%s.json", snapshot.Timestamp.UTC().Format("20060102T150405Z"))
	key := "exports/" + filename
	if err := s.archive.Put(ctx, key, "application/json", data); err != nil {
		// Archival is secondary to the download itself.
		s.logger.Warn("Failed to archive diagnostics export", zap.Error(err), zap.String("key", key))
	}

	return filename, data, nil
}
