package approval

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chatforge/backend/internal/domain/audit"
	"github.com/chatforge/backend/internal/domain/identity"
	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/chatforge/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReconciliationService detects and repairs orphaned records: users
// with no company pointing back at them, and companies whose user is
// gone. Repair is never automatic; every corrective action is an
// explicit operator request against the most recent scan.
type ReconciliationService struct {
	userRepo    identity.UserRepository
	companyRepo identity.CompanyRepository
	auditRepo   audit.Repository
	logger      *zap.Logger

	mu       sync.Mutex
	lastScan *DiagnosticsSnapshot
}

// NewReconciliationService creates a new reconciliation service
func NewReconciliationService(
	userRepo identity.UserRepository,
	companyRepo identity.CompanyRepository,
	auditRepo audit.Repository,
	logger *zap.Logger,
) *ReconciliationService {
	return &ReconciliationService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		auditRepo:   auditRepo,
		logger:      logger,
	}
}

// Scan performs a full read of both collections and computes per-status
// counts plus the two orphan sets. It is side-effect-free apart from
// remembering the result as the reference set for the batch repairs.
func (s *ReconciliationService) Scan(ctx context.Context) (*DiagnosticsSnapshot, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "scan")
	defer span.End()

	users, err := s.userRepo.FindAll(ctx, shared.Unpaged())
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to read users collection", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}
	companies, err := s.companyRepo.FindAll(ctx, shared.Unpaged())
	if err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("Failed to read companies collection", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	snapshot := buildSnapshot(users, companies)

	s.mu.Lock()
	s.lastScan = snapshot
	s.mu.Unlock()

	telemetry.SetAttributes(span,
		"orphaned_users", len(snapshot.OrphanedUsers),
		"orphaned_companies", len(snapshot.OrphanedCompanies),
	)

	s.logger.Info("Reconciliation scan complete",
		zap.Int("users", snapshot.Users.Total),
		zap.Int("companies", snapshot.Companies.Total),
		zap.Int("orphaned_users", len(snapshot.OrphanedUsers)),
		zap.Int("orphaned_companies", len(snapshot.OrphanedCompanies)))

	return snapshot, nil
}

// buildSnapshot computes counts and orphan sets. The set difference is
// O(U+C) with id lookup maps; fine at admin-tool scale.
func buildSnapshot(users []identity.User, companies []identity.Company) *DiagnosticsSnapshot {
	companyUserIDs := make(map[uuid.UUID]bool, len(companies))
	for i := range companies {
		if companies[i].UserID != nil {
			companyUserIDs[*companies[i].UserID] = true
		}
	}
	userIDs := make(map[uuid.UUID]bool, len(users))
	for i := range users {
		userIDs[users[i].ID] = true
	}

	snapshot := &DiagnosticsSnapshot{
		Timestamp:         time.Now(),
		OrphanedUsers:     []UserDTO{},
		OrphanedCompanies: []CompanyDTO{},
	}

	for i := range users {
		user := &users[i]
		countStatus(&snapshot.Users, user.ApprovalStatus)
		if !companyUserIDs[user.ID] {
			snapshot.OrphanedUsers = append(snapshot.OrphanedUsers, toUserDTO(user))
		}
	}
	for i := range companies {
		company := &companies[i]
		countStatus(&snapshot.Companies, company.ApprovalStatus)
		if company.UserID == nil || !userIDs[*company.UserID] {
			snapshot.OrphanedCompanies = append(snapshot.OrphanedCompanies, toCompanyDTO(company))
		}
	}

	return snapshot
}

func countStatus(counts *StatusCounts, status identity.ApprovalStatus) {
	counts.Total++
	switch status {
	case identity.ApprovalStatusPending:
		counts.Pending++
	case identity.ApprovalStatusApproved:
		counts.Approved++
	case identity.ApprovalStatusRejected:
		counts.Rejected++
	default:
		counts.Unknown++
	}
}

// FixOrphanUser synthesizes a pending company for the user and patches
// the user's company link, as two independent writes. The caller must
// re-scan before re-running: a user fixed since the last scan is not
// guarded against at this layer.
func (s *ReconciliationService) FixOrphanUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "fix_orphan_user")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrUserID, userID.String())

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
		}
		s.logger.Error("Failed to read user", zap.Error(err), zap.String("user_id", userID.String()))
		return uuid.Nil, shared.ErrStoreUnavailable
	}

	return s.fixUser(ctx, user)
}

// fixUser performs the company-synthesis write pair for one user.
func (s *ReconciliationService) fixUser(ctx context.Context, user *identity.User) (uuid.UUID, error) {
	company, err := identity.NewCompanyForUser(user)
	if err != nil {
		return uuid.Nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		s.logger.Error("Failed to create company for orphan user",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return uuid.Nil, shared.ErrStoreUnavailable
	}

	user.LinkCompany(company.ID)
	if err := s.userRepo.Save(ctx, user); err != nil {
		// The company row exists but the user link write failed; the
		// next scan reports the company as orphaned instead.
		s.logger.Error("Failed to link user to synthesized company",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
			zap.String("company_id", company.ID.String()))
		return uuid.Nil, shared.ErrStoreUnavailable
	}

	s.logger.Info("Fixed orphan user",
		zap.String("user_id", user.ID.String()),
		zap.String("company_id", company.ID.String()))

	return company.ID, nil
}

// FixAllOrphans applies the orphan-user fix to every user in the last
// scan's orphan set. One user's failure is logged and does not abort
// the batch; the caller gets the aggregate only.
func (s *ReconciliationService) FixAllOrphans(ctx context.Context, actor string) (*BulkResult, error) {
	orphans, err := s.lastOrphanUsers()
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "fix_all_orphans")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrActor, actor)

	result := &BulkResult{Requested: len(orphans)}
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, orphan := range orphans {
		wg.Add(1)
		go func(userID uuid.UUID) {
			defer wg.Done()
			if _, err := s.FixOrphanUser(ctx, userID); err != nil {
				s.logger.Warn("Orphan fix failed, continuing batch",
					zap.Error(err), zap.String("user_id", userID.String()))
				mu.Lock()
				result.Failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			result.Succeeded++
			mu.Unlock()
		}(orphan.ID)
	}
	wg.Wait()

	s.invalidateScan()
	s.writeAudit(ctx, actor, audit.ActionFixAllOrphans, "users", result.Succeeded,
		"bulk orphan-user repair")
	telemetry.SetAttribute(span, telemetry.SpanAttrAffectedCount, result.Succeeded)

	return result, nil
}

// DeleteOrphanCompanies deletes every company in the last scan's orphan
// set. Partial-failure tolerant like FixAllOrphans.
func (s *ReconciliationService) DeleteOrphanCompanies(ctx context.Context, actor string) (*BulkResult, error) {
	orphans, err := s.lastOrphanCompanies()
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "reconciliation", "delete_orphan_companies")
	defer span.End()
	telemetry.SetAttribute(span, telemetry.SpanAttrActor, actor)

	result := &BulkResult{Requested: len(orphans)}
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, orphan := range orphans {
		wg.Add(1)
		go func(companyID uuid.UUID) {
			defer wg.Done()
			if err := s.companyRepo.Delete(ctx, companyID); err != nil {
				s.logger.Warn("Orphan company delete failed, continuing batch",
					zap.Error(err), zap.String("company_id", companyID.String()))
				mu.Lock()
				result.Failed++
				mu.Unlock()
				return
			}
			mu.Lock()
			result.Succeeded++
			mu.Unlock()
		}(orphan.ID)
	}
	wg.Wait()

	s.invalidateScan()
	s.writeAudit(ctx, actor, audit.ActionDeleteOrphans, "companies", result.Succeeded,
		"bulk orphan-company delete")
	telemetry.SetAttribute(span, telemetry.SpanAttrAffectedCount, result.Succeeded)

	return result, nil
}

// CreateCompanyForEmail looks up a user by exact email and runs the
// orphan fix for it. Fails before any write when the user does not
// exist or is already linked.
func (s *ReconciliationService) CreateCompanyForEmail(ctx context.Context, email string) (uuid.UUID, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return uuid.Nil, shared.NewDomainError("USER_NOT_FOUND", "No user with that email")
		}
		s.logger.Error("Failed to look up user by email", zap.Error(err))
		return uuid.Nil, shared.ErrStoreUnavailable
	}
	if user.HasCompany() {
		return uuid.Nil, shared.ErrCompanyAlreadySet
	}

	// The user's own link may be missing while a company still points
	// at them, or a company may already carry the email. Either way a
	// second synthesis would duplicate the record, so both are checked
	// before any write.
	if existing, err := s.companyRepo.FindByUserID(ctx, user.ID); err == nil && existing != nil {
		return uuid.Nil, shared.ErrCompanyAlreadySet
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check for an existing company link", zap.Error(err))
		return uuid.Nil, shared.ErrStoreUnavailable
	}
	if existing, err := s.companyRepo.FindByEmail(ctx, user.Email); err == nil && existing != nil {
		return uuid.Nil, shared.ErrCompanyAlreadySet
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to check for an existing company email", zap.Error(err))
		return uuid.Nil, shared.ErrStoreUnavailable
	}

	return s.fixUser(ctx, user)
}

// lastOrphanUsers returns the orphan-user set from the most recent scan
func (s *ReconciliationService) lastOrphanUsers() ([]UserDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastScan == nil {
		return nil, shared.NewDomainError("SCAN_REQUIRED", "Run a scan before batch repairs")
	}
	return s.lastScan.OrphanedUsers, nil
}

// lastOrphanCompanies returns the orphan-company set from the most recent scan
func (s *ReconciliationService) lastOrphanCompanies() ([]CompanyDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastScan == nil {
		return nil, shared.NewDomainError("SCAN_REQUIRED", "Run a scan before batch repairs")
	}
	return s.lastScan.OrphanedCompanies, nil
}

// invalidateScan drops the remembered orphan sets after a batch repair
// so a stale set cannot be replayed.
func (s *ReconciliationService) invalidateScan() {
	s.mu.Lock()
	s.lastScan = nil
	s.mu.Unlock()
}

// writeAudit appends an audit entry, best-effort.
func (s *ReconciliationService) writeAudit(ctx context.Context, actor string, action audit.Action, target string, count int, detail string) {
	entry := audit.NewEntry(actor, action, target, count, detail)
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		s.logger.Warn("Failed to write audit entry",
			zap.Error(err), zap.String("action", string(action)))
	}
}
