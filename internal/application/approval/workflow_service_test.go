package approval

import (
	"context"
	"errors"
	"testing"

	"github.com/chatforge/backend/internal/domain/identity"
	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newWorkflowFixture() (*WorkflowService, *MockCompanyRepository, *MockUserRepository, *MockAuditRepository, *MockArchiveStore) {
	companyRepo := new(MockCompanyRepository)
	userRepo := new(MockUserRepository)
	auditRepo := new(MockAuditRepository)
	archive := new(MockArchiveStore)
	service := NewWorkflowService(companyRepo, userRepo, auditRepo, archive, zap.NewNop())
	return service, companyRepo, userRepo, auditRepo, archive
}

func pendingCompany(t *testing.T) *identity.Company {
	t.Helper()
	company, err := identity.NewCompany("Acme Corp", "owner@acme.com")
	require.NoError(t, err)
	return company
}

func TestApprove(t *testing.T) {
	t.Run("pending company becomes approved and user is mirrored", func(t *testing.T) {
		service, companyRepo, userRepo, auditRepo, _ := newWorkflowFixture()
		company := pendingCompany(t)
		user, err := identity.NewUser("owner@acme.com")
		require.NoError(t, err)
		company.LinkUser(user.ID)

		companyRepo.On("FindByID", mock.Anything, company.ID).Return(company, nil)
		companyRepo.On("Save", mock.Anything, company).Return(nil)
		userRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
		userRepo.On("Save", mock.Anything, user).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		dto, err := service.Approve(context.Background(), "admin@chatforge.io", company.ID)

		require.NoError(t, err)
		assert.Equal(t, "approved", dto.ApprovalStatus)
		assert.Equal(t, identity.ApprovalStatusApproved, user.ApprovalStatus)
		companyRepo.AssertExpectations(t)
		userRepo.AssertExpectations(t)
	})

	t.Run("approve is idempotent", func(t *testing.T) {
		service, companyRepo, _, auditRepo, _ := newWorkflowFixture()
		company := pendingCompany(t)
		require.NoError(t, company.Approve())

		companyRepo.On("FindByID", mock.Anything, company.ID).Return(company, nil)
		companyRepo.On("Save", mock.Anything, company).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		dto, err := service.Approve(context.Background(), "admin@chatforge.io", company.ID)

		require.NoError(t, err)
		assert.Equal(t, "approved", dto.ApprovalStatus)
	})

	t.Run("mirror failure does not fail the decision", func(t *testing.T) {
		service, companyRepo, userRepo, auditRepo, _ := newWorkflowFixture()
		company := pendingCompany(t)
		userID := uuid.New()
		company.LinkUser(userID)

		companyRepo.On("FindByID", mock.Anything, company.ID).Return(company, nil)
		companyRepo.On("Save", mock.Anything, company).Return(nil)
		userRepo.On("FindByID", mock.Anything, userID).Return(nil, shared.ErrNotFound)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		dto, err := service.Approve(context.Background(), "admin@chatforge.io", company.ID)

		require.NoError(t, err)
		assert.Equal(t, "approved", dto.ApprovalStatus)
		userRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown company", func(t *testing.T) {
		service, companyRepo, _, _, _ := newWorkflowFixture()
		id := uuid.New()
		companyRepo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		dto, err := service.Approve(context.Background(), "admin@chatforge.io", id)

		assert.Nil(t, dto)
		assert.ErrorContains(t, err, "not found")
	})
}

func TestReject(t *testing.T) {
	service, companyRepo, _, auditRepo, _ := newWorkflowFixture()
	company := pendingCompany(t)

	companyRepo.On("FindByID", mock.Anything, company.ID).Return(company, nil)
	companyRepo.On("Save", mock.Anything, company).Return(nil)
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	dto, err := service.Reject(context.Background(), "admin@chatforge.io", company.ID)

	require.NoError(t, err)
	assert.Equal(t, "rejected", dto.ApprovalStatus)
}

func TestApproveAllPending(t *testing.T) {
	t.Run("all updates settle into one aggregate", func(t *testing.T) {
		service, companyRepo, _, auditRepo, _ := newWorkflowFixture()
		companies := make([]identity.Company, 3)
		for i := range companies {
			companies[i] = *pendingCompany(t)
		}

		companyRepo.On("FindPending", mock.Anything).Return(companies, nil)
		companyRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		result, err := service.ApproveAllPending(context.Background(), "admin@chatforge.io")

		require.NoError(t, err)
		assert.Equal(t, 3, result.Requested)
		assert.Equal(t, 3, result.Succeeded)
		assert.Equal(t, 0, result.Failed)
	})

	t.Run("single failure folds into aggregate", func(t *testing.T) {
		service, companyRepo, _, auditRepo, _ := newWorkflowFixture()
		good := *pendingCompany(t)
		bad := *pendingCompany(t)

		companyRepo.On("FindPending", mock.Anything).Return([]identity.Company{good, bad}, nil)
		companyRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *identity.Company) bool {
			return c.ID == bad.ID
		})).Return(errors.New("write quota exceeded"))
		companyRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *identity.Company) bool {
			return c.ID == good.ID
		})).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		result, err := service.ApproveAllPending(context.Background(), "admin@chatforge.io")

		require.NoError(t, err)
		assert.Equal(t, 2, result.Requested)
		assert.Equal(t, 1, result.Succeeded)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("listing failure surfaces as store error", func(t *testing.T) {
		service, companyRepo, _, _, _ := newWorkflowFixture()
		companyRepo.On("FindPending", mock.Anything).Return(nil, errors.New("connection refused"))

		result, err := service.ApproveAllPending(context.Background(), "admin@chatforge.io")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, shared.ErrStoreUnavailable)
	})
}

func TestResetAllToPending(t *testing.T) {
	t.Run("every company returns to pending regardless of state", func(t *testing.T) {
		service, companyRepo, _, auditRepo, _ := newWorkflowFixture()
		approved := *pendingCompany(t)
		require.NoError(t, approved.Approve())
		rejected := *pendingCompany(t)
		require.NoError(t, rejected.Reject())
		legacy := *pendingCompany(t)
		legacy.ApprovalStatus = identity.ApprovalStatusUnknown
		companies := []identity.Company{approved, rejected, legacy, *pendingCompany(t)}

		companyRepo.On("FindAll", mock.Anything, mock.Anything).Return(companies, nil)
		companyRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *identity.Company) bool {
			return c.ApprovalStatus == identity.ApprovalStatusPending
		})).Return(nil).Times(4)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		result, err := service.ResetAllToPending(context.Background(), "admin@chatforge.io", ResetAllConfirmation)

		require.NoError(t, err)
		assert.Equal(t, 4, result.Requested)
		assert.Equal(t, 4, result.Succeeded)
		companyRepo.AssertExpectations(t)
	})

	t.Run("wrong confirmation blocks before any store call", func(t *testing.T) {
		service, companyRepo, _, _, _ := newWorkflowFixture()

		result, err := service.ResetAllToPending(context.Background(), "admin@chatforge.io", "reset all")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, shared.ErrConfirmationFailed)
		companyRepo.AssertNotCalled(t, "FindAll", mock.Anything, mock.Anything)
		companyRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestDeleteCompany(t *testing.T) {
	t.Run("typed confirmation mismatch aborts before delete", func(t *testing.T) {
		service, companyRepo, _, _, archive := newWorkflowFixture()
		company := pendingCompany(t)
		companyRepo.On("FindByID", mock.Anything, company.ID).Return(company, nil)

		err := service.DeleteCompany(context.Background(), "admin@chatforge.io", company.ID, "Acme corp")

		assert.ErrorIs(t, err, shared.ErrConfirmationFailed)
		companyRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		archive.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("backup failure aborts the delete", func(t *testing.T) {
		service, companyRepo, _, _, archive := newWorkflowFixture()
		company := pendingCompany(t)
		companyRepo.On("FindByID", mock.Anything, company.ID).Return(company, nil)
		archive.On("Put", mock.Anything, mock.Anything, "application/json", mock.Anything).
			Return(errors.New("bucket unreachable"))

		err := service.DeleteCompany(context.Background(), "admin@chatforge.io", company.ID, "Acme Corp")

		assert.ErrorContains(t, err, "Backup failed")
		companyRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("matching confirmation backs up then deletes", func(t *testing.T) {
		service, companyRepo, _, auditRepo, archive := newWorkflowFixture()
		company := pendingCompany(t)
		companyRepo.On("FindByID", mock.Anything, company.ID).Return(company, nil)
		archive.On("Put", mock.Anything, mock.Anything, "application/json", mock.Anything).Return(nil)
		companyRepo.On("Delete", mock.Anything, company.ID).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		err := service.DeleteCompany(context.Background(), "admin@chatforge.io", company.ID, "Acme Corp")

		require.NoError(t, err)
		companyRepo.AssertExpectations(t)
		archive.AssertExpectations(t)
	})
}

func TestCreateSyntheticCompany(t *testing.T) {
	service, companyRepo, _, auditRepo, _ := newWorkflowFixture()
	companyRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	dto, err := service.CreateSyntheticCompany(context.Background(), "admin@chatforge.io")

	require.NoError(t, err)
	assert.Contains(t, dto.CompanyName, "Synthetic Test Company")
	assert.Equal(t, "pending", dto.ApprovalStatus)
}

func TestCounts(t *testing.T) {
	t.Run("tallies every status bucket", func(t *testing.T) {
		service, companyRepo, _, _, _ := newWorkflowFixture()
		companyRepo.On("Count", mock.Anything).Return(int64(10), nil)
		companyRepo.On("CountByApprovalStatus", mock.Anything, identity.ApprovalStatusPending).Return(int64(4), nil)
		companyRepo.On("CountByApprovalStatus", mock.Anything, identity.ApprovalStatusApproved).Return(int64(3), nil)
		companyRepo.On("CountByApprovalStatus", mock.Anything, identity.ApprovalStatusRejected).Return(int64(2), nil)
		companyRepo.On("CountMissingApprovalStatus", mock.Anything).Return(int64(1), nil)

		counts, err := service.Counts(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(10), counts.Total)
		assert.Equal(t, int64(4), counts.Pending)
		assert.Equal(t, int64(3), counts.Approved)
		assert.Equal(t, int64(2), counts.Rejected)
		assert.Equal(t, int64(1), counts.MissingStatus)
	})

	t.Run("store failure surfaces once", func(t *testing.T) {
		service, companyRepo, _, _, _ := newWorkflowFixture()
		companyRepo.On("Count", mock.Anything).Return(int64(0), errors.New("connection reset"))

		_, err := service.Counts(context.Background())

		assert.ErrorIs(t, err, shared.ErrStoreUnavailable)
	})
}
