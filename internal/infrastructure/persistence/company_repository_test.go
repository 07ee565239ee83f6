package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chatforge/backend/internal/domain/identity"
	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCompanyRepository creates a GormCompanyRepository with a mocked SQL connection
func newMockCompanyRepository(t *testing.T) (*GormCompanyRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCompanyRepository(gormDB), mock, mockDB
}

func companyRows(id uuid.UUID, name, email, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "company_name", "email", "approval_status", "status", "subscription_plan", "subscription_status"}).
		AddRow(id, name, email, status, "active", "free", "inactive")
}

func TestGormCompanyRepository_FindByID(t *testing.T) {
	t.Run("finds existing company", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "companies" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, 1).
			WillReturnRows(companyRows(companyID, "Acme Corp", "ops@acme.test", "pending"))

		company, err := repo.FindByID(context.Background(), companyID)

		assert.NoError(t, err)
		assert.NotNil(t, company)
		assert.Equal(t, companyID, company.ID)
		assert.Equal(t, "Acme Corp", company.CompanyName)
		assert.Equal(t, identity.ApprovalStatusPending, company.ApprovalStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent company", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "companies" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		company, err := repo.FindByID(context.Background(), companyID)

		assert.Error(t, err)
		assert.Nil(t, company)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reads legacy row without approval status as unknown", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "companies" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(companyID, 1).
			WillReturnRows(companyRows(companyID, "Legacy Co", "legacy@example.test", ""))

		company, err := repo.FindByID(context.Background(), companyID)

		assert.NoError(t, err)
		assert.Equal(t, identity.ApprovalStatusUnknown, company.ApprovalStatus)
		assert.False(t, company.ApprovalStatus.IsKnown())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCompanyRepository_FindByUserID(t *testing.T) {
	t.Run("finds company linked to user", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		userID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "companies" WHERE user_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnRows(companyRows(companyID, "Acme Corp", "ops@acme.test", "approved"))

		company, err := repo.FindByUserID(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, companyID, company.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when user has no company", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "companies" WHERE user_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		company, err := repo.FindByUserID(context.Background(), userID)

		assert.Nil(t, company)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCompanyRepository_FindByEmail(t *testing.T) {
	t.Run("lowercases email before lookup", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "companies" WHERE email = \$1 ORDER BY .* LIMIT .*`).
			WithArgs("ops@acme.test", 1).
			WillReturnRows(companyRows(companyID, "Acme Corp", "ops@acme.test", "pending"))

		company, err := repo.FindByEmail(context.Background(), "Ops@Acme.Test")

		assert.NoError(t, err)
		assert.Equal(t, "ops@acme.test", company.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for empty email", func(t *testing.T) {
		repo, _, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		_, err := repo.FindByEmail(context.Background(), "")

		assert.Error(t, err)
	})
}

func TestGormCompanyRepository_FindByApprovalStatus(t *testing.T) {
	t.Run("applies approval record integrity filter", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "companies" WHERE approval_status = \$1 AND .*TRIM\(company_name\) <> '' AND TRIM\(email\) <> ''.* ORDER BY created_at DESC`).
			WithArgs("pending").
			WillReturnRows(companyRows(uuid.New(), "Acme Corp", "ops@acme.test", "pending"))

		companies, err := repo.FindByApprovalStatus(context.Background(), identity.ApprovalStatusPending, shared.Unpaged())

		assert.NoError(t, err)
		assert.Len(t, companies, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCompanyRepository_Save(t *testing.T) {
	t.Run("saves company", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		company, err := identity.NewCompany("Acme Corp", "ops@acme.test")
		require.NoError(t, err)

		mock.ExpectExec(`UPDATE "companies" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Save(context.Background(), company)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCompanyRepository_Delete(t *testing.T) {
	t.Run("deletes existing company", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()

		mock.ExpectExec(`DELETE FROM "companies" WHERE id = \$1`).
			WithArgs(companyID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Delete(context.Background(), companyID)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent company", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()

		mock.ExpectExec(`DELETE FROM "companies" WHERE id = \$1`).
			WithArgs(companyID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(context.Background(), companyID)

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCompanyRepository_Counts(t *testing.T) {
	t.Run("counts all companies", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "companies"`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

		count, err := repo.Count(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(12), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counts companies by approval status", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "companies" WHERE approval_status = \$1`).
			WithArgs("approved").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountByApprovalStatus(context.Background(), identity.ApprovalStatusApproved)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("counts legacy rows missing approval status", func(t *testing.T) {
		repo, mock, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "companies" WHERE approval_status IS NULL OR approval_status = ''`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		count, err := repo.CountMissingApprovalStatus(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCompanyRepository_InterfaceCompliance(t *testing.T) {
	t.Run("implements CompanyRepository interface", func(t *testing.T) {
		repo, _, mockDB := newMockCompanyRepository(t)
		defer mockDB.Close()

		var _ identity.CompanyRepository = repo
	})
}
