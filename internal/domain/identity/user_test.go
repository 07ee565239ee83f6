package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user in pending state", func(t *testing.T) {
		user, err := NewUser("Alice@Example.com")

		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, ApprovalStatusPending, user.ApprovalStatus)
		assert.Nil(t, user.CompanyID)
		assert.False(t, user.HasCompany())
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		user, err := NewUser("nope")

		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestUserPassword(t *testing.T) {
	user, err := NewUser("alice@example.com")
	require.NoError(t, err)

	t.Run("rejects short password", func(t *testing.T) {
		assert.Error(t, user.SetPassword("short"))
	})

	t.Run("hashes and verifies", func(t *testing.T) {
		require.NoError(t, user.SetPassword("correct horse battery"))
		assert.NotEqual(t, "correct horse battery", user.PasswordHash)
		assert.True(t, user.CheckPassword("correct horse battery"))
		assert.False(t, user.CheckPassword("wrong password"))
	})
}

func TestUserCompanyLink(t *testing.T) {
	user, err := NewUser("alice@example.com")
	require.NoError(t, err)

	companyID := uuid.New()
	user.ApprovalStatus = ApprovalStatusApproved
	user.LinkCompany(companyID)

	require.NotNil(t, user.CompanyID)
	assert.Equal(t, companyID, *user.CompanyID)
	assert.True(t, user.HasCompany())
	// linking resets the mirrored status to match the new pending company
	assert.Equal(t, ApprovalStatusPending, user.ApprovalStatus)

	user.MirrorApprovalStatus(ApprovalStatusApproved)
	assert.Equal(t, ApprovalStatusApproved, user.ApprovalStatus)
}
