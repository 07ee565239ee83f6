package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompany(t *testing.T) {
	t.Run("creates company in pending state", func(t *testing.T) {
		company, err := NewCompany("Acme Corp", "owner@acme.com")

		require.NoError(t, err)
		assert.NotNil(t, company)
		assert.Equal(t, "Acme Corp", company.CompanyName)
		assert.Equal(t, "owner@acme.com", company.Email)
		assert.Equal(t, ApprovalStatusPending, company.ApprovalStatus)
		assert.Equal(t, CompanyStatusActive, company.Status)
		assert.Equal(t, SubscriptionPlanFree, company.Subscription.Plan)
		assert.Nil(t, company.UserID)
	})

	t.Run("normalizes email", func(t *testing.T) {
		company, err := NewCompany("Acme Corp", "  Owner@Acme.COM ")

		require.NoError(t, err)
		assert.Equal(t, "owner@acme.com", company.Email)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		company, err := NewCompany("", "owner@acme.com")

		assert.Error(t, err)
		assert.Nil(t, company)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		company, err := NewCompany("Acme Corp", "not-an-address")

		assert.Error(t, err)
		assert.Nil(t, company)
	})
}

func TestNewCompanyForUser(t *testing.T) {
	t.Run("uses company name hint when present", func(t *testing.T) {
		user, err := NewUser("alice@example.com")
		require.NoError(t, err)
		user.CompanyName = "Alice Widgets"

		company, err := NewCompanyForUser(user)

		require.NoError(t, err)
		assert.Equal(t, "Alice Widgets", company.CompanyName)
		require.NotNil(t, company.UserID)
		assert.Equal(t, user.ID, *company.UserID)
		assert.Equal(t, ApprovalStatusPending, company.ApprovalStatus)
	})

	t.Run("derives placeholder from email local part", func(t *testing.T) {
		user, err := NewUser("bob@example.com")
		require.NoError(t, err)

		company, err := NewCompanyForUser(user)

		require.NoError(t, err)
		assert.Equal(t, "Company for bob", company.CompanyName)
	})
}

func TestApprovalTransitions(t *testing.T) {
	newPending := func(t *testing.T) *Company {
		company, err := NewCompany("Acme Corp", "owner@acme.com")
		require.NoError(t, err)
		return company
	}

	t.Run("pending to approved", func(t *testing.T) {
		company := newPending(t)
		require.NoError(t, company.Approve())
		assert.Equal(t, ApprovalStatusApproved, company.ApprovalStatus)
	})

	t.Run("pending to rejected", func(t *testing.T) {
		company := newPending(t)
		require.NoError(t, company.Reject())
		assert.Equal(t, ApprovalStatusRejected, company.ApprovalStatus)
	})

	t.Run("approve is idempotent", func(t *testing.T) {
		company := newPending(t)
		require.NoError(t, company.Approve())
		require.NoError(t, company.Approve())
		assert.Equal(t, ApprovalStatusApproved, company.ApprovalStatus)
	})

	t.Run("no direct approved to rejected transition", func(t *testing.T) {
		company := newPending(t)
		require.NoError(t, company.Approve())

		err := company.Reject()

		assert.Error(t, err)
		assert.Equal(t, ApprovalStatusApproved, company.ApprovalStatus)
	})

	t.Run("no direct rejected to approved transition", func(t *testing.T) {
		company := newPending(t)
		require.NoError(t, company.Reject())

		err := company.Approve()

		assert.Error(t, err)
		assert.Equal(t, ApprovalStatusRejected, company.ApprovalStatus)
	})

	t.Run("reset returns any state to pending", func(t *testing.T) {
		company := newPending(t)
		require.NoError(t, company.Approve())

		company.ResetToPending()

		assert.Equal(t, ApprovalStatusPending, company.ApprovalStatus)

		company.ApprovalStatus = ApprovalStatusUnknown
		company.ResetToPending()
		assert.Equal(t, ApprovalStatusPending, company.ApprovalStatus)
	})
}

func TestApprovalStatus(t *testing.T) {
	t.Run("known values", func(t *testing.T) {
		assert.True(t, ApprovalStatusPending.IsKnown())
		assert.True(t, ApprovalStatusApproved.IsKnown())
		assert.True(t, ApprovalStatusRejected.IsKnown())
		assert.False(t, ApprovalStatusUnknown.IsKnown())
		assert.False(t, ApprovalStatus("bogus").IsKnown())
	})

	t.Run("unknown renders as unknown", func(t *testing.T) {
		assert.Equal(t, "unknown", ApprovalStatusUnknown.String())
		assert.Equal(t, "pending", ApprovalStatusPending.String())
	})
}

func TestHasValidApprovalRecord(t *testing.T) {
	company, err := NewCompany("Acme Corp", "owner@acme.com")
	require.NoError(t, err)
	assert.True(t, company.HasValidApprovalRecord())

	company.Email = ""
	assert.False(t, company.HasValidApprovalRecord())

	company.Email = "owner@acme.com"
	company.CompanyName = "   "
	assert.False(t, company.HasValidApprovalRecord())
}

func TestNewSyntheticCompany(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	company := NewSyntheticCompany(now)

	assert.Equal(t, "Synthetic Test Company 20260314-093000", company.CompanyName)
	assert.Equal(t, ApprovalStatusPending, company.ApprovalStatus)
	assert.Equal(t, CompanyStatusInactive, company.Status)
	assert.True(t, company.HasValidApprovalRecord())
}

func TestCompanyOperationalStatus(t *testing.T) {
	company, err := NewCompany("Acme Corp", "owner@acme.com")
	require.NoError(t, err)

	t.Run("activate active company fails", func(t *testing.T) {
		assert.Error(t, company.Activate())
	})

	t.Run("suspend then activate", func(t *testing.T) {
		require.NoError(t, company.Suspend())
		assert.Equal(t, CompanyStatusSuspended, company.Status)
		require.NoError(t, company.Activate())
		assert.Equal(t, CompanyStatusActive, company.Status)
	})

	t.Run("operational status independent of approval", func(t *testing.T) {
		require.NoError(t, company.Deactivate())
		assert.Equal(t, ApprovalStatusPending, company.ApprovalStatus)
	})
}

func TestCompanyLinking(t *testing.T) {
	company, err := NewCompany("Acme Corp", "owner@acme.com")
	require.NoError(t, err)
	assert.False(t, company.HasUser())

	user, err := NewUser("owner@acme.com")
	require.NoError(t, err)
	company.LinkUser(user.ID)

	assert.True(t, company.HasUser())
	assert.Equal(t, user.ID, *company.UserID)
}

func TestApprovalPredicates(t *testing.T) {
	company, err := NewCompany("Acme Corp", "owner@acme.com")
	require.NoError(t, err)

	assert.True(t, company.IsPending())
	assert.False(t, company.IsApproved())

	require.NoError(t, company.Approve())

	assert.False(t, company.IsPending())
	assert.True(t, company.IsApproved())
}

func TestSetProfile(t *testing.T) {
	t.Run("updates profile fields", func(t *testing.T) {
		company, err := NewCompany("Acme Corp", "owner@acme.com")
		require.NoError(t, err)

		err = company.SetProfile("+1 555 0100", "https://acme.example", "Manufacturing", "Acme.Example", "Widgets at scale", 40)

		require.NoError(t, err)
		assert.Equal(t, "acme.example", company.Domain)
		assert.Equal(t, 40, company.EmployeeCount)
	})

	t.Run("rejects negative employee count", func(t *testing.T) {
		company, err := NewCompany("Acme Corp", "owner@acme.com")
		require.NoError(t, err)

		assert.Error(t, company.SetProfile("", "", "", "", "", -1))
	})
}

func TestSetSubscription(t *testing.T) {
	company, err := NewCompany("Acme Corp", "owner@acme.com")
	require.NoError(t, err)

	require.NoError(t, company.SetSubscription(SubscriptionPlanPro, "active"))
	assert.Equal(t, SubscriptionPlanPro, company.Subscription.Plan)
	assert.Equal(t, "active", company.Subscription.Status)

	assert.Error(t, company.SetSubscription(SubscriptionPlan("gold"), "active"))
}
