package intake

import (
	"context"
	"testing"

	"github.com/chatforge/backend/internal/domain/intake"
	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newContactFixture() (*ContactService, *MockContactMessageRepository) {
	messageRepo := new(MockContactMessageRepository)
	service := NewContactService(messageRepo, zap.NewNop())
	return service, messageRepo
}

func TestSubmitContact(t *testing.T) {
	t.Run("stores an unread message", func(t *testing.T) {
		service, messageRepo := newContactFixture()
		messageRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

		dto, err := service.Submit(context.Background(), SubmitContactInput{
			Name:    "Maria Rossi",
			Email:   "MARIA@Example.com",
			Subject: "Pricing question",
			Message: "How much for a booking site?",
		})

		require.NoError(t, err)
		assert.Equal(t, "maria@example.com", dto.Email)
		assert.False(t, dto.Read)
	})

	t.Run("invalid email rejected before any write", func(t *testing.T) {
		service, messageRepo := newContactFixture()

		_, err := service.Submit(context.Background(), SubmitContactInput{
			Name:    "Maria Rossi",
			Email:   "not-an-address",
			Message: "hello",
		})

		assert.ErrorContains(t, err, "Email")
		messageRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestMarkRead(t *testing.T) {
	service, messageRepo := newContactFixture()
	message, err := intake.NewContactMessage("Maria Rossi", "maria@example.com", "", "hello there")
	require.NoError(t, err)

	messageRepo.On("FindByID", mock.Anything, message.ID).Return(message, nil)
	messageRepo.On("Save", mock.Anything, message).Return(nil)

	dto, err := service.MarkRead(context.Background(), message.ID)

	require.NoError(t, err)
	assert.True(t, dto.Read)
}

func TestUnreadCount(t *testing.T) {
	t.Run("returns the badge count", func(t *testing.T) {
		service, messageRepo := newContactFixture()
		messageRepo.On("CountUnread", mock.Anything).Return(int64(7), nil)

		count, err := service.UnreadCount(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(7), count)
	})

	t.Run("store failure", func(t *testing.T) {
		service, messageRepo := newContactFixture()
		messageRepo.On("CountUnread", mock.Anything).Return(int64(0), assert.AnError)

		_, err := service.UnreadCount(context.Background())

		assert.ErrorIs(t, err, shared.ErrStoreUnavailable)
	})
}
