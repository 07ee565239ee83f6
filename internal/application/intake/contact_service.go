package intake

import (
	"context"
	"errors"

	"github.com/chatforge/backend/internal/domain/intake"
	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmitContactInput carries a contact-form submission from the public site
type SubmitContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService handles public contact-form intake and the operator
// inbox built on top of it.
type ContactService struct {
	messageRepo intake.ContactMessageRepository
	logger      *zap.Logger
}

// NewContactService creates a new contact service
func NewContactService(messageRepo intake.ContactMessageRepository, logger *zap.Logger) *ContactService {
	return &ContactService{messageRepo: messageRepo, logger: logger}
}

// Submit validates and stores a contact-form submission
func (s *ContactService) Submit(ctx context.Context, input SubmitContactInput) (*ContactMessageDTO, error) {
	message, err := intake.NewContactMessage(input.Name, input.Email, input.Subject, input.Message)
	if err != nil {
		return nil, err
	}
	if err := s.messageRepo.Save(ctx, message); err != nil {
		s.logger.Error("Failed to store contact message", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	s.logger.Info("Contact message received",
		zap.String("message_id", message.ID.String()),
		zap.String("email", message.Email))

	dto := toContactMessageDTO(message)
	return &dto, nil
}

// List returns contact messages for the operator inbox, newest first by
// default filter.
func (s *ContactService) List(ctx context.Context, filter shared.Filter) ([]ContactMessageDTO, error) {
	messages, err := s.messageRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list contact messages", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}
	return toContactMessageDTOs(messages), nil
}

// MarkRead flags a message as handled
func (s *ContactService) MarkRead(ctx context.Context, id uuid.UUID) (*ContactMessageDTO, error) {
	message, err := s.messageRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("MESSAGE_NOT_FOUND", "Contact message not found")
		}
		s.logger.Error("Failed to read contact message", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	message.MarkRead()
	if err := s.messageRepo.Save(ctx, message); err != nil {
		s.logger.Error("Failed to update contact message", zap.Error(err))
		return nil, shared.ErrStoreUnavailable
	}

	dto := toContactMessageDTO(message)
	return &dto, nil
}

// Delete removes a message from the inbox
func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.messageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("MESSAGE_NOT_FOUND", "Contact message not found")
		}
		s.logger.Error("Failed to delete contact message", zap.Error(err))
		return shared.ErrStoreUnavailable
	}
	return nil
}

// UnreadCount returns the number of unhandled messages, for the
// dashboard badge.
func (s *ContactService) UnreadCount(ctx context.Context) (int64, error) {
	count, err := s.messageRepo.CountUnread(ctx)
	if err != nil {
		s.logger.Error("Failed to count unread contact messages", zap.Error(err))
		return 0, shared.ErrStoreUnavailable
	}
	return count, nil
}
