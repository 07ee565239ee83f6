package intake

import (
	"context"
	"strings"

	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactMessage is a submission from the public marketing-site contact form
type ContactMessage struct {
	shared.BaseEntity
	Name    string
	Email   string
	Subject string
	Message string
	Read    bool
}

// NewContactMessage creates a new unread contact message
func NewContactMessage(name, email, subject, message string) (*ContactMessage, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email is not a valid address")
	}
	if strings.TrimSpace(message) == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot be empty")
	}
	if len(message) > 5000 {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot exceed 5000 characters")
	}

	return &ContactMessage{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Email:      email,
		Subject:    strings.TrimSpace(subject),
		Message:    message,
	}, nil
}

// MarkRead flags the message as handled by an operator
func (m *ContactMessage) MarkRead() {
	m.Read = true
	m.Touch()
}

// ContactMessageRepository defines persistence operations for contact messages
type ContactMessageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ContactMessage, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]ContactMessage, error)
	Save(ctx context.Context, message *ContactMessage) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountUnread(ctx context.Context) (int64, error)
}
