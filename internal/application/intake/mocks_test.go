package intake

import (
	"context"

	"github.com/chatforge/backend/internal/domain/intake"
	"github.com/chatforge/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockContactMessageRepository is a mock implementation of intake.ContactMessageRepository
type MockContactMessageRepository struct {
	mock.Mock
}

func (m *MockContactMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*intake.ContactMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intake.ContactMessage), args.Error(1)
}

func (m *MockContactMessageRepository) FindAll(ctx context.Context, filter shared.Filter) ([]intake.ContactMessage, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]intake.ContactMessage), args.Error(1)
}

func (m *MockContactMessageRepository) Save(ctx context.Context, message *intake.ContactMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockContactMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockContactMessageRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContactMessageRepository) CountUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockBuildRequestRepository is a mock implementation of intake.BuildRequestRepository
type MockBuildRequestRepository struct {
	mock.Mock
}

func (m *MockBuildRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*intake.BuildRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intake.BuildRequest), args.Error(1)
}

func (m *MockBuildRequestRepository) FindAll(ctx context.Context, filter shared.Filter) ([]intake.BuildRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]intake.BuildRequest), args.Error(1)
}

func (m *MockBuildRequestRepository) FindByStatus(ctx context.Context, status intake.BuildRequestStatus, filter shared.Filter) ([]intake.BuildRequest, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]intake.BuildRequest), args.Error(1)
}

func (m *MockBuildRequestRepository) Save(ctx context.Context, request *intake.BuildRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockBuildRequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBuildRequestRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockTemplateRepository is a mock implementation of intake.TemplateRepository
type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindByID(ctx context.Context, id uuid.UUID) (*intake.Template, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*intake.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]intake.Template, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]intake.Template), args.Error(1)
}

func (m *MockTemplateRepository) FindActive(ctx context.Context, category string) ([]intake.Template, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]intake.Template), args.Error(1)
}

func (m *MockTemplateRepository) Save(ctx context.Context, template *intake.Template) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTemplateRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockArchiveStore is a mock implementation of ArchiveStore
type MockArchiveStore struct {
	mock.Mock
}

func (m *MockArchiveStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	args := m.Called(ctx, key, contentType, data)
	return args.Error(0)
}
