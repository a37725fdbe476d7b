package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/babychef/backend/internal/model"
	"github.com/pageza/babychef/backend/internal/service"
)

// MockObjectStore is a mock implementation of the ObjectStore interface
type MockObjectStore struct {
	mock.Mock
}

var _ service.ObjectStore = (*MockObjectStore)(nil)

func (m *MockObjectStore) GeneratePresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}

func (m *MockObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	args := m.Called(ctx, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockCleanupScheduler is a mock implementation of the CleanupScheduler interface
type MockCleanupScheduler struct {
	mock.Mock
}

var _ service.CleanupScheduler = (*MockCleanupScheduler)(nil)

func (m *MockCleanupScheduler) Schedule(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

// MockProfileStore is a mock implementation of the ProfileStore interface
type MockProfileStore struct {
	mock.Mock
}

var _ service.ProfileStore = (*MockProfileStore)(nil)

func (m *MockProfileStore) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileStore) SetPremium(ctx context.Context, userID uuid.UUID, premium bool, customerID string) error {
	args := m.Called(ctx, userID, premium, customerID)
	return args.Error(0)
}
