package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/babychef/backend/internal/middleware"
	"github.com/pageza/babychef/backend/internal/service"
	"github.com/pageza/babychef/backend/internal/types"
)

// MockTokenValidator is a mock implementation of the TokenValidator interface
type MockTokenValidator struct {
	mock.Mock
}

var _ middleware.TokenValidator = (*MockTokenValidator)(nil)

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockEntitlementService is a mock implementation of the entitlement check
type MockEntitlementService struct {
	mock.Mock
}

var _ service.IEntitlementService = (*MockEntitlementService)(nil)

func (m *MockEntitlementService) IsPremium(ctx context.Context, userID uuid.UUID) bool {
	args := m.Called(ctx, userID)
	return args.Bool(0)
}
