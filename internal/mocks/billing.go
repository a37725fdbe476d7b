package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v76"

	"github.com/pageza/babychef/backend/internal/service"
)

// MockBillingService is a mock implementation of the billing service
type MockBillingService struct {
	mock.Mock
}

var _ service.IBillingService = (*MockBillingService)(nil)

func (m *MockBillingService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	args := m.Called(ctx, payload, signatureHeader)
	return args.Error(0)
}

func (m *MockBillingService) CreateCheckoutSession(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// MockCheckoutSessions is a mock implementation of the checkout session API
type MockCheckoutSessions struct {
	mock.Mock
}

var _ service.CheckoutSessionCreator = (*MockCheckoutSessions)(nil)

func (m *MockCheckoutSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	args := m.Called(params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}
