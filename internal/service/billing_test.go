package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/config"
	"github.com/pageza/babychef/backend/internal/mocks"
	"github.com/pageza/babychef/backend/internal/service"
)

const testWebhookSecret = "whsec_test"

// signPayload builds a Stripe-Signature header for payload
func signPayload(payload []byte, secret string) string {
	return webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload: payload,
		Secret:  secret,
	}).Header
}

func eventPayload(eventType, object string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test",
		"object": "event",
		"api_version": "2020-08-27",
		"type": %q,
		"data": {"object": %s}
	}`, eventType, object))
}

func newBillingFixture() (*service.BillingService, *mocks.MockProfileStore, *mocks.MockCheckoutSessions) {
	profiles := new(mocks.MockProfileStore)
	sessions := new(mocks.MockCheckoutSessions)
	svc := service.NewBillingService(config.StripeConfig{
		SecretKey:     "sk_test",
		WebhookSecret: testWebhookSecret,
		PriceID:       "price_123",
	}, "https://babychef.example.com/", sessions, profiles, nil, zap.NewNop())
	return svc, profiles, sessions
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	svc, profiles, _ := newBillingFixture()
	userID := uuid.New()
	payload := eventPayload(service.EventCheckoutCompleted,
		fmt.Sprintf(`{"object": "checkout.session", "metadata": {"user_id": %q}}`, userID))

	for name, header := range map[string]string{
		"wrong secret": signPayload(payload, "whsec_other"),
		"empty header": "",
		"garbage":      "t=1,v1=deadbeef",
	} {
		t.Run(name, func(t *testing.T) {
			err := svc.HandleWebhook(context.Background(), payload, header)
			assert.ErrorIs(t, err, service.ErrUnauthorizedSignal)
		})
	}
	profiles.AssertNotCalled(t, "SetPremium", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleWebhook_EntitlementEvents(t *testing.T) {
	tests := []struct {
		eventType string
		object    string
		premium   bool
		customer  string
	}{
		{service.EventCheckoutCompleted, "checkout.session", true, "cus_1"},
		{service.EventSubscriptionCreated, "subscription", true, "cus_1"},
		{service.EventSubscriptionUpdated, "subscription", true, "cus_1"},
		{service.EventSubscriptionDeleted, "subscription", false, "cus_1"},
	}

	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			svc, profiles, _ := newBillingFixture()
			userID := uuid.New()
			payload := eventPayload(tt.eventType, fmt.Sprintf(
				`{"object": %q, "customer": "cus_1", "metadata": {"user_id": %q}}`, tt.object, userID))

			profiles.On("SetPremium", mock.Anything, userID, tt.premium, tt.customer).Return(nil)

			err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))
			require.NoError(t, err)
			profiles.AssertExpectations(t)
		})
	}
}

func TestHandleWebhook_ExpandedCustomer(t *testing.T) {
	svc, profiles, _ := newBillingFixture()
	userID := uuid.New()
	payload := eventPayload(service.EventSubscriptionUpdated, fmt.Sprintf(
		`{"object": "subscription", "customer": {"id": "cus_expanded", "object": "customer"}, "metadata": {"user_id": %q}}`, userID))

	profiles.On("SetPremium", mock.Anything, userID, true, "cus_expanded").Return(nil)

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret)))
	profiles.AssertExpectations(t)
}

func TestHandleWebhook_IgnoredEvents(t *testing.T) {
	tests := map[string][]byte{
		"unrelated type":   eventPayload("invoice.paid", `{"object": "invoice", "metadata": {}}`),
		"missing user id":  eventPayload(service.EventCheckoutCompleted, `{"object": "checkout.session", "metadata": {}}`),
		"invalid user id":  eventPayload(service.EventCheckoutCompleted, `{"object": "checkout.session", "metadata": {"user_id": "abc"}}`),
		"missing metadata": eventPayload(service.EventSubscriptionDeleted, `{"object": "subscription"}`),
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			svc, profiles, _ := newBillingFixture()

			err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))
			assert.NoError(t, err)
			profiles.AssertNotCalled(t, "SetPremium", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandleWebhook_PersistenceFailure(t *testing.T) {
	svc, profiles, _ := newBillingFixture()
	userID := uuid.New()
	payload := eventPayload(service.EventCheckoutCompleted,
		fmt.Sprintf(`{"object": "checkout.session", "metadata": {"user_id": %q}}`, userID))

	profiles.On("SetPremium", mock.Anything, userID, true, "").Return(errors.New("db down"))

	err := svc.HandleWebhook(context.Background(), payload, signPayload(payload, testWebhookSecret))
	var persistErr *service.PersistenceError
	assert.True(t, errors.As(err, &persistErr))
}

func TestCreateCheckoutSession(t *testing.T) {
	t.Run("builds a subscription session", func(t *testing.T) {
		svc, _, sessions := newBillingFixture()
		userID := uuid.New()

		sessions.On("New", mock.MatchedBy(func(p *stripe.CheckoutSessionParams) bool {
			return *p.Mode == string(stripe.CheckoutSessionModeSubscription) &&
				*p.LineItems[0].Price == "price_123" &&
				*p.LineItems[0].Quantity == 1 &&
				*p.SuccessURL == "https://babychef.example.com/app" &&
				*p.CancelURL == "https://babychef.example.com/premium" &&
				p.Metadata[service.MetadataUserID] == userID.String() &&
				p.SubscriptionData.Metadata[service.MetadataUserID] == userID.String()
		})).Return(&stripe.CheckoutSession{URL: "https://checkout.stripe.com/c/pay/cs_test"}, nil)

		url, err := svc.CreateCheckoutSession(context.Background(), userID)
		require.NoError(t, err)
		assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test", url)
		sessions.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		svc, _, sessions := newBillingFixture()

		_, err := svc.CreateCheckoutSession(context.Background(), uuid.Nil)
		assert.ErrorIs(t, err, service.ErrMissingUser)
		sessions.AssertNotCalled(t, "New", mock.Anything)
	})

	t.Run("provider error", func(t *testing.T) {
		svc, _, sessions := newBillingFixture()
		sessions.On("New", mock.Anything).Return(nil, errors.New("card declined"))

		_, err := svc.CreateCheckoutSession(context.Background(), uuid.New())
		assert.ErrorContains(t, err, "card declined")
	})
}
