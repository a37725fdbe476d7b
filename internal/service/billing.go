package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/config"
	"github.com/pageza/babychef/backend/internal/metrics"
)

// Webhook event types that change entitlements
const (
	EventCheckoutCompleted   = "checkout.session.completed"
	EventSubscriptionCreated = "customer.subscription.created"
	EventSubscriptionUpdated = "customer.subscription.updated"
	EventSubscriptionDeleted = "customer.subscription.deleted"
)

// MetadataUserID is the metadata key carrying our user id on payment objects
const MetadataUserID = "user_id"

// CheckoutSessionCreator creates hosted checkout sessions
type CheckoutSessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// BillingService handles subscription checkout and payment webhooks
type BillingService struct {
	webhookSecret string
	priceID       string
	siteURL       string
	sessions      CheckoutSessionCreator
	profiles      ProfileStore
	metrics       *metrics.Metrics
	log           *zap.Logger
}

var _ IBillingService = (*BillingService)(nil)

// NewBillingService creates a new BillingService
func NewBillingService(cfg config.StripeConfig, siteURL string, sessions CheckoutSessionCreator, profiles ProfileStore, m *metrics.Metrics, log *zap.Logger) *BillingService {
	return &BillingService{
		webhookSecret: cfg.WebhookSecret,
		priceID:       cfg.PriceID,
		siteURL:       strings.TrimRight(siteURL, "/"),
		sessions:      sessions,
		profiles:      profiles,
		metrics:       m,
		log:           log,
	}
}

// paymentObject holds the fields we read from checkout sessions and subscriptions
type paymentObject struct {
	Metadata map[string]string `json:"metadata"`
	Customer json.RawMessage   `json:"customer"`
}

func (p paymentObject) customerID() string {
	if len(p.Customer) == 0 {
		return ""
	}
	var id string
	if err := json.Unmarshal(p.Customer, &id); err == nil {
		return id
	}
	var expanded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(p.Customer, &expanded); err == nil {
		return expanded.ID
	}
	return ""
}

// HandleWebhook verifies a payment webhook and applies its entitlement change.
// Events that cannot be attributed to a user are acknowledged and ignored.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		s.metrics.RecordWebhook("unverified", err)
		s.log.Warn("Rejected payment webhook", zap.Error(err))
		return ErrUnauthorizedSignal
	}

	eventType := string(event.Type)
	log := s.log.With(zap.String("event_id", event.ID), zap.String("event_type", eventType))

	var premium bool
	switch eventType {
	case EventCheckoutCompleted, EventSubscriptionCreated, EventSubscriptionUpdated:
		premium = true
	case EventSubscriptionDeleted:
		premium = false
	default:
		s.metrics.RecordWebhook(eventType, nil)
		log.Debug("Ignoring payment event")
		return nil
	}

	var obj paymentObject
	if event.Data == nil || json.Unmarshal(event.Data.Raw, &obj) != nil {
		s.metrics.RecordWebhook(eventType, nil)
		log.Warn("Payment event has no readable object, ignoring")
		return nil
	}

	userID, err := uuid.Parse(obj.Metadata[MetadataUserID])
	if err != nil || userID == uuid.Nil {
		s.metrics.RecordWebhook(eventType, nil)
		log.Warn("Payment event without a valid user_id, ignoring")
		return nil
	}

	if err := s.profiles.SetPremium(ctx, userID, premium, obj.customerID()); err != nil {
		s.metrics.RecordWebhook(eventType, err)
		log.Error("Failed to update entitlement", zap.String("user_id", userID.String()), zap.Error(err))
		return &PersistenceError{Err: err}
	}

	s.metrics.RecordWebhook(eventType, nil)
	log.Info("Entitlement updated", zap.String("user_id", userID.String()), zap.Bool("is_premium", premium))
	return nil
}

// CreateCheckoutSession starts a subscription checkout for the user and
// returns the hosted checkout URL
func (s *BillingService) CreateCheckoutSession(ctx context.Context, userID uuid.UUID) (string, error) {
	if userID == uuid.Nil {
		return "", ErrMissingUser
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(s.priceID),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(s.siteURL + "/app"),
		CancelURL:         stripe.String(s.siteURL + "/premium"),
		ClientReferenceID: stripe.String(userID.String()),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{MetadataUserID: userID.String()},
		},
	}
	params.AddMetadata(MetadataUserID, userID.String())
	params.Context = ctx

	session, err := s.sessions.New(params)
	if err != nil {
		s.log.Error("Failed to create checkout session", zap.String("user_id", userID.String()), zap.Error(err))
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	if session.URL == "" {
		return "", errors.New("checkout session has no URL")
	}
	return session.URL, nil
}
