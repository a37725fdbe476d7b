package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/internal/middleware"
	"github.com/pageza/babychef/backend/internal/service"
)

// maxWebhookBytes bounds payment webhook bodies
const maxWebhookBytes = 64 << 10

// BillingHandler serves checkout, webhooks and entitlement status
type BillingHandler struct {
	billing      service.IBillingService
	entitlements service.IEntitlementService
	limiter      *middleware.RateLimiter
	log          *zap.Logger
}

// NewBillingHandler creates a new BillingHandler. limiter may be nil.
func NewBillingHandler(billing service.IBillingService, entitlements service.IEntitlementService, limiter *middleware.RateLimiter, log *zap.Logger) *BillingHandler {
	return &BillingHandler{
		billing:      billing,
		entitlements: entitlements,
		limiter:      limiter,
		log:          log,
	}
}

// Webhook handles POST /webhook/payment
func (h *BillingHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request"})
		return
	}

	if err := h.billing.HandleWebhook(c.Request.Context(), payload, c.GetHeader("Stripe-Signature")); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// Checkout handles POST /checkout
func (h *BillingHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	url, err := h.billing.CreateCheckoutSession(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Redirect(http.StatusSeeOther, url)
}

// Entitlement handles GET /me/entitlement
func (h *BillingHandler) Entitlement(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	resp := gin.H{"isPremium": h.entitlements.IsPremium(c.Request.Context(), userID)}
	if h.limiter != nil && h.limiter.Enabled() {
		remaining, resetTime, err := h.limiter.GetRemainingRequests(c.Request.Context(), userID.String())
		if err != nil {
			h.log.Warn("Failed to read remaining generations", zap.String("user_id", userID.String()), zap.Error(err))
		} else {
			resp["generationsRemaining"] = remaining
			resp["generationsReset"] = resetTime.Unix()
		}
	}

	c.JSON(http.StatusOK, resp)
}
