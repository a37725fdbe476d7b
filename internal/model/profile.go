package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile carries the subscription entitlement of a user. The id is the
// identity provider's user id.
type Profile struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IsPremium        bool      `gorm:"not null;default:false" json:"is_premium"`
	StripeCustomerID string    `gorm:"size:255" json:"stripe_customer_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
