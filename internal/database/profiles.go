package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/babychef/backend/internal/model"
)

// ProfileStore reads and writes subscription entitlements
type ProfileStore struct {
	db *gorm.DB
}

// NewProfileStore creates a new ProfileStore
func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// GetProfile returns the profile row or ErrNotFound
func (s *ProfileStore) GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var profile model.Profile
	err := s.db.WithContext(ctx).First(&profile, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SetPremium upserts the profile with the given entitlement
func (s *ProfileStore) SetPremium(ctx context.Context, userID uuid.UUID, premium bool, customerID string) error {
	now := time.Now()
	profile := model.Profile{
		ID:               userID,
		IsPremium:        premium,
		StripeCustomerID: customerID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	updates := []string{"is_premium", "updated_at"}
	if customerID != "" {
		updates = append(updates, "stripe_customer_id")
	}

	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(updates),
	}).Create(&profile).Error
}
