package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/internal/database"
)

// EntitlementService answers premium checks from stored profiles
type EntitlementService struct {
	profiles ProfileStore
	log      *zap.Logger
}

var _ IEntitlementService = (*EntitlementService)(nil)

// NewEntitlementService creates a new EntitlementService
func NewEntitlementService(profiles ProfileStore, log *zap.Logger) *EntitlementService {
	return &EntitlementService{profiles: profiles, log: log}
}

// IsPremium reports whether the user holds an active subscription. Lookup
// failures count as not premium.
func (s *EntitlementService) IsPremium(ctx context.Context, userID uuid.UUID) bool {
	if userID == uuid.Nil {
		return false
	}

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			s.log.Warn("Entitlement lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
		return false
	}
	return profile.IsPremium
}
