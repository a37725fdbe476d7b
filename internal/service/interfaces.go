package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/babychef/backend/internal/model"
	"github.com/pageza/babychef/backend/internal/types"
)

// Completer sends prompts to a language model and returns its raw answer
type Completer interface {
	CompleteText(ctx context.Context, prompt string) (string, error)
	CompleteVision(ctx context.Context, prompt, imageURL string) (string, error)
}

// ObjectStore reads and writes photos in object storage
type ObjectStore interface {
	GeneratePresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

// RecipeStore persists recipes and photo analyses
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	GetRecipe(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error)
	ListRecipes(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Recipe, error)
	CreateFridgePhoto(ctx context.Context, photo *model.FridgePhoto) (*model.FridgePhoto, error)
}

// ProfileStore reads and writes subscription entitlements
type ProfileStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	SetPremium(ctx context.Context, userID uuid.UUID, premium bool, customerID string) error
}

// CleanupScheduler queues stored photos for deletion
type CleanupScheduler interface {
	Schedule(ctx context.Context, path string) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	GenerateRecipe(ctx context.Context, userID uuid.UUID, ageRange string, available, avoid []string) (*model.Recipe, error)
	ListRecipes(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Recipe, error)
	GetRecipe(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error)
	UploadPhoto(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (string, error)
	GenerateFromPhoto(ctx context.Context, userID uuid.UUID, ageRange, storagePath string) (*types.PhotoProposals, error)
}

// IEntitlementService answers whether a user may use premium features
type IEntitlementService interface {
	IsPremium(ctx context.Context, userID uuid.UUID) bool
}

// IBillingService defines the interface for subscription operations
type IBillingService interface {
	HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error
	CreateCheckoutSession(ctx context.Context, userID uuid.UUID) (string, error)
}
