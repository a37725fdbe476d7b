package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/internal/database"
	"github.com/pageza/babychef/backend/internal/metrics"
	"github.com/pageza/babychef/backend/internal/model"
)

// Listing bounds
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// RecipeService generates, stores and lists recipes
type RecipeService struct {
	llm      Completer
	store    RecipeStore
	objects  ObjectStore
	cleanup  CleanupScheduler
	metrics  *metrics.Metrics
	log      *zap.Logger
	settings PhotoSettings
}

var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService. objects and cleanup may be nil
// when photo features are not used.
func NewRecipeService(llm Completer, store RecipeStore, objects ObjectStore, cleanup CleanupScheduler, settings PhotoSettings, m *metrics.Metrics, log *zap.Logger) *RecipeService {
	return &RecipeService{
		llm:      llm,
		store:    store,
		objects:  objects,
		cleanup:  cleanup,
		metrics:  m,
		log:      log,
		settings: settings.withDefaults(),
	}
}

// GenerateRecipe asks the model for one recipe and stores it. When the model
// call fails a fixed fallback recipe is stored instead.
func (s *RecipeService) GenerateRecipe(ctx context.Context, userID uuid.UUID, ageRange string, available, avoid []string) (*model.Recipe, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}

	log := s.log.With(zap.String("user_id", userID.String()), zap.String("age_range", ageRange))
	prompt := BuildTextPrompt(ageRange, available, avoid)

	source := model.SourceModel
	raw, err := s.llm.CompleteText(ctx, prompt)
	var recipe *model.Recipe
	if err != nil {
		log.Warn("Model call failed, using fallback recipe", zap.Error(err))
		source = model.SourceFallback
		recipe = model.NewRecipe(userID, ageRange, source, FallbackRecipe(ageRange))
	} else {
		data, err := ParseRecipe(raw)
		if err != nil {
			s.metrics.RecordParseFailure(KindText)
			log.Warn("Model returned unparseable recipe", zap.Error(err))
			return nil, err
		}
		recipe = model.NewRecipe(userID, ageRange, source, *data)
	}

	saved, err := s.store.CreateRecipe(ctx, recipe)
	if err != nil {
		log.Error("Failed to persist recipe", zap.Error(err))
		return nil, &PersistenceError{Err: err}
	}

	s.metrics.RecordRecipe(source)
	log.Info("Recipe generated", zap.String("recipe_id", saved.ID.String()), zap.String("source", source))
	return saved, nil
}

// ListRecipes returns the user's most recent recipes
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Recipe, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	recipes, err := s.store.ListRecipes(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe returns one of the user's recipes
func (s *RecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error) {
	if userID == uuid.Nil {
		return nil, ErrMissingUser
	}

	recipe, err := s.store.GetRecipe(ctx, userID, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return recipe, nil
}
