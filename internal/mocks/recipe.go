package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/babychef/backend/internal/model"
	"github.com/pageza/babychef/backend/internal/service"
	"github.com/pageza/babychef/backend/internal/types"
)

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

var _ service.IRecipeService = (*MockRecipeService)(nil)

// GenerateRecipe mocks the GenerateRecipe method
func (m *MockRecipeService) GenerateRecipe(ctx context.Context, userID uuid.UUID, ageRange string, available, avoid []string) (*model.Recipe, error) {
	args := m.Called(ctx, userID, ageRange, available, avoid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// ListRecipes mocks the ListRecipes method
func (m *MockRecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Recipe, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

// GetRecipe mocks the GetRecipe method
func (m *MockRecipeService) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// UploadPhoto mocks the UploadPhoto method
func (m *MockRecipeService) UploadPhoto(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (string, error) {
	args := m.Called(ctx, userID, filename, contentType, data)
	return args.String(0), args.Error(1)
}

// GenerateFromPhoto mocks the GenerateFromPhoto method
func (m *MockRecipeService) GenerateFromPhoto(ctx context.Context, userID uuid.UUID, ageRange, storagePath string) (*types.PhotoProposals, error) {
	args := m.Called(ctx, userID, ageRange, storagePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.PhotoProposals), args.Error(1)
}

// MockRecipeStore is a mock implementation of the RecipeStore interface
type MockRecipeStore struct {
	mock.Mock
}

var _ service.RecipeStore = (*MockRecipeStore)(nil)

func (m *MockRecipeStore) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if fn, ok := args.Get(0).(func(context.Context, *model.Recipe) *model.Recipe); ok {
		return fn(ctx, recipe), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeStore) GetRecipe(ctx context.Context, userID, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeStore) ListRecipes(ctx context.Context, userID uuid.UUID, limit int) ([]*model.Recipe, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

func (m *MockRecipeStore) CreateFridgePhoto(ctx context.Context, photo *model.FridgePhoto) (*model.FridgePhoto, error) {
	args := m.Called(ctx, photo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.FridgePhoto), args.Error(1)
}
