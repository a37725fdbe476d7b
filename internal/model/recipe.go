package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/babychef/backend/internal/types"
)

// Recipe sources
const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

type Recipe struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time        `json:"created_at"`
	UserID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	AgeRange    string           `gorm:"size:16;not null" json:"age_range"`
	Title       string           `gorm:"type:text;not null" json:"title"`
	Ingredients Ingredients      `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Steps       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"steps"`
	Allergens   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"allergens"`
	Notes       string           `gorm:"type:text" json:"notes"`
	Source      string           `gorm:"size:16;not null;default:'model'" json:"source"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns the primary key
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NewRecipe builds a row from generated recipe data
func NewRecipe(userID uuid.UUID, ageRange, source string, data types.RecipeData) *Recipe {
	data.Normalize()
	return &Recipe{
		UserID:      userID,
		AgeRange:    ageRange,
		Title:       data.Title,
		Ingredients: Ingredients(data.Ingredients),
		Steps:       JSONBStringArray(data.Steps),
		Allergens:   JSONBStringArray(data.Allergens),
		Notes:       data.Notes,
		Source:      source,
	}
}

// Data returns the recipe fields without row metadata
func (r *Recipe) Data() types.RecipeData {
	data := types.RecipeData{
		Title:       r.Title,
		Ingredients: []types.Ingredient(r.Ingredients),
		Steps:       []string(r.Steps),
		Allergens:   []string(r.Allergens),
		Notes:       r.Notes,
	}
	data.Normalize()
	return data
}
