package service

import (
	"fmt"

	"github.com/pageza/babychef/backend/internal/types"
)

const fallbackNotes = "For 6-8 months: puree very finely. For 9-12 months: mash a little coarser. For 12-24 months and older: serve small soft pieces."

// FallbackRecipe returns the fixed recipe served when the model is unavailable
func FallbackRecipe(ageRange string) types.RecipeData {
	piece := "piece"
	ml := "ml"
	return types.RecipeData{
		Title: fmt.Sprintf("Simple baby recipe for %s", AgeDescription(ageRange)),
		Ingredients: []types.Ingredient{
			{Name: "carrot", Quantity: types.Qty(1), Unit: &piece},
			{Name: "potato", Quantity: types.Qty(1), Unit: &piece},
			{Name: "water", Quantity: types.Qty(100), Unit: &ml},
		},
		Steps: []string{
			"Peel the carrot and potato and cut them into small pieces",
			"Cook in a pot of water until soft (about 15-20 minutes)",
			"Blend or mash to the texture suitable for the age group",
			"Let it cool down and serve",
		},
		Allergens: []string{},
		Notes:     fallbackNotes,
	}
}
