package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/babychef/backend/internal/service"
)

func TestFallbackRecipe(t *testing.T) {
	data := service.FallbackRecipe("9-12")

	assert.Equal(t, "Simple baby recipe for 9-12 months", data.Title)
	require.Len(t, data.Ingredients, 3)
	assert.Equal(t, "carrot", data.Ingredients[0].Name)
	assert.Equal(t, 1.0, *data.Ingredients[0].Quantity.Value)
	assert.Equal(t, "piece", *data.Ingredients[0].Unit)
	assert.Equal(t, "water", data.Ingredients[2].Name)
	assert.Equal(t, 100.0, *data.Ingredients[2].Quantity.Value)
	assert.Equal(t, "ml", *data.Ingredients[2].Unit)
	assert.Len(t, data.Steps, 4)
	assert.NotNil(t, data.Allergens)
	assert.Empty(t, data.Allergens)
	assert.NotEmpty(t, data.Notes)

	assert.Equal(t, data, service.FallbackRecipe("9-12"), "fallback is deterministic")
	assert.Equal(t, "Simple baby recipe for mystery", service.FallbackRecipe("mystery").Title)
}
