package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/babychef/backend/internal/service"
)

func TestParseRecipe(t *testing.T) {
	t.Run("valid recipe", func(t *testing.T) {
		raw := `{
			"title": "Apple oat porridge",
			"ingredients": [
				{"name": "oats", "qty": 30, "unit": "g"},
				{"name": "apple", "qty": "0,5", "unit": null},
				{"name": "cinnamon", "qty": "a pinch", "unit": null}
			],
			"steps": ["Cook oats", "Grate apple"],
			"allergens": ["gluten"],
			"notes": "Serve lukewarm"
		}`

		data, err := service.ParseRecipe(raw)
		require.NoError(t, err)

		assert.Equal(t, "Apple oat porridge", data.Title)
		require.Len(t, data.Ingredients, 3)
		assert.Equal(t, 30.0, *data.Ingredients[0].Quantity.Value)
		assert.Equal(t, "g", *data.Ingredients[0].Unit)
		assert.Equal(t, 0.5, *data.Ingredients[1].Quantity.Value)
		assert.Nil(t, data.Ingredients[1].Unit)
		assert.Nil(t, data.Ingredients[2].Quantity.Value)
		assert.Equal(t, []string{"gluten"}, data.Allergens)
	})

	t.Run("top-level value must be an object", func(t *testing.T) {
		for _, raw := range []string{"null", " null\n", `["Mash"]`, `"recipe"`, "42", "```json\nnull\n```"} {
			data, err := service.ParseRecipe(raw)
			assert.Nil(t, data, raw)
			var parseErr *service.ParseError
			require.ErrorAs(t, err, &parseErr, raw)
			assert.Equal(t, raw, parseErr.Raw)
		}
	})

	t.Run("malformed json is a parse error carrying the raw text", func(t *testing.T) {
		raw := `{"title": "Broken"`

		data, err := service.ParseRecipe(raw)
		assert.Nil(t, data)

		var parseErr *service.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, raw, parseErr.Raw)
	})

	t.Run("type mismatch is a parse error", func(t *testing.T) {
		_, err := service.ParseRecipe(`{"title": 42, "steps": "not a list"}`)

		var parseErr *service.ParseError
		assert.True(t, errors.As(err, &parseErr))
	})

	t.Run("empty response is a parse error", func(t *testing.T) {
		_, err := service.ParseRecipe("   ")

		var parseErr *service.ParseError
		assert.True(t, errors.As(err, &parseErr))
	})

	t.Run("code fence is tolerated", func(t *testing.T) {
		raw := "```json\n{\"title\": \"Fenced\", \"steps\": [\"Mix\"]}\n```"

		data, err := service.ParseRecipe(raw)
		require.NoError(t, err)
		assert.Equal(t, "Fenced", data.Title)
	})

	t.Run("steps are truncated to eight", func(t *testing.T) {
		raw := `{"title": "Long", "steps": ["1","2","3","4","5","6","7","8","9","10"]}`

		data, err := service.ParseRecipe(raw)
		require.NoError(t, err)
		assert.Len(t, data.Steps, 8)
		assert.Equal(t, "8", data.Steps[7])
	})

	t.Run("missing lists are empty, never nil", func(t *testing.T) {
		data, err := service.ParseRecipe(`{"title": "Bare"}`)
		require.NoError(t, err)

		assert.NotNil(t, data.Allergens)
		assert.Empty(t, data.Allergens)
		assert.NotNil(t, data.Ingredients)
		assert.NotNil(t, data.Steps)
	})
}

func TestParseVision(t *testing.T) {
	t.Run("valid analysis", func(t *testing.T) {
		raw := `{
			"detected_items": [{"name": "banana", "confidence": 0.92}, {"name": "yogurt", "confidence": 0.4}],
			"recipes": [
				{"title": "Banana mash", "ingredients": [], "steps": ["Mash"], "allergens": [], "notes": ""},
				{"title": "Banana yogurt", "ingredients": [], "steps": ["Mix"], "notes": ""},
				{"title": "Banana pancakes", "ingredients": [], "steps": ["Fry"], "allergens": ["egg"], "notes": ""}
			]
		}`

		result, err := service.ParseVision(raw)
		require.NoError(t, err)
		require.Len(t, result.DetectedItems, 2)
		assert.Equal(t, "banana", result.DetectedItems[0].Name)
		assert.Equal(t, 0.4, result.DetectedItems[1].Confidence)
		require.Len(t, result.Recipes, 3)
		assert.NotNil(t, result.Recipes[1].Allergens)
	})

	t.Run("loosely typed fields do not fail the analysis", func(t *testing.T) {
		raw := `{
			"detected_items": [{"name": "pear", "confidence": "0.9"}, {"name": "milk", "confidence": "likely"}],
			"recipes": [{"title": "Pear mash", "ingredients": [{"name": "pear", "qty": 1, "unit": 1}], "steps": ["Mash"]}]
		}`

		result, err := service.ParseVision(raw)
		require.NoError(t, err)
		require.Len(t, result.DetectedItems, 2)
		assert.InDelta(t, 0.9, result.DetectedItems[0].Confidence, 1e-9)
		assert.Zero(t, result.DetectedItems[1].Confidence)
		require.Len(t, result.Recipes, 1)
		require.NotNil(t, result.Recipes[0].Ingredients[0].Unit)
		assert.Equal(t, "1", *result.Recipes[0].Ingredients[0].Unit)
	})

	t.Run("null is a parse error", func(t *testing.T) {
		result, err := service.ParseVision("null")
		assert.Nil(t, result)
		var parseErr *service.ParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("malformed json is a parse error", func(t *testing.T) {
		_, err := service.ParseVision("I see a banana")

		var parseErr *service.ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "I see a banana", parseErr.Raw)
	})
}
