package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/pageza/babychef/backend/internal/types"
)

const maxSteps = types.MaxRecipeSteps

// ParseRecipe decodes a single recipe from raw model output
func ParseRecipe(raw string) (*types.RecipeData, error) {
	var data types.RecipeData
	if err := decodeModelJSON(raw, &data); err != nil {
		return nil, err
	}
	data.Normalize()
	return &data, nil
}

// ParseVision decodes detected items and recipe proposals from raw model output
func ParseVision(raw string) (*types.VisionResult, error) {
	var result types.VisionResult
	if err := decodeModelJSON(raw, &result); err != nil {
		return nil, err
	}
	result.Normalize()
	return &result, nil
}

func decodeModelJSON(raw string, v interface{}) error {
	body := stripCodeFence(raw)
	if body == "" {
		return &ParseError{Raw: raw, Err: errors.New("empty response")}
	}
	if body[0] != '{' {
		return &ParseError{Raw: raw, Err: errors.New("response is not a JSON object")}
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(body)))
	if err := dec.Decode(v); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	if dec.More() {
		return &ParseError{Raw: raw, Err: errors.New("unexpected data after JSON object")}
	}
	return nil
}

// stripCodeFence removes surrounding whitespace and a Markdown ``` fence
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// drop the language tag, e.g. ```json
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
