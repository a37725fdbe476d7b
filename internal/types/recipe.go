package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// MaxRecipeSteps caps the number of preparation steps kept per recipe
const MaxRecipeSteps = 8

// Quantity is an ingredient amount. The model may answer with a number, a
// numeric string or null; anything else decodes to an absent quantity.
type Quantity struct {
	Value *float64
}

// Qty returns a present quantity
func Qty(v float64) Quantity {
	return Quantity{Value: &v}
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	q.Value = nil
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		q.Value = &num
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		str = strings.ReplaceAll(strings.TrimSpace(str), ",", ".")
		if f, err := strconv.ParseFloat(str, 64); err == nil {
			q.Value = &f
		}
		return nil
	}

	// null, objects and arrays all mean "no quantity"
	return nil
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*q.Value)
}

// Ingredient is one line of a recipe's ingredient list
type Ingredient struct {
	Name     string   `json:"name"`
	Quantity Quantity `json:"qty"`
	Unit     *string  `json:"unit"`
}

// UnmarshalJSON accepts a numeric unit as text and drops any other
// non-string unit.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name     string          `json:"name"`
		Quantity Quantity        `json:"qty"`
		Unit     json.RawMessage `json:"unit"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	i.Name = aux.Name
	i.Quantity = aux.Quantity
	i.Unit = decodeUnit(aux.Unit)
	return nil
}

func decodeUnit(raw json.RawMessage) *string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return &str
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err == nil {
		str = num.String()
		return &str
	}
	return nil
}

// RecipeData represents the structure of a recipe as returned by the LLM
type RecipeData struct {
	Title       string       `json:"title"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	Allergens   []string     `json:"allergens"`
	Notes       string       `json:"notes"`
}

// Normalize enforces the step cap and replaces nil lists with empty ones
func (r *RecipeData) Normalize() {
	if r.Ingredients == nil {
		r.Ingredients = []Ingredient{}
	}
	if r.Steps == nil {
		r.Steps = []string{}
	}
	if len(r.Steps) > MaxRecipeSteps {
		r.Steps = r.Steps[:MaxRecipeSteps]
	}
	if r.Allergens == nil {
		r.Allergens = []string{}
	}
}

// DetectedItem is a food item recognised on a photo. Confidence is
// informational only.
type DetectedItem struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// UnmarshalJSON reads the confidence like a Quantity; an unreadable
// confidence becomes zero.
func (d *DetectedItem) UnmarshalJSON(data []byte) error {
	var aux struct {
		Name       string   `json:"name"`
		Confidence Quantity `json:"confidence"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.Name = aux.Name
	d.Confidence = 0
	if aux.Confidence.Value != nil {
		d.Confidence = *aux.Confidence.Value
	}
	return nil
}

// VisionResult is the model's answer for a photo
type VisionResult struct {
	DetectedItems []DetectedItem `json:"detected_items"`
	Recipes       []RecipeData   `json:"recipes"`
}

// Normalize normalizes every proposal and replaces nil lists with empty ones
func (v *VisionResult) Normalize() {
	if v.DetectedItems == nil {
		v.DetectedItems = []DetectedItem{}
	}
	if v.Recipes == nil {
		v.Recipes = []RecipeData{}
	}
	for i := range v.Recipes {
		v.Recipes[i].Normalize()
	}
}

// PhotoProposals is returned to the client after analysing a photo
type PhotoProposals struct {
	Proposals []RecipeData   `json:"proposals"`
	Detected  []DetectedItem `json:"detected"`
}
