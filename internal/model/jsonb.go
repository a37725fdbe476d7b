package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/pageza/babychef/backend/internal/types"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return marshalJSONB(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	*a = JSONBStringArray{}
	return scanJSONB(value, a)
}

// Ingredients stores a recipe's ingredient list as JSONB
type Ingredients []types.Ingredient

// Value implements the driver.Valuer interface
func (i Ingredients) Value() (driver.Value, error) {
	if len(i) == 0 {
		return "[]", nil
	}
	return marshalJSONB(i)
}

// Scan implements the sql.Scanner interface
func (i *Ingredients) Scan(value interface{}) error {
	*i = Ingredients{}
	return scanJSONB(value, i)
}

// DetectedItems stores the items recognised on a photo as JSONB
type DetectedItems []types.DetectedItem

// Value implements the driver.Valuer interface
func (d DetectedItems) Value() (driver.Value, error) {
	if len(d) == 0 {
		return "[]", nil
	}
	return marshalJSONB(d)
}

// Scan implements the sql.Scanner interface
func (d *DetectedItems) Scan(value interface{}) error {
	*d = DetectedItems{}
	return scanJSONB(value, d)
}

func marshalJSONB(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func scanJSONB(value interface{}, dest interface{}) error {
	var bytes []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONB source type %T", value)
	}
	if len(bytes) == 0 {
		return nil
	}
	return json.Unmarshal(bytes, dest)
}
