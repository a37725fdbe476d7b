package service

import (
	"fmt"
	"strings"
)

// Age ranges understood by the prompt builder
const (
	Age6To8Months   = "6-8"
	Age9To12Months  = "9-12"
	Age12To24Months = "12-24"
	Age1To2Years    = "1-2"
	Age3To4Years    = "3-4"
	Age5PlusYears   = "5+"
)

// SystemPrompt is sent with every model call
const SystemPrompt = "You are BabyChef. Respond only with valid JSON. Do not add any text outside the JSON object."

var ageDescriptions = map[string]string{
	Age6To8Months:   "6-8 months",
	Age9To12Months:  "9-12 months",
	Age12To24Months: "12-24 months",
	Age1To2Years:    "1-2 years",
	Age3To4Years:    "3-4 years",
	Age5PlusYears:   "5+ years",
}

// AgeDescription returns the human-readable phrase for an age range.
// Unknown values are returned unchanged.
func AgeDescription(ageRange string) string {
	if desc, ok := ageDescriptions[ageRange]; ok {
		return desc
	}
	return ageRange
}

const safetyRules = `Rules:
- No added sugar.
- Salt only minimally, preferably none.
- Avoid choking hazards: no whole nuts, whole grapes, popcorn or hard raw pieces; cut food to a size and texture safe for the age group.`

const recipeShape = `{
  "title": string,
  "ingredients": [{"name": string, "qty": number|null, "unit": string|null}],
  "steps": [string],
  "allergens": [string],
  "notes": string
}`

// BuildTextPrompt builds the prompt for a single recipe from typed ingredients
func BuildTextPrompt(ageRange string, available, avoid []string) string {
	availableText := "none specified"
	if len(available) > 0 {
		availableText = strings.Join(available, ", ")
	}
	avoidText := "none"
	if len(avoid) > 0 {
		avoidText = strings.Join(avoid, ", ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are BabyChef, a cooking assistant for babies and toddlers.\n")
	fmt.Fprintf(&b, "Create ONE simple recipe for the age group %s.\n", AgeDescription(ageRange))
	b.WriteString(safetyRules)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "If possible, use: %s.\n", availableText)
	fmt.Fprintf(&b, "Strictly avoid: %s.\n\n", avoidText)
	b.WriteString("Return exactly this JSON object:\n")
	b.WriteString(recipeShape)
	fmt.Fprintf(&b, "\nUse at most %d steps. Put texture tips (pureed, mashed, finger food) in notes. List every allergen present, or an empty list.\n", maxSteps)
	return b.String()
}

// BuildVisionPrompt builds the prompt sent alongside a photo of available food
func BuildVisionPrompt(ageRange string) string {
	var b strings.Builder
	b.WriteString("Analyse the attached image and list every recognisable food item with a rough confidence between 0 and 1.\n")
	fmt.Fprintf(&b, "Then propose exactly THREE simple, baby-friendly recipes for %s using those items.\n", AgeDescription(ageRange))
	b.WriteString(safetyRules)
	b.WriteString("\n\nReturn ONLY this JSON object:\n")
	b.WriteString(`{
  "detected_items": [{"name": string, "confidence": number}],
  "recipes": [` + recipeShape + `]
}`)
	fmt.Fprintf(&b, "\nEach recipe has at most %d steps.\n", maxSteps)
	return b.String()
}
