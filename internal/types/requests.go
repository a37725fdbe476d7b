package types

// GenerateRecipeRequest represents the request body for text-based generation
type GenerateRecipeRequest struct {
	AgeRange  string   `json:"ageRange" binding:"required,max=16"`
	Available []string `json:"available" binding:"max=50,dive,max=100"`
	Avoid     []string `json:"avoid" binding:"max=50,dive,max=100"`
	UserID    string   `json:"userId"`
}

// PhotoRecipeRequest represents the request body for photo-based generation
type PhotoRecipeRequest struct {
	AgeRange    string `json:"ageRange" binding:"required,max=16"`
	StoragePath string `json:"storagePath" binding:"required,max=512"`
}
