package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/internal/middleware"
	"github.com/pageza/babychef/backend/internal/service"
	"github.com/pageza/babychef/backend/internal/types"
)

// RecipeHandler serves text-based generation and recipe history
type RecipeHandler struct {
	recipes         service.IRecipeService
	trustBodyUserID bool
	log             *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler. When trustBodyUserID is set
// the request body's userId is used for callers without an access token.
func NewRecipeHandler(recipes service.IRecipeService, trustBodyUserID bool, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipes:         recipes,
		trustBodyUserID: trustBodyUserID,
		log:             log,
	}
}

// GenerateRecipe handles POST /recipes/generate
func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	userID := h.resolveUser(c, req.UserID)
	recipe, err := h.recipes.GenerateRecipe(c.Request.Context(), userID, req.AgeRange, req.Available, req.Avoid)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// ListRecipes handles GET /recipes
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "details": "limit must be a number"})
			return
		}
		limit = n
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), userID, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe handles GET /recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// resolveUser prefers the authenticated user and falls back to the body's
// userId only when that is explicitly trusted
func (h *RecipeHandler) resolveUser(c *gin.Context, bodyUserID string) uuid.UUID {
	if userID, ok := middleware.GetUserID(c); ok {
		return userID
	}
	if !h.trustBodyUserID || bodyUserID == "" {
		return uuid.Nil
	}
	userID, err := uuid.Parse(bodyUserID)
	if err != nil {
		return uuid.Nil
	}
	return userID
}
