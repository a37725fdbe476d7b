package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pageza/babychef/backend/internal/api"
	"github.com/pageza/babychef/backend/internal/metrics"
	"github.com/pageza/babychef/backend/internal/middleware"
)

// Dependencies holds everything the router wires into routes
type Dependencies struct {
	Recipes      *api.RecipeHandler
	Photos       *api.PhotoHandler
	Billing      *api.BillingHandler
	Health       *api.HealthHandler
	Auth         middleware.TokenValidator
	Entitlements middleware.EntitlementChecker
	Limiter      *middleware.RateLimiter
	Gatherer     prometheus.Gatherer
	Metrics      *metrics.Metrics
	Logger       *zap.Logger
	Origins      []string
}

// SetupRouter configures the application routes
func SetupRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.RequestLogger(deps.Logger, deps.Metrics))
	router.Use(middleware.CORS(deps.Origins))

	router.GET("/health", deps.Health.Health)
	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")

	// Payment provider calls, verified by signature
	v1.POST("/webhook/payment", deps.Billing.Webhook)

	// Free tier, identity from token or (if trusted) the request body
	v1.POST("/recipes/generate",
		middleware.OptionalAuth(deps.Auth),
		deps.Limiter.RateLimitMiddleware(),
		deps.Recipes.GenerateRecipe)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Auth))
	{
		protected.GET("/recipes", deps.Recipes.ListRecipes)
		protected.GET("/recipes/:id", deps.Recipes.GetRecipe)
		protected.GET("/me/entitlement", deps.Billing.Entitlement)
		protected.POST("/checkout", deps.Billing.Checkout)
	}

	premium := protected.Group("")
	premium.Use(middleware.RequirePremium(deps.Entitlements))
	{
		premium.POST("/photos", deps.Photos.UploadPhoto)
		premium.POST("/recipes/from-photo", deps.Limiter.RateLimitMiddleware(), deps.Photos.GenerateFromPhoto)
	}

	return router
}
