package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pageza/babychef/backend/config"
	"github.com/pageza/babychef/backend/internal/api"
	"github.com/pageza/babychef/backend/internal/database"
	"github.com/pageza/babychef/backend/internal/metrics"
	"github.com/pageza/babychef/backend/internal/middleware"
	"github.com/pageza/babychef/backend/internal/router"
	"github.com/pageza/babychef/backend/internal/server"
	"github.com/pageza/babychef/backend/internal/service"
)

func main() {
	configPath := flag.String("config", "", "path to a config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if cfg.Env().IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
	log.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m, err := metrics.New(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	db, err := database.New(cfg.Database, log)
	if err != nil {
		return err
	}
	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			return err
		}
		log.Info("Database migrations applied")
	}

	redisClient, err := database.NewRedisClient(cfg.Redis, log)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		log.Warn("Redis not configured, rate limiting and photo cleanup disabled")
	}

	objects, err := config.NewS3Config(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	llm, err := service.NewLLMClient(cfg.AI, m, log)
	if err != nil {
		return err
	}

	janitor := service.NewPhotoJanitor(redisClient, objects, cfg.Storage.PhotoRetention, cfg.Storage.CleanupInterval, m, log)
	if janitor.Enabled() {
		go janitor.Run(ctx)
	}

	profiles := database.NewProfileStore(db)
	recipes := service.NewRecipeService(llm, database.NewRecipeStore(db), objects, janitor, service.PhotoSettings{
		SignedURLTTL:   cfg.Storage.SignedURLTTL,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
	}, m, log)
	entitlements := service.NewEntitlementService(profiles, log)
	stripeClient := client.New(cfg.Stripe.SecretKey, nil)
	billing := service.NewBillingService(cfg.Stripe, cfg.App.SiteURL, stripeClient.CheckoutSessions, profiles, m, log)

	limiter := middleware.NewGenerationRateLimiter(redisClient, cfg.RateLimit.GenerationsPerHour, log)

	handler := router.SetupRouter(router.Dependencies{
		Recipes:      api.NewRecipeHandler(recipes, cfg.Auth.TrustBodyUserID, log),
		Photos:       api.NewPhotoHandler(recipes, cfg.Storage.MaxUploadBytes, log),
		Billing:      api.NewBillingHandler(billing, entitlements, limiter, log),
		Health:       api.NewHealthHandler(db, redisClient),
		Auth:         service.NewJWTValidator(cfg.Auth.JWTSecret, cfg.Auth.Audience),
		Entitlements: entitlements,
		Limiter:      limiter,
		Gatherer:     registry,
		Metrics:      m,
		Logger:       log,
		Origins:      cfg.Server.AllowedOrigins,
	})

	return server.New(cfg.Server, handler, log).Run(ctx)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		return nil, err
	}

	zapCfg := zap.NewDevelopmentConfig()
	if cfg.Env().IsProduction() {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
