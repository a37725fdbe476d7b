package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	AI        AIConfig        `mapstructure:"ai"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Stripe    StripeConfig    `mapstructure:"stripe"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Environment string `mapstructure:"environment" validate:"required,oneof=development test ci production"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	SiteURL     string `mapstructure:"site_url" validate:"required,url"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" validate:"min=1,dive,required"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// RedisConfig contains Redis configuration. An empty URL disables rate
// limiting and photo cleanup.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// AuthConfig contains identity token verification settings
type AuthConfig struct {
	JWTSecret       string `mapstructure:"jwt_secret" validate:"required"`
	Audience        string `mapstructure:"audience"`
	TrustBodyUserID bool   `mapstructure:"trust_body_user_id"`
}

// AIConfig contains language model settings
type AIConfig struct {
	APIKey            string        `mapstructure:"api_key" validate:"required"`
	BaseURL           string        `mapstructure:"base_url" validate:"required,url"`
	TextModel         string        `mapstructure:"text_model" validate:"required"`
	VisionModel       string        `mapstructure:"vision_model" validate:"required"`
	Temperature       float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	VisionTemperature float32       `mapstructure:"vision_temperature" validate:"min=0,max=2"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"required"`
}

// StorageConfig contains object storage settings
type StorageConfig struct {
	Bucket          string        `mapstructure:"bucket" validate:"required"`
	Region          string        `mapstructure:"region" validate:"required"`
	Endpoint        string        `mapstructure:"endpoint"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	SignedURLTTL    time.Duration `mapstructure:"signed_url_ttl" validate:"required"`
	PhotoRetention  time.Duration `mapstructure:"photo_retention" validate:"required"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"required"`
	MaxUploadBytes  int64         `mapstructure:"max_upload_bytes" validate:"min=1"`
}

// StripeConfig contains payment provider settings
type StripeConfig struct {
	SecretKey     string `mapstructure:"secret_key" validate:"required"`
	WebhookSecret string `mapstructure:"webhook_secret" validate:"required"`
	PriceID       string `mapstructure:"price_id" validate:"required"`
}

// RateLimitConfig bounds model-backed requests per user
type RateLimitConfig struct {
	GenerationsPerHour int `mapstructure:"generations_per_hour" validate:"min=0"`
}

// secretKeys may be supplied as Docker secrets instead of environment variables.
var secretKeys = map[string]string{
	"database.url":              "database_url",
	"redis.url":                 "redis_url",
	"auth.jwt_secret":           "jwt_secret",
	"ai.api_key":                "ai_api_key",
	"storage.access_key_id":     "storage_access_key_id",
	"storage.secret_access_key": "storage_secret_access_key",
	"stripe.secret_key":         "stripe_secret_key",
	"stripe.webhook_secret":     "stripe_webhook_secret",
}

// envKeys lists every key without a default so AutomaticEnv can see it.
var envKeys = []string{
	"app.site_url",
	"database.url",
	"redis.url",
	"auth.jwt_secret",
	"auth.audience",
	"ai.api_key",
	"storage.bucket",
	"storage.region",
	"storage.endpoint",
	"storage.access_key_id",
	"storage.secret_access_key",
	"stripe.secret_key",
	"stripe.webhook_secret",
	"stripe.price_id",
}

// Load reads configuration from an optional file, BABYCHEF_* environment
// variables and Docker secrets, then validates it. Every missing required key
// is reported in a single error.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("BABYCHEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// The file is optional unless a path was given explicitly
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	for key, secret := range secretKeys {
		if v.GetString(key) != "" {
			continue
		}
		if value := readSecret(secret); value != "" {
			v.Set(key, value)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", string(Development))
	v.SetDefault("app.log_level", "info")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "5m")
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("auth.trust_body_user_id", false)

	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.text_model", "gpt-4o-mini")
	v.SetDefault("ai.vision_model", "gpt-4o-mini")
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.vision_temperature", 0.6)
	v.SetDefault("ai.timeout", "30s")

	v.SetDefault("storage.signed_url_ttl", "1h")
	v.SetDefault("storage.photo_retention", "1h")
	v.SetDefault("storage.cleanup_interval", "1m")
	v.SetDefault("storage.max_upload_bytes", 10<<20)

	v.SetDefault("rate_limit.generations_per_hour", 20)
}

// Env returns the parsed runtime environment
func (c *Config) Env() Environment {
	return ParseEnvironment(c.App.Environment)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
