package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port" validate:"required,numeric"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`

	// AI configuration
	AIApiKey     string        `json:"-"`
	AIModel      string        `json:"ai_model" validate:"required"`
	AIImageModel string        `json:"ai_image_model" validate:"required"`
	AIBackend    string        `json:"ai_backend" validate:"oneof=rest sdk"`
	AITimeout    time.Duration `json:"ai_timeout" validate:"gte=0"`

	// Favorites slot
	KVBackend    string `json:"kv_backend" validate:"oneof=memory file redis valkey s3"`
	KVPath       string `json:"kv_path"`
	FavoritesKey string `json:"favorites_key" validate:"required"`

	// Redis configuration
	RedisURL    string `json:"redis_url"`
	RedisPrefix string `json:"redis_prefix"`

	// Valkey configuration
	ValkeyAddress  string `json:"valkey_address"`
	ValkeyPassword string `json:"-"`

	// CloudFlare R2 Configuration
	R2Endpoint  string `json:"r2_endpoint"`
	R2AccessKey string `json:"-"`
	R2SecretKey string `json:"-"`
	R2Bucket    string `json:"r2_bucket"`
	R2AccountID string `json:"r2_account_id"`
	R2PublicURL string `json:"r2_public_url"`

	// Images
	ImageStore          string `json:"image_store" validate:"oneof=inline s3"`
	PlaceholderImageURL string `json:"placeholder_image_url" validate:"required"`

	// Logging
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Security
	AdminAPIKey string `json:"-"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := FromEnv()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// FromEnv builds a Config from the process environment without validating it.
func FromEnv() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 0),

		AIApiKey:     getEnv("GOOGLE_AI_API_KEY", getEnv("AI_API_KEY", "")),
		AIModel:      getEnv("AI_MODEL", "gemini-2.0-flash"),
		AIImageModel: getEnv("AI_IMAGE_MODEL", "gemini-2.0-flash-preview-image-generation"),
		AIBackend:    getEnv("AI_BACKEND", "rest"),
		AITimeout:    getEnvAsDuration("AI_TIMEOUT", 0),

		KVBackend:    getEnv("KV_BACKEND", "file"),
		KVPath:       getEnv("KV_PATH", "./data/kv"),
		FavoritesKey: getEnv("FAVORITES_KEY", "gossip-favorites"),

		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379/0"),
		RedisPrefix: getEnv("REDIS_PREFIX", "gossip:"),

		ValkeyAddress:  getEnv("VALKEY_ADDRESS", "localhost:6379"),
		ValkeyPassword: getEnv("VALKEY_PASSWORD", ""),

		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "gossip"),
		R2AccountID: getEnv("CLOUDFLARE_ACCOUNT_ID", ""),
		R2PublicURL: getEnv("R2_PUBLIC_URL", ""),

		ImageStore:          getEnv("IMAGE_STORE", "inline"),
		PlaceholderImageURL: getEnv("PLACEHOLDER_IMAGE_URL", "/placeholder.svg"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),

		AdminAPIKey: getEnv("ADMIN_API_KEY", ""),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}

	needsR2 := c.KVBackend == "s3" || c.ImageStore == "s3"
	if needsR2 && c.R2Endpoint == "" && c.R2AccountID == "" {
		return fmt.Errorf("R2_ENDPOINT or CLOUDFLARE_ACCOUNT_ID is required for the s3 backend")
	}
	if c.ImageStore == "s3" && c.R2PublicURL == "" {
		return fmt.Errorf("R2_PUBLIC_URL is required when IMAGE_STORE=s3")
	}

	return nil
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		// plain integers are read as seconds
		if secs := getEnvAsInt(name, -1); secs >= 0 {
			return time.Duration(secs) * time.Second
		}
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}
