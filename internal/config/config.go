package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries all environment-driven settings. Values are deployment
// secrets; only the names are fixed.
type Config struct {
	Port         string
	DatabasePath string
	ClientURL    string

	JWTSecret  string
	BcryptCost int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	OpenRouterAPIKey string
	TogetherAPIKey   string

	SMTPHost  string
	SMTPPort  string
	EmailFrom string
	EmailPass string
}

// Load reads configuration from the environment, loading a local .env
// file first outside production.
func Load() (*Config, error) {
	if os.Getenv("ENV") != "prod" {
		// Best effort: a missing .env just means the environment is
		// already populated.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Port:               envOrDefault("PORT", "8080"),
		DatabasePath:       envOrDefault("DATABASE_PATH", "creator-studio.db"),
		ClientURL:          envOrDefault("CLIENT_URL", "http://localhost:5173"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		BcryptCost:         10,
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
		OpenRouterAPIKey:   os.Getenv("OPENROUTER_API_KEY"),
		TogetherAPIKey:     os.Getenv("TOGETHER_API_KEY"),
		SMTPHost:           envOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:           envOrDefault("SMTP_PORT", "587"),
		EmailFrom:          os.Getenv("EMAIL_FROM"),
		EmailPass:          os.Getenv("EMAIL_PASS"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if parsed < 4 || parsed > 14 {
			return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", parsed)
		}
		cfg.BcryptCost = parsed
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
