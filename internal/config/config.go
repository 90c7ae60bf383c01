package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	AllowedOrigin string

	// JWTSecret is loaded once here and handed to the token service
	// constructor; nothing reads it from the environment after startup.
	JWTSecret string
	TokenTTL  time.Duration

	// AI suggestion endpoint settings.
	AIBaseURL  string
	AIModel    string
	HFAPIToken string

	// SeedDataset points at the recipe CSV; empty disables seeding.
	SeedDataset string
	ImageDir    string
}

// Load loads configuration from environment variables or sets defaults.
// A missing JWT_SECRET is an error: the signing secret must exist before
// the process can serve a single request.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	ttlStr := getEnv("TOKEN_TTL_MINUTES", "60")
	ttlMinutes, err := strconv.Atoi(ttlStr)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./recipebox.db"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		JWTSecret:     secret,
		TokenTTL:      time.Duration(ttlMinutes) * time.Minute,
		AIBaseURL:     getEnv("AI_BASE_URL", "https://router.huggingface.co/v1"),
		AIModel:       getEnv("AI_MODEL", "Qwen/Qwen2.5-7B-Instruct-1M:featherless-ai"),
		HFAPIToken:    os.Getenv("HF_API_TOKEN"),
		SeedDataset:   os.Getenv("SEED_DATASET"),
		ImageDir:      getEnv("IMAGE_DIR", "./data/images"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
