package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings main needs to wire the service.
type Config struct {
	Port        string
	APIBaseURL  string
	APIKey      string
	FrontendURL string
	APITimeout  time.Duration
	DraftTTL    time.Duration
}

func LoadEnv() error {
	// A missing .env is fine; in deployment the variables are set directly.
	if err := godotenv.Load(); err != nil {
		return nil
	}
	return nil
}

// ValidateEnv checks that critical environment variables are set.
// Returns an error if any critical variable is missing.
func ValidateEnv() error {
	var missing []string

	// Critical variables - the dashboard cannot reach the storefront or sign sessions without these
	if os.Getenv("API_BASE_URL") == "" {
		missing = append(missing, "API_BASE_URL")
	}
	if os.Getenv("JWT_SECRET") == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if os.Getenv("DATABASE_URL") == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return fmt.Errorf("critical environment variables not set: %v", missing)
	}

	if os.Getenv("WEB_API_KEY") == "" {
		log.Println("WARNING: WEB_API_KEY not set - public product listing may be rejected")
	}
	if os.Getenv("FRONTEND_URL") == "" {
		log.Println("WARNING: FRONTEND_URL not set - CORS may not work correctly")
	}

	return nil
}

// Load reads the service settings from the environment, applying defaults.
func Load() Config {
	return Config{
		Port:        GetEnv("PORT", "8080"),
		APIBaseURL:  os.Getenv("API_BASE_URL"),
		APIKey:      os.Getenv("WEB_API_KEY"),
		FrontendURL: GetEnv("FRONTEND_URL", "http://localhost:3000"),
		APITimeout:  time.Duration(GetInt("API_TIMEOUT_SECONDS", 30)) * time.Second,
		DraftTTL:    time.Duration(GetInt("DRAFT_TTL_MINUTES", 60)) * time.Minute,
	}
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetInt returns the positive integer value of key, or defaultValue when the
// variable is unset or not a positive integer.
func GetInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("WARNING: %s=%q is not a positive integer, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
