package config

import (
	"os"
	"testing"
	"time"
)

func setCriticalEnv(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://storefront.test/api")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DATABASE_URL", "test-db-url")
}

func TestLoadEnv(t *testing.T) {
	// LoadEnv returns nil when no .env file exists
	err := LoadEnv()
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidateEnvAllSet(t *testing.T) {
	setCriticalEnv(t)

	err := ValidateEnv()
	if err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestValidateEnvMissingVariables(t *testing.T) {
	for _, key := range []string{"API_BASE_URL", "JWT_SECRET", "DATABASE_URL"} {
		t.Run(key, func(t *testing.T) {
			setCriticalEnv(t)
			t.Setenv(key, "")

			err := ValidateEnv()
			if err == nil {
				t.Fatalf("expected error for missing %s", key)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	setCriticalEnv(t)
	t.Setenv("PORT", "")
	t.Setenv("API_TIMEOUT_SECONDS", "")
	t.Setenv("DRAFT_TTL_MINUTES", "")
	t.Setenv("FRONTEND_URL", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.APIBaseURL != "http://storefront.test/api" {
		t.Errorf("unexpected base URL %s", cfg.APIBaseURL)
	}
	if cfg.APITimeout != 30*time.Second {
		t.Errorf("expected 30s timeout, got %v", cfg.APITimeout)
	}
	if cfg.DraftTTL != time.Hour {
		t.Errorf("expected 1h draft TTL, got %v", cfg.DraftTTL)
	}
	if cfg.FrontendURL != "http://localhost:3000" {
		t.Errorf("unexpected frontend URL %s", cfg.FrontendURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	setCriticalEnv(t)
	t.Setenv("API_TIMEOUT_SECONDS", "5")
	t.Setenv("DRAFT_TTL_MINUTES", "15")

	cfg := Load()
	if cfg.APITimeout != 5*time.Second {
		t.Errorf("expected 5s timeout, got %v", cfg.APITimeout)
	}
	if cfg.DraftTTL != 15*time.Minute {
		t.Errorf("expected 15m draft TTL, got %v", cfg.DraftTTL)
	}
}

func TestGetIntRejectsGarbage(t *testing.T) {
	t.Setenv("TEST_GET_INT", "ten")
	if got := GetInt("TEST_GET_INT", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}

	t.Setenv("TEST_GET_INT", "-3")
	if got := GetInt("TEST_GET_INT", 7); got != 7 {
		t.Errorf("expected fallback 7 for negative value, got %d", got)
	}
}

func TestGetEnvExisting(t *testing.T) {
	os.Setenv("TEST_GET_ENV_KEY", "test-value")
	defer os.Unsetenv("TEST_GET_ENV_KEY")

	result := GetEnv("TEST_GET_ENV_KEY", "default")
	if result != "test-value" {
		t.Errorf("expected 'test-value', got '%s'", result)
	}
}

func TestGetEnvMissing(t *testing.T) {
	os.Unsetenv("TEST_GET_ENV_MISSING")
	result := GetEnv("TEST_GET_ENV_MISSING", "fallback")
	if result != "fallback" {
		t.Errorf("expected 'fallback', got '%s'", result)
	}
}
