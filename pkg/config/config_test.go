package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8080" {
		t.Errorf("Expected Port to be 8080, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.AlphaVantage.APIKey != "demo" {
		t.Errorf("Expected AlphaVantage APIKey to default to demo, got %s", cfg.AlphaVantage.APIKey)
	}

	if cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("Expected HTTPTimeout to be 10s, got %s", cfg.HTTPTimeout)
	}

	if cfg.Finnhub.Enabled() {
		t.Error("Expected Finnhub to be disabled without an API key")
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("ALPHA_VANTAGE_API_KEY", "test-key")
	os.Setenv("FINNHUB_API_KEY", "news-key")
	os.Setenv("HTTP_TIMEOUT", "5s")
	os.Setenv("LOG_LEVEL", "info")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("ALPHA_VANTAGE_API_KEY")
		os.Unsetenv("FINNHUB_API_KEY")
		os.Unsetenv("HTTP_TIMEOUT")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.AlphaVantage.APIKey != "test-key" {
		t.Errorf("Expected AlphaVantage APIKey to be test-key, got %s", cfg.AlphaVantage.APIKey)
	}

	if !cfg.Finnhub.Enabled() {
		t.Error("Expected Finnhub to be enabled with an API key")
	}

	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("Expected HTTPTimeout to be 5s, got %s", cfg.HTTPTimeout)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to be info, got %s", cfg.LogLevel)
	}
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "testing")
	defer os.Unsetenv("ENV")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject an unknown ENV value")
	}
}
