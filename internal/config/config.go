package config

import (
	"os"
	"strconv"
	"time"

	"adpulse/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig
	Meta      MetaConfig
	Analytics AnalyticsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// MetaConfig holds ads-API client settings. Credentials may instead be
// supplied per session through the connect endpoint.
type MetaConfig struct {
	BaseURL     string
	APIVersion  string
	AccessToken string
	AdAccountID string
	HTTPTimeout time.Duration
}

// AnalyticsConfig holds metric computation settings.
type AnalyticsConfig struct {
	// AverageOrderValue is the fallback per-order revenue used when the
	// upstream source reports purchases but no purchase value.
	AverageOrderValue float64
	// CurrencySymbol is display-only; core values stay plain numeric.
	CurrencySymbol string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:    loadServerConfig(),
		Meta:      loadMetaConfig(),
		Analytics: loadAnalyticsConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigInvalid, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadMetaConfig() MetaConfig {
	return MetaConfig{
		BaseURL:     getEnvOrDefault("META_BASE_URL", "https://graph.facebook.com"),
		APIVersion:  getEnvOrDefault("META_API_VERSION", "v19.0"),
		AccessToken: getEnvOrDefault("META_ACCESS_TOKEN", ""),
		AdAccountID: getEnvOrDefault("META_AD_ACCOUNT_ID", ""),
		HTTPTimeout: getEnvDurationOrDefault("META_HTTP_TIMEOUT", 30*time.Second),
	}
}

func loadAnalyticsConfig() AnalyticsConfig {
	return AnalyticsConfig{
		AverageOrderValue: getEnvFloatOrDefault("AVERAGE_ORDER_VALUE", 600),
		CurrencySymbol:    getEnvOrDefault("CURRENCY_SYMBOL", "₹"),
	}
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Analytics.AverageOrderValue < 0 {
		return errors.ConfigInvalid("average order value must be non-negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
