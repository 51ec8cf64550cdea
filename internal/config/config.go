package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Northwind API
	NorthwindBaseURL string
	NorthwindAPIKey  string

	// HTTP client
	HTTPTimeout time.Duration

	// Resilience
	MaxConcurrency        int
	CircuitBreakerEnabled bool

	// Cache (bank info and domain values only)
	CacheTTL time.Duration

	// Observability
	OTLPEndpoint string // empty disables tracing

	// Mock transactions
	MockSeed uint64

	// Browser front ends on other origins; empty disables CORS
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		NorthwindBaseURL: strings.TrimSuffix(getEnv("NORTHWIND_API_BASE_URL", ""), "/"),
		NorthwindAPIKey:  getEnv("NORTHWIND_API_KEY", ""),

		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		MaxConcurrency:        getEnvInt("MAX_CONCURRENCY", 50),
		CircuitBreakerEnabled: getEnvBool("CIRCUIT_BREAKER_ENABLED", false),

		CacheTTL: getEnvDuration("CACHE_TTL", 5*time.Minute),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		MockSeed: getEnvUint64("MOCK_SEED", 20260224),

		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS"),
	}
}

// Validate reports settings the BFA cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.NorthwindBaseURL == "" {
		errs = append(errs, errors.New("NORTHWIND_API_BASE_URL is required"))
	}
	if c.NorthwindAPIKey == "" {
		errs = append(errs, errors.New("NORTHWIND_API_KEY is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, errors.New("PORT must be between 1 and 65535"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvUint64(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseUint(v, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping empty items.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
