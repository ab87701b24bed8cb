package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Host               string        `validate:"required"`
	Port               string        `validate:"required,numeric"`
	RequestTimeout     time.Duration `validate:"gt=0"`
	MaxRequestBodySize int64         `validate:"gt=0"`

	// Analysis
	SmoothingWindow int    `validate:"gte=1,lte=60"`
	ThresholdsFile  string `validate:"omitempty,endswith=.json"`
	BatchWorkers    int    `validate:"gte=0,lte=256"`

	// Sessions
	SessionIdleTTL time.Duration `validate:"gt=0"`
	MaxSessions    int           `validate:"gte=1"`

	// Rate limiting; RateLimitRPS 0 disables it
	RateLimitRPS   float64 `validate:"gte=0"`
	RateLimitBurst int     `validate:"gte=1"`
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// Load reads an optional .env file and then the environment
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		// Existing environment variables win over the file
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return LoadFromEnv()
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               strings.TrimSpace(getEnvOrDefault("PORT", "8080")),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 2*1024*1024), // 2MB
		SmoothingWindow:    int(parseIntOrDefault("SMOOTHING_WINDOW", 5)),
		ThresholdsFile:     strings.TrimSpace(os.Getenv("THRESHOLDS_FILE")),
		BatchWorkers:       int(parseIntOrDefault("BATCH_WORKERS", 0)),
		SessionIdleTTL:     parseDurationOrDefault("SESSION_IDLE_TTL", 10*time.Minute),
		MaxSessions:        int(parseIntOrDefault("MAX_SESSIONS", 1000)),
		RateLimitRPS:       parseFloatOrDefault("RATE_LIMIT_RPS", 50),
		RateLimitBurst:     int(parseIntOrDefault("RATE_LIMIT_BURST", 100)),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Validate port is in range
	if p, _ := strconv.Atoi(cfg.Port); p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return f
		}
	}
	return defaultValue
}
