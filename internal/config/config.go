package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server        ServerConfig
	Parser        ParserConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	MaxUploadBytes int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	StaticDir      string

	RateLimitPerSecond int
	RateLimitBurst     int
}

type ParserConfig struct {
	// TaxonomyFile overrides the embedded category taxonomy when set.
	TaxonomyFile string
}

type ObservabilityConfig struct {
	LogLevel       string
	MetricsEnabled bool
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from environment variables, after loading an
// optional .env file from the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (*Config, error) {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:      getEnv("SERVER_HOST", ""),
			StaticDir: getEnv("STATIC_DIR", ""),
		},
		Parser: ParserConfig{
			TaxonomyFile: getEnv("TAXONOMY_FILE", ""),
		},
		Observability: ObservabilityConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
		},
	}

	var err error
	cfg.Server.Port, err = getEnvAsInt("SERVER_PORT", 8080)
	collect(err)
	cfg.Server.MaxUploadBytes, err = getEnvAsInt("MAX_UPLOAD_BYTES", 5<<20)
	collect(err)
	cfg.Server.ReadTimeout, err = getEnvAsDuration("READ_TIMEOUT", 30*time.Second)
	collect(err)
	cfg.Server.WriteTimeout, err = getEnvAsDuration("WRITE_TIMEOUT", 60*time.Second)
	collect(err)
	cfg.Observability.MetricsEnabled, err = getEnvAsBool("METRICS_ENABLED", true)
	collect(err)
	cfg.Server.RateLimitPerSecond, err = getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 10)
	collect(err)
	cfg.Server.RateLimitBurst, err = getEnvAsInt("SERVER_RATE_LIMIT_BURST", 20)
	collect(err)

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT out of range: %d", cfg.Server.Port))
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_BYTES must be positive: %d", cfg.Server.MaxUploadBytes))
	}

	if cfg.Server.RateLimitPerSecond < 0 || cfg.Server.RateLimitBurst < 0 {
		errs = append(errs, errors.New("SERVER_RATE_LIMIT_PER_SECOND and SERVER_RATE_LIMIT_BURST must not be negative"))
	} else if cfg.Server.RateLimitPerSecond > 0 && cfg.Server.RateLimitBurst < 1 {
		// A zero burst bucket never holds a token.
		errs = append(errs, fmt.Errorf("SERVER_RATE_LIMIT_BURST must be at least 1 when rate limiting is enabled: %d", cfg.Server.RateLimitBurst))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: invalid integer %q", key, valueStr)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: invalid boolean %q", key, valueStr)
	}
	return value, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue, fmt.Errorf("%s: invalid duration %q", key, valueStr)
	}
	return value, nil
}
