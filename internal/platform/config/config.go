// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"course_api/internal/platform/db"
	"course_api/internal/platform/logging"
	"course_api/internal/platform/redis"
)

const (
	// MinBcryptCost is the lowest accepted bcrypt cost.
	MinBcryptCost = 10

	defaultPort          = "8080"
	defaultCacheTTL      = 5 * time.Minute
	defaultAuthRateLimit = 60
)

// Config is the complete server configuration.
type Config struct {
	Port    string
	GinMode string

	DB    db.Config
	Redis redis.Config
	Log   logging.Config

	CourseCacheTTL time.Duration
	BcryptCost     int

	// AuthRateLimit is the number of authenticated requests allowed per
	// client IP per minute. 0 disables limiting.
	AuthRateLimit int
	CORSEnabled   bool
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn(".env file could not be read", "error", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:    getenv("PORT", defaultPort),
		GinMode: os.Getenv("GIN_MODE"),
		DB:      db.LoadConfigFromEnv(),
		Redis:   redis.LoadConfigFromEnv(),
		Log: logging.Config{
			Level:  getenv("LOG_LEVEL", "info"),
			Format: getenv("LOG_FORMAT", "json"),
		},
		CourseCacheTTL: defaultCacheTTL,
		BcryptCost:     MinBcryptCost,
		AuthRateLimit:  defaultAuthRateLimit,
		CORSEnabled:    strings.EqualFold(os.Getenv("CORS_ENABLED"), "true"),
	}

	var errs []error
	if v := os.Getenv("COURSE_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			errs = append(errs, fmt.Errorf("COURSE_CACHE_TTL: invalid duration %q", v))
		} else {
			cfg.CourseCacheTTL = d
		}
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < MinBcryptCost {
			errs = append(errs, fmt.Errorf("BCRYPT_COST: must be an integer >= %d, got %q", MinBcryptCost, v))
		} else {
			cfg.BcryptCost = n
		}
	}
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, fmt.Errorf("AUTH_RATE_LIMIT: must be a non-negative integer, got %q", v))
		} else {
			cfg.AuthRateLimit = n
		}
	}
	if cfg.DB.Driver != db.DriverPostgres && cfg.DB.Driver != db.DriverSQLite {
		errs = append(errs, fmt.Errorf("DB_DRIVER: unsupported driver %q", cfg.DB.Driver))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
