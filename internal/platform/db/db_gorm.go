// Package db opens the gorm connection used by every repository.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultConnectTimeout = 60 * time.Second
	retryInterval         = 3 * time.Second

	// PostgreSQL SQLSTATE codes
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Config holds database connection settings.
type Config struct {
	Driver   string
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	SSLMode  string

	// InstanceName is a Cloud SQL instance connection name. When set, the
	// connection goes through the /cloudsql unix socket instead of Host/Port.
	InstanceName string

	SQLitePath     string
	ConnectTimeout time.Duration
	RunMigrations  bool
}

// LoadConfigFromEnv reads the database configuration from environment variables.
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:         os.Getenv("DB_DRIVER"),
		User:           os.Getenv("DB_USER"),
		Password:       os.Getenv("DB_PASSWORD"),
		Name:           os.Getenv("DB_NAME"),
		Host:           os.Getenv("DB_HOST"),
		Port:           os.Getenv("DB_PORT"),
		SSLMode:        os.Getenv("DB_SSLMODE"),
		InstanceName:   os.Getenv("INSTANCE_CONNECTION_NAME"),
		SQLitePath:     os.Getenv("SQLITE_PATH"),
		ConnectTimeout: defaultConnectTimeout,
		RunMigrations:  os.Getenv("RUN_MIGRATIONS") == "true",
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverPostgres
	}
	if cfg.Port == "" {
		cfg.Port = "5432"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "./fsjstd-restapi.db"
	}
	if v := os.Getenv("DB_CONNECT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.ConnectTimeout = d
		} else if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.ConnectTimeout = time.Duration(secs) * time.Second
		}
	}
	return cfg
}

// BuildDSN builds the driver-specific data source name.
// For PostgreSQL, InstanceName takes precedence over Host/Port.
func BuildDSN(cfg Config) string {
	if cfg.Driver == DriverSQLite {
		return cfg.SQLitePath + "?_foreign_keys=on"
	}
	if cfg.InstanceName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.InstanceName, cfg.User, cfg.Password, cfg.Name)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Opener opens a gorm connection for a DSN. It is swapped out in tests.
type Opener func(dsn string) (*gorm.DB, error)

// NewOpener returns the Opener for the configured driver.
// TranslateError makes constraint violations surface as gorm.ErrDuplicatedKey
// and gorm.ErrForeignKeyViolated regardless of the dialect.
func NewOpener(driver string) (Opener, error) {
	gcfg := &gorm.Config{TranslateError: true}
	switch driver {
	case DriverPostgres:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(postgres.Open(dsn), gcfg) }, nil
	case DriverSQLite:
		return func(dsn string) (*gorm.DB, error) { return gorm.Open(sqlite.Open(dsn), gcfg) }, nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// ConnectWithRetry opens a connection, retrying every few seconds until timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, opener Opener) (*gorm.DB, error) {
	return connectWithRetry(dsn, timeout, retryInterval, opener)
}

func connectWithRetry(dsn string, timeout, interval time.Duration, opener Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := opener(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("DB connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", interval)
		time.Sleep(interval)
	}
}

// Open connects to the configured database.
func Open(cfg Config) (*gorm.DB, error) {
	opener, err := NewOpener(cfg.Driver)
	if err != nil {
		return nil, err
	}
	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	return ConnectWithRetry(BuildDSN(cfg), timeout, opener)
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
