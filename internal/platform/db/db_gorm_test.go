package db

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// TestBuildDSN_TCP はTCP接続用のDSN文字列が正しく生成されることを検証します。
func TestBuildDSN_TCP(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:   DriverPostgres,
		User:     "testuser",
		Password: "testpass",
		Name:     "testdb",
		Host:     "localhost",
		Port:     "5432",
		SSLMode:  "disable",
	}

	dsn := BuildDSN(cfg)

	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

// TestBuildDSN_CloudSQLTakesPrecedence はInstanceNameとHost/Portが両方設定されている場合にInstanceNameが優先されることを検証します。
func TestBuildDSN_CloudSQLTakesPrecedence(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Driver:       DriverPostgres,
		User:         "testuser",
		Password:     "testpass",
		Name:         "testdb",
		Host:         "localhost",
		Port:         "5432",
		InstanceName: "project:region:instance",
	}

	dsn := BuildDSN(cfg)

	expected := "host=/cloudsql/project:region:instance user=testuser password=testpass dbname=testdb sslmode=disable"
	if dsn != expected {
		t.Errorf("expected DSN %q, got %q", expected, dsn)
	}
}

func TestBuildDSN_SQLite(t *testing.T) {
	t.Parallel()

	dsn := BuildDSN(Config{Driver: DriverSQLite, SQLitePath: "./test.db"})

	if dsn != "./test.db?_foreign_keys=on" {
		t.Errorf("unexpected sqlite DSN %q", dsn)
	}
}

func TestNewOpener_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	if _, err := NewOpener("mysql"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestNewOpener_SQLiteInMemory(t *testing.T) {
	t.Parallel()

	opener, err := NewOpener(DriverSQLite)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	db, err := opener(":memory:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !db.Config.TranslateError {
		t.Error("expected TranslateError to be enabled")
	}
}

// TestConnectWithRetry_SuccessOnFirstTry は初回接続成功時にリトライせずDBを返すことを検証します。
func TestConnectWithRetry_SuccessOnFirstTry(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attemptCount := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		return mockDB, nil
	}

	db, err := ConnectWithRetry("test-dsn", 5*time.Second, opener)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db != mockDB {
		t.Error("expected mock DB to be returned")
	}
	if attemptCount != 1 {
		t.Errorf("expected 1 attempt, got %d", attemptCount)
	}
}

// TestConnectWithRetry_RetriesOnFailure は接続失敗時にリトライして最終的に成功することを検証します。
func TestConnectWithRetry_RetriesOnFailure(t *testing.T) {
	t.Parallel()

	mockDB := &gorm.DB{}
	attemptCount := 0
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		if attemptCount < 3 {
			return nil, errors.New("connection refused")
		}
		return mockDB, nil
	}

	db, err := connectWithRetry("test-dsn", time.Second, 10*time.Millisecond, opener)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db != mockDB {
		t.Error("expected mock DB to be returned")
	}
	if attemptCount != 3 {
		t.Errorf("expected 3 attempts, got %d", attemptCount)
	}
}

// TestConnectWithRetry_TimeoutAfterRetries はタイムアウト後にエラーが返されることを検証します。
func TestConnectWithRetry_TimeoutAfterRetries(t *testing.T) {
	t.Parallel()

	attemptCount := 0
	cause := errors.New("connection refused")
	opener := func(dsn string) (*gorm.DB, error) {
		attemptCount++
		return nil, cause
	}

	_, err := connectWithRetry("test-dsn", 30*time.Millisecond, 10*time.Millisecond, opener)

	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if attemptCount < 2 {
		t.Errorf("expected at least two connection attempts, got %d", attemptCount)
	}
}

// TestLoadConfigFromEnv は環境変数からデータベース設定が正しく読み込まれることを検証します。
func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("DB_USER", "envuser")
	t.Setenv("DB_PASSWORD", "envpass")
	t.Setenv("DB_NAME", "envdb")
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_PORT", "")
	t.Setenv("DB_SSLMODE", "")
	t.Setenv("INSTANCE_CONNECTION_NAME", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("DB_CONNECT_TIMEOUT", "15s")
	t.Setenv("RUN_MIGRATIONS", "true")

	cfg := LoadConfigFromEnv()

	if cfg.Driver != DriverPostgres {
		t.Errorf("expected default driver %q, got %q", DriverPostgres, cfg.Driver)
	}
	if cfg.User != "envuser" || cfg.Password != "envpass" || cfg.Name != "envdb" || cfg.Host != "envhost" {
		t.Errorf("unexpected credentials in %+v", cfg)
	}
	if cfg.Port != "5432" {
		t.Errorf("expected default port 5432, got %q", cfg.Port)
	}
	if cfg.SSLMode != "disable" {
		t.Errorf("expected default sslmode disable, got %q", cfg.SSLMode)
	}
	if cfg.SQLitePath != "./fsjstd-restapi.db" {
		t.Errorf("unexpected default sqlite path %q", cfg.SQLitePath)
	}
	if cfg.ConnectTimeout != 15*time.Second {
		t.Errorf("expected 15s connect timeout, got %v", cfg.ConnectTimeout)
	}
	if !cfg.RunMigrations {
		t.Error("expected RunMigrations to be true")
	}
}

func TestLoadConfigFromEnv_TimeoutInSeconds(t *testing.T) {
	t.Setenv("DB_CONNECT_TIMEOUT", "5")

	if got := LoadConfigFromEnv().ConnectTimeout; got != 5*time.Second {
		t.Errorf("expected 5s, got %v", got)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"gorm translated", gorm.ErrDuplicatedKey, true},
		{"wrapped gorm translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"postgres 23505", &pgconn.PgError{Code: "23505"}, true},
		{"postgres other code", &pgconn.PgError{Code: "23503"}, false},
		{"unrelated", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	if !IsForeignKeyViolation(gorm.ErrForeignKeyViolated) {
		t.Error("expected gorm.ErrForeignKeyViolated to match")
	}
	if !IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("expected postgres 23503 to match")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation must not match")
	}
}
