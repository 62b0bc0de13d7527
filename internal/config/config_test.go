package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "DB_PATH", "JWT_SECRET", "JWT_EXPIRE_MINUTES", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "5000" {
		t.Errorf("Port: got %q, want 5000", cfg.Port)
	}
	if cfg.DBDriver != DriverSQLite || cfg.DBPath != "todo.db" {
		t.Errorf("unexpected store config: driver=%q path=%q", cfg.DBDriver, cfg.DBPath)
	}
	if cfg.TokenTTL() != 15*time.Minute {
		t.Errorf("TokenTTL: got %v, want 15m", cfg.TokenTTL())
	}
	if cfg.CORSAllowedOrigins != nil {
		t.Errorf("expected no CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate on defaults: %v", err)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_EXPIRE_MINUTES", "60")
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", " http://localhost:3000/ , ,https://app.example.com")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("Port: got %q", cfg.Port)
	}
	if cfg.DBDriver != DriverPostgres {
		t.Errorf("DBDriver: got %q", cfg.DBDriver)
	}
	if cfg.TokenTTL() != time.Hour {
		t.Errorf("TokenTTL: got %v, want 1h", cfg.TokenTTL())
	}
	if cfg.DBMaxOpenConns != 25 {
		t.Errorf("DBMaxOpenConns should fall back to 25, got %d", cfg.DBMaxOpenConns)
	}
	want := []string{"http://localhost:3000", "https://app.example.com"}
	if len(cfg.CORSAllowedOrigins) != len(want) {
		t.Fatalf("CORS origins: got %v, want %v", cfg.CORSAllowedOrigins, want)
	}
	for i := range want {
		if cfg.CORSAllowedOrigins[i] != want[i] {
			t.Errorf("CORS origin %d: got %q, want %q", i, cfg.CORSAllowedOrigins[i], want[i])
		}
	}
}

func TestValidate(t *testing.T) {
	base := Config{DBDriver: DriverSQLite, DBPath: "todo.db", JWTSecret: "s3cret", Env: "prod"}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	prodDefault := base
	prodDefault.JWTSecret = DefaultJWTSecret
	if err := prodDefault.Validate(); err == nil {
		t.Error("expected error for default secret in prod")
	}

	badDriver := base
	badDriver.DBDriver = "mysql"
	if err := badDriver.Validate(); err == nil || !strings.Contains(err.Error(), "mysql") {
		t.Errorf("expected unsupported driver error, got %v", err)
	}

	halfTLS := base
	halfTLS.TLSCertFile = "cert.pem"
	if err := halfTLS.Validate(); err == nil {
		t.Error("expected error when only TLS_CERT_FILE is set")
	}
}

func TestDSNAndMigrateURL(t *testing.T) {
	lite := Config{DBDriver: DriverSQLite, DBPath: "data/todo.db"}
	if got := lite.DSN(); got != "file:data/todo.db?_foreign_keys=on&_busy_timeout=5000" {
		t.Errorf("sqlite DSN: %q", got)
	}
	if got := lite.MigrateURL(); got != "sqlite3://data/todo.db?_foreign_keys=on" {
		t.Errorf("sqlite migrate URL: %q", got)
	}

	pg := Config{DBDriver: DriverPostgres, DBHost: "db", DBPort: "5432", DBName: "todo", DBUser: "u", DBPass: "p@ss"}
	if got := pg.DSN(); !strings.Contains(got, "host=db") || !strings.Contains(got, "dbname=todo") {
		t.Errorf("postgres DSN: %q", got)
	}
	if got := pg.MigrateURL(); got != "postgres://u:p%40ss@db:5432/todo?sslmode=disable" {
		t.Errorf("postgres migrate URL: %q", got)
	}
}
