package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/ricirt/service-template/internal/config"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected addr :8080, got %s", cfg.Addr())
	}
	if cfg.ReadTimeout != 5*time.Second {
		t.Fatalf("expected read timeout 5s, got %s", cfg.ReadTimeout)
	}
	if cfg.MaxBodyBytes != 1<<20 {
		t.Fatalf("expected 1MB body cap, got %d", cfg.MaxBodyBytes)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("expected no database by default, got %q", cfg.DatabaseURL)
	}
	if cfg.TracingEnabled {
		t.Fatal("expected tracing disabled by default")
	}
	if cfg.TrustProxyHeaders {
		t.Fatal("expected forwarded headers untrusted by default")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("RATE_LIMIT_RPS", "0")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/app")
	t.Setenv("TRUST_PROXY_HEADERS", "true")
	t.Setenv("DB_MAX_CONNS", "32")

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected port 9090, got %s", cfg.HTTPPort)
	}
	if cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("expected 3s, got %s", cfg.ShutdownTimeout)
	}
	if cfg.RateLimitRPS != 0 {
		t.Fatalf("expected rate limiting disabled, got %v", cfg.RateLimitRPS)
	}
	if !cfg.TracingEnabled {
		t.Fatal("expected tracing enabled")
	}
	if cfg.DatabaseURL == "" {
		t.Fatal("expected DATABASE_URL to be picked up")
	}
	if !cfg.TrustProxyHeaders {
		t.Fatal("expected TRUST_PROXY_HEADERS to be picked up")
	}
	if cfg.DBMaxConns != 32 {
		t.Fatalf("expected 32 max conns, got %d", cfg.DBMaxConns)
	}
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := []struct {
		key, value, wantErr string
	}{
		{"READ_TIMEOUT", "soon", "READ_TIMEOUT"},
		{"DB_MAX_CONNS", "many", "DB_MAX_CONNS"},
		{"RATE_LIMIT_RPS", "-1", "RATE_LIMIT_RPS"},
		{"OTEL_TRACE_SAMPLE_RATE", "1.5", "OTEL_TRACE_SAMPLE_RATE"},
		{"OTEL_ENABLED", "maybe", "OTEL_ENABLED"},
		{"LOG_FORMAT", "xml", "LOG_FORMAT"},
		{"DB_MIN_CONNS", "50", "DB pool bounds"},
		{"DB_MAX_CONNS", "4294967306", "DB_MAX_CONNS"},
		{"LOG_LEVEL", "loud", "LOG_LEVEL"},
		{"TRUST_PROXY_HEADERS", "sometimes", "TRUST_PROXY_HEADERS"},
	}
	for _, tc := range cases {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := config.FromEnv()
			if err == nil {
				t.Fatalf("expected error for %s=%s", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestFromEnv_ReportsEveryBadVariable(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "x")
	t.Setenv("WRITE_TIMEOUT", "y")
	t.Setenv("LOG_LEVEL", "loud")

	_, err := config.FromEnv()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, key := range []string{"READ_TIMEOUT", "WRITE_TIMEOUT", "LOG_LEVEL"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in error, got %v", key, err)
		}
	}
}
