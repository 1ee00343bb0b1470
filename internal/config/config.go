package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds all runtime configuration loaded from environment variables.
// Every field has a sensible default; nothing is strictly required.
type Config struct {
	// Server
	HTTPPort        string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64

	// TrustProxyHeaders takes the client address from X-Forwarded-For /
	// X-Real-IP. Only safe behind a proxy that overwrites them.
	TrustProxyHeaders bool

	// Identity
	ServiceName    string
	ServiceVersion string
	Environment    string

	// Logging
	LogLevel  string
	LogFormat string

	// Database (optional; readiness only)
	DatabaseURL string
	DBMaxConns  int32
	DBMinConns  int32

	ReadyCheckTimeout time.Duration

	// Rate limiting: requests per second per client on the versioned API.
	// Zero disables limiting.
	RateLimitRPS     float64
	RateLimitBurst   int
	RateLimitIdleTTL time.Duration

	// Error reporting
	SentryDSN string

	// Tracing
	TracingEnabled  bool
	OTLPEndpoint    string
	TraceSampleRate float64
}

// Load reads a .env file from the working directory if one exists, then
// builds the Config from the environment. Variables already set in the
// process environment take precedence over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the Config from the process environment only.
func FromEnv() (*Config, error) {
	e := &env{}

	cfg := &Config{
		HTTPPort:        e.str("HTTP_PORT", "8080"),
		ReadTimeout:     e.duration("READ_TIMEOUT", 5*time.Second),
		WriteTimeout:    e.duration("WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:     e.duration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 30*time.Second),
		MaxBodyBytes:    int64(e.integer("MAX_BODY_BYTES", 1<<20)),

		TrustProxyHeaders: e.boolean("TRUST_PROXY_HEADERS", false),

		ServiceName:    e.str("SERVICE_NAME", "template"),
		ServiceVersion: e.str("SERVICE_VERSION", "dev"),
		Environment:    e.str("ENV", "development"),

		LogLevel:  e.str("LOG_LEVEL", "info"),
		LogFormat: e.str("LOG_FORMAT", "json"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBMaxConns:  e.integer32("DB_MAX_CONNS", 10),
		DBMinConns:  e.integer32("DB_MIN_CONNS", 1),

		ReadyCheckTimeout: e.duration("READY_CHECK_TIMEOUT", 2*time.Second),

		RateLimitRPS:     e.float("RATE_LIMIT_RPS", 50),
		RateLimitBurst:   e.integer("RATE_LIMIT_BURST", 100),
		RateLimitIdleTTL: e.duration("RATE_LIMIT_IDLE_TTL", 3*time.Minute),

		SentryDSN: os.Getenv("SENTRY_DSN"),

		TracingEnabled:  e.boolean("OTEL_ENABLED", false),
		OTLPEndpoint:    e.str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		TraceSampleRate: e.float("OTEL_TRACE_SAMPLE_RATE", 0.1),
	}

	if err := errors.Join(append(e.errs, cfg.validate()...)...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.HTTPPort }

func (c *Config) validate() []error {
	var errs []error
	if c.HTTPPort == "" {
		errs = append(errs, errors.New("HTTP_PORT must not be empty"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if c.DBMinConns < 0 || c.DBMaxConns <= 0 || c.DBMinConns > c.DBMaxConns {
		errs = append(errs, fmt.Errorf("invalid DB pool bounds: min=%d max=%d", c.DBMinConns, c.DBMaxConns))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must not be negative"))
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_BURST must be positive when rate limiting is enabled"))
	}
	if c.TraceSampleRate < 0 || c.TraceSampleRate > 1 {
		errs = append(errs, errors.New("OTEL_TRACE_SAMPLE_RATE must be within [0, 1]"))
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat))
	}
	return errs
}

// env collects parse errors so Load can report every bad variable at once.
type env struct {
	errs []error
}

func (e *env) str(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func (e *env) integer(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return defaultVal
	}
	return n
}

func (e *env) integer32(key string, defaultVal int32) int32 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return defaultVal
	}
	return int32(n)
}

func (e *env) float(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return defaultVal
	}
	return f
}

func (e *env) boolean(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return defaultVal
	}
	return b
}

func (e *env) duration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return defaultVal
	}
	return d
}
