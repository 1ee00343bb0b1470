package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/ricirt/service-template/internal/api"
	v1 "github.com/ricirt/service-template/internal/api/v1"
	"github.com/ricirt/service-template/internal/config"
	"github.com/ricirt/service-template/internal/db"
	"github.com/ricirt/service-template/internal/domain"
	"github.com/ricirt/service-template/internal/errorreporting"
	"github.com/ricirt/service-template/internal/health"
	"github.com/ricirt/service-template/internal/logger"
	"github.com/ricirt/service-template/internal/metrics"
	"github.com/ricirt/service-template/internal/ratelimiter"
	"github.com/ricirt/service-template/internal/tracing"
)

func main() {
	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck
	log = log.With(zap.String("service", cfg.ServiceName), zap.String("env", cfg.Environment))

	ctx := context.Background()

	// ---- error reporting & tracing ----
	if err := errorreporting.Init(errorreporting.Options{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		Release:     cfg.ServiceVersion,
		SampleRate:  1.0,
	}); err != nil {
		log.Fatal("failed to initialise error reporting", zap.Error(err))
	}
	defer errorreporting.Flush(2 * time.Second)

	shutdownTracing, err := tracing.Init(ctx, tracing.Options{
		Enabled:     cfg.TracingEnabled,
		Endpoint:    cfg.OTLPEndpoint,
		SampleRate:  cfg.TraceSampleRate,
		ServiceName: cfg.ServiceName,
		Version:     cfg.ServiceVersion,
	})
	if err != nil {
		log.Fatal("failed to initialise tracing", zap.Error(err))
	}

	// ---- readiness dependencies ----
	var checkers []health.Checker
	if cfg.DatabaseURL != "" {
		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			log.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()
		checkers = append(checkers, db.NewPoolChecker(pool))
		log.Info("database connected")
	}
	readiness := health.NewRegistry(cfg.ReadyCheckTimeout, checkers...)

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Context for all background goroutines; cancelled on shutdown signal.
	bgCtx, cancelBackground := context.WithCancel(ctx)
	defer cancelBackground()

	var limiter *ratelimiter.ClientLimiters
	if cfg.RateLimitRPS > 0 {
		limiter = ratelimiter.New(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go limiter.Run(bgCtx, time.Minute, cfg.RateLimitIdleTTL, log)
	}

	info := domain.BuildInfo{
		Service:     cfg.ServiceName,
		Version:     cfg.ServiceVersion,
		Environment: cfg.Environment,
	}

	// ---- HTTP server ----
	router := api.NewRouter(api.Deps{
		V1:           v1.NewRouter(info, reg, log),
		Metrics:      m,
		Gatherer:     reg,
		Logger:       log,
		Readiness:    readiness,
		Limiter:      limiter,
		MaxBodyBytes: cfg.MaxBodyBytes,

		TrustProxyHeaders: cfg.TrustProxyHeaders,
	})
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in a goroutine so it does not block the shutdown listener.
	go func() {
		log.Info("server starting", zap.String("addr", srv.Addr), zap.String("version", cfg.ServiceVersion))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("shutdown signal received", zap.String("signal", sig.String()))

	// 1. Stop accepting new HTTP requests and drain in-flight ones.
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}

	// 2. Stop background loops.
	cancelBackground()

	// 3. Flush pending spans.
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracer shutdown error", zap.Error(err))
	}

	log.Info("server stopped cleanly")
}
