package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/northwind-bfa-go/internal/config"
	"github.com/boddenberg/northwind-bfa-go/internal/handler"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/cache"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/northwind"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/observability"
	"github.com/boddenberg/northwind-bfa-go/internal/infra/resilience"
	"github.com/boddenberg/northwind-bfa-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("northwind_base_url", cfg.NorthwindBaseURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_concurrency", cfg.MaxConcurrency),
		zap.Bool("circuit_breaker", cfg.CircuitBreakerEnabled),
		zap.Uint64("mock_seed", cfg.MockSeed),
		zap.Strings("cors_allowed_origins", cfg.CORSAllowedOrigins),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "northwind-bfa")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	refCache := cache.New[any](cfg.CacheTTL)
	defer refCache.Close()

	// --- Northwind client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	opts := []northwind.Option{
		northwind.WithMetrics(metrics),
		northwind.WithBulkhead(resilience.NewBulkhead(cfg.MaxConcurrency)),
	}
	if cfg.CircuitBreakerEnabled {
		opts = append(opts, northwind.WithCircuitBreaker(resilience.NewCircuitBreaker("northwind", logger)))
		logger.Info("circuit breaker enabled for northwind")
	}

	client := northwind.NewClient(httpClient, cfg.NorthwindBaseURL, cfg.NorthwindAPIKey, logger, opts...)

	// --- Services ---
	bankSvc := service.NewBankingService(
		client.Accounts(),
		client.Transfers(),
		client,
		refCache,
		metrics,
		logger,
	)
	dashSvc := service.NewDashboardService(
		client.Accounts(),
		client.Transfers(),
		service.DefaultTypeLabels(),
		cfg.MockSeed,
		metrics,
		logger,
	)

	// --- Router ---
	router := handler.NewRouter(bankSvc, dashSvc, metrics, logger, handler.WithCORS(cfg.CORSAllowedOrigins))

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
