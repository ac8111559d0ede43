package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/vendas/internal"
	"github.com/dukerupert/vendas/internal/bootstrap"
	"github.com/dukerupert/vendas/internal/cache"
	"github.com/dukerupert/vendas/internal/domain"
	"github.com/dukerupert/vendas/internal/events"
	"github.com/dukerupert/vendas/internal/handler"
	"github.com/dukerupert/vendas/internal/handler/api"
	"github.com/dukerupert/vendas/internal/middleware"
	"github.com/dukerupert/vendas/internal/postgres"
	"github.com/dukerupert/vendas/internal/repository"
	"github.com/dukerupert/vendas/internal/router"
	"github.com/dukerupert/vendas/internal/routes"
	"github.com/dukerupert/vendas/internal/service"
	"github.com/dukerupert/vendas/internal/telemetry"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize Sentry error tracking
	sentryCleanup, err := telemetry.InitSentry(telemetry.SentryConfig{
		DSN:              cfg.Sentry.DSN,
		Enabled:          cfg.Sentry.Enabled,
		Environment:      cfg.Sentry.Environment,
		Release:          cfg.Sentry.Release,
		SampleRate:       cfg.Sentry.SampleRate,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
		Debug:            cfg.Sentry.Debug,
	}, logger)
	if err != nil {
		return fmt.Errorf("sentry initialization failed: %w", err)
	}
	defer sentryCleanup()

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	// Verify database connection
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := repository.NewStore(pool)

	// Metrics
	businessMetrics := telemetry.InitBusinessMetrics("vendas")
	httpMetrics := middleware.NewMetrics("vendas", nil)

	// Catalog, optionally behind the Redis cache. The cart engine always
	// reads the store directly so totals use live prices.
	catalog := postgres.NewProductService(store)
	if cfg.CatalogSeedFile != "" {
		if _, err := bootstrap.SeedFromFile(ctx, catalog, cfg.CatalogSeedFile, logger); err != nil {
			return fmt.Errorf("catalog seed failed: %w", err)
		}
	}

	var productService domain.ProductService = catalog
	if cfg.CacheEnabled() {
		logger.Info("Connecting to Redis catalog cache...")
		redisClient, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return fmt.Errorf("redis initialization failed: %w", err)
		}
		defer redisClient.Close()
		productService = cache.NewCatalogCache(productService, redisClient, cfg.Cache.TTL, businessMetrics, logger)
		logger.Info("Catalog cache enabled", "ttl", cfg.Cache.TTL)
	}

	// Cart events
	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATS.URL != "" {
		logger.Info("Connecting to NATS...")
		natsPublisher, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, logger)
		if err != nil {
			return fmt.Errorf("nats initialization failed: %w", err)
		}
		publisher = natsPublisher
		logger.Info("Cart events enabled", "subject_prefix", cfg.NATS.SubjectPrefix)
	}
	defer publisher.Close()

	cartService := service.NewNotifyingCartService(postgres.NewCartService(store), publisher, businessMetrics, logger)

	// ==========================================================================
	// Router
	// ==========================================================================

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
		BurstSize:         cfg.RateLimit.Burst,
		CleanupInterval:   time.Minute,
	})
	defer rateLimiter.Stop()

	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env != "prod" {
		securityConfig.HSTSMaxAge = 0
	}

	r := router.New(
		router.Recovery(logger),
		telemetry.SentryMiddleware(),
		middleware.RequestID,
		httpMetrics.Middleware,
		router.CORS(cfg.CORS.AllowedOrigins),
		middleware.SecurityHeaders(securityConfig),
		middleware.MaxBodySize(middleware.SmallMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		rateLimiter.Middleware,
		router.Logger(logger),
		middleware.WithRequestLogger(logger),
	)

	routes.RegisterAPIRoutes(r, routes.APIDeps{
		ProductHandler: api.NewProductHandler(productService, businessMetrics),
		CartHandler:    api.NewCartHandler(cartService),
		HealthHandler:  handler.NewHealthHandler(store),
		MetricsHandler: httpMetrics.Handler(),
	})

	// ==========================================================================
	// Start server
	// ==========================================================================

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting vendas server", "address", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		logger.Info("Server stopped")
		return nil
	})

	return g.Wait()
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
