// Package main provides the entrypoint for the Mother Road API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/motherroad/motherroad/internal/api"
	"github.com/motherroad/motherroad/internal/api/middleware"
	"github.com/motherroad/motherroad/internal/auth"
	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/catalog/route66data"
	"github.com/motherroad/motherroad/internal/database"
	"github.com/motherroad/motherroad/internal/planner"
	"github.com/motherroad/motherroad/internal/provider/resilience"
	"github.com/motherroad/motherroad/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "motherroad-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Mother Road API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Initialize provider health registry and provider call metrics
	registry := resilience.NewRegistry()

	providerMetrics, err := telemetry.NewProviderMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize provider metrics")
	}

	// Select the catalog provider. The hosted stop-data service is the
	// default; a Postgres mirror can be selected for deployments that sync
	// the catalog into their own database.
	var provider catalog.Provider
	switch os.Getenv("CATALOG_PROVIDER") {
	case "postgres":
		dbConfig := database.ConfigFromEnv()
		pool, dbErr := database.Connect(ctx, dbConfig)
		if dbErr != nil {
			log.Fatal().Err(dbErr).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		provider = catalog.NewPostgresProvider(pool, log)

	default:
		provider = route66data.NewClient(route66data.ClientConfig{
			BaseURL:  os.Getenv("ROUTE66_DATA_BASE_URL"),
			APIKey:   os.Getenv("ROUTE66_DATA_API_KEY"),
			Registry: registry,
			Metrics:  providerMetrics,
			Logger:   log,
		})
	}
	log.Info().Str("provider", provider.Name()).Msg("catalog provider initialized")

	// Initialize catalog and planner services
	catalogService := catalog.NewService(catalog.ServiceConfig{
		Provider: provider,
		Logger:   log,
		Metrics:  providerMetrics,
	})

	plannerService := planner.NewService(planner.ServiceConfig{
		Catalog: catalogService,
		Logger:  log,
	})
	log.Info().Msg("planner service initialized")

	// Initialize JWT service for admin endpoints
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     "https://api.motherroad.dev",
		Audience:   "motherroad-admin",
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		BuildTime:      BuildTime,
		Logger:         log,
		ServiceName:    serviceName,
		Metrics:        metrics,
		JWTService:     jwtService,
		CatalogService: catalogService,
		PlannerService: plannerService,
		Registry:       registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Warm the catalog snapshot so the first planning request does not pay
	// the provider round trip.
	warmCtx, warmCancel := context.WithTimeout(ctx, 30*time.Second)
	if _, warmErr := catalogService.Snapshot(warmCtx); warmErr != nil {
		log.Warn().Err(warmErr).Msg("catalog warmup failed, first request will retry")
	}
	warmCancel()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
