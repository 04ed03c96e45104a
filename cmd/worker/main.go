// Package main provides the entrypoint for the Mother Road background worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/catalog/route66data"
	"github.com/motherroad/motherroad/internal/planner"
	"github.com/motherroad/motherroad/internal/provider/resilience"
	"github.com/motherroad/motherroad/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "motherroad-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Mother Road worker")

	// Worker also exposes a health endpoint for Cloud Run
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize catalog and planner services
	registry := resilience.NewRegistry()

	provider := route66data.NewClient(route66data.ClientConfig{
		BaseURL:  os.Getenv("ROUTE66_DATA_BASE_URL"),
		APIKey:   os.Getenv("ROUTE66_DATA_API_KEY"),
		Registry: registry,
		Logger:   log,
	})

	catalogService := catalog.NewService(catalog.ServiceConfig{
		Provider: provider,
		Logger:   log,
	})

	plannerService := planner.NewService(planner.ServiceConfig{
		Catalog: catalogService,
		Logger:  log,
	})

	refreshJob := worker.NewRefreshJob(worker.RefreshJobConfig{
		Config:         worker.DefaultRefreshConfig(),
		Logger:         log,
		CatalogService: catalogService,
		PlannerService: plannerService,
	})

	// Create HTTP server for health checks
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health check server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Prefer Pub/Sub-driven jobs when a subscription is configured; fall back
	// to a local ticker for environments without Pub/Sub.
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")

	if subscription != "" && projectID != "" {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			RefreshJob:       refreshJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer handler.Close()

		go func() {
			if err := handler.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("pubsub handler stopped")
			}
		}()
	} else {
		interval := 15 * time.Minute
		if raw := os.Getenv("REFRESH_INTERVAL"); raw != "" {
			if parsed, err := time.ParseDuration(raw); err == nil {
				interval = parsed
			} else {
				log.Warn().Str("value", raw).Msg("invalid REFRESH_INTERVAL, using default")
			}
		}

		go func() {
			log.Info().Dur("interval", interval).Msg("running catalog refresh on a local ticker")

			// Refresh once on startup, then on the interval.
			refreshJob.Run(ctx)

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					refreshJob.Run(ctx)
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
