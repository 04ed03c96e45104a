// Package api provides the HTTP API for the Mother Road trip planner.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/motherroad/motherroad/internal/api/handler"
	"github.com/motherroad/motherroad/internal/api/middleware"
	"github.com/motherroad/motherroad/internal/auth"
	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/planner"
	"github.com/motherroad/motherroad/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version        string
	BuildTime      string
	Logger         zerolog.Logger
	ServiceName    string
	Metrics        *middleware.Metrics
	JWTService     *auth.JWTService
	CatalogService *catalog.Service
	PlannerService *planner.Service
	Registry       *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "motherroad-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.CatalogService, cfg.Registry)
	tripsHandler := handler.NewTripsHandler(cfg.PlannerService)
	catalogHandler := handler.NewCatalogHandler(cfg.CatalogService, cfg.PlannerService)
	adminHandler := handler.NewAdminHandler(cfg.CatalogService, cfg.Logger)

	// Create auth middleware for admin endpoints
	authMiddleware := middleware.Auth(cfg.JWTService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Trip planning - expensive compute, strict rate limiting
		r.With(expensiveRateLimit).Post("/trips:plan", tripsHandler.PlanTrip)

		// Plan analysis is cheap: no catalog access, pure arithmetic
		r.With(standardRateLimit).Post("/trips:analyze", tripsHandler.AnalyzeTrip)

		// Catalog read endpoints (public) - standard rate limiting
		r.Route("/catalog", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/cities", catalogHandler.ListCities)
			r.Get("/stats", catalogHandler.Stats)
		})

		// Admin endpoints (authenticated) - for internal operations
		r.Route("/admin", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByService(middleware.AdminRateLimit)) // 10 req/min per service
			r.Post("/catalog/refresh", adminHandler.RefreshCatalog)
		})
	})

	return r
}
