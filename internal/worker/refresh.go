package worker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/planner"
)

// RefreshJob forces a catalog snapshot refresh and warms the planner with a
// set of representative trips.
type RefreshJob struct {
	config RefreshConfig
	logger zerolog.Logger

	catalogService *catalog.Service
	plannerService *planner.Service

	metrics *RefreshMetrics
}

// RefreshMetrics tracks refresh job statistics.
type RefreshMetrics struct {
	mu sync.RWMutex

	// Counters
	TotalRefreshes   int64
	SuccessfulRuns   int64
	FailedRuns       int64
	CatalogRefreshes int64
	WarmupPlans      int64
	WarmupFailures   int64

	// Timings
	LastRefreshAt       time.Time
	LastRefreshDuration time.Duration
	TotalDuration       time.Duration

	// Last snapshot seen
	LastStopCount int
}

// RefreshJobConfig holds configuration for creating a RefreshJob.
type RefreshJobConfig struct {
	Config         RefreshConfig
	Logger         zerolog.Logger
	CatalogService *catalog.Service
	PlannerService *planner.Service
}

// NewRefreshJob creates a new refresh job processor.
func NewRefreshJob(cfg RefreshJobConfig) *RefreshJob {
	config := cfg.Config
	if len(config.Routes) == 0 {
		config = DefaultRefreshConfig()
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 3
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}

	return &RefreshJob{
		config:         config,
		logger:         cfg.Logger,
		catalogService: cfg.CatalogService,
		plannerService: cfg.PlannerService,
		metrics:        &RefreshMetrics{},
	}
}

// RefreshResult contains the result of a refresh run.
type RefreshResult struct {
	StartTime   time.Time
	EndTime     time.Time
	Duration    time.Duration
	StopCount   int
	TotalRoutes int
	Successful  int
	Failed      int
	Errors      []RefreshError
}

// RefreshError represents an error during refresh.
type RefreshError struct {
	Stage string // "catalog" or "warmup"
	Route string // warmup route name, empty for catalog errors
	Error string
}

// Run forces a catalog refresh and plans the configured warmup routes.
// A catalog failure aborts the run; warmup failures are collected per route.
func (j *RefreshJob) Run(ctx context.Context) *RefreshResult {
	startTime := time.Now()
	result := &RefreshResult{
		StartTime:   startTime,
		TotalRoutes: j.config.TotalRoutes(),
	}

	j.logger.Info().
		Int("warmup_routes", result.TotalRoutes).
		Int("concurrency", j.config.Concurrency).
		Msg("starting catalog refresh job")

	refreshCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	snap, err := j.catalogService.Refresh(refreshCtx)
	cancel()
	if err != nil {
		result.Errors = append(result.Errors, RefreshError{
			Stage: "catalog",
			Error: err.Error(),
		})
		result.Failed = result.TotalRoutes
		result.EndTime = time.Now()
		result.Duration = result.EndTime.Sub(startTime)
		j.updateMetrics(result)

		j.logger.Error().Err(err).Msg("catalog refresh failed, skipping warmup")
		return result
	}

	atomic.AddInt64(&j.metrics.CatalogRefreshes, 1)
	result.StopCount = len(snap.Stops)

	if j.config.WarmupPlans && j.plannerService != nil {
		j.runWarmup(ctx, result)
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)
	j.updateMetrics(result)

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("stops", result.StopCount).
		Int("successful", result.Successful).
		Int("failed", result.Failed).
		Msg("catalog refresh job completed")

	return result
}

type routeResult struct {
	route   WarmupRoute
	success bool
	err     *RefreshError
}

func (j *RefreshJob) runWarmup(ctx context.Context, result *RefreshResult) {
	routes := j.config.AllRoutes()

	routesChan := make(chan WarmupRoute, len(routes))
	resultsChan := make(chan routeResult, len(routes))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			j.warmupWorker(ctx, routesChan, resultsChan)
		}()
	}

	for _, route := range routes {
		routesChan <- route
	}
	close(routesChan)

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	for rr := range resultsChan {
		if rr.success {
			result.Successful++
		} else {
			result.Failed++
			if rr.err != nil {
				result.Errors = append(result.Errors, *rr.err)
			}
		}
	}
}

func (j *RefreshJob) warmupWorker(ctx context.Context, routes <-chan WarmupRoute, results chan<- routeResult) {
	for route := range routes {
		select {
		case <-ctx.Done():
			return
		default:
			results <- j.planRoute(ctx, route)
		}
	}
}

func (j *RefreshJob) planRoute(ctx context.Context, route WarmupRoute) routeResult {
	routeCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	plan, err := j.plannerService.PlanTrip(routeCtx, planner.RouteRequest{
		StartCityQuery: route.Start,
		EndCityQuery:   route.End,
		RequestedDays:  route.Days,
	})
	if err != nil {
		atomic.AddInt64(&j.metrics.WarmupFailures, 1)
		return routeResult{
			route: route,
			err: &RefreshError{
				Stage: "warmup",
				Route: route.Name,
				Error: err.Error(),
			},
		}
	}

	atomic.AddInt64(&j.metrics.WarmupPlans, 1)

	j.logger.Debug().
		Str("route", route.Name).
		Int("days", plan.TotalDays).
		Float64("miles", plan.TotalDistanceMiles).
		Msg("warmup plan completed")

	return routeResult{route: route, success: true}
}

func (j *RefreshJob) updateMetrics(result *RefreshResult) {
	j.metrics.mu.Lock()
	defer j.metrics.mu.Unlock()

	j.metrics.TotalRefreshes++
	j.metrics.SuccessfulRuns += int64(result.Successful)
	j.metrics.FailedRuns += int64(result.Failed)
	j.metrics.LastRefreshAt = result.EndTime
	j.metrics.LastRefreshDuration = result.Duration
	j.metrics.TotalDuration += result.Duration
	if result.StopCount > 0 {
		j.metrics.LastStopCount = result.StopCount
	}
}

// GetMetrics returns a copy of the current metrics.
func (j *RefreshJob) GetMetrics() RefreshMetrics {
	j.metrics.mu.RLock()
	defer j.metrics.mu.RUnlock()

	return RefreshMetrics{
		TotalRefreshes:      j.metrics.TotalRefreshes,
		SuccessfulRuns:      j.metrics.SuccessfulRuns,
		FailedRuns:          j.metrics.FailedRuns,
		CatalogRefreshes:    atomic.LoadInt64(&j.metrics.CatalogRefreshes),
		WarmupPlans:         atomic.LoadInt64(&j.metrics.WarmupPlans),
		WarmupFailures:      atomic.LoadInt64(&j.metrics.WarmupFailures),
		LastRefreshAt:       j.metrics.LastRefreshAt,
		LastRefreshDuration: j.metrics.LastRefreshDuration,
		TotalDuration:       j.metrics.TotalDuration,
		LastStopCount:       j.metrics.LastStopCount,
	}
}

// MetricsSnapshot returns a snapshot of the current metrics as a map.
func (j *RefreshJob) MetricsSnapshot() map[string]interface{} {
	m := j.GetMetrics()
	return map[string]interface{}{
		"total_refreshes":       m.TotalRefreshes,
		"successful_runs":       m.SuccessfulRuns,
		"failed_runs":           m.FailedRuns,
		"catalog_refreshes":     m.CatalogRefreshes,
		"warmup_plans":          m.WarmupPlans,
		"warmup_failures":       m.WarmupFailures,
		"last_refresh_at":       m.LastRefreshAt,
		"last_refresh_duration": m.LastRefreshDuration.String(),
		"total_duration":        m.TotalDuration.String(),
		"last_stop_count":       m.LastStopCount,
	}
}
