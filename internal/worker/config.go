// Package worker provides background job processing for the Mother Road API.
package worker

import (
	"time"
)

// WarmupRoute is a popular trip planned after each catalog refresh. Planning
// it exercises the fresh snapshot end to end and pre-warms the process before
// traffic hits it.
type WarmupRoute struct {
	// Name is the human-readable name of the route.
	Name string

	// Start and End are free-text city queries as a client would send them.
	Start string
	End   string

	// Days is the requested trip length.
	Days int

	// Priority determines warmup order (lower = higher priority).
	Priority int
}

// RefreshConfig holds configuration for the catalog refresh job.
type RefreshConfig struct {
	// Routes are the trips planned after each refresh.
	// If empty, uses DefaultWarmupRoutes.
	Routes []WarmupRoute

	// Concurrency is the number of concurrent warmup plans.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each operation.
	// Default: 30 seconds
	Timeout time.Duration

	// WarmupPlans enables planning the warmup routes after a refresh.
	// Default: true
	WarmupPlans bool
}

// DefaultRefreshConfig returns the default refresh configuration.
func DefaultRefreshConfig() RefreshConfig {
	return RefreshConfig{
		Routes:      DefaultWarmupRoutes(),
		Concurrency: 3,
		Timeout:     30 * time.Second,
		WarmupPlans: true,
	}
}

// DefaultWarmupRoutes returns the default warmup routes. These mirror the
// trips clients actually request: the full run plus the busiest partials.
func DefaultWarmupRoutes() []WarmupRoute {
	return []WarmupRoute{
		{
			Name:     "full-route",
			Start:    "Chicago, IL",
			End:      "Santa Monica, CA",
			Days:     10,
			Priority: 1,
		},
		{
			Name:     "half-route-east",
			Start:    "Chicago, IL",
			End:      "Oklahoma City, OK",
			Days:     5,
			Priority: 2,
		},
		{
			Name:     "half-route-west",
			Start:    "Amarillo, TX",
			End:      "Santa Monica, CA",
			Days:     5,
			Priority: 2,
		},
		{
			Name:     "desert-weekend",
			Start:    "Albuquerque, NM",
			End:      "Flagstaff, AZ",
			Days:     2,
			Priority: 3,
		},
	}
}

// AllRoutes returns the warmup routes in priority order.
func (c RefreshConfig) AllRoutes() []WarmupRoute {
	routes := make([]WarmupRoute, len(c.Routes))
	copy(routes, c.Routes)
	for i := 1; i < len(routes); i++ {
		for j := i; j > 0 && routes[j].Priority < routes[j-1].Priority; j-- {
			routes[j], routes[j-1] = routes[j-1], routes[j]
		}
	}
	return routes
}

// TotalRoutes returns the number of warmup routes.
func (c RefreshConfig) TotalRoutes() int {
	return len(c.Routes)
}
