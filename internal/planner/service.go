package planner

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/motherroad/motherroad/internal/catalog"
)

// ServiceConfig holds configuration for the planner service.
type ServiceConfig struct {
	// Catalog provides stop catalog snapshots.
	Catalog *catalog.Service

	// Logger for service operations.
	Logger zerolog.Logger
}

// Service runs the planning pipeline. It is stateless between requests: each
// PlanTrip call takes one catalog snapshot and runs every stage against it.
type Service struct {
	catalog *catalog.Service
	logger  zerolog.Logger
}

// NewService creates a new planner service.
func NewService(cfg ServiceConfig) *Service {
	return &Service{
		catalog: cfg.Catalog,
		logger:  cfg.Logger,
	}
}

// PlanTrip builds a full trip plan for the request. Validation and city
// resolution errors abort with no partial plan; a thin corridor degrades the
// day count and sets LimitMessage instead of failing.
func (s *Service) PlanTrip(ctx context.Context, req RouteRequest) (*TripPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(snap.DestinationCities) == 0 {
		return nil, &Error{
			Code:    "CATALOG_UNAVAILABLE",
			Message: "catalog has no destination cities",
			Err:     ErrNoDestinationCities,
		}
	}

	start, err := ResolveCity(req.StartCityQuery, snap.DestinationCities)
	if err != nil {
		return nil, err
	}
	end, err := ResolveCity(req.EndCityQuery, snap.DestinationCities)
	if err != nil {
		return nil, err
	}
	if start.Stop.ID == end.Stop.ID {
		return nil, &Error{
			Code:    "SAME_START_AND_END",
			Message: "start and end resolve to the same city: " + start.Stop.DisplayName(),
			Err:     ErrSameStartAndEnd,
		}
	}

	corridor := FilterCorridor(start.Stop, end.Stop, snap.DestinationCities)
	selection := SelectDestinations(start.Stop, end.Stop, corridor, req.RequestedDays)
	segments := BuildItinerary(start.Stop, selection.Stops, end.Stop)

	style := req.TripStyle
	if style == "" {
		style = StyleClassic
	}
	for i := range segments {
		segments[i].RecommendedStops = RecommendStops(segments[i], snap.Stops, req.MaxStopsPerDay, style)
	}

	plan := &TripPlan{
		ID:                    uuid.NewString(),
		Segments:              segments,
		TotalDays:             len(segments),
		ActualDays:            selection.ActualDays,
		OriginalRequestedDays: req.RequestedDays,
		LimitMessage:          selection.LimitMessage,
		Style:                 style,
	}
	for _, seg := range segments {
		plan.TotalDistanceMiles += seg.DistanceMiles
		plan.TotalDriveTimeHours += seg.DriveTimeHours
	}

	s.logger.Info().
		Str("plan_id", plan.ID).
		Str("start", start.Stop.DisplayName()).
		Str("end", end.Stop.DisplayName()).
		Int("requested_days", req.RequestedDays).
		Int("actual_days", plan.ActualDays).
		Float64("total_miles", plan.TotalDistanceMiles).
		Bool("degraded", plan.LimitMessage != "").
		Msg("trip plan built")

	return plan, nil
}

// AnalyzeCompletion grades a finished plan against the originally requested
// day count.
func (s *Service) AnalyzeCompletion(plan *TripPlan, originalRequestedDays int) CompletionAnalysis {
	return AnalyzeCompletion(plan, originalRequestedDays)
}

// DestinationCities returns the destination cities of the current snapshot,
// for autocomplete listings.
func (s *Service) DestinationCities(ctx context.Context) ([]catalog.Stop, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.DestinationCities, nil
}
