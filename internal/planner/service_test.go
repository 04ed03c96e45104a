package planner

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motherroad/motherroad/internal/catalog"
)

// staticProvider serves a fixed stop set, or a fixed error.
type staticProvider struct {
	stops []catalog.Stop
	err   error
}

func (p *staticProvider) FetchAllStops(_ context.Context) ([]catalog.Stop, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.stops, nil
}

func (p *staticProvider) Name() string { return "static" }

func newTestService(t *testing.T, stops []catalog.Stop) *Service {
	t.Helper()
	cat := catalog.NewService(catalog.ServiceConfig{
		Provider: &staticProvider{stops: stops},
		Logger:   zerolog.Nop(),
	})
	return NewService(ServiceConfig{Catalog: cat, Logger: zerolog.Nop()})
}

// fullCatalog is the destination-city chain plus a few points of interest.
func fullCatalog() []catalog.Stop {
	return append(routeCities(),
		poi("poi-gemini", "Gemini Giant", catalog.CategoryAttraction, "Wilmington", "IL", 41.3059, -88.1487),
		poi("poi-whale", "Blue Whale of Catoosa", catalog.CategoryAttraction, "Catoosa", "OK", 36.2381, -95.7411),
		poi("poi-cadillac", "Cadillac Ranch", catalog.CategoryAttraction, "Amarillo", "TX", 35.1872, -101.9870),
		poi("poi-wigwam", "Wigwam Motel", catalog.CategoryHiddenGem, "Holbrook", "AZ", 34.9022, -110.1665),
		poi("poi-66drivein", "66 Drive-In", catalog.CategoryDriveIn, "Carthage", "MO", 37.1628, -94.3366),
	)
}

func TestPlanTripSingleDay(t *testing.T) {
	svc := newTestService(t, fullCatalog())

	plan, err := svc.PlanTrip(context.Background(), RouteRequest{
		StartCityQuery: "Chicago",
		EndCityQuery:   "St. Louis, MO",
		RequestedDays:  1,
	})
	require.NoError(t, err)

	require.Len(t, plan.Segments, 1)
	assert.Equal(t, 1, plan.ActualDays)
	assert.Empty(t, plan.LimitMessage)
	assert.Equal(t, "Chicago", plan.Segments[0].StartCity.CityName)
	assert.Equal(t, "St. Louis", plan.Segments[0].EndCity.CityName)
	assert.InDelta(t, 262, plan.Segments[0].DistanceMiles, 10)
	assert.NotEmpty(t, plan.ID)
}

func TestPlanTripFullRoute(t *testing.T) {
	svc := newTestService(t, fullCatalog())

	plan, err := svc.PlanTrip(context.Background(), RouteRequest{
		StartCityQuery: "Chicago, IL",
		EndCityQuery:   "Santa Monica, CA",
		RequestedDays:  10,
	})
	require.NoError(t, err)

	require.Len(t, plan.Segments, 10)
	assert.Equal(t, 10, plan.ActualDays)
	assert.Equal(t, 10, plan.TotalDays)
	assert.Empty(t, plan.LimitMessage)
	assert.Equal(t, "Chicago", plan.Segments[0].StartCity.CityName)
	assert.Equal(t, "Santa Monica", plan.Segments[9].EndCity.CityName)

	// Great-circle legs undershoot real highway mileage; the total must sit
	// between the direct distance (~1745 mi) and a loose upper bound.
	assert.Greater(t, plan.TotalDistanceMiles, 1745.0)
	assert.Less(t, plan.TotalDistanceMiles, 2448.0)

	// Consecutive segments chain.
	for i := 0; i < len(plan.Segments)-1; i++ {
		assert.Equal(t, plan.Segments[i].EndCity.ID, plan.Segments[i+1].StartCity.ID)
	}

	// No city anchors two different nights.
	seen := make(map[string]bool)
	for _, id := range plan.StopIDs() {
		assert.False(t, seen[id], "duplicate anchor %s", id)
		seen[id] = true
	}
}

func TestPlanTripRecommendationsExcludeDestinationCities(t *testing.T) {
	svc := newTestService(t, fullCatalog())

	plan, err := svc.PlanTrip(context.Background(), RouteRequest{
		StartCityQuery: "Chicago",
		EndCityQuery:   "Santa Monica",
		RequestedDays:  10,
	})
	require.NoError(t, err)

	for _, seg := range plan.Segments {
		for _, s := range seg.RecommendedStops {
			assert.False(t, s.IsDestinationCity(),
				"day %d recommends destination city %s", seg.DayNumber, s.ID)
		}
	}
}

func TestPlanTripDegradesOnThinCorridor(t *testing.T) {
	cities := routeCities()
	thin := []catalog.Stop{
		findCity(cities, "city-chicago"),
		findCity(cities, "city-tulsa"),
		findCity(cities, "city-albuquerque"),
		findCity(cities, "city-santa-monica"),
	}
	svc := newTestService(t, thin)

	plan, err := svc.PlanTrip(context.Background(), RouteRequest{
		StartCityQuery: "Chicago",
		EndCityQuery:   "Santa Monica",
		RequestedDays:  8,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, plan.ActualDays)
	require.Len(t, plan.Segments, 3)
	assert.NotEmpty(t, plan.LimitMessage)
	assert.Equal(t, 8, plan.OriginalRequestedDays)
}

func TestPlanTripSameStartAndEnd(t *testing.T) {
	svc := newTestService(t, fullCatalog())

	_, err := svc.PlanTrip(context.Background(), RouteRequest{
		StartCityQuery: "Tulsa, OK",
		EndCityQuery:   "tulsa",
		RequestedDays:  3,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSameStartAndEnd))

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "SAME_START_AND_END", perr.Code)
}

func TestPlanTripInvalidDayCount(t *testing.T) {
	svc := newTestService(t, fullCatalog())

	for _, days := range []int{0, -1, MaxRequestedDays + 1} {
		_, err := svc.PlanTrip(context.Background(), RouteRequest{
			StartCityQuery: "Chicago",
			EndCityQuery:   "Santa Monica",
			RequestedDays:  days,
		})
		assert.True(t, errors.Is(err, ErrInvalidDayCount), "days=%d", days)
	}
}

func TestPlanTripUnknownCity(t *testing.T) {
	svc := newTestService(t, fullCatalog())

	_, err := svc.PlanTrip(context.Background(), RouteRequest{
		StartCityQuery: "Narnia",
		EndCityQuery:   "Santa Monica",
		RequestedDays:  3,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCityNotFound))

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.NotEmpty(t, perr.Suggestions)
}

func TestPlanTripCatalogUnavailable(t *testing.T) {
	cat := catalog.NewService(catalog.ServiceConfig{
		Provider: &staticProvider{err: errors.New("connection refused")},
		Logger:   zerolog.Nop(),
	})
	svc := NewService(ServiceConfig{Catalog: cat, Logger: zerolog.Nop()})

	_, err := svc.PlanTrip(context.Background(), RouteRequest{
		StartCityQuery: "Chicago",
		EndCityQuery:   "Santa Monica",
		RequestedDays:  3,
	})
	assert.True(t, errors.Is(err, catalog.ErrUnavailable))
}

func TestPlanTripEachRunGetsFreshID(t *testing.T) {
	svc := newTestService(t, fullCatalog())
	req := RouteRequest{
		StartCityQuery: "Chicago",
		EndCityQuery:   "Santa Monica",
		RequestedDays:  5,
	}

	first, err := svc.PlanTrip(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.PlanTrip(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestAnalyzeCompletionViaService(t *testing.T) {
	svc := newTestService(t, fullCatalog())

	plan, err := svc.PlanTrip(context.Background(), RouteRequest{
		StartCityQuery: "Chicago",
		EndCityQuery:   "Santa Monica",
		RequestedDays:  10,
	})
	require.NoError(t, err)

	analysis := svc.AnalyzeCompletion(plan, 10)
	assert.False(t, analysis.IsCompleted)
	assert.Equal(t, 10, analysis.OptimizedDays)
	assert.GreaterOrEqual(t, analysis.OverallScore, 0.0)
	assert.LessOrEqual(t, analysis.OverallScore, 1.0)
}

func TestDestinationCities(t *testing.T) {
	svc := newTestService(t, fullCatalog())

	cities, err := svc.DestinationCities(context.Background())
	require.NoError(t, err)
	assert.Len(t, cities, len(routeCities()))
	for _, c := range cities {
		assert.True(t, c.IsDestinationCity())
	}
}
