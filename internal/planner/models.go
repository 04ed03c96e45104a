// Package planner implements the Route 66 trip itinerary planning engine.
//
// Planning is a pure pipeline over an immutable catalog snapshot: city
// resolution, corridor filtering, destination selection, itinerary building,
// stop recommendation and completion analysis. Nothing in this package
// mutates shared state; concurrent planning requests are safe as long as each
// holds its own snapshot.
package planner

import (
	"errors"
	"strings"

	"github.com/motherroad/motherroad/internal/catalog"
)

// Sentinel errors for planning operations.
var (
	// ErrCityNotFound indicates a start or end query matched no destination city.
	ErrCityNotFound = errors.New("city not found")
	// ErrSameStartAndEnd indicates start and end resolved to the same city.
	ErrSameStartAndEnd = errors.New("start and end are the same city")
	// ErrInvalidDayCount indicates the requested day count is out of bounds.
	ErrInvalidDayCount = errors.New("invalid day count")
	// ErrNoDestinationCities indicates the snapshot has no destination cities.
	ErrNoDestinationCities = errors.New("catalog has no destination cities")
)

// MaxRequestedDays caps trip length. Route 66 is a two-week drive at its most
// leisurely; anything beyond that is a data-entry mistake.
const MaxRequestedDays = 14

// Error carries structured detail about a planning failure.
type Error struct {
	Code        string   // machine-readable code, e.g. "CITY_NOT_FOUND"
	Message     string   // human-readable explanation
	Suggestions []string // nearby city names, set for city-not-found errors
	Err         error    // underlying sentinel error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// TripStyle shifts recommendation weighting. It never changes which cities
// are visited or how days are split.
type TripStyle string

const (
	// StyleClassic is the default balanced weighting.
	StyleClassic TripStyle = "classic"
	// StyleFamily boosts attractions and drive-ins.
	StyleFamily TripStyle = "family"
	// StyleAdventure boosts hidden gems.
	StyleAdventure TripStyle = "adventure"
	// StyleLeisure boosts featured, well-documented stops.
	StyleLeisure TripStyle = "leisure"
)

// ParseTripStyle maps a request string to a TripStyle, defaulting to classic.
func ParseTripStyle(raw string) TripStyle {
	switch TripStyle(strings.ToLower(strings.TrimSpace(raw))) {
	case StyleFamily:
		return StyleFamily
	case StyleAdventure:
		return StyleAdventure
	case StyleLeisure:
		return StyleLeisure
	default:
		return StyleClassic
	}
}

// RouteRequest is the immutable input to a planning run.
type RouteRequest struct {
	// StartCityQuery and EndCityQuery are free-text city queries,
	// e.g. "Chicago" or "St. Louis, MO".
	StartCityQuery string
	EndCityQuery   string

	// RequestedDays is the desired number of travel days (1..MaxRequestedDays).
	RequestedDays int

	// TripStyle affects recommendation weighting only.
	TripStyle TripStyle

	// MaxStopsPerDay caps recommendations per segment (default 3).
	MaxStopsPerDay int
}

// Validate checks request bounds that must fail fast, before any catalog work.
func (r RouteRequest) Validate() error {
	if r.RequestedDays < 1 || r.RequestedDays > MaxRequestedDays {
		return &Error{
			Code:    "INVALID_DAY_COUNT",
			Message: "requested days must be between 1 and 14",
			Err:     ErrInvalidDayCount,
		}
	}
	if strings.TrimSpace(r.StartCityQuery) == "" || strings.TrimSpace(r.EndCityQuery) == "" {
		return &Error{
			Code:    "CITY_NOT_FOUND",
			Message: "start and end cities are required",
			Err:     ErrCityNotFound,
		}
	}
	return nil
}

// DailySegment is one day of the itinerary.
type DailySegment struct {
	// DayNumber is 1-based.
	DayNumber int

	// StartCity and EndCity anchor the day. EndCity is the overnight stop.
	StartCity catalog.Stop
	EndCity   catalog.Stop

	// DistanceMiles is the great-circle distance of the day's leg.
	DistanceMiles float64

	// DriveTimeHours is the estimated drive time for the leg.
	DriveTimeHours float64

	// RecommendedStops are points of interest near the day's endpoint.
	// Never contains destination cities. May be empty.
	RecommendedStops []catalog.Stop
}

// TripPlan is the output aggregate of a planning run.
type TripPlan struct {
	// ID is assigned per run for logging and client correlation. Plans are
	// never persisted; a new run produces a new id.
	ID string

	// Segments are the daily legs in travel order.
	Segments []DailySegment

	// TotalDistanceMiles is the sum of segment distances.
	TotalDistanceMiles float64

	// TotalDriveTimeHours is the sum of segment drive times.
	TotalDriveTimeHours float64

	// TotalDays equals len(Segments).
	TotalDays int

	// ActualDays may be lower than OriginalRequestedDays when the corridor
	// could not support the request.
	ActualDays            int
	OriginalRequestedDays int

	// LimitMessage explains a day-count reduction. Empty when the request
	// was honored in full.
	LimitMessage string

	// Style is the trip style the plan was built with.
	Style TripStyle
}

// StopIDs returns the ordered ids of the overnight anchors, start first.
func (p *TripPlan) StopIDs() []string {
	if len(p.Segments) == 0 {
		return nil
	}
	ids := make([]string, 0, len(p.Segments)+1)
	ids = append(ids, p.Segments[0].StartCity.ID)
	for _, seg := range p.Segments {
		ids = append(ids, seg.EndCity.ID)
	}
	return ids
}

// QualityBucket grades one aspect of a finished plan.
type QualityBucket string

const (
	QualityExcellent QualityBucket = "excellent"
	QualityGood      QualityBucket = "good"
	QualityFair      QualityBucket = "fair"
	QualityPoor      QualityBucket = "poor"
)

// score maps a bucket to its contribution to the overall score.
func (q QualityBucket) score() float64 {
	switch q {
	case QualityExcellent:
		return 1.0
	case QualityGood:
		return 0.75
	case QualityFair:
		return 0.5
	default:
		return 0.25
	}
}

// CompletionAnalysis is the descriptive quality report for a plan. It never
// alters the plan.
type CompletionAnalysis struct {
	// IsCompleted is true when the day count was reduced from the request.
	IsCompleted bool

	// OptimizedDays is the day count the plan actually uses.
	OptimizedDays int

	// DriveTimeBalance grades how evenly drive time spreads across days.
	DriveTimeBalance QualityBucket

	// RouteEfficiency grades total distance against the direct distance.
	RouteEfficiency QualityBucket

	// AttractionCoverage grades the fraction of days with recommendations.
	AttractionCoverage QualityBucket

	// OverallScore is in [0, 1], derived from the three buckets.
	OverallScore float64
}
