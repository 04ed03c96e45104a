package models

import (
	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/geo"
	"github.com/motherroad/motherroad/internal/planner"
	"github.com/motherroad/motherroad/pkg/polyline"
)

// PlanTripRequest is the body of POST /v1/trips:plan.
type PlanTripRequest struct {
	// Start and End are free-text city queries, e.g. "Chicago" or "St. Louis, MO".
	Start string `json:"start"`
	End   string `json:"end"`

	// Days is the requested number of travel days.
	Days int `json:"days"`

	// TripStyle is optional: classic (default), family, adventure or leisure.
	TripStyle string `json:"tripStyle,omitempty"`

	// MaxStopsPerDay caps recommendations per segment (default 3).
	MaxStopsPerDay int `json:"maxStopsPerDay,omitempty"`
}

// Validate checks required fields and bounds.
func (r *PlanTripRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Start == "" {
		errors = append(errors, FieldError{
			Field:   "start",
			Message: "start city is required",
			Code:    "REQUIRED",
		})
	}
	if r.End == "" {
		errors = append(errors, FieldError{
			Field:   "end",
			Message: "end city is required",
			Code:    "REQUIRED",
		})
	}
	if r.Days < 1 || r.Days > planner.MaxRequestedDays {
		errors = append(errors, FieldError{
			Field:   "days",
			Message: "days must be between 1 and 14",
			Code:    "OUT_OF_RANGE",
		})
	}
	if r.MaxStopsPerDay < 0 {
		errors = append(errors, FieldError{
			Field:   "maxStopsPerDay",
			Message: "maxStopsPerDay must not be negative",
			Code:    "OUT_OF_RANGE",
		})
	}

	return errors
}

// ToRouteRequest converts the API request into a planner request.
func (r *PlanTripRequest) ToRouteRequest() planner.RouteRequest {
	return planner.RouteRequest{
		StartCityQuery: r.Start,
		EndCityQuery:   r.End,
		RequestedDays:  r.Days,
		TripStyle:      planner.ParseTripStyle(r.TripStyle),
		MaxStopsPerDay: r.MaxStopsPerDay,
	}
}

// StopResponse is a stop as rendered in plan responses.
type StopResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	CityName    string `json:"cityName,omitempty"`
	State       string `json:"state,omitempty"`
	Location    Point  `json:"location"`
	Description string `json:"description,omitempty"`
	Featured    bool   `json:"featured,omitempty"`
}

// SegmentResponse is one day of the itinerary.
type SegmentResponse struct {
	DayNumber        int            `json:"dayNumber"`
	StartCity        StopResponse   `json:"startCity"`
	EndCity          StopResponse   `json:"endCity"`
	DistanceMiles    float64        `json:"distanceMiles"`
	DriveTimeHours   float64        `json:"driveTimeHours"`
	RecommendedStops []StopResponse `json:"recommendedStops"`

	// Path is the day's leg (start, stops, end) as an encoded polyline,
	// ready for map rendering on the client.
	Path string `json:"path,omitempty"`
}

// CompletionAnalysisResponse is the quality report attached to a plan.
type CompletionAnalysisResponse struct {
	IsCompleted        bool    `json:"isCompleted"`
	OptimizedDays      int     `json:"optimizedDays"`
	DriveTimeBalance   string  `json:"driveTimeBalance"`
	RouteEfficiency    string  `json:"routeEfficiency"`
	AttractionCoverage string  `json:"attractionCoverage"`
	OverallScore       float64 `json:"overallScore"`
}

// TripPlanResponse is the body returned by POST /v1/trips:plan.
type TripPlanResponse struct {
	PlanID              string                      `json:"planId"`
	Segments            []SegmentResponse           `json:"segments"`
	TotalDistanceMiles  float64                     `json:"totalDistanceMiles"`
	TotalDriveTimeHours float64                     `json:"totalDriveTimeHours"`
	TotalDays           int                         `json:"totalDays"`
	ActualDays          int                         `json:"actualDays"`
	RequestedDays       int                         `json:"requestedDays"`
	LimitMessage        string                      `json:"limitMessage,omitempty"`
	TripStyle           string                      `json:"tripStyle"`
	Completion          *CompletionAnalysisResponse `json:"completion,omitempty"`
}

// AnalyzeTripRequest is the body of POST /v1/trips:analyze.
type AnalyzeTripRequest struct {
	Plan          *TripPlanResponse `json:"plan"`
	RequestedDays int               `json:"requestedDays"`
}

// Validate checks required fields and bounds.
func (r *AnalyzeTripRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Plan == nil {
		errors = append(errors, FieldError{
			Field:   "plan",
			Message: "plan is required",
			Code:    "REQUIRED",
		})
	} else if len(r.Plan.Segments) == 0 {
		errors = append(errors, FieldError{
			Field:   "plan.segments",
			Message: "plan has no segments",
			Code:    "REQUIRED",
		})
	}
	if r.RequestedDays < 1 {
		errors = append(errors, FieldError{
			Field:   "requestedDays",
			Message: "requestedDays must be at least 1",
			Code:    "OUT_OF_RANGE",
		})
	}

	return errors
}

// NewStopResponse converts a catalog stop.
func NewStopResponse(s catalog.Stop) StopResponse {
	return StopResponse{
		ID:          s.ID,
		Name:        s.Name,
		Category:    string(s.Category),
		CityName:    s.CityName,
		State:       s.State,
		Location:    Point{Lat: s.Location.Lat, Lon: s.Location.Lon},
		Description: s.Description,
		Featured:    s.Featured,
	}
}

// NewTripPlanResponse converts a plan and its analysis into the API shape.
func NewTripPlanResponse(plan *planner.TripPlan, analysis planner.CompletionAnalysis) *TripPlanResponse {
	segments := make([]SegmentResponse, 0, len(plan.Segments))
	for _, seg := range plan.Segments {
		stops := make([]StopResponse, 0, len(seg.RecommendedStops))
		for _, s := range seg.RecommendedStops {
			stops = append(stops, NewStopResponse(s))
		}
		segments = append(segments, SegmentResponse{
			DayNumber:        seg.DayNumber,
			StartCity:        NewStopResponse(seg.StartCity),
			EndCity:          NewStopResponse(seg.EndCity),
			DistanceMiles:    seg.DistanceMiles,
			DriveTimeHours:   seg.DriveTimeHours,
			RecommendedStops: stops,
			Path:             segmentPath(seg),
		})
	}

	return &TripPlanResponse{
		PlanID:              plan.ID,
		Segments:            segments,
		TotalDistanceMiles:  plan.TotalDistanceMiles,
		TotalDriveTimeHours: plan.TotalDriveTimeHours,
		TotalDays:           plan.TotalDays,
		ActualDays:          plan.ActualDays,
		RequestedDays:       plan.OriginalRequestedDays,
		LimitMessage:        plan.LimitMessage,
		TripStyle:           string(plan.Style),
		Completion:          NewCompletionAnalysisResponse(analysis),
	}
}

// segmentPath encodes the day's coordinates in travel order. Recommended
// stops sit between the endpoint cities, so the drawn line passes through
// them.
func segmentPath(seg planner.DailySegment) string {
	coords := make([]polyline.Coordinate, 0, len(seg.RecommendedStops)+2)
	coords = append(coords, polyline.Coordinate{Lat: seg.StartCity.Location.Lat, Lon: seg.StartCity.Location.Lon})
	for _, s := range seg.RecommendedStops {
		coords = append(coords, polyline.Coordinate{Lat: s.Location.Lat, Lon: s.Location.Lon})
	}
	coords = append(coords, polyline.Coordinate{Lat: seg.EndCity.Location.Lat, Lon: seg.EndCity.Location.Lon})
	return polyline.Encode(coords)
}

// NewCompletionAnalysisResponse converts a planner analysis.
func NewCompletionAnalysisResponse(a planner.CompletionAnalysis) *CompletionAnalysisResponse {
	return &CompletionAnalysisResponse{
		IsCompleted:        a.IsCompleted,
		OptimizedDays:      a.OptimizedDays,
		DriveTimeBalance:   string(a.DriveTimeBalance),
		RouteEfficiency:    string(a.RouteEfficiency),
		AttractionCoverage: string(a.AttractionCoverage),
		OverallScore:       a.OverallScore,
	}
}

// toStop converts a response stop back to the catalog form.
func (s StopResponse) toStop() catalog.Stop {
	return catalog.Stop{
		ID:          s.ID,
		Name:        s.Name,
		Category:    catalog.ParseCategory(s.Category),
		CityName:    s.CityName,
		State:       s.State,
		Location:    geo.Point{Lat: s.Location.Lat, Lon: s.Location.Lon},
		Description: s.Description,
		Featured:    s.Featured,
	}
}

// ToTripPlan rebuilds a planner plan from a previously returned response so
// it can be re-analyzed.
func (r *TripPlanResponse) ToTripPlan() *planner.TripPlan {
	segments := make([]planner.DailySegment, 0, len(r.Segments))
	for _, seg := range r.Segments {
		stops := make([]catalog.Stop, 0, len(seg.RecommendedStops))
		for _, s := range seg.RecommendedStops {
			stops = append(stops, s.toStop())
		}
		segments = append(segments, planner.DailySegment{
			DayNumber:        seg.DayNumber,
			StartCity:        seg.StartCity.toStop(),
			EndCity:          seg.EndCity.toStop(),
			DistanceMiles:    seg.DistanceMiles,
			DriveTimeHours:   seg.DriveTimeHours,
			RecommendedStops: stops,
		})
	}

	return &planner.TripPlan{
		ID:                    r.PlanID,
		Segments:              segments,
		TotalDistanceMiles:    r.TotalDistanceMiles,
		TotalDriveTimeHours:   r.TotalDriveTimeHours,
		TotalDays:             r.TotalDays,
		ActualDays:            r.ActualDays,
		OriginalRequestedDays: r.RequestedDays,
		LimitMessage:          r.LimitMessage,
		Style:                 planner.ParseTripStyle(r.TripStyle),
	}
}
