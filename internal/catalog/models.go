// Package catalog provides access to the Route 66 stop catalog.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/motherroad/motherroad/internal/geo"
)

// Sentinel errors for catalog operations.
var (
	// ErrUnavailable indicates the catalog data service could not be reached
	// and no usable snapshot exists.
	ErrUnavailable = errors.New("stop catalog unavailable")
	// ErrEmptyCatalog indicates the data service returned no usable stops.
	ErrEmptyCatalog = errors.New("stop catalog is empty")
)

// Provider defines the interface for stop catalog data sources.
type Provider interface {
	// FetchAllStops retrieves the full set of stops from the data source.
	FetchAllStops(ctx context.Context) ([]Stop, error)
	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// Category classifies a stop. The upstream catalog stores free-form strings;
// unknown values are folded into CategoryOther at the boundary so downstream
// scoring stays exhaustive.
type Category string

const (
	// CategoryDestinationCity marks an official overnight city. Only these
	// may anchor a day of the itinerary.
	CategoryDestinationCity Category = "destination_city"
	// CategoryAttraction is a classic roadside attraction.
	CategoryAttraction Category = "attraction"
	// CategoryHiddenGem is a lesser-known point of interest.
	CategoryHiddenGem Category = "hidden_gem"
	// CategoryDriveIn is a drive-in theater or diner.
	CategoryDriveIn Category = "drive_in"
	// CategoryWaypoint is a generic marker on the route.
	CategoryWaypoint Category = "waypoint"
	// CategoryOther covers any category the upstream catalog adds later.
	CategoryOther Category = "other"
)

// ParseCategory maps an upstream category string to a known Category.
func ParseCategory(raw string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryDestinationCity:
		return CategoryDestinationCity
	case CategoryAttraction:
		return CategoryAttraction
	case CategoryHiddenGem:
		return CategoryHiddenGem
	case CategoryDriveIn:
		return CategoryDriveIn
	case CategoryWaypoint:
		return CategoryWaypoint
	default:
		return CategoryOther
	}
}

// Stop is a point of interest or city on the route.
type Stop struct {
	// ID is the opaque catalog identifier, stable across fetches.
	ID string

	// Name is the display name. Not unique.
	Name string

	// Category classifies the stop.
	Category Category

	// CityName and State locate the stop politically. State is a short
	// code, e.g. "IL".
	CityName string
	State    string

	// Location is the validated coordinate.
	Location geo.Point

	// Description is optional free text from the catalog.
	Description string

	// Featured is a soft editorial signal of importance.
	Featured bool

	// IsMajorStop is true only for destination cities.
	IsMajorStop bool
}

// IsDestinationCity reports whether the stop may serve as an overnight
// itinerary anchor.
func (s Stop) IsDestinationCity() bool {
	return s.Category == CategoryDestinationCity
}

// DisplayName returns the canonical "City, ST" form for destination cities,
// falling back to the raw name.
func (s Stop) DisplayName() string {
	if s.CityName != "" && s.State != "" {
		return s.CityName + ", " + s.State
	}
	return s.Name
}

// RawStop is an unvalidated record as returned by a data source.
type RawStop struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	CityName    string  `json:"cityName"`
	State       string  `json:"state"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Description string  `json:"description,omitempty"`
	Featured    bool    `json:"featured"`
	IsMajorStop bool    `json:"isMajorStop"`
}

// Validation errors for raw stop records.
var (
	ErrMissingID         = errors.New("stop record has no id")
	ErrMissingName       = errors.New("stop record has no name")
	ErrInvalidCoordinate = errors.New("stop record has invalid coordinates")
)

// Validate converts a raw record into a Stop, rejecting records that are
// unusable for planning. Records with zero or out-of-range coordinates are
// rejected here so the engine never sees them.
func (r RawStop) Validate() (Stop, error) {
	if strings.TrimSpace(r.ID) == "" {
		return Stop{}, ErrMissingID
	}
	if strings.TrimSpace(r.Name) == "" {
		return Stop{}, ErrMissingName
	}

	loc := geo.Point{Lat: r.Latitude, Lon: r.Longitude}
	if !loc.Valid() {
		return Stop{}, ErrInvalidCoordinate
	}

	category := ParseCategory(r.Category)

	return Stop{
		ID:          strings.TrimSpace(r.ID),
		Name:        strings.TrimSpace(r.Name),
		Category:    category,
		CityName:    strings.TrimSpace(r.CityName),
		State:       strings.ToUpper(strings.TrimSpace(r.State)),
		Location:    loc,
		Description: strings.TrimSpace(r.Description),
		Featured:    r.Featured,
		IsMajorStop: r.IsMajorStop && category == CategoryDestinationCity,
	}, nil
}

// Snapshot is an immutable view of the catalog taken at a point in time.
// Planning requests each hold one snapshot for their full duration; nothing
// mutates a snapshot after construction.
type Snapshot struct {
	// Stops is the full validated stop set.
	Stops []Stop

	// DestinationCities is the subset usable as overnight anchors, in
	// catalog order.
	DestinationCities []Stop

	// FetchedAt is when the snapshot was taken from the provider.
	FetchedAt time.Time

	// Provider identifies the data source.
	Provider string

	// Rejected counts records dropped by boundary validation.
	Rejected int
}

// NewSnapshot builds a snapshot from validated stops.
func NewSnapshot(stops []Stop, provider string, rejected int) *Snapshot {
	cities := make([]Stop, 0, len(stops)/4)
	for _, s := range stops {
		if s.IsDestinationCity() {
			cities = append(cities, s)
		}
	}
	return &Snapshot{
		Stops:             stops,
		DestinationCities: cities,
		FetchedAt:         time.Now(),
		Provider:          provider,
		Rejected:          rejected,
	}
}

// CountByCategory returns the number of stops per category.
func (s *Snapshot) CountByCategory() map[Category]int {
	counts := make(map[Category]int)
	for _, stop := range s.Stops {
		counts[stop.Category]++
	}
	return counts
}
