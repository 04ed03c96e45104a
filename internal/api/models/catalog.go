package models

import "github.com/motherroad/motherroad/internal/catalog"

// CityResponse is a destination city as rendered in the cities listing.
type CityResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	State       string `json:"state"`
	Location    Point  `json:"location"`
}

// CitiesResponse is the body of GET /v1/catalog/cities.
type CitiesResponse struct {
	Cities []CityResponse `json:"cities"`
}

// NewCitiesResponse converts the snapshot's destination cities.
func NewCitiesResponse(cities []catalog.Stop) *CitiesResponse {
	out := make([]CityResponse, 0, len(cities))
	for _, c := range cities {
		out = append(out, CityResponse{
			ID:          c.ID,
			Name:        c.CityName,
			DisplayName: c.DisplayName(),
			State:       c.State,
			Location:    Point{Lat: c.Location.Lat, Lon: c.Location.Lon},
		})
	}
	return &CitiesResponse{Cities: out}
}

// CatalogStatsResponse is the body of GET /v1/catalog/stats.
type CatalogStatsResponse struct {
	Provider          string         `json:"provider"`
	HasSnapshot       bool           `json:"hasSnapshot"`
	Fresh             bool           `json:"fresh"`
	StopCount         int            `json:"stopCount"`
	DestinationCities int            `json:"destinationCities"`
	ByCategory        map[string]int `json:"byCategory,omitempty"`
	FetchedAt         *Timestamp     `json:"fetchedAt,omitempty"`
}

// NewCatalogStatsResponse converts catalog service stats.
func NewCatalogStatsResponse(stats catalog.Stats) *CatalogStatsResponse {
	resp := &CatalogStatsResponse{
		Provider:          stats.Provider,
		HasSnapshot:       stats.HasSnapshot,
		Fresh:             stats.Fresh,
		StopCount:         stats.StopCount,
		DestinationCities: stats.DestinationCities,
	}
	if len(stats.ByCategory) > 0 {
		resp.ByCategory = make(map[string]int, len(stats.ByCategory))
		for cat, n := range stats.ByCategory {
			resp.ByCategory[string(cat)] = n
		}
	}
	if !stats.FetchedAt.IsZero() {
		ts := Timestamp(stats.FetchedAt)
		resp.FetchedAt = &ts
	}
	return resp
}
