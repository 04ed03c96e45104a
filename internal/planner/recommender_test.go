package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motherroad/motherroad/internal/catalog"
)

const longDescription = "A beloved roadside institution serving travelers since the heyday " +
	"of the route, with original neon signage and a small museum in the back room."

// tulsaSegment builds a one-day segment ending in Tulsa.
func tulsaSegment() DailySegment {
	cities := routeCities()
	start := findCity(cities, "city-okc")
	end := findCity(cities, "city-tulsa")
	return BuildItinerary(start, nil, end)[0]
}

func TestRecommendStopsNeverReturnsDestinationCities(t *testing.T) {
	seg := tulsaSegment()
	stops := append(routeCities(),
		poi("poi-1", "Blue Whale of Catoosa", catalog.CategoryAttraction, "Tulsa", "OK", 36.2381, -95.7411),
		poi("poi-2", "Cyrus Avery Plaza", catalog.CategoryWaypoint, "Tulsa", "OK", 36.1447, -96.0117),
	)

	got := RecommendStops(seg, stops, 3, StyleClassic)

	require.NotEmpty(t, got)
	for _, s := range got {
		assert.False(t, s.IsDestinationCity(), "recommended destination city %s", s.ID)
	}
}

func TestRecommendStopsCategoryOrdering(t *testing.T) {
	seg := tulsaSegment()
	stops := []catalog.Stop{
		poi("poi-way", "Route Marker 12", catalog.CategoryWaypoint, "Tulsa", "OK", 36.15, -95.99),
		poi("poi-attr", "Blue Whale of Catoosa", catalog.CategoryAttraction, "Tulsa", "OK", 36.2381, -95.7411),
		poi("poi-gem", "Cave House", catalog.CategoryHiddenGem, "Tulsa", "OK", 36.1588, -96.0105),
	}

	got := RecommendStops(seg, stops, 3, StyleClassic)

	require.Len(t, got, 3)
	assert.Equal(t, "poi-attr", got[0].ID)
	assert.Equal(t, "poi-gem", got[1].ID)
	assert.Equal(t, "poi-way", got[2].ID)
}

func TestRecommendStopsDiversityCap(t *testing.T) {
	seg := tulsaSegment()
	stops := []catalog.Stop{
		poi("attr-1", "Blue Whale of Catoosa", catalog.CategoryAttraction, "Tulsa", "OK", 36.2381, -95.7411),
		poi("attr-2", "Golden Driller", catalog.CategoryAttraction, "Tulsa", "OK", 36.1313, -95.9370),
		poi("attr-3", "Philbrook Museum", catalog.CategoryAttraction, "Tulsa", "OK", 36.1123, -95.9694),
		poi("gem-1", "Cave House", catalog.CategoryHiddenGem, "Tulsa", "OK", 36.1588, -96.0105),
	}

	got := RecommendStops(seg, stops, 3, StyleClassic)

	require.Len(t, got, 3)
	attractions := 0
	for _, s := range got {
		if s.Category == catalog.CategoryAttraction {
			attractions++
		}
	}
	assert.Equal(t, 2, attractions, "at most two of one category when maxStops is 3")
	assert.Equal(t, "gem-1", got[2].ID)
}

func TestRecommendStopsGeographicRelevance(t *testing.T) {
	seg := tulsaSegment()
	stops := []catalog.Stop{
		// City match on the day's endpoint.
		poi("in-city", "Golden Driller", catalog.CategoryAttraction, "Tulsa", "OK", 36.1313, -95.9370),
		// State-level match only.
		poi("in-state", "Round Barn", catalog.CategoryAttraction, "Arcadia", "OK", 35.6606, -97.3261),
		// Different state, no city relation.
		poi("far-away", "Cadillac Ranch", catalog.CategoryAttraction, "Amarillo", "TX", 35.1872, -101.9870),
	}

	got := RecommendStops(seg, stops, 3, StyleClassic)

	require.Len(t, got, 2)
	assert.Equal(t, "in-city", got[0].ID, "exact city match ranks above state match")
	assert.Equal(t, "in-state", got[1].ID)
}

func TestRecommendStopsPlaceholderPenalty(t *testing.T) {
	seg := tulsaSegment()
	stops := []catalog.Stop{
		poi("placeholder", "Tulsa Points of Interest", catalog.CategoryAttraction, "Tulsa", "OK", 36.15, -95.99),
		poi("real", "Golden Driller", catalog.CategoryDriveIn, "Tulsa", "OK", 36.1313, -95.9370),
	}

	got := RecommendStops(seg, stops, 1, StyleClassic)

	require.Len(t, got, 1)
	assert.Equal(t, "real", got[0].ID)
}

func TestRecommendStopsFeaturedAndDescriptionBonuses(t *testing.T) {
	seg := tulsaSegment()
	plain := poi("plain", "Cave House", catalog.CategoryHiddenGem, "Tulsa", "OK", 36.1588, -96.0105)
	rich := poi("rich", "Blue Dome", catalog.CategoryHiddenGem, "Tulsa", "OK", 36.1556, -95.9875)
	rich.Featured = true
	rich.Description = longDescription

	got := RecommendStops(seg, []catalog.Stop{plain, rich}, 1, StyleClassic)

	require.Len(t, got, 1)
	assert.Equal(t, "rich", got[0].ID)
}

func TestRecommendStopsStyleShiftsWeights(t *testing.T) {
	seg := tulsaSegment()
	stops := []catalog.Stop{
		poi("attr", "Golden Driller", catalog.CategoryAttraction, "Tulsa", "OK", 36.1313, -95.9370),
		poi("gem", "Cave House", catalog.CategoryHiddenGem, "Tulsa", "OK", 36.1588, -96.0105),
	}

	classic := RecommendStops(seg, stops, 1, StyleClassic)
	require.Len(t, classic, 1)
	assert.Equal(t, "attr", classic[0].ID)

	// Adventure boosts hidden gems past attractions.
	adventure := RecommendStops(seg, stops, 1, StyleAdventure)
	require.Len(t, adventure, 1)
	assert.Equal(t, "gem", adventure[0].ID)
}

func TestRecommendStopsEmptyResultIsValid(t *testing.T) {
	seg := tulsaSegment()
	stops := []catalog.Stop{
		poi("far", "Cadillac Ranch", catalog.CategoryAttraction, "Amarillo", "TX", 35.1872, -101.9870),
	}

	got := RecommendStops(seg, stops, 3, StyleClassic)
	assert.Empty(t, got)
}
