package planner

import (
	"strings"
	"testing"

	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/geo"
)

func TestSelectDestinationsSingleDay(t *testing.T) {
	cities := routeCities()
	start := findCity(cities, "city-chicago")
	end := findCity(cities, "city-santa-monica")

	sel := SelectDestinations(start, end, cities[1:len(cities)-1], 1)

	if len(sel.Stops) != 0 {
		t.Fatalf("expected no intermediate stops, got %d", len(sel.Stops))
	}
	if sel.ActualDays != 1 {
		t.Fatalf("ActualDays = %d, want 1", sel.ActualDays)
	}
	if sel.LimitMessage != "" {
		t.Fatalf("unexpected limit message %q", sel.LimitMessage)
	}
}

func TestSelectDestinationsOrderedByProgress(t *testing.T) {
	cities := routeCities()
	start := findCity(cities, "city-chicago")
	end := findCity(cities, "city-santa-monica")
	corridor := cities[1 : len(cities)-1]

	sel := SelectDestinations(start, end, corridor, 10)

	if sel.ActualDays != 10 {
		t.Fatalf("ActualDays = %d, want 10", sel.ActualDays)
	}
	if len(sel.Stops) != 9 {
		t.Fatalf("got %d intermediate stops, want 9", len(sel.Stops))
	}
	prev := -1.0
	for _, s := range sel.Stops {
		p := geo.ProjectAlong(start.Location, end.Location, s.Location)
		if p <= prev {
			t.Fatalf("stop %s out of order: projection %f after %f", s.ID, p, prev)
		}
		prev = p
	}
}

func TestSelectDestinationsNoDuplicates(t *testing.T) {
	cities := routeCities()
	start := findCity(cities, "city-chicago")
	end := findCity(cities, "city-santa-monica")

	for days := 2; days <= MaxRequestedDays; days++ {
		sel := SelectDestinations(start, end, cities[1:len(cities)-1], days)
		seen := make(map[string]bool)
		for _, s := range sel.Stops {
			if seen[s.ID] {
				t.Fatalf("days=%d: duplicate stop %s", days, s.ID)
			}
			seen[s.ID] = true
		}
	}
}

func TestSelectDestinationsDegradesOnThinCorridor(t *testing.T) {
	cities := routeCities()
	start := findCity(cities, "city-chicago")
	end := findCity(cities, "city-santa-monica")
	thin := []catalog.Stop{
		findCity(cities, "city-tulsa"),
		findCity(cities, "city-albuquerque"),
	}

	sel := SelectDestinations(start, end, thin, 8)

	if sel.ActualDays != 3 {
		t.Fatalf("ActualDays = %d, want 3", sel.ActualDays)
	}
	if len(sel.Stops) != 2 {
		t.Fatalf("got %d stops, want 2", len(sel.Stops))
	}
	if sel.LimitMessage == "" {
		t.Fatal("expected a limit message")
	}
	if !strings.Contains(sel.LimitMessage, "shortened from 8 to 3 days") {
		t.Fatalf("limit message missing day counts: %q", sel.LimitMessage)
	}
}

func TestSelectDestinationsSpreadsAcrossCorridor(t *testing.T) {
	cities := routeCities()
	start := findCity(cities, "city-chicago")
	end := findCity(cities, "city-santa-monica")

	sel := SelectDestinations(start, end, cities[1:len(cities)-1], 3)

	if len(sel.Stops) != 2 {
		t.Fatalf("got %d stops, want 2", len(sel.Stops))
	}
	// First and last corridor cities by progress: the sampler anchors the
	// spread at the corridor's ends.
	if sel.Stops[0].ID != "city-springfield-il" {
		t.Fatalf("first pick = %s, want city-springfield-il", sel.Stops[0].ID)
	}
	if sel.Stops[1].ID != "city-barstow" {
		t.Fatalf("last pick = %s, want city-barstow", sel.Stops[1].ID)
	}
}
