package planner

import (
	"fmt"
	"math"
	"sort"

	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/geo"
)

// Selection is the outcome of choosing intermediate destination cities.
type Selection struct {
	// Stops are the chosen intermediate cities in travel order. Never
	// includes start or end.
	Stops []catalog.Stop

	// ActualDays is the usable day count. Equals the requested days unless
	// the corridor was too thin.
	ActualDays int

	// LimitMessage is set when ActualDays < requested days.
	LimitMessage string
}

// SelectDestinations picks requestedDays-1 intermediate overnight cities
// from the corridor, ordered by progress along the start→end axis, spread
// evenly across the corridor by index sampling. When the corridor cannot
// support the request the selection degrades to every available city and a
// limit message; it never fabricates or repeats a city.
func SelectDestinations(start, end catalog.Stop, corridor []catalog.Stop, requestedDays int) Selection {
	if requestedDays <= 1 {
		return Selection{ActualDays: 1}
	}

	needed := requestedDays - 1

	ordered := make([]catalog.Stop, len(corridor))
	copy(ordered, corridor)
	sort.SliceStable(ordered, func(i, j int) bool {
		return geo.ProjectAlong(start.Location, end.Location, ordered[i].Location) <
			geo.ProjectAlong(start.Location, end.Location, ordered[j].Location)
	})

	if len(ordered) < needed {
		actual := len(ordered) + 1
		return Selection{
			Stops:      ordered,
			ActualDays: actual,
			LimitMessage: fmt.Sprintf(
				"only %d destination cities are available between %s and %s, so the trip was shortened from %d to %d days",
				len(ordered), start.DisplayName(), end.DisplayName(), requestedDays, actual),
		}
	}

	return Selection{
		Stops:      sampleEvenly(ordered, needed),
		ActualDays: requestedDays,
	}
}

// sampleEvenly picks target stops spread across the sorted list by rounding
// index positions. Adjacent picks that round to the same index are
// deduplicated, so the result may be shorter than target when the list is
// barely large enough.
func sampleEvenly(sorted []catalog.Stop, target int) []catalog.Stop {
	if target <= 0 || len(sorted) == 0 {
		return nil
	}
	if target >= len(sorted) {
		out := make([]catalog.Stop, len(sorted))
		copy(out, sorted)
		return out
	}
	if target == 1 {
		// A single intermediate stop goes in the middle of the corridor.
		return []catalog.Stop{sorted[len(sorted)/2]}
	}

	picks := make([]catalog.Stop, 0, target)
	lastIdx := -1
	for i := 0; i < target; i++ {
		idx := int(math.Round(float64(i) * float64(len(sorted)-1) / float64(target-1)))
		if idx == lastIdx {
			continue
		}
		lastIdx = idx
		picks = append(picks, sorted[idx])
	}
	return picks
}
