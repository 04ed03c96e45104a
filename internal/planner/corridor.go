package planner

import (
	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/geo"
)

// corridorDetourRatio is the detour multiplier for corridor membership. A
// candidate stays in when dist(start,c) + dist(c,end) <= ratio * dist(start,end).
// The multiplier is deliberately generous: long trips need plenty of
// intermediate cities to choose from, and a starved selector hurts more than
// a loose corridor. Tightening this below ~2 empties the corridor on short
// hops between neighboring cities.
const corridorDetourRatio = 4.0

// FilterCorridor narrows the destination-city list to cities plausibly on
// the way from start to end, excluding start and end themselves. Candidates
// without usable coordinates are skipped.
func FilterCorridor(start, end catalog.Stop, all []catalog.Stop) []catalog.Stop {
	direct := geo.DistanceMiles(start.Location, end.Location)

	corridor := make([]catalog.Stop, 0, len(all))
	for _, c := range all {
		if c.ID == start.ID || c.ID == end.ID {
			continue
		}
		if !c.Location.Valid() {
			continue
		}
		detour := geo.DistanceMiles(start.Location, c.Location) +
			geo.DistanceMiles(c.Location, end.Location)
		if detour <= direct*corridorDetourRatio {
			corridor = append(corridor, c)
		}
	}
	return corridor
}
