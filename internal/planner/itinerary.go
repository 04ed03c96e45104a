package planner

import (
	"math"

	"github.com/motherroad/motherroad/internal/catalog"
	"github.com/motherroad/motherroad/internal/geo"
)

// Drive-time model constants. Short legs average in-town speeds; long legs
// approach a highway cruising asymptote.
const (
	baseSpeedMPH      = 28.0
	cruiseGainMPH     = 34.0
	speedRampUpMiles  = 120.0
	maxCruiseSpeedMPH = baseSpeedMPH + cruiseGainMPH
)

// DriveTimeHours estimates drive time for a leg of the given length. The
// effective average speed rises from ~30 mph on short in-town legs toward a
// ~62 mph highway asymptote on long ones:
//
//	speed(d) = 28 + 34 * (1 - exp(-d/120))
//
// The function is pure so it can be tested and swapped independently.
func DriveTimeHours(distanceMiles float64) float64 {
	if distanceMiles <= 0 {
		return 0
	}
	speed := baseSpeedMPH + cruiseGainMPH*(1-math.Exp(-distanceMiles/speedRampUpMiles))
	return distanceMiles / speed
}

// BuildItinerary turns the ordered stop sequence [start, intermediate...,
// end] into daily segments, one leg per day. Each leg's distance is the
// great-circle distance between its endpoints.
//
// The number of segments follows the stop sequence, not actualDays: when an
// upstream stage degraded and fewer intermediates arrived, the remaining
// stretch still ends at the final destination as a single day rather than
// being dropped.
func BuildItinerary(start catalog.Stop, intermediate []catalog.Stop, end catalog.Stop) []DailySegment {
	sequence := make([]catalog.Stop, 0, len(intermediate)+2)
	sequence = append(sequence, start)
	sequence = append(sequence, intermediate...)
	sequence = append(sequence, end)

	segments := make([]DailySegment, 0, len(sequence)-1)
	for i := 0; i < len(sequence)-1; i++ {
		from := sequence[i]
		to := sequence[i+1]
		distance := geo.DistanceMiles(from.Location, to.Location)
		segments = append(segments, DailySegment{
			DayNumber:      i + 1,
			StartCity:      from,
			EndCity:        to,
			DistanceMiles:  distance,
			DriveTimeHours: DriveTimeHours(distance),
		})
	}
	return segments
}
