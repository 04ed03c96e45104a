package planner

import (
	"sort"
	"strings"

	"github.com/motherroad/motherroad/internal/catalog"
)

// Recommendation scoring weights. Attractions and hidden gems must outscore
// generic waypoints by a wide margin so a day never fills up with markers.
const (
	scoreAttraction = 50.0
	scoreHiddenGem  = 42.0
	scoreDriveIn    = 30.0
	scoreWaypoint   = 12.0

	bonusFeatured         = 15.0
	bonusRichDescription  = 8.0
	bonusExactCityMatch   = 20.0
	bonusPartialCityMatch = 10.0
	penaltyPlaceholder    = 25.0

	richDescriptionMinLen = 80

	// DefaultMaxStopsPerDay caps recommendations per segment.
	DefaultMaxStopsPerDay = 3
)

// placeholderPhrases mark stop names that are catalog filler, not real
// points of interest.
var placeholderPhrases = []string{
	"points of interest",
	"point of interest",
	"things to do",
	"city center",
}

// RecommendStops selects up to maxStops diverse points of interest for a
// daily segment. Destination cities are always excluded; a day near sparse
// data may legitimately get zero stops.
func RecommendStops(segment DailySegment, allStops []catalog.Stop, maxStops int, style TripStyle) []catalog.Stop {
	if maxStops <= 0 {
		maxStops = DefaultMaxStopsPerDay
	}

	type scoredStop struct {
		stop  catalog.Stop
		score float64
	}

	endCity := strings.ToLower(segment.EndCity.CityName)
	startCity := strings.ToLower(segment.StartCity.CityName)
	endState := segment.EndCity.State

	candidates := make([]scoredStop, 0, 16)
	for _, s := range allStops {
		if s.IsDestinationCity() {
			continue
		}
		match := cityMatch(s, endCity, startCity, endState)
		if match == matchNone {
			continue
		}
		candidates = append(candidates, scoredStop{
			stop:  s,
			score: scoreStop(s, match, style),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	// Greedy diverse selection: cap how many of one category get picked so
	// a day is not three museums in a row.
	categoryCap := maxStops/2 + maxStops%2
	if maxStops <= DefaultMaxStopsPerDay {
		categoryCap = 2
	}

	picked := make([]catalog.Stop, 0, maxStops)
	perCategory := make(map[catalog.Category]int)
	for _, c := range candidates {
		if len(picked) == maxStops {
			break
		}
		if perCategory[c.stop.Category] >= categoryCap {
			continue
		}
		picked = append(picked, c.stop)
		perCategory[c.stop.Category]++
	}
	return picked
}

// matchKind grades how closely a stop's location matches the segment.
type matchKind int

const (
	matchNone matchKind = iota
	matchStateOnly
	matchPartialCity
	matchExactCity
)

// cityMatch applies the deliberately loose geographic relevance filter: a
// city-name match against either segment endpoint, or a state-level match
// against the day's end city. State-level matching avoids empty result sets
// where the catalog is thin.
func cityMatch(s catalog.Stop, endCity, startCity, endState string) matchKind {
	city := strings.ToLower(s.CityName)
	if city != "" {
		if city == endCity || city == startCity {
			return matchExactCity
		}
		if containsEither(city, endCity) || containsEither(city, startCity) {
			return matchPartialCity
		}
	}
	if endState != "" && s.State == endState {
		return matchStateOnly
	}
	return matchNone
}

func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// scoreStop computes the ranking score for a candidate stop.
func scoreStop(s catalog.Stop, match matchKind, style TripStyle) float64 {
	score := categoryScore(s.Category, style)

	// Leisure trips favor well-curated stops, so the editorial signals
	// count double.
	signalWeight := 1.0
	if style == StyleLeisure {
		signalWeight = 2.0
	}
	if s.Featured {
		score += bonusFeatured * signalWeight
	}
	if len(s.Description) > richDescriptionMinLen {
		score += bonusRichDescription * signalWeight
	}

	switch match {
	case matchExactCity:
		score += bonusExactCityMatch
	case matchPartialCity:
		score += bonusPartialCityMatch
	}

	if isPlaceholderName(s) {
		score -= penaltyPlaceholder
	}

	return score
}

// categoryScore returns the base score for a category under a trip style.
func categoryScore(cat catalog.Category, style TripStyle) float64 {
	var base float64
	switch cat {
	case catalog.CategoryAttraction:
		base = scoreAttraction
	case catalog.CategoryHiddenGem:
		base = scoreHiddenGem
	case catalog.CategoryDriveIn:
		base = scoreDriveIn
	default:
		base = scoreWaypoint
	}

	switch style {
	case StyleFamily:
		if cat == catalog.CategoryAttraction || cat == catalog.CategoryDriveIn {
			base *= 1.25
		}
	case StyleAdventure:
		if cat == catalog.CategoryHiddenGem {
			base *= 1.35
		}
	}
	return base
}

// isPlaceholderName flags names that are the city name itself or generic
// catalog filler.
func isPlaceholderName(s catalog.Stop) bool {
	name := strings.ToLower(strings.TrimSpace(s.Name))
	if name == "" {
		return true
	}
	if name == strings.ToLower(strings.TrimSpace(s.CityName)) {
		return true
	}
	for _, phrase := range placeholderPhrases {
		if strings.Contains(name, phrase) {
			return true
		}
	}
	return false
}
