package planner

import (
	"math"
	"testing"

	"github.com/motherroad/motherroad/internal/catalog"
)

// planFromChain builds a plan over the given city ids with recommendations
// attached to the listed day numbers.
func planFromChain(t *testing.T, ids []string, daysWithStops ...int) *TripPlan {
	t.Helper()
	cities := routeCities()
	chain := make([]catalog.Stop, 0, len(ids))
	for _, id := range ids {
		c := findCity(cities, id)
		if c.ID == "" {
			t.Fatalf("unknown fixture city %s", id)
		}
		chain = append(chain, c)
	}

	segments := BuildItinerary(chain[0], chain[1:len(chain)-1], chain[len(chain)-1])
	for _, day := range daysWithStops {
		segments[day-1].RecommendedStops = []catalog.Stop{
			poi("poi-day-"+segments[day-1].EndCity.ID, "Roadside Stop",
				catalog.CategoryAttraction, segments[day-1].EndCity.CityName, segments[day-1].EndCity.State,
				segments[day-1].EndCity.Location.Lat, segments[day-1].EndCity.Location.Lon),
		}
	}

	plan := &TripPlan{
		Segments:   segments,
		TotalDays:  len(segments),
		ActualDays: len(segments),
	}
	for _, seg := range segments {
		plan.TotalDistanceMiles += seg.DistanceMiles
		plan.TotalDriveTimeHours += seg.DriveTimeHours
	}
	return plan
}

func TestAnalyzeCompletionFullRoute(t *testing.T) {
	ids := []string{
		"city-chicago", "city-springfield-il", "city-st-louis", "city-joplin",
		"city-tulsa", "city-okc", "city-amarillo", "city-albuquerque",
		"city-flagstaff", "city-kingman", "city-barstow", "city-santa-monica",
	}
	plan := planFromChain(t, ids, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)
	plan.OriginalRequestedDays = 11

	analysis := AnalyzeCompletion(plan, 11)

	if analysis.IsCompleted {
		t.Fatal("plan was not shortened, IsCompleted should be false")
	}
	if analysis.OptimizedDays != 11 {
		t.Fatalf("OptimizedDays = %d, want 11", analysis.OptimizedDays)
	}
	// The chain hugs the route, so the detour over direct distance is small.
	if analysis.RouteEfficiency != QualityExcellent && analysis.RouteEfficiency != QualityGood {
		t.Fatalf("RouteEfficiency = %s for a near-direct chain", analysis.RouteEfficiency)
	}
	if analysis.AttractionCoverage != QualityExcellent {
		t.Fatalf("AttractionCoverage = %s with every day covered", analysis.AttractionCoverage)
	}
	if analysis.OverallScore < 0 || analysis.OverallScore > 1 {
		t.Fatalf("OverallScore = %f, want [0,1]", analysis.OverallScore)
	}
}

func TestAnalyzeCompletionShortenedPlan(t *testing.T) {
	plan := planFromChain(t, []string{"city-chicago", "city-tulsa", "city-santa-monica"})
	plan.ActualDays = 2
	plan.OriginalRequestedDays = 8

	analysis := AnalyzeCompletion(plan, 8)

	if !analysis.IsCompleted {
		t.Fatal("shortened plan should report IsCompleted")
	}
	if analysis.OptimizedDays != 2 {
		t.Fatalf("OptimizedDays = %d, want 2", analysis.OptimizedDays)
	}
}

func TestAnalyzeCompletionCoverageBuckets(t *testing.T) {
	ids := []string{
		"city-chicago", "city-st-louis", "city-tulsa", "city-amarillo", "city-santa-monica",
	}

	tests := []struct {
		name          string
		daysWithStops []int
		want          QualityBucket
	}{
		{"all days covered", []int{1, 2, 3, 4}, QualityExcellent},
		{"three of four", []int{1, 2, 3}, QualityGood},
		{"two of four", []int{1, 2}, QualityFair},
		{"one of four", []int{1}, QualityPoor},
		{"none", nil, QualityPoor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := planFromChain(t, ids, tt.daysWithStops...)
			analysis := AnalyzeCompletion(plan, plan.ActualDays)
			if analysis.AttractionCoverage != tt.want {
				t.Fatalf("AttractionCoverage = %s, want %s", analysis.AttractionCoverage, tt.want)
			}
		})
	}
}

func TestAnalyzeCompletionBalanceDetectsLopsidedDays(t *testing.T) {
	// Chicago to Springfield is a short hop; Springfield to Santa Monica is
	// most of the continent. The balance grade must notice.
	lopsided := planFromChain(t, []string{"city-chicago", "city-springfield-il", "city-santa-monica"})
	analysis := AnalyzeCompletion(lopsided, 2)
	if analysis.DriveTimeBalance != QualityPoor {
		t.Fatalf("DriveTimeBalance = %s for a lopsided plan, want poor", analysis.DriveTimeBalance)
	}

	even := planFromChain(t, []string{"city-chicago", "city-okc", "city-santa-monica"})
	evenAnalysis := AnalyzeCompletion(even, 2)
	if evenAnalysis.DriveTimeBalance == QualityPoor {
		t.Fatalf("DriveTimeBalance = poor for a near-even split")
	}
}

func TestAnalyzeCompletionSingleDay(t *testing.T) {
	plan := planFromChain(t, []string{"city-chicago", "city-santa-monica"}, 1)

	analysis := AnalyzeCompletion(plan, 1)

	if analysis.DriveTimeBalance != QualityExcellent {
		t.Fatalf("single day balance = %s, want excellent", analysis.DriveTimeBalance)
	}
	if analysis.RouteEfficiency != QualityExcellent {
		t.Fatalf("direct leg efficiency = %s, want excellent", analysis.RouteEfficiency)
	}
	want := (1.0 + 1.0 + 1.0) / 3
	if math.Abs(analysis.OverallScore-want) > 1e-9 {
		t.Fatalf("OverallScore = %f, want %f", analysis.OverallScore, want)
	}
}

func TestAnalyzeCompletionEmptyPlan(t *testing.T) {
	analysis := AnalyzeCompletion(&TripPlan{}, 3)

	if analysis.OverallScore != 0.25 {
		t.Fatalf("OverallScore = %f for empty plan, want 0.25", analysis.OverallScore)
	}
	if analysis.DriveTimeBalance != QualityPoor {
		t.Fatalf("DriveTimeBalance = %s, want poor", analysis.DriveTimeBalance)
	}
}
