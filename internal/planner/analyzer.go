package planner

import (
	"math"

	"github.com/motherroad/motherroad/internal/geo"
)

// Quality bucket thresholds. Balance is the coefficient of variation of the
// per-day drive times; efficiency is the ratio of total plan distance to the
// direct start-to-end distance; coverage is the fraction of days with at
// least one recommended stop.
const (
	balanceExcellentCV = 0.15
	balanceGoodCV      = 0.30
	balanceFairCV      = 0.50

	efficiencyExcellentRatio = 1.25
	efficiencyGoodRatio      = 1.60
	efficiencyFairRatio      = 2.20

	coverageExcellent = 0.9
	coverageGood      = 0.6
	coverageFair      = 0.3
)

// AnalyzeCompletion grades a finished plan for display. The analysis is
// purely descriptive and never alters the plan.
func AnalyzeCompletion(plan *TripPlan, originalRequestedDays int) CompletionAnalysis {
	analysis := CompletionAnalysis{
		IsCompleted:   plan.ActualDays < originalRequestedDays,
		OptimizedDays: plan.ActualDays,
	}
	if len(plan.Segments) == 0 {
		analysis.DriveTimeBalance = QualityPoor
		analysis.RouteEfficiency = QualityPoor
		analysis.AttractionCoverage = QualityPoor
		analysis.OverallScore = QualityPoor.score()
		return analysis
	}

	analysis.DriveTimeBalance = gradeBalance(plan.Segments)
	analysis.RouteEfficiency = gradeEfficiency(plan)
	analysis.AttractionCoverage = gradeCoverage(plan.Segments)
	analysis.OverallScore = (analysis.DriveTimeBalance.score() +
		analysis.RouteEfficiency.score() +
		analysis.AttractionCoverage.score()) / 3

	return analysis
}

// gradeBalance buckets the coefficient of variation of daily drive times. A
// single-day plan is trivially balanced.
func gradeBalance(segments []DailySegment) QualityBucket {
	if len(segments) == 1 {
		return QualityExcellent
	}

	var sum float64
	for _, s := range segments {
		sum += s.DriveTimeHours
	}
	mean := sum / float64(len(segments))
	if mean == 0 {
		return QualityExcellent
	}

	var variance float64
	for _, s := range segments {
		d := s.DriveTimeHours - mean
		variance += d * d
	}
	variance /= float64(len(segments))

	cv := math.Sqrt(variance) / mean
	switch {
	case cv <= balanceExcellentCV:
		return QualityExcellent
	case cv <= balanceGoodCV:
		return QualityGood
	case cv <= balanceFairCV:
		return QualityFair
	default:
		return QualityPoor
	}
}

// gradeEfficiency buckets the plan's total mileage against the direct
// great-circle distance between its first and last anchors.
func gradeEfficiency(plan *TripPlan) QualityBucket {
	start := plan.Segments[0].StartCity
	end := plan.Segments[len(plan.Segments)-1].EndCity
	direct := geo.DistanceMiles(start.Location, end.Location)
	if direct == 0 {
		return QualityPoor
	}

	ratio := plan.TotalDistanceMiles / direct
	switch {
	case ratio <= efficiencyExcellentRatio:
		return QualityExcellent
	case ratio <= efficiencyGoodRatio:
		return QualityGood
	case ratio <= efficiencyFairRatio:
		return QualityFair
	default:
		return QualityPoor
	}
}

// gradeCoverage buckets the fraction of days carrying at least one
// recommended stop.
func gradeCoverage(segments []DailySegment) QualityBucket {
	covered := 0
	for _, s := range segments {
		if len(s.RecommendedStops) > 0 {
			covered++
		}
	}
	fraction := float64(covered) / float64(len(segments))
	switch {
	case fraction >= coverageExcellent:
		return QualityExcellent
	case fraction >= coverageGood:
		return QualityGood
	case fraction >= coverageFair:
		return QualityFair
	default:
		return QualityPoor
	}
}
