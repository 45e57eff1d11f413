// Package analytics computes funnel, trend and placement summaries over application history.
package analytics

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/jobboard/internal/types"
)

// Defaults
const (
	DefaultWindowMonths = 6
	DefaultRecentLimit  = 10
)

// Window is the trailing period covered by the monthly trend.
// Now anchors the window; its location decides month boundaries.
type Window struct {
	Months int
	Now    time.Time
}

// Options tunes an aggregation.
type Options struct {
	RecentLimit int // default 10
	// Population is the store's view of the scope size. Zero counts fall
	// back to the distinct jobs or candidates seen in the records.
	Population       types.Population
	IncludePlacement bool
}

// Aggregate summarizes applications. It never fails: empty input yields
// zero counts, zero rates and a zero-filled trend.
func Aggregate(apps []types.ApplicationRecord, window Window, opts Options) *types.AnalyticsSummary {
	if window.Months <= 0 {
		window.Months = DefaultWindowMonths
	}
	if window.Now.IsZero() {
		window.Now = time.Now()
	}
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = DefaultRecentLimit
	}

	summary := &types.AnalyticsSummary{
		TotalApplications: len(apps),
		WindowMonths:      window.Months,
	}

	jobs := make(map[uuid.UUID]bool)
	students := make(map[uuid.UUID]bool)
	placed := make(map[uuid.UUID]bool)
	for i := range apps {
		app := &apps[i]
		summary.ByStatus.Add(app.Status)
		jobs[app.JobID] = true
		students[app.CandidateID] = true
		if app.Status == types.StatusHired {
			placed[app.CandidateID] = true
		}
	}

	jobCount := denominator(opts.Population.Jobs, len(jobs))
	studentCount := denominator(opts.Population.Students, len(students))

	summary.ConversionRate = percent(summary.ByStatus.Hired, summary.TotalApplications)
	summary.AverageApplicationsPerJob = ratio(summary.TotalApplications, jobCount)
	summary.AverageApplicationsPerStudent = ratio(summary.TotalApplications, studentCount)
	summary.MonthlyTrend = MonthlyTrend(apps, window)
	summary.RecentActivity = RecentActivity(apps, opts.RecentLimit)

	if opts.IncludePlacement {
		summary.Placement = &types.PlacementStats{
			TotalStudents:                 studentCount,
			PlacedStudents:                len(placed),
			PlacementRate:                 percent(len(placed), studentCount),
			AverageApplicationsPerStudent: summary.AverageApplicationsPerStudent,
		}
	}

	return summary
}

func denominator(population, observed int) int {
	if population > 0 {
		return population
	}
	return observed
}

// percent returns part/whole*100 rounded to 2 decimals, 0 when whole is 0.
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole) * 100)
}

func ratio(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return round2(float64(part) / float64(whole))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
