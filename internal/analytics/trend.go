package analytics

import (
	"time"

	"github.com/jonathan/jobboard/internal/types"
)

const monthLayout = "2006-01"

// WindowStart returns the first instant of the oldest month in the window.
func WindowStart(window Window) time.Time {
	months := window.Months
	if months <= 0 {
		months = DefaultWindowMonths
	}
	now := window.Now
	if now.IsZero() {
		now = time.Now()
	}
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -(months - 1), 0)
}

// MonthlyTrend buckets applications by calendar month over the trailing
// window, oldest month first. Every month in the window is present.
// Records outside the window are ignored.
func MonthlyTrend(apps []types.ApplicationRecord, window Window) []types.MonthBucket {
	if window.Months <= 0 {
		window.Months = DefaultWindowMonths
	}
	if window.Now.IsZero() {
		window.Now = time.Now()
	}

	loc := window.Now.Location()
	start := WindowStart(window)

	buckets := make([]types.MonthBucket, window.Months)
	index := make(map[string]int, window.Months)
	for i := range buckets {
		month := start.AddDate(0, i, 0).Format(monthLayout)
		buckets[i].Month = month
		index[month] = i
	}

	for i := range apps {
		key := apps[i].CreatedAt.In(loc).Format(monthLayout)
		pos, ok := index[key]
		if !ok {
			continue
		}
		buckets[pos].Applications++
		if apps[i].Status == types.StatusHired {
			buckets[pos].Hired++
		}
	}

	return buckets
}
