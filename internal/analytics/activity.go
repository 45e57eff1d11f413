package analytics

import (
	"fmt"
	"sort"

	"github.com/jonathan/jobboard/internal/types"
)

// RecentActivity returns the newest applications as labelled events,
// newest first, at most limit entries. The input is not modified.
func RecentActivity(apps []types.ApplicationRecord, limit int) []types.ActivityEvent {
	ordered := make([]*types.ApplicationRecord, len(apps))
	for i := range apps {
		ordered[i] = &apps[i]
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.String() < b.ID.String()
	})
	if limit >= 0 && len(ordered) > limit {
		ordered = ordered[:limit]
	}

	events := make([]types.ActivityEvent, 0, len(ordered))
	for _, app := range ordered {
		events = append(events, types.ActivityEvent{
			ApplicationID: app.ID,
			JobID:         app.JobID,
			JobTitle:      app.JobTitle,
			CandidateID:   app.CandidateID,
			CandidateName: app.CandidateName,
			Status:        app.Status,
			Label:         Label(app),
			CreatedAt:     app.CreatedAt,
		})
	}
	return events
}

// Label renders an application as a short sentence, e.g.
// "Asha Rao was shortlisted for Backend Engineer".
func Label(app *types.ApplicationRecord) string {
	candidate := app.CandidateName
	if candidate == "" {
		candidate = "Unknown candidate"
	}
	job := app.JobTitle
	if job == "" {
		job = "unknown job"
	}

	switch app.Status {
	case types.StatusApplied:
		return fmt.Sprintf("%s applied for %s", candidate, job)
	case types.StatusShortlisted:
		return fmt.Sprintf("%s was shortlisted for %s", candidate, job)
	case types.StatusRejected:
		return fmt.Sprintf("%s was rejected for %s", candidate, job)
	case types.StatusHired:
		return fmt.Sprintf("%s was hired for %s", candidate, job)
	default:
		return fmt.Sprintf("%s: %s (%s)", candidate, job, app.Status)
	}
}
