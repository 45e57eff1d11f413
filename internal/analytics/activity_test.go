package analytics

import (
	"testing"

	"github.com/jonathan/jobboard/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		app  types.ApplicationRecord
		want string
	}{
		{"applied", app("1", "Backend", "Asha", types.StatusApplied, now), "Asha applied for Backend"},
		{"shortlisted", app("1", "Backend", "Asha", types.StatusShortlisted, now), "Asha was shortlisted for Backend"},
		{"rejected", app("1", "Backend", "Asha", types.StatusRejected, now), "Asha was rejected for Backend"},
		{"hired", app("1", "Backend", "Asha", types.StatusHired, now), "Asha was hired for Backend"},
		{"missing names", types.ApplicationRecord{Status: types.StatusApplied}, "Unknown candidate applied for unknown job"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Label(&tt.app))
		})
	}
}

func TestRecentActivity_DoesNotReorderInput(t *testing.T) {
	apps := []types.ApplicationRecord{
		app("old", "Backend", "Asha", types.StatusApplied, now.AddDate(0, 0, -2)),
		app("new", "Backend", "Ravi", types.StatusHired, now),
	}

	events := RecentActivity(apps, 10)

	assert.Equal(t, id("app-new"), events[0].ApplicationID)
	assert.Equal(t, id("app-old"), apps[0].ID)
}
