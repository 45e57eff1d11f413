package types

import (
	"time"

	"github.com/google/uuid"
)

// StatusCounts counts applications per status.
type StatusCounts struct {
	Applied     int `json:"applied"`
	Shortlisted int `json:"shortlisted"`
	Rejected    int `json:"rejected"`
	Hired       int `json:"hired"`
}

// Add increments the counter for a status. Unknown statuses are ignored.
func (c *StatusCounts) Add(status ApplicationStatus) {
	switch status {
	case StatusApplied:
		c.Applied++
	case StatusShortlisted:
		c.Shortlisted++
	case StatusRejected:
		c.Rejected++
	case StatusHired:
		c.Hired++
	}
}

// MonthBucket is one calendar month of application activity.
type MonthBucket struct {
	Month        string `json:"month"` // YYYY-MM
	Applications int    `json:"applications"`
	Hired        int    `json:"hired"`
}

// ActivityEvent is a labelled application event.
type ActivityEvent struct {
	ApplicationID uuid.UUID         `json:"application_id"`
	JobID         uuid.UUID         `json:"job_id"`
	JobTitle      string            `json:"job_title"`
	CandidateID   uuid.UUID         `json:"candidate_id"`
	CandidateName string            `json:"candidate_name"`
	Status        ApplicationStatus `json:"status"`
	Label         string            `json:"label"`
	CreatedAt     time.Time         `json:"created_at"`
}

// PlacementStats summarizes placements for a college.
type PlacementStats struct {
	TotalStudents                 int     `json:"total_students"`
	PlacedStudents                int     `json:"placed_students"`
	PlacementRate                 float64 `json:"placement_rate"`
	AverageApplicationsPerStudent float64 `json:"average_applications_per_student"`
}

// AnalyticsSummary is the reporting view over application history.
type AnalyticsSummary struct {
	TotalApplications             int             `json:"total_applications"`
	ByStatus                      StatusCounts    `json:"by_status"`
	ConversionRate                float64         `json:"conversion_rate"`
	AverageApplicationsPerJob     float64         `json:"average_applications_per_job"`
	AverageApplicationsPerStudent float64         `json:"average_applications_per_student"`
	WindowMonths                  int             `json:"window_months"`
	MonthlyTrend                  []MonthBucket   `json:"monthly_trend"`
	RecentActivity                []ActivityEvent `json:"recent_activity"`
	Placement                     *PlacementStats `json:"placement,omitempty"`
}
