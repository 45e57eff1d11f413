package types

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the workflow state of an application.
type ApplicationStatus string

// ApplicationStatus constants
const (
	StatusApplied     ApplicationStatus = "applied"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusRejected    ApplicationStatus = "rejected"
	StatusHired       ApplicationStatus = "hired"
)

// AllStatuses lists every status in funnel order.
var AllStatuses = []ApplicationStatus{StatusApplied, StatusShortlisted, StatusRejected, StatusHired}

// ApplicationRecord is a historical application used for analytics.
// JobTitle and CandidateName are resolved by the data-access layer.
type ApplicationRecord struct {
	ID            uuid.UUID         `json:"id"`
	JobID         uuid.UUID         `json:"job_id"`
	CandidateID   uuid.UUID         `json:"candidate_id"`
	Status        ApplicationStatus `json:"status" validate:"required,oneof=applied shortlisted rejected hired"`
	MatchScore    *float64          `json:"match_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	CreatedAt     time.Time         `json:"created_at"`
	JobTitle      string            `json:"job_title,omitempty"`
	CandidateName string            `json:"candidate_name,omitempty"`
}

// Validate checks the record for unknown statuses and out-of-range scores.
func (a *ApplicationRecord) Validate() error {
	return validateStruct(a)
}
