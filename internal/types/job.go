package types

import (
	"time"

	"github.com/google/uuid"
)

// JobType classifies where a posting comes from.
type JobType string

// JobType constants
const (
	JobTypeCompany  JobType = "company"
	JobTypeOnCampus JobType = "on-campus"
	JobTypeExternal JobType = "external"
)

// JobPosting is the read-only view of a posting used for matching.
type JobPosting struct {
	ID                 uuid.UUID  `json:"id"`
	Title              string     `json:"title,omitempty"`
	Type               JobType    `json:"type" validate:"required,oneof=company on-campus external"`
	RecruiterID        *uuid.UUID `json:"recruiter_id,omitempty"`
	RequiredSkills     []string   `json:"required_skills"`
	MinExperience      *float64   `json:"min_experience,omitempty" validate:"omitempty,gte=0"`
	PreferredLocation  string     `json:"preferred_location,omitempty"`
	CollegeAffiliation string     `json:"college_affiliation,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// MinExperienceYears returns the experience threshold, treating a missing value as zero.
func (j *JobPosting) MinExperienceYears() float64 {
	if j.MinExperience == nil {
		return 0
	}
	return *j.MinExperience
}

// Validate checks the posting for malformed scoring inputs.
func (j *JobPosting) Validate() error {
	return validateStruct(j)
}
