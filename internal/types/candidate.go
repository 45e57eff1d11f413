package types

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Location is where a candidate is based. The original free-form string is
// kept in Raw; structured parts are kept separately.
type Location struct {
	Raw     string `json:"raw,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

// IsStructured reports whether any structured part is set.
func (l Location) IsStructured() bool {
	return l.City != "" || l.State != "" || l.Country != ""
}

// Matches reports whether a preferred location equals the flat string or
// any of the structured parts. Comparison is exact.
func (l Location) Matches(preferred string) bool {
	if preferred == "" {
		return false
	}
	return preferred == l.Raw || preferred == l.City || preferred == l.State || preferred == l.Country
}

// UnmarshalJSON accepts a plain string or an object with city/state/country.
func (l *Location) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*l = Location{}
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("failed to decode location: %w", err)
		}
		*l = Location{Raw: raw}
		return nil
	}

	type plain Location
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("location must be a string or an object: %w", err)
	}
	*l = Location(p)
	return nil
}

// MarshalJSON writes a plain string when only Raw is set.
func (l Location) MarshalJSON() ([]byte, error) {
	if !l.IsStructured() {
		return json.Marshal(l.Raw)
	}
	type plain Location
	return json.Marshal(plain(l))
}

// CandidateProfile is the read-only view of a student used for matching.
type CandidateProfile struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name,omitempty"`
	Skills             SkillList `json:"skills"`
	ExperienceYears    float64   `json:"experience_years" validate:"gte=0"`
	Location           Location  `json:"location"`
	CollegeAffiliation string    `json:"college_affiliation,omitempty"`
}

// Validate checks the profile for malformed scoring inputs.
func (c *CandidateProfile) Validate() error {
	return validateStruct(c)
}
