package types

import "fmt"

// JobFilter selects a bounded job pool from storage.
type JobFilter struct {
	Type    JobType
	Skills  []string // canonical skill keys; a job matches when it requires any of them
	College string   // exact college affiliation
	Limit   int      // newest first; 0 means unbounded
}

// ScopeKind names whose application history is being analyzed.
type ScopeKind string

// ScopeKind constants
const (
	ScopeRecruiter ScopeKind = "recruiter"
	ScopeCollege   ScopeKind = "college"
	ScopeCandidate ScopeKind = "candidate"
)

// AnalyticsScope identifies an application history: a recruiter's jobs,
// a college's students, or one candidate.
type AnalyticsScope struct {
	Kind ScopeKind `json:"kind"`
	ID   string    `json:"id"`
}

// Validate rejects unknown kinds and empty identifiers.
func (s AnalyticsScope) Validate() error {
	switch s.Kind {
	case ScopeRecruiter, ScopeCollege, ScopeCandidate:
	default:
		return &InvalidInputError{Field: "scope", Message: fmt.Sprintf("unknown scope %q", s.Kind)}
	}
	if s.ID == "" {
		return &InvalidInputError{Field: "scope", Message: fmt.Sprintf("%s identifier is required", s.Kind)}
	}
	return nil
}

// Population is the size of an analytics scope as known to storage.
type Population struct {
	Jobs     int `json:"jobs"`
	Students int `json:"students"`
}
