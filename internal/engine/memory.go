package engine

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/skills"
	"github.com/jonathan/jobboard/internal/types"
)

// MemoryStore is a Store over in-memory snapshots, used by the CLI and tests.
type MemoryStore struct {
	mu           sync.RWMutex
	candidates   map[uuid.UUID]types.CandidateProfile
	jobs         []types.JobPosting
	applications []types.ApplicationRecord
}

// NewMemoryStore creates a store holding copies of the given records.
func NewMemoryStore(candidates []types.CandidateProfile, jobs []types.JobPosting, apps []types.ApplicationRecord) *MemoryStore {
	s := &MemoryStore{candidates: make(map[uuid.UUID]types.CandidateProfile, len(candidates))}
	for _, c := range candidates {
		s.candidates[c.ID] = c
	}
	s.jobs = append(s.jobs, jobs...)
	s.applications = append(s.applications, apps...)
	return s
}

// GetCandidate returns the candidate or nil when absent.
func (s *MemoryStore) GetCandidate(_ context.Context, id uuid.UUID) (*types.CandidateProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.candidates[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// GetJobPosting returns the job or nil when absent.
func (s *MemoryStore) GetJobPosting(_ context.Context, id uuid.UUID) (*types.JobPosting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			job := s.jobs[i]
			return &job, nil
		}
	}
	return nil, nil
}

// ListJobPool returns jobs matching the filter, newest first.
func (s *MemoryStore) ListJobPool(ctx context.Context, filter types.JobFilter) ([]types.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	wanted := make(map[string]bool, len(filter.Skills))
	for _, key := range filter.Skills {
		wanted[skills.Normalize(key)] = true
	}

	var out []types.JobPosting
	for _, job := range s.jobs {
		if filter.Type != "" && job.Type != filter.Type {
			continue
		}
		if filter.College != "" && job.CollegeAffiliation != filter.College {
			continue
		}
		if len(wanted) > 0 && !requiresAny(job.RequiredSkills, wanted) {
			continue
		}
		out = append(out, job)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func requiresAny(required []string, wanted map[string]bool) bool {
	for _, name := range required {
		if wanted[skills.Normalize(name)] {
			return true
		}
	}
	return false
}

// ListApplications returns the scope's applications created at or after
// since, with job titles and candidate names resolved.
func (s *MemoryStore) ListApplications(_ context.Context, scope types.AnalyticsScope, since time.Time) ([]types.ApplicationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make(map[uuid.UUID]*types.JobPosting, len(s.jobs))
	for i := range s.jobs {
		jobs[s.jobs[i].ID] = &s.jobs[i]
	}

	var out []types.ApplicationRecord
	for _, app := range s.applications {
		if !since.IsZero() && app.CreatedAt.Before(since) {
			continue
		}
		job := jobs[app.JobID]
		candidate, hasCandidate := s.candidates[app.CandidateID]
		if !s.inScope(scope, app, job, candidate, hasCandidate) {
			continue
		}
		if app.JobTitle == "" && job != nil {
			app.JobTitle = job.Title
		}
		if app.CandidateName == "" && hasCandidate {
			app.CandidateName = candidate.Name
		}
		out = append(out, app)
	}
	return out, nil
}

func (s *MemoryStore) inScope(scope types.AnalyticsScope, app types.ApplicationRecord, job *types.JobPosting, candidate types.CandidateProfile, hasCandidate bool) bool {
	switch scope.Kind {
	case types.ScopeRecruiter:
		return job != nil && job.RecruiterID != nil && job.RecruiterID.String() == scope.ID
	case types.ScopeCollege:
		return hasCandidate && candidate.CollegeAffiliation == scope.ID
	case types.ScopeCandidate:
		return app.CandidateID.String() == scope.ID
	default:
		return false
	}
}

// CountPopulation counts a recruiter's jobs or a college's students.
func (s *MemoryStore) CountPopulation(_ context.Context, scope types.AnalyticsScope) (types.Population, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var p types.Population
	switch scope.Kind {
	case types.ScopeRecruiter:
		for _, job := range s.jobs {
			if job.RecruiterID != nil && job.RecruiterID.String() == scope.ID {
				p.Jobs++
			}
		}
	case types.ScopeCollege:
		for _, c := range s.candidates {
			if c.CollegeAffiliation == scope.ID {
				p.Students++
			}
		}
	}
	return p, nil
}
