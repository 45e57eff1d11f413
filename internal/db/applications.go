package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/types"
)

// -----------------------------------------------------------------------------
// Application Methods
// -----------------------------------------------------------------------------

// ListApplications retrieves a scope's applications created at or after
// since (all history when since is zero), labelled with job title and
// candidate name.
func (db *DB) ListApplications(ctx context.Context, scope types.AnalyticsScope, since time.Time) ([]types.ApplicationRecord, error) {
	query, args, err := buildApplicationsQuery(scope, since)
	if err != nil {
		return nil, err
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []types.ApplicationRecord
	for rows.Next() {
		var a types.ApplicationRecord
		var status string
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &status, &a.MatchScore,
			&a.CreatedAt, &a.JobTitle, &a.CandidateName); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		a.Status = types.ApplicationStatus(status)
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read applications: %w", err)
	}
	return apps, nil
}

func buildApplicationsQuery(scope types.AnalyticsScope, since time.Time) (string, []any, error) {
	if err := scope.Validate(); err != nil {
		return "", nil, err
	}

	var condition string
	var arg any
	switch scope.Kind {
	case types.ScopeRecruiter:
		id, err := parseScopeID(scope)
		if err != nil {
			return "", nil, err
		}
		condition, arg = "j.recruiter_id = $1", id
	case types.ScopeCollege:
		condition, arg = "c.college_affiliation = $1", scope.ID
	case types.ScopeCandidate:
		id, err := parseScopeID(scope)
		if err != nil {
			return "", nil, err
		}
		condition, arg = "a.candidate_id = $1", id
	}

	query := `SELECT a.id, a.job_id, a.candidate_id, a.status, a.match_score, a.created_at,
		        j.title, c.name
		 FROM applications a
		 JOIN job_postings j ON j.id = a.job_id
		 JOIN candidates c ON c.id = a.candidate_id
		 WHERE ` + condition
	args := []any{arg}

	if !since.IsZero() {
		query += ` AND a.created_at >= $2`
		args = append(args, since)
	}
	query += `
		 ORDER BY a.created_at DESC, a.id`
	return query, args, nil
}

func parseScopeID(scope types.AnalyticsScope) (uuid.UUID, error) {
	id, err := uuid.Parse(scope.ID)
	if err != nil {
		return uuid.Nil, &types.InvalidInputError{Field: "scope", Message: fmt.Sprintf("invalid %s id %q", scope.Kind, scope.ID)}
	}
	return id, nil
}

// CountPopulation returns the number of jobs owned by a recruiter or the
// number of students of a college. Candidate scopes have no population.
func (db *DB) CountPopulation(ctx context.Context, scope types.AnalyticsScope) (types.Population, error) {
	if err := scope.Validate(); err != nil {
		return types.Population{}, err
	}

	switch scope.Kind {
	case types.ScopeRecruiter:
		id, err := parseScopeID(scope)
		if err != nil {
			return types.Population{}, err
		}
		n, err := db.CountJobsByRecruiter(ctx, id)
		return types.Population{Jobs: n}, err
	case types.ScopeCollege:
		n, err := db.CountCandidatesByCollege(ctx, scope.ID)
		return types.Population{Students: n}, err
	default:
		return types.Population{}, nil
	}
}

// InsertApplication stores an application record, updating status and
// score when the ID already exists.
func (db *DB) InsertApplication(ctx context.Context, a *types.ApplicationRecord) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (id, job_id, candidate_id, status, match_score, created_at)
		 VALUES ($1, $2, $3, $4, $5, COALESCE($6, NOW()))
		 ON CONFLICT (id) DO UPDATE SET status = $4, match_score = $5
		 RETURNING created_at`,
		a.ID, a.JobID, a.CandidateID, string(a.Status), a.MatchScore, nullTime(a.CreatedAt),
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert application: %w", err)
	}
	return nil
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
