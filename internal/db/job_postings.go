package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/jobboard/internal/skills"
	"github.com/jonathan/jobboard/internal/types"
)

// -----------------------------------------------------------------------------
// Job Posting Methods
// -----------------------------------------------------------------------------

const jobPostingColumns = `j.id, j.title, j.type, j.recruiter_id, j.min_experience,
		j.preferred_location, j.college_affiliation, j.created_at,
		COALESCE((SELECT array_agg(s.name ORDER BY s.position)
		          FROM job_required_skills s WHERE s.job_id = j.id), '{}')`

// GetJobPosting retrieves a job posting with its required skills in order
func (db *DB) GetJobPosting(ctx context.Context, id uuid.UUID) (*types.JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings j WHERE j.id = $1`,
		id,
	)
	job, err := scanJobPosting(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return job, nil
}

// ListJobPool retrieves the job postings selected by filter, newest first
func (db *DB) ListJobPool(ctx context.Context, filter types.JobFilter) ([]types.JobPosting, error) {
	query, args := buildJobPoolQuery(filter)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job pool: %w", err)
	}
	defer rows.Close()

	var jobs []types.JobPosting
	for rows.Next() {
		job, err := scanJobPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job pool: %w", err)
	}
	return jobs, nil
}

// buildJobPoolQuery renders the pool query. The skills condition matches
// canonical keys so it can use the name_normalized index.
func buildJobPoolQuery(filter types.JobFilter) (string, []any) {
	var where []string
	var args []any

	if filter.Type != "" {
		args = append(args, string(filter.Type))
		where = append(where, fmt.Sprintf("j.type = $%d", len(args)))
	}
	if filter.College != "" {
		args = append(args, filter.College)
		where = append(where, fmt.Sprintf("j.college_affiliation = $%d", len(args)))
	}
	if keys := skills.NormalizeAll(filter.Skills); len(keys) > 0 {
		args = append(args, keys)
		where = append(where, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM job_required_skills s WHERE s.job_id = j.id AND s.name_normalized = ANY($%d))",
			len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(jobPostingColumns)
	b.WriteString("\n\t\t FROM job_postings j")
	if len(where) > 0 {
		b.WriteString("\n\t\t WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString("\n\t\t ORDER BY j.created_at DESC, j.id::text ASC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&b, "\n\t\t LIMIT $%d", len(args))
	}
	return b.String(), args
}

func scanJobPosting(row pgx.Row) (*types.JobPosting, error) {
	var j types.JobPosting
	var jobType string
	var location, college *string

	err := row.Scan(&j.ID, &j.Title, &jobType, &j.RecruiterID, &j.MinExperience,
		&location, &college, &j.CreatedAt, &j.RequiredSkills)
	if err != nil {
		return nil, err
	}

	j.Type = types.JobType(jobType)
	j.PreferredLocation = derefString(location)
	j.CollegeAffiliation = derefString(college)
	return &j, nil
}

// UpsertJobPosting inserts or replaces a job posting and its required skills.
// A nil ID is replaced with a new one; a zero CreatedAt defaults to now.
func (db *DB) UpsertJobPosting(ctx context.Context, job *types.JobPosting) error {
	if err := job.Validate(); err != nil {
		return err
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && rErr != pgx.ErrTxClosed {
			_ = rErr
		}
	}()

	err = tx.QueryRow(ctx,
		`INSERT INTO job_postings (id, title, type, recruiter_id, min_experience,
		                           preferred_location, college_affiliation, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()))
		 ON CONFLICT (id) DO UPDATE SET
		     title = $2,
		     type = $3,
		     recruiter_id = $4,
		     min_experience = $5,
		     preferred_location = $6,
		     college_affiliation = $7
		 RETURNING created_at`,
		job.ID, job.Title, string(job.Type), job.RecruiterID, job.MinExperience,
		nullIfEmpty(job.PreferredLocation), nullIfEmpty(job.CollegeAffiliation),
		nullTime(job.CreatedAt),
	).Scan(&job.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert job posting: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM job_required_skills WHERE job_id = $1`, job.ID); err != nil {
		return fmt.Errorf("failed to clear required skills: %w", err)
	}

	for i, name := range job.RequiredSkills {
		_, err := tx.Exec(ctx,
			`INSERT INTO job_required_skills (job_id, position, name, name_normalized)
			 VALUES ($1, $2, $3, $4)`,
			job.ID, i, name, skills.Normalize(name),
		)
		if err != nil {
			return fmt.Errorf("failed to insert required skill %s: %w", name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit job posting: %w", err)
	}
	return nil
}

// CountJobsByRecruiter counts the job postings owned by a recruiter
func (db *DB) CountJobsByRecruiter(ctx context.Context, recruiterID uuid.UUID) (int, error) {
	var n int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_postings WHERE recruiter_id = $1`,
		recruiterID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count job postings: %w", err)
	}
	return n, nil
}
