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
// Candidate Methods
// -----------------------------------------------------------------------------

// GetCandidate retrieves a candidate profile with its skills
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*types.CandidateProfile, error) {
	var c types.CandidateProfile
	var raw, city, state, country, college *string

	err := db.pool.QueryRow(ctx,
		`SELECT id, name, experience_years, location_raw, location_city,
		        location_state, location_country, college_affiliation
		 FROM candidates WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.ExperienceYears, &raw, &city, &state, &country, &college)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	c.Location = types.Location{
		Raw:     derefString(raw),
		City:    derefString(city),
		State:   derefString(state),
		Country: derefString(country),
	}
	c.CollegeAffiliation = derefString(college)

	rows, err := db.pool.Query(ctx,
		`SELECT name, level FROM candidate_skills
		 WHERE candidate_id = $1 ORDER BY name_normalized`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate skills: %w", err)
	}
	defer rows.Close()

	c.Skills = types.SkillList{}
	for rows.Next() {
		var name, level string
		if err := rows.Scan(&name, &level); err != nil {
			return nil, fmt.Errorf("failed to scan candidate skill: %w", err)
		}
		c.Skills = append(c.Skills, types.SkillRecord{Name: name, Level: types.ParseSkillLevel(level)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidate skills: %w", err)
	}

	return &c, nil
}

// UpsertCandidate inserts or replaces a candidate and its skill set.
// A nil ID is replaced with a new one.
func (db *DB) UpsertCandidate(ctx context.Context, c *types.CandidateProfile) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
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

	_, err = tx.Exec(ctx,
		`INSERT INTO candidates (id, name, experience_years, location_raw, location_city,
		                         location_state, location_country, college_affiliation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (id) DO UPDATE SET
		     name = $2,
		     experience_years = $3,
		     location_raw = $4,
		     location_city = $5,
		     location_state = $6,
		     location_country = $7,
		     college_affiliation = $8,
		     updated_at = NOW()`,
		c.ID, c.Name, c.ExperienceYears,
		nullIfEmpty(c.Location.Raw), nullIfEmpty(c.Location.City),
		nullIfEmpty(c.Location.State), nullIfEmpty(c.Location.Country),
		nullIfEmpty(c.CollegeAffiliation),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert candidate: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM candidate_skills WHERE candidate_id = $1`, c.ID); err != nil {
		return fmt.Errorf("failed to clear candidate skills: %w", err)
	}

	for _, skill := range dedupeSkills(c.Skills) {
		_, err := tx.Exec(ctx,
			`INSERT INTO candidate_skills (candidate_id, name, name_normalized, level)
			 VALUES ($1, $2, $3, $4)`,
			c.ID, skill.Name, skills.Normalize(skill.Name), string(skill.Level),
		)
		if err != nil {
			return fmt.Errorf("failed to insert candidate skill %s: %w", skill.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit candidate: %w", err)
	}
	return nil
}

// dedupeSkills collapses records sharing a canonical key, keeping the
// highest level, and drops empty names.
func dedupeSkills(list types.SkillList) []types.SkillRecord {
	index := make(map[string]int, len(list))
	var out []types.SkillRecord
	for _, skill := range list {
		key := skills.Normalize(skill.Name)
		if key == "" {
			continue
		}
		if skill.Level == "" {
			skill.Level = types.LevelUnverified
		}
		skill.Name = strings.TrimSpace(skill.Name)
		if i, ok := index[key]; ok {
			if skill.Level.Weight() > out[i].Level.Weight() {
				out[i].Level = skill.Level
			}
			continue
		}
		index[key] = len(out)
		out = append(out, skill)
	}
	return out
}

// CountCandidatesByCollege counts candidates affiliated with a college
func (db *DB) CountCandidatesByCollege(ctx context.Context, college string) (int, error) {
	var n int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM candidates WHERE college_affiliation = $1`,
		college,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return n, nil
}
