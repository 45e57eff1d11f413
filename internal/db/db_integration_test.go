//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/types"
)

func getTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx := context.Background()
	db, err := Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func cleanupCandidate(t *testing.T, db *DB, id uuid.UUID) {
	t.Helper()
	_, _ = db.pool.Exec(context.Background(), "DELETE FROM candidates WHERE id = $1", id)
}

func cleanupJob(t *testing.T, db *DB, id uuid.UUID) {
	t.Helper()
	_, _ = db.pool.Exec(context.Background(), "DELETE FROM job_postings WHERE id = $1", id)
}

// =============================================================================
// Store Integration Tests
// =============================================================================

func TestIntegration_CandidateRoundTrip(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	c := &types.CandidateProfile{
		Name:               "Integration Candidate",
		Skills:             types.SkillList{{Name: "Go", Level: types.LevelAdvance}, {Name: "go", Level: types.LevelBeginner}},
		ExperienceYears:    2,
		Location:           types.Location{City: "Pune", Country: "India"},
		CollegeAffiliation: "Integration College " + uuid.NewString(),
	}
	if err := db.UpsertCandidate(ctx, c); err != nil {
		t.Fatalf("UpsertCandidate failed: %v", err)
	}
	defer cleanupCandidate(t, db, c.ID)

	got, err := db.GetCandidate(ctx, c.ID)
	if err != nil {
		t.Fatalf("GetCandidate failed: %v", err)
	}
	if got == nil {
		t.Fatal("GetCandidate returned nil")
	}
	if len(got.Skills) != 1 || got.Skills[0].Level != types.LevelAdvance {
		t.Errorf("Skills = %+v, want one advance Go skill", got.Skills)
	}
	if got.Location.City != "Pune" {
		t.Errorf("Location.City = %q, want Pune", got.Location.City)
	}

	n, err := db.CountCandidatesByCollege(ctx, c.CollegeAffiliation)
	if err != nil {
		t.Fatalf("CountCandidatesByCollege failed: %v", err)
	}
	if n != 1 {
		t.Errorf("CountCandidatesByCollege = %d, want 1", n)
	}

	missing, err := db.GetCandidate(ctx, uuid.New())
	if err != nil || missing != nil {
		t.Errorf("GetCandidate(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func TestIntegration_JobPoolAndApplications(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	recruiter := uuid.New()
	college := "Pool College " + uuid.NewString()
	skill := "skill-" + uuid.NewString()

	student := &types.CandidateProfile{Name: "Pool Student", CollegeAffiliation: college}
	if err := db.UpsertCandidate(ctx, student); err != nil {
		t.Fatalf("UpsertCandidate failed: %v", err)
	}
	defer cleanupCandidate(t, db, student.ID)

	older := &types.JobPosting{Title: "Older", Type: types.JobTypeCompany, RecruiterID: &recruiter,
		RequiredSkills: []string{"Zig", skill}, CreatedAt: time.Now().Add(-48 * time.Hour)}
	newer := &types.JobPosting{Title: "Newer", Type: types.JobTypeCompany, RecruiterID: &recruiter,
		RequiredSkills: []string{skill}, CreatedAt: time.Now().Add(-time.Hour)}
	campus := &types.JobPosting{Title: "Campus", Type: types.JobTypeOnCampus, CollegeAffiliation: college}
	for _, job := range []*types.JobPosting{older, newer, campus} {
		if err := db.UpsertJobPosting(ctx, job); err != nil {
			t.Fatalf("UpsertJobPosting(%s) failed: %v", job.Title, err)
		}
		defer cleanupJob(t, db, job.ID)
	}

	t.Run("skills pool", func(t *testing.T) {
		jobs, err := db.ListJobPool(ctx, types.JobFilter{Type: types.JobTypeCompany, Skills: []string{" " + skill + " "}})
		if err != nil {
			t.Fatalf("ListJobPool failed: %v", err)
		}
		if len(jobs) != 2 || jobs[0].Title != "Newer" {
			t.Fatalf("ListJobPool = %+v, want Newer then Older", jobs)
		}
		if got := jobs[1].RequiredSkills; len(got) != 2 || got[0] != "Zig" {
			t.Errorf("RequiredSkills = %v, want job order preserved", got)
		}
	})

	t.Run("campus pool", func(t *testing.T) {
		jobs, err := db.ListJobPool(ctx, types.JobFilter{Type: types.JobTypeOnCampus, College: college, Limit: 5})
		if err != nil {
			t.Fatalf("ListJobPool failed: %v", err)
		}
		if len(jobs) != 1 || jobs[0].ID != campus.ID {
			t.Errorf("ListJobPool = %+v, want the campus job", jobs)
		}
	})

	t.Run("applications", func(t *testing.T) {
		app := &types.ApplicationRecord{JobID: newer.ID, CandidateID: student.ID, Status: types.StatusHired}
		if err := db.InsertApplication(ctx, app); err != nil {
			t.Fatalf("InsertApplication failed: %v", err)
		}

		scope := types.AnalyticsScope{Kind: types.ScopeRecruiter, ID: recruiter.String()}
		apps, err := db.ListApplications(ctx, scope, time.Time{})
		if err != nil {
			t.Fatalf("ListApplications failed: %v", err)
		}
		if len(apps) != 1 || apps[0].JobTitle != "Newer" || apps[0].CandidateName != "Pool Student" {
			t.Errorf("ListApplications = %+v", apps)
		}

		pop, err := db.CountPopulation(ctx, scope)
		if err != nil {
			t.Fatalf("CountPopulation failed: %v", err)
		}
		if pop.Jobs != 2 {
			t.Errorf("Jobs = %d, want 2", pop.Jobs)
		}
	})
}
