package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobboard/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load JSON snapshots into the database",
	Long:  "Upserts candidates and job postings, then applications, from the same snapshot files the offline commands read.",
	RunE:  runImport,
}

var (
	importCandidates   []string
	importJobs         string
	importApplications string
)

func init() {
	importCmd.Flags().StringSliceVarP(&importCandidates, "candidate", "c", nil, "Path to a CandidateProfile JSON file (repeatable)")
	importCmd.Flags().StringVarP(&importJobs, "jobs", "j", "", "Path to JobPosting array JSON file")
	importCmd.Flags().StringVarP(&importApplications, "applications", "a", "", "Path to ApplicationRecord array JSON file")
	rootCmd.AddCommand(importCmd)
}

// snapshotSet is everything one import run loads.
type snapshotSet struct {
	candidates   []types.CandidateProfile
	jobs         []types.JobPosting
	applications []types.ApplicationRecord
}

func loadSnapshotSet(cmd *cobra.Command) (*snapshotSet, error) {
	if len(importCandidates) == 0 && importJobs == "" && importApplications == "" {
		return nil, fmt.Errorf("nothing to import: pass --candidate, --jobs or --applications")
	}

	set := &snapshotSet{}
	for _, path := range importCandidates {
		c, err := loadCandidate(path, cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		set.candidates = append(set.candidates, *c)
	}
	if importJobs != "" {
		jobs, err := loadJobs(importJobs, cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		set.jobs = jobs
	}
	if importApplications != "" {
		apps, err := loadApplications(importApplications, cmd.ErrOrStderr())
		if err != nil {
			return nil, err
		}
		set.applications = apps
	}
	return set, nil
}

func runImport(cmd *cobra.Command, _ []string) error {
	// decode everything before touching the database
	set, err := loadSnapshotSet(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	database, err := connect(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	for i := range set.candidates {
		if err := database.UpsertCandidate(ctx, &set.candidates[i]); err != nil {
			return fmt.Errorf("candidate %s: %w", set.candidates[i].ID, err)
		}
	}
	for i := range set.jobs {
		if err := database.UpsertJobPosting(ctx, &set.jobs[i]); err != nil {
			return fmt.Errorf("job %s: %w", set.jobs[i].ID, err)
		}
	}
	// applications reference both, so they go last
	for i := range set.applications {
		if err := database.InsertApplication(ctx, &set.applications[i]); err != nil {
			return fmt.Errorf("application %s: %w", set.applications[i].ID, err)
		}
	}

	log.Info("import complete",
		zap.Int("candidates", len(set.candidates)),
		zap.Int("jobs", len(set.jobs)),
		zap.Int("applications", len(set.applications)),
	)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d candidate(s), %d job(s), %d application(s)\n",
		len(set.candidates), len(set.jobs), len(set.applications))
	return nil
}
