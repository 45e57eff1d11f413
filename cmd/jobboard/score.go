package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/engine"
	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one job posting against a candidate",
	RunE:  runScore,
}

var (
	scoreCandidate string
	scoreJobs      string
	scoreJobID     string
	scoreStrategy  string
	scoreOutput    string
	scoreVerbose   bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreCandidate, "candidate", "c", "", "Path to CandidateProfile JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreJobs, "jobs", "j", "", "Path to JobPosting array JSON file (required)")
	scoreCmd.Flags().StringVar(&scoreJobID, "job-id", "", "ID of the job posting to score (required)")
	scoreCmd.Flags().StringVarP(&scoreStrategy, "strategy", "s", "", "Score strategy: skills or composite (default from config)")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to output MatchResult JSON file (default stdout)")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	for _, name := range []string{"candidate", "jobs", "job-id"} {
		if err := scoreCmd.MarkFlagRequired(name); err != nil {
			panic(fmt.Sprintf("failed to mark %s flag as required: %v", name, err))
		}
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	jobID, err := uuid.Parse(scoreJobID)
	if err != nil {
		return fmt.Errorf("invalid --job-id %q: %w", scoreJobID, err)
	}

	candidate, err := loadCandidate(scoreCandidate, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	jobs, err := loadJobs(scoreJobs, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	store := engine.NewMemoryStore([]types.CandidateProfile{*candidate}, jobs, nil)
	eng, err := engine.New(store, engineOptions(cfg), log)
	if err != nil {
		return err
	}

	result, err := eng.Score(cmd.Context(), jobID, candidate.ID, scoreStrategy)
	if err != nil {
		return fmt.Errorf("failed to score match: %w", err)
	}

	if scoreVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintMatchResult(result)
	}
	return writeOutput(cmd.OutOrStdout(), scoreOutput, result)
}
