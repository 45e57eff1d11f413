package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobboard/internal/engine"
	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/types"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank opportunities for a candidate from JSON snapshots",
	Long:  "Builds the tiered opportunity feed (skills-based, on-campus, general) for the candidate in --candidate over the job postings in --jobs.",
	RunE:  runRank,
}

var (
	rankCandidate string
	rankJobs      string
	rankStrategy  string
	rankOutput    string
	rankVerbose   bool
)

func init() {
	rankCmd.Flags().StringVarP(&rankCandidate, "candidate", "c", "", "Path to CandidateProfile JSON file (required)")
	rankCmd.Flags().StringVarP(&rankJobs, "jobs", "j", "", "Path to JobPosting array JSON file (required)")
	rankCmd.Flags().StringVarP(&rankStrategy, "strategy", "s", "", "Score strategy: skills or composite (default from config)")
	rankCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output RankedFeed JSON file (default stdout)")
	rankCmd.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	if err := rankCmd.MarkFlagRequired("candidate"); err != nil {
		panic(fmt.Sprintf("failed to mark candidate flag as required: %v", err))
	}
	if err := rankCmd.MarkFlagRequired("jobs"); err != nil {
		panic(fmt.Sprintf("failed to mark jobs flag as required: %v", err))
	}

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, _ []string) error {
	candidate, err := loadCandidate(rankCandidate, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	jobs, err := loadJobs(rankJobs, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	opts := engineOptions(cfg)
	if rankStrategy != "" {
		opts.Strategy = rankStrategy
	}

	store := engine.NewMemoryStore([]types.CandidateProfile{*candidate}, jobs, nil)
	eng, err := engine.New(store, opts, log)
	if err != nil {
		return err
	}

	feed, err := eng.Opportunities(cmd.Context(), candidate.ID)
	if err != nil {
		return fmt.Errorf("failed to rank opportunities: %w", err)
	}

	if rankVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintRankedFeed(feed)
	}
	return writeOutput(cmd.OutOrStdout(), rankOutput, feed)
}
