package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/jobboard/internal/analytics"
	"github.com/jonathan/jobboard/internal/observability"
	"github.com/jonathan/jobboard/internal/types"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Aggregate application analytics from a JSON snapshot",
	Long:  "Computes the status funnel, conversion rate, per-job and per-student averages, the zero-filled monthly trend and recent activity over the records in --applications.",
	RunE:  runAnalytics,
}

var (
	analyticsApplications string
	analyticsMonths       int
	analyticsNow          string
	analyticsStudents     int
	analyticsJobs         int
	analyticsPlacement    bool
	analyticsOutput       string
	analyticsVerbose      bool
)

func init() {
	analyticsCmd.Flags().StringVarP(&analyticsApplications, "applications", "a", "", "Path to ApplicationRecord array JSON file (required)")
	analyticsCmd.Flags().IntVarP(&analyticsMonths, "months", "m", 0, "Trailing months in the trend (default from config)")
	analyticsCmd.Flags().StringVar(&analyticsNow, "now", "", "Anchor time for the trend window, RFC 3339 or YYYY-MM-DD (default current time)")
	analyticsCmd.Flags().IntVar(&analyticsStudents, "students", 0, "Student population for per-student averages (default distinct candidates)")
	analyticsCmd.Flags().IntVar(&analyticsJobs, "job-count", 0, "Job population for per-job averages (default distinct jobs)")
	analyticsCmd.Flags().BoolVar(&analyticsPlacement, "placement", false, "Include college placement statistics")
	analyticsCmd.Flags().StringVarP(&analyticsOutput, "out", "o", "", "Path to output AnalyticsSummary JSON file (default stdout)")
	analyticsCmd.Flags().BoolVarP(&analyticsVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	if err := analyticsCmd.MarkFlagRequired("applications"); err != nil {
		panic(fmt.Sprintf("failed to mark applications flag as required: %v", err))
	}

	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, _ []string) error {
	if analyticsMonths < 0 {
		return &types.InvalidInputError{Field: "months", Message: "must not be negative"}
	}
	now, err := parseNow(analyticsNow)
	if err != nil {
		return err
	}

	apps, err := loadApplications(analyticsApplications, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	months := analyticsMonths
	if months == 0 {
		months = cfg.WindowMonths
	}

	summary := analytics.Aggregate(apps,
		analytics.Window{Months: months, Now: now},
		analytics.Options{
			RecentLimit:      cfg.RecentLimit,
			Population:       types.Population{Jobs: analyticsJobs, Students: analyticsStudents},
			IncludePlacement: analyticsPlacement,
		},
	)
	log.Debug("aggregated analytics snapshot",
		zap.String("file", analyticsApplications),
		zap.Int("applications", summary.TotalApplications),
	)

	if analyticsVerbose {
		observability.NewPrinter(cmd.ErrOrStderr()).PrintAnalytics(summary)
	}
	return writeOutput(cmd.OutOrStdout(), analyticsOutput, summary)
}

func parseNow(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now(), nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &types.InvalidInputError{Field: "now", Message: fmt.Sprintf("%q is not RFC 3339 or YYYY-MM-DD", raw)}
}
