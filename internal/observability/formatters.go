// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/jobboard/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func joinTruncated(items []string, maxLen int) string {
	s := strings.Join(items, ", ")
	if len(s) > maxLen {
		s = s[:maxLen-3] + "..."
	}
	return s
}

// PrintRankedFeed outputs the tier breakdown and the top opportunities.
func (p *Printer) PrintRankedFeed(feed *types.RankedFeed) {
	if feed == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Strategy: %s (score: %s)\n", feed.SearchStrategy, feed.ScoreStrategy))
	if feed.HasUserSkills {
		sb.WriteString(fmt.Sprintf("Skills:   %s\n", joinTruncated(feed.UserSkills, 40)))
	} else {
		sb.WriteString("Skills:   (none)\n")
	}
	sb.WriteString(fmt.Sprintf("Tiers:    %d skills-based, %d on-campus, %d general\n",
		feed.Breakdown.SkillsBased, feed.Breakdown.OnCampus, feed.Breakdown.General))

	if len(feed.Opportunities) > 0 {
		sb.WriteString("\n")
	}
	count := min(len(feed.Opportunities), maxItemsToShow)
	for i := 0; i < count; i++ {
		opp := feed.Opportunities[i]
		title := opp.Title
		if title == "" {
			title = opp.ID.String()
		}
		sb.WriteString(fmt.Sprintf("#%d  %s [%s]\n", i+1, title, opp.Tier))
		sb.WriteString(fmt.Sprintf("    Score: %.2f", opp.MatchScore))
		if opp.MatchingSkillsCount > 0 {
			sb.WriteString(fmt.Sprintf("  Matched: %d/%d", opp.MatchingSkillsCount, len(opp.RequiredSkills)))
		}
		sb.WriteString("\n")
		if len(opp.MatchingSkills) > 0 {
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", joinTruncated(opp.MatchingSkills, 40)))
		}
	}
	if len(feed.Opportunities) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more opportunities\n", len(feed.Opportunities)-maxItemsToShow))
	}

	sb.WriteString("\n")
	sb.WriteString(feed.Message)

	p.printBox(fmt.Sprintf("RANKED OPPORTUNITIES (%d)", feed.TotalCount), sb.String())
}

// PrintMatchResult outputs a single job/candidate score with its breakdown.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job:        %s\n", result.JobID))
	sb.WriteString(fmt.Sprintf("Candidate:  %s\n", result.CandidateID))
	sb.WriteString(fmt.Sprintf("Strategy:   %s\n", result.Strategy))
	sb.WriteString(fmt.Sprintf("Score:      %.2f\n", result.Score))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Skills:     %d/%d", result.Breakdown.SkillsEarned, result.Breakdown.SkillsNeeded))
	if len(result.MatchingSkills) > 0 {
		sb.WriteString(fmt.Sprintf(" (%s)", joinTruncated(result.MatchingSkills, 30)))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Experience: %s\n", checkmark(result.Breakdown.ExperienceMet)))
	sb.WriteString(fmt.Sprintf("Location:   %s", checkmark(result.Breakdown.LocationMet)))

	p.printBox("MATCH SCORE", sb.String())
}

func checkmark(ok bool) string {
	if ok {
		return "✓ met"
	}
	return "✗ not met"
}

// PrintAnalytics outputs the status funnel, monthly trend and latest events.
func (p *Printer) PrintAnalytics(summary *types.AnalyticsSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applications: %d\n", summary.TotalApplications))
	sb.WriteString(fmt.Sprintf("  applied %d · shortlisted %d · rejected %d · hired %d\n",
		summary.ByStatus.Applied, summary.ByStatus.Shortlisted, summary.ByStatus.Rejected, summary.ByStatus.Hired))
	sb.WriteString(fmt.Sprintf("Conversion:   %.2f%%\n", summary.ConversionRate))
	sb.WriteString(fmt.Sprintf("Per job:      %.2f\n", summary.AverageApplicationsPerJob))
	sb.WriteString(fmt.Sprintf("Per student:  %.2f\n", summary.AverageApplicationsPerStudent))

	if summary.Placement != nil {
		pl := summary.Placement
		sb.WriteString(fmt.Sprintf("Placement:    %d/%d students (%.2f%%)\n", pl.PlacedStudents, pl.TotalStudents, pl.PlacementRate))
	}

	if len(summary.MonthlyTrend) > 0 {
		sb.WriteString(fmt.Sprintf("\nLast %d months:\n", summary.WindowMonths))
		for _, m := range summary.MonthlyTrend {
			sb.WriteString(fmt.Sprintf("  %s  %4d applied  %3d hired\n", m.Month, m.Applications, m.Hired))
		}
	}

	if len(summary.RecentActivity) > 0 {
		sb.WriteString("\nRecent:\n")
		count := min(len(summary.RecentActivity), maxItemsToShow)
		for i := 0; i < count; i++ {
			ev := summary.RecentActivity[i]
			sb.WriteString(fmt.Sprintf("  %s  %s\n", ev.CreatedAt.Format("2006-01-02"), ev.Label))
		}
		if len(summary.RecentActivity) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(summary.RecentActivity)-maxItemsToShow))
		}
	}

	p.printBox("APPLICATION ANALYTICS", strings.TrimSuffix(sb.String(), "\n"))
}
