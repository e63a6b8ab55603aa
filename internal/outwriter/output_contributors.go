package outwriter

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/schema"
)

// updatedDateLayout matches the date written into the report.
const updatedDateLayout = "January 02, 2006"

// summaryLine is one labeled line with an optional emoji prefix.
type summaryLine struct {
	emoji string
	text  string
}

func (l summaryLine) render(useEmojis bool) string {
	if useEmojis && l.emoji != "" {
		return l.emoji + " " + l.text
	}
	return l.text
}

// PrintContributorsSummary writes the human-readable statistics summary.
func PrintContributorsSummary(w io.Writer, stats schema.ContributorStats, cfg *contract.Config, now time.Time) error {
	name := filepath.Base(cfg.ContributorsFile)
	status := summaryLine{"✅", fmt.Sprintf("Successfully updated %s!", name)}
	if cfg.DryRun {
		status = summaryLine{"🔍", fmt.Sprintf("Dry run: %s was not modified", name)}
	}

	header := []summaryLine{
		status,
		{},
		{"📈", "Statistics summary:"},
	}
	details := []summaryLine{
		{"📊", fmt.Sprintf("Total Contributors: %d", stats.TotalContributors)},
		{"💻", fmt.Sprintf("Code Contributors: %d (%d%%)", stats.CodeContributors, stats.CodePercentage)},
		{"📖", fmt.Sprintf("Documentation Contributors: %d (%d%%)", stats.DocContributors, stats.DocPercentage)},
		{"🐛", fmt.Sprintf("Bug Fixers: %d (%d%%)", stats.BugFixers, stats.BugPercentage)},
		{"✨", fmt.Sprintf("Feature Contributors: %d (%d%%)", stats.FeatureContributors, stats.FeaturePercentage)},
		{"🔄", fmt.Sprintf("Total Commits: %d", stats.TotalCommits)},
		{"📅", fmt.Sprintf("Recent Activity: %d contributors (30 days)", stats.RecentCount)},
		{"📆", fmt.Sprintf("This Month: %d commits, %d contributors", stats.MonthlyCommits, stats.MonthlyContributors)},
		{"🕒", "Updated: " + now.Format(updatedDateLayout)},
	}

	for _, line := range header {
		if _, err := fmt.Fprintln(w, line.render(cfg.UseEmojis)); err != nil {
			return err
		}
	}
	for _, line := range details {
		if _, err := fmt.Fprintln(w, "   "+line.render(cfg.UseEmojis)); err != nil {
			return err
		}
	}
	return nil
}

// PrintSectionWarnings lists report sections that were left unchanged.
func PrintSectionWarnings(w io.Writer, outcomes []schema.SectionOutcome) {
	for _, o := range outcomes {
		if o.Status == schema.SectionUpdated {
			continue
		}
		_, _ = fmt.Fprintf(w, "Warning: %s section not updated: anchor %s (%d matches)\n", o.Section, o.Status, o.Matches)
	}
}
