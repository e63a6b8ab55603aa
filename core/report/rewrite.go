// Package report rewrites the generated sections of the contributors markdown.
package report

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/broadsage/opensource-template/schema"
)

// Section names reported in outcomes.
const (
	StatisticsSection = "statistics"
	RecentSection     = "recent"
	MonthlySection    = "monthly"
)

// statsTableHead is the fixed heading and table header anchoring the statistics block.
const statsTableHead = "## 📊 Contribution Statistics\n\n" +
	"| Contributor Type | Count | Percentage |\n" +
	"|------------------|-------|------------|"

const recentHead = "## 🎉 Recent Contributors\n\n"

const monthNames = "January|February|March|April|May|June|July|August|September|October|November|December"

// Layouts for the dates written into the report.
const (
	updatedLayout = "January 02, 2006"
	monthLayout   = "January 2006"
)

var (
	statsPattern   = regexp.MustCompile(`(?s)(` + regexp.QuoteMeta(statsTableHead) + `)(.*?\n\n> Statistics last updated:[^\n]*)(\n)`)
	recentPattern  = regexp.MustCompile(`(?s)(` + regexp.QuoteMeta(recentHead) + `)(.*?)(\n\n## )`)
	monthlyPattern = regexp.MustCompile(`(?sm)^### (?:` + monthNames + `) [0-9]{4}.*?(\n## |\z)`)
)

// sectionBreak starts the next level-two heading.
const sectionBreak = "\n## "

// section pairs an anchor with the text that replaces its match.
type section struct {
	name    string
	pattern *regexp.Regexp
	replace func(text string, loc []int) string

	// valid rejects matches that would swallow unrelated text. Nil accepts all.
	valid func(text string, loc []int) bool
}

// Rewrite replaces the statistics table, the recent contributors paragraph, and
// the monthly highlights block. Each anchor must match exactly once; otherwise
// that section is left as-is and its outcome says why. Text outside matched
// spans is preserved byte-for-byte.
func Rewrite(markdown string, stats schema.ContributorStats, now time.Time) (string, []schema.SectionOutcome) {
	sections := []section{
		{
			name:    StatisticsSection,
			pattern: statsPattern,
			replace: func(text string, loc []int) string {
				return group(text, loc, 1) + statisticsBody(stats, now) + group(text, loc, 3)
			},
			valid: func(text string, loc []int) bool {
				return !strings.Contains(group(text, loc, 2), sectionBreak)
			},
		},
		{
			name:    RecentSection,
			pattern: recentPattern,
			replace: func(text string, loc []int) string {
				return group(text, loc, 1) + recentBody(stats) + group(text, loc, 3)
			},
		},
		{
			name:    MonthlySection,
			pattern: monthlyPattern,
			replace: func(text string, loc []int) string {
				return monthlyBody(stats, now) + group(text, loc, 1)
			},
		},
	}

	outcomes := make([]schema.SectionOutcome, 0, len(sections))
	for _, s := range sections {
		matches := s.pattern.FindAllStringSubmatchIndex(markdown, -1)
		if s.valid != nil {
			matches = slices.DeleteFunc(matches, func(loc []int) bool { return !s.valid(markdown, loc) })
		}
		outcome := schema.SectionOutcome{Section: s.name, Matches: len(matches)}
		switch len(matches) {
		case 0:
			outcome.Status = schema.SectionMissing
		case 1:
			loc := matches[0]
			markdown = markdown[:loc[0]] + s.replace(markdown, loc) + markdown[loc[1]:]
			outcome.Status = schema.SectionUpdated
		default:
			outcome.Status = schema.SectionAmbiguous
		}
		outcomes = append(outcomes, outcome)
	}
	return markdown, outcomes
}

// group returns submatch n of a FindStringSubmatchIndex location.
func group(text string, loc []int, n int) string {
	if loc[2*n] < 0 {
		return ""
	}
	return text[loc[2*n]:loc[2*n+1]]
}

func statisticsBody(stats schema.ContributorStats, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "| Code Contributors | %d | %d%% |\n", stats.CodeContributors, stats.CodePercentage)
	fmt.Fprintf(&sb, "| Documentation Contributors | %d | %d%% |\n", stats.DocContributors, stats.DocPercentage)
	fmt.Fprintf(&sb, "| Bug Fixers | %d | %d%% |\n", stats.BugFixers, stats.BugPercentage)
	fmt.Fprintf(&sb, "| Feature Contributors | %d | %d%% |\n", stats.FeatureContributors, stats.FeaturePercentage)
	sb.WriteString("| Community Helpers | 0 | 0% |\n")
	fmt.Fprintf(&sb, "| **Total Contributors** | **%d** | **100%%** |\n", stats.TotalContributors)
	sb.WriteString("\n")
	sb.WriteString("> Statistics last updated: " + now.Format(updatedLayout))
	return sb.String()
}

func recentBody(stats schema.ContributorStats) string {
	if stats.RecentCount == 0 {
		return "*No recent contributions yet. Be the first!*"
	}
	return fmt.Sprintf("**%d contributors in the last 30 days** 🚀\n\n"+
		"*Thank you for keeping the project active!*", stats.RecentCount)
}

func monthlyBody(stats schema.ContributorStats, now time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %s\n\n", now.Format(monthLayout))
	sb.WriteString("📊 **This Month Statistics:**\n\n")
	fmt.Fprintf(&sb, "- 📈 Commits: %d\n", stats.MonthlyCommits)
	fmt.Fprintf(&sb, "- 👥 Active Contributors: %d\n", stats.MonthlyContributors)
	fmt.Fprintf(&sb, "- 📅 Last Activity: %s\n\n", stats.LastCommitDate)
	sb.WriteString("🎯 **Project Progress:**\n\n")
	fmt.Fprintf(&sb, "- 🚀 Total Commits: %d\n", stats.TotalCommits)
	fmt.Fprintf(&sb, "- 👥 Total Contributors: %d\n", stats.TotalContributors)
	fmt.Fprintf(&sb, "- 📅 Project Started: %s\n\n", stats.FirstCommitYear)
	sb.WriteString("🏆 **Top Contributors:**\n\n")
	for _, c := range stats.TopContributors {
		fmt.Fprintf(&sb, "- %s (%d commits)\n", c.Name, c.Commits)
	}
	return sb.String()
}
