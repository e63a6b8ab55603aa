// Package schema has models and constants shared by every part of repokit.
package schema

// SARIFSummary is the aggregate view derived from an enhanced SARIF document.
type SARIFSummary struct {
	TotalRuns      int            `json:"total_runs"`
	TotalResults   int            `json:"total_results"`
	BySeverity     map[string]int `json:"by_severity"`
	ByCategory     map[string]int `json:"by_category"`
	RulesTriggered []string       `json:"rules_triggered"`
	TotalRules     int            `json:"total_rules"`
}

// NewSARIFSummary returns an empty summary with the three standard levels present.
func NewSARIFSummary() SARIFSummary {
	return SARIFSummary{
		BySeverity: map[string]int{
			LevelError:   0,
			LevelWarning: 0,
			LevelNote:    0,
		},
		ByCategory:     map[string]int{},
		RulesTriggered: []string{},
	}
}

// TopContributor is one entry of the ranked short-log listing.
type TopContributor struct {
	Name    string `json:"name"`
	Commits int    `json:"commits"`
}

// ContributorStats holds everything mined from version control for the contributors report.
type ContributorStats struct {
	TotalCommits        int              `json:"total_commits"`
	TotalContributors   int              `json:"total_contributors"`
	LastCommitDate      string           `json:"last_commit_date"`
	FirstCommitYear     string           `json:"first_commit_year"`
	CodeContributors    int              `json:"code_contributors"`
	DocContributors     int              `json:"doc_contributors"`
	BugFixers           int              `json:"bug_fixers"`
	FeatureContributors int              `json:"feature_contributors"`
	RecentCount         int              `json:"recent_count"`
	MonthlyCommits      int              `json:"monthly_commits"`
	MonthlyContributors int              `json:"monthly_contributors"`
	TopContributors     []TopContributor `json:"top_contributors"`
	CodePercentage      int              `json:"code_percentage"`
	DocPercentage       int              `json:"doc_percentage"`
	BugPercentage       int              `json:"bug_percentage"`
	FeaturePercentage   int              `json:"feature_percentage"`
}

// SectionOutcome records how one anchored section of the report was handled.
type SectionOutcome struct {
	Section string        `json:"section"`
	Status  SectionStatus `json:"status"`
	Matches int           `json:"matches"`
}
