package core

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/internal/logger"
	"github.com/broadsage/opensource-template/schema"
)

// Query inputs for the contributor categories.
var (
	codePathspecs   = []string{"*.sh", "*.yaml", "*.yml", "*.json", "*.toml", "Makefile"}
	docPathspecs    = []string{"*.md", "*.rst", "*.txt"}
	bugPatterns     = []string{"fix", "bug"}
	featurePatterns = []string{"feat", "feature"}
)

const (
	// recentWindowDays bounds the "recent contributors" query.
	recentWindowDays = 30

	// topContributorLimit is the length of the ranked listing.
	topContributorLimit = 3
)

// CollectContributorStats runs the fixed query battery against repoPath.
// A failing query degrades to empty text and never aborts collection.
// With workers <= 1 the queries run one at a time in battery order; larger
// values run up to that many at once.
func CollectContributorStats(ctx context.Context, client contract.GitClient, repoPath string, now time.Time, workers int) schema.ContributorStats {
	defer logger.Trace("CollectContributorStats", time.Now())

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	recentStart := now.AddDate(0, 0, -recentWindowDays)

	var (
		stats    schema.ContributorStats
		topLines []byte
	)

	// Each query fills its own field.
	battery := []query{
		{"total commits", func() ([]byte, error) {
			return client.CountCommits(ctx, repoPath)
		}, func(out []byte) { stats.TotalCommits = parseCount(out) }},
		{"all contributors", func() ([]byte, error) {
			return client.GetShortlog(ctx, repoPath, 0)
		}, func(out []byte) { stats.TotalContributors = countLines(out) }},
		{"last commit date", func() ([]byte, error) {
			return client.GetLastCommitDate(ctx, repoPath)
		}, func(out []byte) { stats.LastCommitDate = firstLine(out) }},
		{"first commit year", func() ([]byte, error) {
			return client.GetFirstCommitYear(ctx, repoPath)
		}, func(out []byte) { stats.FirstCommitYear = firstLine(out) }},
		{"code contributors", func() ([]byte, error) {
			return client.ListAuthorsForPaths(ctx, repoPath, codePathspecs)
		}, func(out []byte) { stats.CodeContributors = countLines(out) }},
		{"doc contributors", func() ([]byte, error) {
			return client.ListAuthorsForPaths(ctx, repoPath, docPathspecs)
		}, func(out []byte) { stats.DocContributors = countLines(out) }},
		{"bug fixers", func() ([]byte, error) {
			return client.ListAuthorsByMessage(ctx, repoPath, bugPatterns)
		}, func(out []byte) { stats.BugFixers = countLines(out) }},
		{"feature contributors", func() ([]byte, error) {
			return client.ListAuthorsByMessage(ctx, repoPath, featurePatterns)
		}, func(out []byte) { stats.FeatureContributors = countLines(out) }},
		{"recent contributors", func() ([]byte, error) {
			return client.ListAuthorsSince(ctx, repoPath, recentStart)
		}, func(out []byte) { stats.RecentCount = countLines(out) }},
		{"monthly commits", func() ([]byte, error) {
			return client.ListCommitsSince(ctx, repoPath, monthStart)
		}, func(out []byte) { stats.MonthlyCommits = countLines(out) }},
		{"monthly contributors", func() ([]byte, error) {
			return client.ListAuthorsSince(ctx, repoPath, monthStart)
		}, func(out []byte) { stats.MonthlyContributors = countLines(out) }},
		{"top contributors", func() ([]byte, error) {
			return client.GetShortlog(ctx, repoPath, topContributorLimit)
		}, func(out []byte) { topLines = out }},
	}

	q := &queryRunner{repoPath: repoPath}
	if workers <= 1 {
		for _, b := range battery {
			b.store(q.run(b.name, b.fetch))
		}
	} else {
		g := new(errgroup.Group)
		g.SetLimit(workers)
		for _, b := range battery {
			g.Go(func() error {
				b.store(q.run(b.name, b.fetch))
				return nil
			})
		}
		_ = g.Wait() // queries never return errors
	}

	stats.TopContributors = parseTopContributors(topLines, topContributorLimit)

	total := stats.TotalContributors
	stats.CodePercentage = percentage(stats.CodeContributors, total)
	stats.DocPercentage = percentage(stats.DocContributors, total)
	stats.BugPercentage = percentage(stats.BugFixers, total)
	stats.FeaturePercentage = percentage(stats.FeatureContributors, total)
	return stats
}

// query is one entry of the battery.
type query struct {
	name  string
	fetch func() ([]byte, error)
	store func([]byte)
}

// queryRunner logs failed queries and turns them into empty output.
type queryRunner struct {
	repoPath string
}

func (q *queryRunner) run(name string, fn func() ([]byte, error)) []byte {
	out, err := fn()
	if err != nil {
		logger.Get().Debugw("query failed, using empty result", "query", name, "repo", q.repoPath, "error", err)
		return nil
	}
	return out
}
