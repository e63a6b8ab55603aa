package core

import (
	"maps"
	"slices"

	"github.com/broadsage/opensource-template/internal/sarif"
	"github.com/broadsage/opensource-template/schema"
)

// SummarizeSARIF counts results by level, category, and rule across all runs.
func SummarizeSARIF(doc *sarif.Document) schema.SARIFSummary {
	summary := schema.NewSARIFSummary()
	summary.TotalRuns = len(doc.Runs)

	rules := make(map[string]struct{})
	for i := range doc.Runs {
		for j := range doc.Runs[i].Results {
			result := &doc.Runs[i].Results[j]
			summary.TotalResults++
			summary.BySeverity[result.EffectiveLevel()]++
			summary.ByCategory[result.Category()]++
			rules[result.RuleIDOrUnknown()] = struct{}{}
		}
	}

	if len(rules) > 0 {
		summary.RulesTriggered = slices.Sorted(maps.Keys(rules))
	}
	summary.TotalRules = len(summary.RulesTriggered)
	return summary
}
