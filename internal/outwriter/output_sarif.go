package outwriter

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/schema"
)

// sarifSummaryTitle heads the text and table renderings.
const sarifSummaryTitle = "CodeQL Analysis Summary:"

// standardLevels are always shown, in this order.
var standardLevels = []string{schema.LevelError, schema.LevelWarning, schema.LevelNote}

// PrintSARIFSummary renders the summary as text, table, or JSON.
func PrintSARIFSummary(w io.Writer, summary schema.SARIFSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeJSON(w, summary)
	case schema.TableOut:
		return printSARIFTable(w, summary, cfg)
	default:
		return printSARIFText(w, summary, cfg)
	}
}

// levelCount renders one severity count, colored when enabled.
func levelCount(summary schema.SARIFSummary, level string, cfg *contract.Config) string {
	n := summary.BySeverity[level]
	if cfg.UseColors {
		return contract.GetColorCount(level, n)
	}
	return strconv.Itoa(n)
}

// printSARIFText writes the fixed-label summary consumed by CI logs.
func printSARIFText(w io.Writer, summary schema.SARIFSummary, cfg *contract.Config) error {
	var lines []string
	lines = append(lines,
		sarifSummaryTitle,
		fmt.Sprintf("  Total Results: %d", summary.TotalResults),
		fmt.Sprintf("  Errors: %s", levelCount(summary, schema.LevelError, cfg)),
		fmt.Sprintf("  Warnings: %s", levelCount(summary, schema.LevelWarning, cfg)),
		fmt.Sprintf("  Notes: %s", levelCount(summary, schema.LevelNote, cfg)),
		fmt.Sprintf("  Rules Triggered: %d", summary.TotalRules),
	)
	if len(summary.ByCategory) > 0 {
		lines = append(lines, "  By Category:")
		for _, category := range slices.Sorted(maps.Keys(summary.ByCategory)) {
			lines = append(lines, fmt.Sprintf("    %s: %d", category, summary.ByCategory[category]))
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// printSARIFTable writes the summary as three tables: totals, categories, and rules.
func printSARIFTable(w io.Writer, summary schema.SARIFSummary, cfg *contract.Config) error {
	if _, err := fmt.Fprintln(w, sarifSummaryTitle); err != nil {
		return err
	}

	totals := [][]string{
		{"Total Runs", strconv.Itoa(summary.TotalRuns)},
		{"Total Results", strconv.Itoa(summary.TotalResults)},
	}
	for _, level := range standardLevels {
		totals = append(totals, []string{levelLabel(level), levelCount(summary, level, cfg)})
	}
	for _, level := range slices.Sorted(maps.Keys(summary.BySeverity)) {
		if !slices.Contains(standardLevels, level) {
			totals = append(totals, []string{levelLabel(level), levelCount(summary, level, cfg)})
		}
	}
	totals = append(totals, []string{"Rules Triggered", strconv.Itoa(summary.TotalRules)})
	if err := renderTable(w, []string{"Metric", "Count"}, totals); err != nil {
		return err
	}

	if len(summary.ByCategory) > 0 {
		categories := make([][]string, 0, len(summary.ByCategory))
		for _, category := range slices.Sorted(maps.Keys(summary.ByCategory)) {
			categories = append(categories, []string{category, strconv.Itoa(summary.ByCategory[category])})
		}
		if err := renderTable(w, []string{"Category", "Results"}, categories); err != nil {
			return err
		}
	}

	if len(summary.RulesTriggered) > 0 {
		maxWidth := GetMaxTableTextWidth(cfg)
		rules := make([][]string, 0, len(summary.RulesTriggered))
		for i, rule := range summary.RulesTriggered {
			rules = append(rules, []string{strconv.Itoa(i + 1), contract.TruncateText(rule, maxWidth)})
		}
		if err := renderTable(w, []string{"#", "Rule"}, rules); err != nil {
			return err
		}
	}
	return nil
}

// levelLabel maps a level to its plural display label.
func levelLabel(level string) string {
	switch level {
	case schema.LevelError:
		return "Errors"
	case schema.LevelWarning:
		return "Warnings"
	case schema.LevelNote:
		return "Notes"
	default:
		return "Level: " + level
	}
}

// renderTable draws one right-aligned table with a header row.
func renderTable(w io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("error adding table data: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("error rendering table: %w", err)
	}
	return nil
}
