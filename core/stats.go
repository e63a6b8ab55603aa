package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/broadsage/opensource-template/schema"
)

// countLines returns the number of non-blank lines.
func countLines(out []byte) int {
	count := 0
	for line := range strings.SplitSeq(string(out), "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// parseCount reads a single integer, degrading to 0.
func parseCount(out []byte) int {
	n, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return 0
	}
	return n
}

// firstLine returns the first line without surrounding whitespace.
func firstLine(out []byte) string {
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return strings.TrimSpace(line)
}

// percentage returns part/total as a whole percentage, rounding halves to even.
func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(part) * 100 / float64(total)))
}

// parseTopContributors reads "<count> <name>" lines, skipping malformed ones.
func parseTopContributors(out []byte, limit int) []schema.TopContributor {
	top := []schema.TopContributor{}
	for line := range strings.SplitSeq(string(out), "\n") {
		if len(top) == limit {
			break
		}
		trimmed := strings.TrimSpace(line)
		idx := strings.IndexFunc(trimmed, unicode.IsSpace)
		if idx < 0 {
			continue
		}
		commits, err := strconv.Atoi(trimmed[:idx])
		if err != nil {
			continue
		}
		top = append(top, schema.TopContributor{
			Name:    strings.TrimSpace(trimmed[idx:]),
			Commits: commits,
		})
	}
	return top
}
