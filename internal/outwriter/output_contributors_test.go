package outwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/schema"
)

var fixedNow = time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)

func sampleStats() schema.ContributorStats {
	return schema.ContributorStats{
		TotalCommits:        42,
		TotalContributors:   4,
		CodeContributors:    3,
		CodePercentage:      75,
		DocContributors:     1,
		DocPercentage:       25,
		BugFixers:           2,
		BugPercentage:       50,
		RecentCount:         2,
		MonthlyCommits:      5,
		MonthlyContributors: 2,
	}
}

func TestPrintContributorsSummary(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{ContributorsFile: filepath.Join("repo", "CONTRIBUTORS.md"), UseEmojis: true}

	require.NoError(t, PrintContributorsSummary(&buf, sampleStats(), cfg, fixedNow))

	expected := "✅ Successfully updated CONTRIBUTORS.md!\n" +
		"\n" +
		"📈 Statistics summary:\n" +
		"   📊 Total Contributors: 4\n" +
		"   💻 Code Contributors: 3 (75%)\n" +
		"   📖 Documentation Contributors: 1 (25%)\n" +
		"   🐛 Bug Fixers: 2 (50%)\n" +
		"   ✨ Feature Contributors: 0 (0%)\n" +
		"   🔄 Total Commits: 42\n" +
		"   📅 Recent Activity: 2 contributors (30 days)\n" +
		"   📆 This Month: 5 commits, 2 contributors\n" +
		"   🕒 Updated: November 03, 2025\n"
	assert.Equal(t, expected, buf.String())
}

func TestPrintContributorsSummary_PlainDryRun(t *testing.T) {
	var buf bytes.Buffer
	cfg := &contract.Config{ContributorsFile: "CONTRIBUTORS.md", DryRun: true}

	require.NoError(t, PrintContributorsSummary(&buf, sampleStats(), cfg, fixedNow))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "Dry run: CONTRIBUTORS.md was not modified", lines[0])
	assert.Equal(t, "   Total Contributors: 4", lines[3])
	assert.NotContains(t, buf.String(), "📊")
}

func TestPrintSectionWarnings(t *testing.T) {
	var buf bytes.Buffer
	PrintSectionWarnings(&buf, []schema.SectionOutcome{
		{Section: "statistics", Status: schema.SectionUpdated, Matches: 1},
		{Section: "recent", Status: schema.SectionMissing, Matches: 0},
		{Section: "monthly", Status: schema.SectionAmbiguous, Matches: 2},
	})

	assert.Equal(t,
		"Warning: recent section not updated: anchor missing (0 matches)\n"+
			"Warning: monthly section not updated: anchor ambiguous (2 matches)\n",
		buf.String())
}

func TestOutWriter(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ow := NewOutWriter(&stdout, &stderr)

	t.Run("dry run summary goes to stderr", func(t *testing.T) {
		stdout.Reset()
		stderr.Reset()
		cfg := &contract.Config{ContributorsFile: "CONTRIBUTORS.md", DryRun: true}
		require.NoError(t, ow.WriteMarkdown("# doc\n"))
		require.NoError(t, ow.WriteContributorsSummary(sampleStats(), cfg, fixedNow))
		assert.Equal(t, "# doc\n", stdout.String())
		assert.Contains(t, stderr.String(), "Statistics summary:")
	})

	t.Run("write file announces destination", func(t *testing.T) {
		stderr.Reset()
		path := filepath.Join(t.TempDir(), "summary.json")
		require.NoError(t, ow.WriteFile(path, []byte("{}\n"), "Wrote summary"))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "{}\n", string(data))
		assert.Equal(t, "💾 Wrote summary to "+path+"\n", stderr.String())
	})

	t.Run("write file failure", func(t *testing.T) {
		stderr.Reset()
		err := ow.WriteFile(filepath.Join(t.TempDir(), "missing", "x.json"), []byte("{}"), "Wrote summary")
		assert.Error(t, err)
		assert.Empty(t, stderr.String())
	})
}
