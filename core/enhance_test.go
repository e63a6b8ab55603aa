package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broadsage/opensource-template/internal/sarif"
)

var fixedNow = time.Date(2025, time.November, 3, 10, 4, 5, 123456789, time.UTC)

const enhanceInput = `{
  "version": "2.0.0",
  "properties": {"owner": "old", "keep": true},
  "runs": [
    {
      "tool": {"driver": {"name": "CodeQL", "rules": [
        {"id": "go/sql-injection", "properties": {"security-severity": "9.8"}},
        {"id": "go/path-injection", "properties": {"security-severity": 7.5}, "defaultConfiguration": {"level": "note", "enabled": false}},
        {"id": "go/unused", "properties": {"security-severity": " 2.0 "}},
        {"id": "go/style", "properties": {"tags": ["maintainability"]}}
      ]}},
      "invocations": [{"executionSuccessful": true, "startTimeUtc": "2020-01-01T00:00:00Z"}, {"executionSuccessful": false}],
      "results": [
        {"ruleId": "go/sql-injection", "level": "error", "message": {"text": "a"}},
        {"ruleId": "go/unused", "level": "note", "message": {"text": "b"}},
        {"ruleId": "go/Security-Audit", "message": {"text": "c"}},
        {"ruleId": "go/path-injection", "level": "warning", "message": {"text": "d"}},
        {"ruleId": "go/style", "level": "none", "message": {"text": "e"}},
        {"message": {"text": "f"}}
      ]
    },
    {
      "tool": {"driver": {"name": "Other"}}
    }
  ]
}`

func loadEnhanceInput(t *testing.T) *sarif.Document {
	t.Helper()
	doc, err := sarif.Parse([]byte(enhanceInput))
	require.NoError(t, err)
	return doc
}

func TestEnhanceSARIF(t *testing.T) {
	doc := loadEnhanceInput(t)
	metadata := map[string]json.RawMessage{
		"owner":    json.RawMessage(`"security-team"`),
		"pipeline": json.RawMessage(`{"id": 42}`),
	}

	require.NoError(t, EnhanceSARIF(doc, metadata, fixedNow))

	assert.Equal(t, sarif.SchemaURI, doc.Schema)
	assert.Equal(t, sarif.Version, doc.Version)

	t.Run("metadata merged with overwrite", func(t *testing.T) {
		assert.JSONEq(t, `"security-team"`, string(doc.Properties["owner"]))
		assert.JSONEq(t, `true`, string(doc.Properties["keep"]))
		assert.JSONEq(t, `{"id": 42}`, string(doc.Properties["pipeline"]))
	})

	t.Run("invocations stamped", func(t *testing.T) {
		require.Len(t, doc.Runs[0].Invocations, 2)
		assert.Equal(t, "2025-11-03T10:04:05.123456Z", doc.Runs[0].Invocations[0].StartTimeUTC)
		assert.Empty(t, doc.Runs[0].Invocations[1].StartTimeUTC)
		require.Len(t, doc.Runs[1].Invocations, 1)
		assert.Equal(t, "2025-11-03T10:04:05.123456Z", doc.Runs[1].Invocations[0].StartTimeUTC)
	})

	t.Run("rule levels from security severity", func(t *testing.T) {
		rules := doc.Runs[0].Tool.Driver.Rules
		expected := []string{"error", "warning", "note"}
		for i, level := range expected {
			require.NotNil(t, rules[i].DefaultConfiguration, rules[i].ID)
			assert.Equal(t, level, rules[i].DefaultConfiguration.Level, rules[i].ID)
		}
		assert.Nil(t, rules[3].DefaultConfiguration, "rules without a score are untouched")

		data, err := json.Marshal(rules[1])
		require.NoError(t, err)
		assert.NotContains(t, string(data), "enabled", "defaultConfiguration is replaced in full")
	})

	t.Run("results filtered in order", func(t *testing.T) {
		var ids []string
		for _, r := range doc.Runs[0].Results {
			ids = append(ids, r.RuleID)
		}
		assert.Equal(t, []string{"go/sql-injection", "go/Security-Audit", "go/path-injection"}, ids)
		assert.NotNil(t, doc.Runs[1].Results)
		assert.Empty(t, doc.Runs[1].Results)
	})

	t.Run("output carries results array and unknown members", func(t *testing.T) {
		data, err := sarif.Marshal(doc)
		require.NoError(t, err)
		out := string(data)
		assert.Contains(t, out, `"results": []`)
		assert.Contains(t, out, `"executionSuccessful": true`)
		assert.Contains(t, out, `"name": "Other"`)
	})
}

func TestEnhanceSARIF_EmptyMetadataLeavesPropertiesAbsent(t *testing.T) {
	doc, err := sarif.Parse([]byte(`{"runs": []}`))
	require.NoError(t, err)

	require.NoError(t, EnhanceSARIF(doc, map[string]json.RawMessage{}, fixedNow))
	assert.Nil(t, doc.Properties)
	assert.Equal(t, sarif.Version, doc.Version)
}

func TestEnhanceSARIF_Idempotent(t *testing.T) {
	doc := loadEnhanceInput(t)
	require.NoError(t, EnhanceSARIF(doc, nil, fixedNow))
	first, err := sarif.Marshal(doc)
	require.NoError(t, err)

	again, err := sarif.Parse(first)
	require.NoError(t, err)
	require.NoError(t, EnhanceSARIF(again, nil, fixedNow))
	second, err := sarif.Marshal(again)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestEnhanceSARIF_InvalidSecuritySeverity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"non-numeric string", `"high"`},
		{"empty string", `""`},
		{"null", `null`},
		{"object", `{"score": 9}`},
		{"array", `[9]`},
		{"boolean", `true`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := `{"version": "2.0.0", "runs": [{}, {"tool": {"driver": {"rules": [` +
				`{"id": "ok", "properties": {"security-severity": "9.0"}},` +
				`{"id": "go/bad", "properties": {"security-severity": ` + tt.value + `}}]}},` +
				`"results": [{"ruleId": "x", "level": "none"}]}]}`
			doc, err := sarif.Parse([]byte(input))
			require.NoError(t, err)

			err = EnhanceSARIF(doc, nil, fixedNow)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSecuritySeverity)
			assert.Contains(t, err.Error(), "run 1")
			assert.Contains(t, err.Error(), `"go/bad"`)

			assert.Equal(t, "2.0.0", doc.Version, "document must not be modified on failure")
			assert.Len(t, doc.Runs[1].Results, 1)
			assert.Nil(t, doc.Runs[1].Tool.Driver.Rules[0].DefaultConfiguration)
		})
	}
}

func TestSeverityLevel(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{10.0, "error"},
		{9.0, "error"},
		{8.99, "warning"},
		{7.0, "warning"},
		{6.99, "note"},
		{0, "note"},
		{-1, "note"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, severityLevel(tt.score), "score %v", tt.score)
	}
}

func TestFormatInvocationTime(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2025, time.January, 2, 3, 4, 5, 6000, loc)
	assert.Equal(t, "2025-01-02T01:04:05.000006Z", FormatInvocationTime(local))
}

func TestEnhanceSARIF_ResultFilter(t *testing.T) {
	tests := []struct {
		name   string
		result string
		kept   bool
	}{
		{"error", `{"ruleId": "a/x", "level": "error"}`, true},
		{"warning", `{"ruleId": "a/x", "level": "warning"}`, true},
		{"capitalized error", `{"ruleId": "a/x", "level": "Error"}`, false},
		{"capitalized warning", `{"ruleId": "a/x", "level": "Warning"}`, false},
		{"capitalized security note", `{"ruleId": "a/security-x", "level": "Note"}`, false},
		{"security note", `{"ruleId": "a/SECURITY-x", "level": "note"}`, true},
		{"absent level with security rule", `{"ruleId": "a/security-x"}`, true},
		{"absent level without security rule", `{"ruleId": "a/x"}`, false},
		{"empty level", `{"ruleId": "b/security-y", "level": ""}`, false},
		{"null level", `{"ruleId": "c/security-z", "level": null}`, false},
		{"none", `{"ruleId": "a/security-x", "level": "none"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := sarif.Parse([]byte(`{"runs": [{"results": [` + tt.result + `]}]}`))
			require.NoError(t, err)

			require.NoError(t, EnhanceSARIF(doc, nil, fixedNow))
			if tt.kept {
				assert.Len(t, doc.Runs[0].Results, 1)
			} else {
				assert.Empty(t, doc.Runs[0].Results)
			}
		})
	}
}

func TestEnhanceThenSummarize(t *testing.T) {
	doc, err := sarif.Parse([]byte(`{"runs": [{"results": [
		{"ruleId": "go/a", "level": "error"},
		{"ruleId": "go/b", "level": "error"},
		{"ruleId": "js/c", "level": "warning"},
		{"ruleId": "py/security-d", "level": "note"},
		{"ruleId": "py/style", "level": "note"}
	]}]}`))
	require.NoError(t, err)

	require.NoError(t, EnhanceSARIF(doc, nil, fixedNow))
	summary := SummarizeSARIF(doc)

	assert.Equal(t, 1, summary.TotalRuns)
	assert.Equal(t, 4, summary.TotalResults)
	assert.Equal(t, map[string]int{"error": 2, "warning": 1, "note": 1}, summary.BySeverity)
	assert.Equal(t, map[string]int{"go": 2, "js": 1, "py": 1}, summary.ByCategory)
	assert.Equal(t, []string{"go/a", "go/b", "js/c", "py/security-d"}, summary.RulesTriggered)
	assert.Equal(t, 4, summary.TotalRules)
}
