package mcp_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/broadsage/opensource-template/internal/contract"
	mcp_internal "github.com/broadsage/opensource-template/internal/mcp"
	"github.com/broadsage/opensource-template/schema"
)

const sampleSARIF = `{
  "version": "2.1.0",
  "runs": [{
    "tool": {"driver": {"name": "scanner", "rules": [
      {"id": "R1", "properties": {"security-severity": "9.5", "tags": ["security"]}},
      {"id": "R2", "properties": {"security-severity": "not-a-number"}}
    ]}},
    "results": [
      {"ruleId": "R1", "level": "error", "message": {"text": "bad thing"}},
      {"ruleId": "R3", "level": "note", "message": {"text": "style nit"}}
    ]
  }]
}`

const validSARIF = `{
  "version": "2.1.0",
  "runs": [{
    "tool": {"driver": {"name": "scanner", "rules": [
      {"id": "R1", "properties": {"security-severity": "9.5"}}
    ]}},
    "results": [
      {"ruleId": "R1", "level": "error", "message": {"text": "bad thing"}},
      {"ruleId": "R3", "level": "note", "message": {"text": "style nit"}}
    ]
  }]
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func callTool(t *testing.T, name string, args map[string]any, newClient mcp_internal.ClientFactory) *mcp.CallToolResult {
	t.Helper()
	fixedNow := time.Date(2025, time.November, 3, 10, 4, 5, 0, time.UTC)
	baseCfg := &contract.Config{
		RepoSearchPath: ".",
		VCSBackend:     schema.GitBackend,
		Now:            func() time.Time { return fixedNow },
	}
	s := mcp_internal.NewMCPServer(baseCfg, newClient, "test")

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	return res
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]any
		want string
	}{
		{"summarize_sarif missing path", "summarize_sarif", map[string]any{}, "path is required"},
		{"enhance_sarif missing path", "enhance_sarif", map[string]any{}, "path is required"},
		{"summarize_sarif unreadable file", "summarize_sarif", map[string]any{"path": "/does/not/exist.sarif"}, "processing SARIF failed"},
		{"collect_contributor_stats invalid backend", "collect_contributor_stats", map[string]any{"vcs_backend": "svn"}, "invalid vcs_backend 'svn'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, tt.tool, tt.args, nil)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, textOf(t, res), tt.want)
		})
	}
}

func TestMCPServerHandlers_SARIF(t *testing.T) {
	t.Run("summarize_sarif", func(t *testing.T) {
		path := writeTemp(t, "scan.sarif", validSARIF)
		res := callTool(t, "summarize_sarif", map[string]any{"path": path}, nil)
		require.False(t, res.IsError, textOf(t, res))

		text := textOf(t, res)
		assert.Contains(t, text, `"total_results": 1`)
		assert.Contains(t, text, `"R1"`)
		assert.NotContains(t, text, `"R3"`)
	})

	t.Run("enhance_sarif with metadata", func(t *testing.T) {
		path := writeTemp(t, "scan.sarif", validSARIF)
		meta := writeTemp(t, "meta.yaml", "scan_id: nightly-42\n")
		res := callTool(t, "enhance_sarif", map[string]any{"path": path, "metadata_path": meta}, nil)
		require.False(t, res.IsError, textOf(t, res))

		text := textOf(t, res)
		assert.Contains(t, text, `"nightly-42"`)
		assert.Contains(t, text, `"startTimeUtc": "2025-11-03T10:04:05.000000Z"`)
		assert.NotContains(t, text, "style nit")

		_, err := os.Stat(filepath.Join(filepath.Dir(path), "enhanced_scan.sarif"))
		assert.True(t, os.IsNotExist(err), "enhance_sarif must not write files")
	})

	t.Run("enhance_sarif invalid severity", func(t *testing.T) {
		path := writeTemp(t, "scan.sarif", sampleSARIF)
		res := callTool(t, "enhance_sarif", map[string]any{"path": path}, nil)
		assert.True(t, res.IsError)
		assert.Contains(t, textOf(t, res), "security-severity")
	})
}

func TestMCPServerHandlers_ContributorStats(t *testing.T) {
	t.Run("not a repository", func(t *testing.T) {
		client := new(contract.MockGitClient)
		client.On("GetRepoRoot", mock.Anything, mock.Anything).Return("", contract.ErrNotGitRepository)
		factory := func(schema.VCSBackend) contract.GitClient { return client }

		res := callTool(t, "collect_contributor_stats", map[string]any{"repo_path": "/tmp"}, factory)
		assert.True(t, res.IsError)
		assert.Contains(t, textOf(t, res), "not in a git repository")
	})

	t.Run("stats from mocked history", func(t *testing.T) {
		failure := errors.New("unused query")
		client := new(contract.MockGitClient)
		client.On("GetRepoRoot", mock.Anything, mock.Anything).Return("/repo", nil)
		client.On("CountCommits", mock.Anything, "/repo").Return([]byte("42\n"), nil)
		client.On("GetShortlog", mock.Anything, "/repo", mock.Anything).Return([]byte("    40\tAlice\n     2\tbob\n"), nil)
		client.On("GetLastCommitDate", mock.Anything, "/repo").Return([]byte("2025-11-01"), nil)
		client.On("GetFirstCommitYear", mock.Anything, "/repo").Return([]byte("2022"), nil)
		client.On("ListAuthorsForPaths", mock.Anything, mock.Anything, mock.Anything).Return(nil, failure)
		client.On("ListAuthorsByMessage", mock.Anything, mock.Anything, mock.Anything).Return(nil, failure)
		client.On("ListAuthorsSince", mock.Anything, mock.Anything, mock.Anything).Return(nil, failure)
		client.On("ListCommitsSince", mock.Anything, mock.Anything, mock.Anything).Return(nil, failure)

		var gotBackend schema.VCSBackend
		factory := func(b schema.VCSBackend) contract.GitClient {
			gotBackend = b
			return client
		}

		res := callTool(t, "collect_contributor_stats", map[string]any{"vcs_backend": "go-git"}, factory)
		require.False(t, res.IsError, textOf(t, res))
		assert.Equal(t, schema.GoGitBackend, gotBackend)

		text := textOf(t, res)
		assert.Contains(t, text, `"total_commits": 42`)
		assert.Contains(t, text, `"total_contributors": 2`)
		assert.Contains(t, text, `"first_commit_year": "2022"`)
	})
}
