package contract

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/broadsage/opensource-template/schema"
)

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		input       *ConfigRawInput
		expectError string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:  "empty input uses defaults",
			input: &ConfigRawInput{},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
				assert.Equal(t, schema.TextOut, cfg.Output)
				assert.Equal(t, schema.GitBackend, cfg.VCSBackend)
				assert.True(t, cfg.UseColors)
				assert.True(t, cfg.UseEmojis)
				assert.Equal(t, DefaultRepoPath, cfg.RepoSearchPath)
				assert.Equal(t, DefaultContributorsFile, cfg.ContributorsFile)
				assert.Equal(t, DefaultQueryWorkers, cfg.QueryWorkers)
				assert.Empty(t, cfg.OutputFile)
			},
		},
		{
			name: "sarif input derives enhanced path",
			input: &ConfigRawInput{
				InputPath: filepath.Join("reports", "codeql.sarif"),
				Format:    "JSON",
				Summary:   "summary.json",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, filepath.Join("reports", "enhanced_codeql.sarif"), cfg.OutputFile)
				assert.Equal(t, schema.JSONOut, cfg.Output)
				assert.Equal(t, "summary.json", cfg.SummaryFile)
			},
		},
		{
			name:  "explicit output wins",
			input: &ConfigRawInput{InputPath: "a.sarif", Output: "b.sarif"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "b.sarif", cfg.OutputFile)
			},
		},
		{
			name:  "contributors file relative to repo",
			input: &ConfigRawInput{Repo: "project", File: "docs/CONTRIBUTORS.md", VCSBackend: "GO-GIT", DryRun: true},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, filepath.Join("project", "docs", "CONTRIBUTORS.md"), cfg.ContributorsFile)
				assert.Equal(t, schema.GoGitBackend, cfg.VCSBackend)
				assert.True(t, cfg.DryRun)
			},
		},
		{
			name:  "colors and emojis disabled",
			input: &ConfigRawInput{Color: "no", Emoji: "false", Width: 100},
			check: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.UseColors)
				assert.False(t, cfg.UseEmojis)
				assert.Equal(t, 100, cfg.Width)
			},
		},
		{
			name:        "invalid format",
			input:       &ConfigRawInput{Format: "csv"},
			expectError: "invalid --format value 'csv'",
		},
		{
			name:        "invalid backend",
			input:       &ConfigRawInput{VCSBackend: "svn"},
			expectError: "invalid --vcs-backend value 'svn'",
		},
		{
			name:        "invalid log level",
			input:       &ConfigRawInput{LogLevel: "loud"},
			expectError: "invalid --log-level value 'loud'",
		},
		{
			name:        "invalid color",
			input:       &ConfigRawInput{Color: "maybe"},
			expectError: "invalid --color value 'maybe'",
		},
		{
			name:  "query workers opt in",
			input: &ConfigRawInput{QueryWorkers: 4},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 4, cfg.QueryWorkers)
			},
		},
		{
			name:        "negative query workers",
			input:       &ConfigRawInput{QueryWorkers: -1},
			expectError: "invalid --query-workers value '-1'",
		},
		{
			name:        "negative width",
			input:       &ConfigRawInput{Width: -1},
			expectError: "invalid --width value '-1'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := ProcessAndValidate(cfg, tt.input)
			if tt.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestResolveRepoRoot(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		client := new(MockGitClient)
		client.On("GetRepoRoot", ctx, mock.AnythingOfType("string")).Return("/mock/repo/root", nil)
		cfg := &Config{RepoSearchPath: "."}
		require.NoError(t, ResolveRepoRoot(ctx, cfg, client))
		assert.Equal(t, "/mock/repo/root", cfg.RepoPath)
		client.AssertExpectations(t)
	})

	t.Run("failure wraps sentinel", func(t *testing.T) {
		client := new(MockGitClient)
		client.On("GetRepoRoot", ctx, mock.AnythingOfType("string")).Return("", errors.New("fatal: not a git repository"))
		cfg := &Config{RepoSearchPath: "."}
		err := ResolveRepoRoot(ctx, cfg, client)
		assert.ErrorIs(t, err, ErrNotGitRepository)
		assert.Empty(t, cfg.RepoPath)
	})
}

func TestConfigClock(t *testing.T) {
	fixed := time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)
	cfg := &Config{Now: func() time.Time { return fixed }}
	assert.Equal(t, fixed, cfg.Clock())

	var unset Config
	assert.WithinDuration(t, time.Now(), unset.Clock(), time.Minute)
}

func TestDefaultEnhancedPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"results.sarif", "enhanced_results.sarif"},
		{filepath.Join("out", "codeql", "go.sarif"), filepath.Join("out", "codeql", "enhanced_go.sarif")},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, DefaultEnhancedPath(tt.input))
		})
	}
}
