package contract

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock of GitClient.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// CountCommits implements the GitClient interface.
func (m *MockGitClient) CountCommits(ctx context.Context, repoPath string) ([]byte, error) {
	ret := m.Called(ctx, repoPath)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetShortlog implements the GitClient interface.
func (m *MockGitClient) GetShortlog(ctx context.Context, repoPath string, limit int) ([]byte, error) {
	ret := m.Called(ctx, repoPath, limit)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetLastCommitDate implements the GitClient interface.
func (m *MockGitClient) GetLastCommitDate(ctx context.Context, repoPath string) ([]byte, error) {
	ret := m.Called(ctx, repoPath)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// GetFirstCommitYear implements the GitClient interface.
func (m *MockGitClient) GetFirstCommitYear(ctx context.Context, repoPath string) ([]byte, error) {
	ret := m.Called(ctx, repoPath)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ListAuthorsForPaths implements the GitClient interface.
func (m *MockGitClient) ListAuthorsForPaths(ctx context.Context, repoPath string, pathspecs []string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, pathspecs)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ListAuthorsByMessage implements the GitClient interface.
func (m *MockGitClient) ListAuthorsByMessage(ctx context.Context, repoPath string, patterns []string) ([]byte, error) {
	ret := m.Called(ctx, repoPath, patterns)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ListAuthorsSince implements the GitClient interface.
func (m *MockGitClient) ListAuthorsSince(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	ret := m.Called(ctx, repoPath, since)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}

// ListCommitsSince implements the GitClient interface.
func (m *MockGitClient) ListCommitsSince(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	ret := m.Called(ctx, repoPath, since)
	output, _ := ret.Get(0).([]byte)
	return output, ret.Error(1)
}
