package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrNotGitRepository is returned when a path is not inside a Git work tree.
var ErrNotGitRepository = errors.New("not in a git repository")

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotGitRepository, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CountCommits implements the GitClient interface.
func (c *LocalGitClient) CountCommits(ctx context.Context, repoPath string) ([]byte, error) {
	return c.Run(ctx, repoPath, "rev-list", "--count", "HEAD")
}

// GetShortlog implements the GitClient interface.
// HEAD is passed explicitly; without a revision shortlog reads stdin.
func (c *LocalGitClient) GetShortlog(ctx context.Context, repoPath string, limit int) ([]byte, error) {
	out, err := c.Run(ctx, repoPath, "shortlog", "-sn", "HEAD")
	if err != nil {
		return nil, err
	}
	return HeadLines(out, limit), nil
}

// GetLastCommitDate implements the GitClient interface.
func (c *LocalGitClient) GetLastCommitDate(ctx context.Context, repoPath string) ([]byte, error) {
	return c.Run(ctx, repoPath, "log", "-1", "--pretty=format:%ad", "--date=format:%Y-%m-%d")
}

// GetFirstCommitYear implements the GitClient interface.
func (c *LocalGitClient) GetFirstCommitYear(ctx context.Context, repoPath string) ([]byte, error) {
	out, err := c.Run(ctx, repoPath, "log", "--reverse", "--pretty=format:%ad", "--date=format:%Y")
	if err != nil {
		return nil, err
	}
	return HeadLines(out, 1), nil
}

// ListAuthorsForPaths implements the GitClient interface.
func (c *LocalGitClient) ListAuthorsForPaths(ctx context.Context, repoPath string, pathspecs []string) ([]byte, error) {
	args := append([]string{"log", "--pretty=format:%an", "--"}, pathspecs...)
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	return UniqueLines(out), nil
}

// ListAuthorsByMessage implements the GitClient interface.
// Repeated --grep options match commits whose message matches any of them.
func (c *LocalGitClient) ListAuthorsByMessage(ctx context.Context, repoPath string, patterns []string) ([]byte, error) {
	args := []string{"log", "--pretty=format:%an"}
	for _, p := range patterns {
		args = append(args, "--grep="+p)
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	return UniqueLines(out), nil
}

// ListAuthorsSince implements the GitClient interface.
func (c *LocalGitClient) ListAuthorsSince(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	out, err := c.Run(ctx, repoPath, "log", "--since="+since.Format(DateTimeFormat), "--pretty=format:%an")
	if err != nil {
		return nil, err
	}
	return UniqueLines(out), nil
}

// ListCommitsSince implements the GitClient interface.
func (c *LocalGitClient) ListCommitsSince(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	return c.Run(ctx, repoPath, "log", "--since="+since.Format(DateTimeFormat), "--pretty=format:%h")
}
