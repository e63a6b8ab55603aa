package gitclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/broadsage/opensource-template/internal/contract"
)

// shortHashLen matches git's default abbreviation for small repositories.
const shortHashLen = 7

// GoGitClient implements GitClient in-process with go-git, formatting every
// answer the way the git CLI would print it.
type GoGitClient struct{}

var _ contract.GitClient = &GoGitClient{} // Compile-time check

// NewGoGitClient creates a new go-git backed client.
func NewGoGitClient() *GoGitClient {
	return &GoGitClient{}
}

func (c *GoGitClient) open(repoPath string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %q: %w", repoPath, err)
	}
	return repo, nil
}

// walk visits commits reachable from HEAD, newest committer time first.
func (c *GoGitClient) walk(ctx context.Context, repoPath string, opts git.LogOptions, fn func(*object.Commit) error) error {
	repo, err := c.open(repoPath)
	if err != nil {
		return err
	}
	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("resolve HEAD in %q: %w", repoPath, err)
	}
	opts.From = head.Hash()
	opts.Order = git.LogOrderCommitterTime
	iter, err := repo.Log(&opts)
	if err != nil {
		return fmt.Errorf("read log in %q: %w", repoPath, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(commit *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return fn(commit)
	})
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// authors collects deduplicated author names from a walk.
func (c *GoGitClient) authors(ctx context.Context, repoPath string, opts git.LogOptions, keep func(*object.Commit) bool) ([]byte, error) {
	var names []string
	err := c.walk(ctx, repoPath, opts, func(commit *object.Commit) error {
		if keep == nil || keep(commit) {
			names = append(names, commit.Author.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contract.UniqueLines([]byte(strings.Join(names, "\n"))), nil
}

// GetRepoRoot implements the GitClient interface.
func (c *GoGitClient) GetRepoRoot(_ context.Context, contextPath string) (string, error) {
	repo, err := c.open(contextPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contract.ErrNotGitRepository, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("%w: %v", contract.ErrNotGitRepository, err)
	}
	return wt.Filesystem.Root(), nil
}

// CountCommits implements the GitClient interface.
func (c *GoGitClient) CountCommits(ctx context.Context, repoPath string) ([]byte, error) {
	count := 0
	err := c.walk(ctx, repoPath, git.LogOptions{}, func(*object.Commit) error {
		count++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fmt.Appendf(nil, "%d\n", count), nil
}

// GetShortlog implements the GitClient interface.
func (c *GoGitClient) GetShortlog(ctx context.Context, repoPath string, limit int) ([]byte, error) {
	counts := make(map[string]int)
	err := c.walk(ctx, repoPath, git.LogOptions{}, func(commit *object.Commit) error {
		counts[commit.Author.Name]++
		return nil
	})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}

	var sb strings.Builder
	for _, name := range names {
		fmt.Fprintf(&sb, "%6d\t%s\n", counts[name], name)
	}
	return []byte(sb.String()), nil
}

// GetLastCommitDate implements the GitClient interface.
func (c *GoGitClient) GetLastCommitDate(ctx context.Context, repoPath string) ([]byte, error) {
	repo, err := c.open(repoPath)
	if err != nil {
		return nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD in %q: %w", repoPath, err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("read HEAD commit in %q: %w", repoPath, err)
	}
	return []byte(commit.Author.When.Format(time.DateOnly)), nil
}

// GetFirstCommitYear implements the GitClient interface.
// The oldest commit is the last one visited in committer-time order.
func (c *GoGitClient) GetFirstCommitYear(ctx context.Context, repoPath string) ([]byte, error) {
	var oldest *object.Commit
	err := c.walk(ctx, repoPath, git.LogOptions{}, func(commit *object.Commit) error {
		oldest = commit
		return nil
	})
	if err != nil {
		return nil, err
	}
	if oldest == nil {
		return nil, nil
	}
	return []byte(oldest.Author.When.Format("2006")), nil
}

// ListAuthorsForPaths implements the GitClient interface.
func (c *GoGitClient) ListAuthorsForPaths(ctx context.Context, repoPath string, pathspecs []string) ([]byte, error) {
	opts := git.LogOptions{
		PathFilter: func(p string) bool { return contract.MatchesPathspec(p, pathspecs) },
	}
	return c.authors(ctx, repoPath, opts, nil)
}

// ListAuthorsByMessage implements the GitClient interface.
// Patterns are regular expressions, any of which may match.
func (c *GoGitClient) ListAuthorsByMessage(ctx context.Context, repoPath string, patterns []string) ([]byte, error) {
	re, err := regexp.Compile(strings.Join(patterns, "|"))
	if err != nil {
		return nil, fmt.Errorf("invalid message pattern: %w", err)
	}
	return c.authors(ctx, repoPath, git.LogOptions{}, func(commit *object.Commit) bool {
		return re.MatchString(commit.Message)
	})
}

// ListAuthorsSince implements the GitClient interface.
func (c *GoGitClient) ListAuthorsSince(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	return c.authors(ctx, repoPath, git.LogOptions{Since: &since}, nil)
}

// ListCommitsSince implements the GitClient interface.
func (c *GoGitClient) ListCommitsSince(ctx context.Context, repoPath string, since time.Time) ([]byte, error) {
	var hashes []string
	err := c.walk(ctx, repoPath, git.LogOptions{Since: &since}, func(commit *object.Commit) error {
		hashes = append(hashes, commit.Hash.String()[:shortHashLen])
		return nil
	})
	if err != nil {
		return nil, err
	}
	return []byte(strings.Join(hashes, "\n")), nil
}
