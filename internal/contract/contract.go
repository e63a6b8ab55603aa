// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"
)

// GitClient defines the fixed set of history queries the contributor report needs.
// Every query returns raw text in the shape the git CLI prints it, so the
// collector parses one format regardless of which backend answered.
// This allows the collection logic to be tested without needing a real git executable.
type GitClient interface {
	// --- Repository Resolution ---

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)

	// --- Whole-History Queries ---

	// CountCommits returns the number of commits reachable from HEAD.
	CountCommits(ctx context.Context, repoPath string) ([]byte, error)

	// GetShortlog returns "<count>\t<author>" lines ordered by commit count,
	// truncated to limit lines when limit is positive.
	GetShortlog(ctx context.Context, repoPath string, limit int) ([]byte, error)

	// GetLastCommitDate returns the author date of HEAD as YYYY-MM-DD.
	GetLastCommitDate(ctx context.Context, repoPath string) ([]byte, error)

	// GetFirstCommitYear returns the author year of the oldest commit.
	GetFirstCommitYear(ctx context.Context, repoPath string) ([]byte, error)

	// --- Author Queries (deduplicated, one name per line) ---

	// ListAuthorsForPaths returns authors of commits touching any of the pathspecs.
	ListAuthorsForPaths(ctx context.Context, repoPath string, pathspecs []string) ([]byte, error)

	// ListAuthorsByMessage returns authors of commits whose message matches any pattern.
	ListAuthorsByMessage(ctx context.Context, repoPath string, patterns []string) ([]byte, error)

	// ListAuthorsSince returns authors of commits made after since.
	ListAuthorsSince(ctx context.Context, repoPath string, since time.Time) ([]byte, error)

	// --- Commit Queries ---

	// ListCommitsSince returns one abbreviated hash per commit made after since.
	ListCommitsSince(ctx context.Context, repoPath string, since time.Time) ([]byte, error)
}
