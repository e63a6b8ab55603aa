// Package gitclient selects and implements GitClient backends.
package gitclient

import (
	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/schema"
)

// GitClient is the query adapter consumed by the contributor collector.
type GitClient = contract.GitClient

// New returns the client for the given backend. Unknown backends fall back to
// the git binary; config validation rejects them before this point.
func New(backend schema.VCSBackend) GitClient {
	if backend == schema.GoGitBackend {
		return NewGoGitClient()
	}
	return contract.NewLocalGitClient()
}
