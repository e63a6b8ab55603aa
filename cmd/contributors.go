package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/broadsage/opensource-template/core"
	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/internal/gitclient"
	"github.com/broadsage/opensource-template/internal/outwriter"
)

// contributorsCmd refreshes the statistics sections of the contributors report.
var contributorsCmd = &cobra.Command{
	Use:   "contributors",
	Short: "Refresh contributor statistics in CONTRIBUTORS.md.",
	Long: `Mine Git history and rewrite the anchored sections of the contributors report.

Sections rewritten:
- The "## 📊 Contribution Statistics" table
- The "## 🎉 Recent Contributors" paragraph
- The "### <Month> <Year>" highlights block

Sections whose anchor is missing or repeated are left untouched with a warning.`,
	Example: `repokit contributors
repokit contributors --repo ../project --file docs/CONTRIBUTORS.md
repokit contributors --dry-run --vcs-backend go-git`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := gitclient.New(cfg.VCSBackend)
		if err := contract.ResolveRepoRoot(rootCtx, cfg, client); err != nil {
			if errors.Is(err, contract.ErrNotGitRepository) {
				contract.LogFatalMessage("Error: Not in a git repository")
			}
			contract.LogFatal("Error resolving repository", err)
		}

		ow := outwriter.NewOutWriter(os.Stdout, os.Stderr)
		if err := core.ExecuteContributorsUpdate(rootCtx, cfg, client, ow); err != nil {
			contract.LogFatal("Error updating contributors", err)
		}
	},
}
