package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/broadsage/opensource-template/core"
	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/internal/outwriter"
)

// sarifCmd enhances a SARIF file and summarizes its findings.
var sarifCmd = &cobra.Command{
	Use:   "sarif <input-file>",
	Short: "Enhance a SARIF file and summarize its findings.",
	Long: `Normalize a SARIF 2.1.0 document produced by a static-analysis scanner.

The enhanced document:
- Declares the canonical 2.1.0 schema and version
- Carries optional metadata in its top-level properties
- Stamps each run's first invocation with the processing time
- Derives rule levels from security-severity scores
- Keeps errors, warnings, and security-related notes only

A summary of the kept findings is printed to stdout.`,
	Example: `repokit sarif results.sarif
repokit sarif results.sarif --summary summary.json --format table
repokit sarif results.sarif --metadata scan.yaml --export-parquet findings.parquet`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ow := outwriter.NewOutWriter(os.Stdout, os.Stderr)
		if err := core.ExecuteSARIFProcessing(rootCtx, cfg, ow); err != nil {
			contract.LogFatal("Error processing SARIF", err)
		}
	},
}
