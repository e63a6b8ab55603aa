// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"time"

	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewOutWriter creates an output writer bound to the given streams.
func NewOutWriter(stdout, stderr io.Writer) *OutWriter {
	return &OutWriter{Stdout: stdout, Stderr: stderr}
}

// WriteSARIFSummary prints the SARIF summary using the configured output format.
func (ow *OutWriter) WriteSARIFSummary(summary schema.SARIFSummary, cfg *contract.Config) error {
	return PrintSARIFSummary(ow.Stdout, summary, cfg)
}

// WriteContributorsSummary prints the post-update statistics report.
// In dry-run mode stdout carries the markdown, so the report goes to stderr.
func (ow *OutWriter) WriteContributorsSummary(stats schema.ContributorStats, cfg *contract.Config, now time.Time) error {
	w := ow.Stdout
	if cfg.DryRun {
		w = ow.Stderr
	}
	return PrintContributorsSummary(w, stats, cfg, now)
}

// WriteSectionOutcomes reports sections the rewriter could not update.
func (ow *OutWriter) WriteSectionOutcomes(outcomes []schema.SectionOutcome) {
	PrintSectionWarnings(ow.Stderr, outcomes)
}

// WriteMarkdown prints rewritten markdown for dry runs.
func (ow *OutWriter) WriteMarkdown(markdown string) error {
	_, err := io.WriteString(ow.Stdout, markdown)
	return err
}

// WriteFile stores data atomically and reports the destination on stderr.
func (ow *OutWriter) WriteFile(outputFile string, data []byte, successMsg string) error {
	return writeWithFile(ow.Stderr, outputFile, data, successMsg)
}
