// Package core has the SARIF and contributor pipelines and their pure transforms.
package core

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/broadsage/opensource-template/core/report"
	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/internal/logger"
	"github.com/broadsage/opensource-template/internal/outwriter"
	"github.com/broadsage/opensource-template/internal/parquet"
	"github.com/broadsage/opensource-template/internal/sarif"
)

// pendingOutput is a fully serialized file waiting to be written.
type pendingOutput struct {
	path string
	data []byte
	msg  string
}

// writeOutputs stores every pending output in order.
func writeOutputs(ow *outwriter.OutWriter, outputs []pendingOutput) error {
	for _, o := range outputs {
		if err := ow.WriteFile(o.path, o.data, o.msg); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteSARIFProcessing loads, enhances, and summarizes the configured SARIF
// file, then writes every output. Nothing is written unless the whole
// transform succeeded.
func ExecuteSARIFProcessing(ctx context.Context, cfg *contract.Config, ow *outwriter.OutWriter) error {
	defer logger.Trace("ExecuteSARIFProcessing", time.Now())

	doc, err := sarif.Load(cfg.InputFile)
	if err != nil {
		return err
	}
	metadata, err := sarif.LoadMetadata(cfg.MetadataFile)
	if err != nil {
		return err
	}
	if cfg.MetadataFile != "" && metadata == nil {
		logger.Get().Debugw("metadata skipped", "path", cfg.MetadataFile)
	}

	now := cfg.Clock()
	if err := EnhanceSARIF(doc, metadata, now); err != nil {
		return err
	}
	summary := SummarizeSARIF(doc)

	enhanced, err := sarif.Marshal(doc)
	if err != nil {
		return err
	}
	outputs := []pendingOutput{{cfg.OutputFile, enhanced, "Wrote enhanced SARIF"}}

	if cfg.SummaryFile != "" {
		data, err := sarif.MarshalIndent(summary)
		if err != nil {
			return err
		}
		outputs = append(outputs, pendingOutput{cfg.SummaryFile, data, "Wrote summary"})
	}
	if cfg.ParquetFile != "" {
		data, err := parquet.EncodeFindings(parquet.ConvertFindings(doc, now))
		if err != nil {
			return err
		}
		outputs = append(outputs, pendingOutput{cfg.ParquetFile, data, "Wrote parquet"})
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeOutputs(ow, outputs); err != nil {
		return err
	}
	return ow.WriteSARIFSummary(summary, cfg)
}

// ExecuteContributorsUpdate collects statistics from cfg.RepoPath and rewrites
// the generated sections of the contributors report.
func ExecuteContributorsUpdate(ctx context.Context, cfg *contract.Config, client contract.GitClient, ow *outwriter.OutWriter) error {
	defer logger.Trace("ExecuteContributorsUpdate", time.Now())

	markdown, err := os.ReadFile(cfg.ContributorsFile)
	if err != nil {
		return fmt.Errorf("failed to read contributors file: %w", err)
	}

	now := cfg.Clock()
	stats := CollectContributorStats(ctx, client, cfg.RepoPath, now, cfg.QueryWorkers)
	rewritten, outcomes := report.Rewrite(string(markdown), stats, now)
	ow.WriteSectionOutcomes(outcomes)

	var outputs []pendingOutput
	if !cfg.DryRun {
		outputs = append(outputs, pendingOutput{cfg.ContributorsFile, []byte(rewritten), "Updated contributors report"})
	}
	if cfg.ParquetFile != "" {
		row, err := parquet.ConvertContributorStats(stats, cfg.RepoPath, now)
		if err != nil {
			return err
		}
		data, err := parquet.EncodeContributorSnapshots([]parquet.ContributorSnapshot{row})
		if err != nil {
			return err
		}
		outputs = append(outputs, pendingOutput{cfg.ParquetFile, data, "Wrote parquet"})
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if cfg.DryRun {
		if err := ow.WriteMarkdown(rewritten); err != nil {
			return err
		}
	}
	if err := writeOutputs(ow, outputs); err != nil {
		return err
	}
	return ow.WriteContributorsSummary(stats, cfg, now)
}
