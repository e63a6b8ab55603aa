// Package parquet exports SARIF findings and contributor statistics to Parquet
// files using github.com/parquet-go/parquet-go.
package parquet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/parquet-go/parquet-go"

	"github.com/broadsage/opensource-template/internal/sarif"
	"github.com/broadsage/opensource-template/schema"
)

// Finding is one result kept by the enhancer.
type Finding struct {
	// ExportID is shared by every row written in the same export
	ExportID string `parquet:"export_id,snappy"`

	// RunIndex is the position of the run inside the SARIF document
	RunIndex int32 `parquet:"run_index,snappy"`

	// RuleID is the rule identifier, "unknown" when absent
	RuleID string `parquet:"rule_id,snappy"`

	// Level is the effective severity level
	Level string `parquet:"level,snappy"`

	// Category is the rule id prefix before the first "/"
	Category string `parquet:"category,snappy"`

	// Message is the result message text (nullable)
	Message *string `parquet:"message,optional,snappy"`

	// ExportedAt is when the export ran (stored as TIMESTAMP with nanosecond precision)
	ExportedAt time.Time `parquet:"exported_at,snappy"`
}

// ContributorSnapshot is one row of collected contributor statistics.
type ContributorSnapshot struct {
	SnapshotID          string    `parquet:"snapshot_id,snappy"`
	CollectedAt         time.Time `parquet:"collected_at,snappy"`
	RepoPath            string    `parquet:"repo_path,snappy"`
	TotalCommits        int32     `parquet:"total_commits,snappy"`
	TotalContributors   int32     `parquet:"total_contributors,snappy"`
	CodeContributors    int32     `parquet:"code_contributors,snappy"`
	DocContributors     int32     `parquet:"doc_contributors,snappy"`
	BugFixers           int32     `parquet:"bug_fixers,snappy"`
	FeatureContributors int32     `parquet:"feature_contributors,snappy"`
	RecentCount         int32     `parquet:"recent_count,snappy"`
	MonthlyCommits      int32     `parquet:"monthly_commits,snappy"`
	MonthlyContributors int32     `parquet:"monthly_contributors,snappy"`

	// LastCommitDate and FirstCommitYear are empty when the queries failed (nullable)
	LastCommitDate  *string `parquet:"last_commit_date,optional,snappy"`
	FirstCommitYear *string `parquet:"first_commit_year,optional,snappy"`

	// TopContributors contains the JSON-encoded ranked listing
	TopContributors string `parquet:"top_contributors,snappy"`
}

// EncodeFindings serializes findings into an in-memory Parquet file.
func EncodeFindings(data []Finding) ([]byte, error) {
	return encodeRows(data)
}

// EncodeContributorSnapshots serializes snapshots into an in-memory Parquet file.
func EncodeContributorSnapshots(data []ContributorSnapshot) ([]byte, error) {
	return encodeRows(data)
}

// encodeRows writes rows with a schema derived from T's struct tags.
func encodeRows[T any](data []T) ([]byte, error) {
	var buf bytes.Buffer
	writer := parquet.NewGenericWriter[T](&buf)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return nil, fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return buf.Bytes(), nil
}

// ConvertFindings flattens every result of doc into rows.
func ConvertFindings(doc *sarif.Document, exportedAt time.Time) []Finding {
	exportID := uuid.NewString()
	var rows []Finding
	for i := range doc.Runs {
		for j := range doc.Runs[i].Results {
			result := &doc.Runs[i].Results[j]
			rows = append(rows, Finding{
				ExportID:   exportID,
				RunIndex:   int32(i),
				RuleID:     result.RuleIDOrUnknown(),
				Level:      result.EffectiveLevel(),
				Category:   result.Category(),
				Message:    optionalString(result.MessageText()),
				ExportedAt: exportedAt,
			})
		}
	}
	return rows
}

// ConvertContributorStats maps collected statistics to a snapshot row.
func ConvertContributorStats(stats schema.ContributorStats, repoPath string, collectedAt time.Time) (ContributorSnapshot, error) {
	top, err := json.Marshal(stats.TopContributors)
	if err != nil {
		return ContributorSnapshot{}, fmt.Errorf("failed to encode top contributors: %w", err)
	}
	return ContributorSnapshot{
		SnapshotID:          uuid.NewString(),
		CollectedAt:         collectedAt,
		RepoPath:            repoPath,
		TotalCommits:        int32(stats.TotalCommits),
		TotalContributors:   int32(stats.TotalContributors),
		CodeContributors:    int32(stats.CodeContributors),
		DocContributors:     int32(stats.DocContributors),
		BugFixers:           int32(stats.BugFixers),
		FeatureContributors: int32(stats.FeatureContributors),
		RecentCount:         int32(stats.RecentCount),
		MonthlyCommits:      int32(stats.MonthlyCommits),
		MonthlyContributors: int32(stats.MonthlyContributors),
		LastCommitDate:      optionalString(stats.LastCommitDate),
		FirstCommitYear:     optionalString(stats.FirstCommitYear),
		TopContributors:     string(top),
	}, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
