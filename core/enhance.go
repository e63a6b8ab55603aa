package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/broadsage/opensource-template/internal/sarif"
	"github.com/broadsage/opensource-template/schema"
)

// ErrInvalidSecuritySeverity is returned when a rule's security-severity is present but not numeric.
var ErrInvalidSecuritySeverity = errors.New("invalid security-severity")

// Severity score thresholds mapping a rule's score to its default level.
const (
	errorSeverityThreshold   = 9.0
	warningSeverityThreshold = 7.0
)

// securityMarker is the rule id substring that keeps a note-level result.
const securityMarker = "security"

// invocationTimeLayout renders microseconds like an ISO-8601 timestamp with a Z suffix.
const invocationTimeLayout = "2006-01-02T15:04:05.000000"

// FormatInvocationTime renders now in UTC the way invocations are stamped.
func FormatInvocationTime(now time.Time) string {
	return now.UTC().Format(invocationTimeLayout) + "Z"
}

// EnhanceSARIF normalizes doc in place: canonical schema and version, merged
// metadata, stamped invocations, severity-derived rule levels, and results
// filtered down to actionable findings. Every security-severity is checked
// before anything is modified, so a failed call leaves doc untouched.
func EnhanceSARIF(doc *sarif.Document, metadata map[string]json.RawMessage, now time.Time) error {
	levels, err := resolveRuleLevels(doc)
	if err != nil {
		return err
	}

	doc.Schema = sarif.SchemaURI
	doc.Version = sarif.Version

	if len(metadata) > 0 {
		if doc.Properties == nil {
			doc.Properties = make(map[string]json.RawMessage, len(metadata))
		}
		maps.Copy(doc.Properties, metadata)
	}

	stamp := FormatInvocationTime(now)
	for i := range doc.Runs {
		run := &doc.Runs[i]
		if len(run.Invocations) == 0 {
			run.Invocations = []sarif.Invocation{{}}
		}
		run.Invocations[0].StartTimeUTC = stamp

		if run.Tool != nil && run.Tool.Driver != nil {
			for j := range run.Tool.Driver.Rules {
				if level, ok := levels[ruleKey{run: i, rule: j}]; ok {
					run.Tool.Driver.Rules[j].DefaultConfiguration = &sarif.RuleConfiguration{Level: level}
				}
			}
		}

		run.Results = filterResults(run.Results)
	}
	return nil
}

// ruleKey addresses one rule by run and rule index.
type ruleKey struct {
	run  int
	rule int
}

// resolveRuleLevels computes the default level of every rule carrying a security-severity.
func resolveRuleLevels(doc *sarif.Document) (map[ruleKey]string, error) {
	levels := make(map[ruleKey]string)
	for i := range doc.Runs {
		run := &doc.Runs[i]
		if run.Tool == nil || run.Tool.Driver == nil {
			continue
		}
		for j := range run.Tool.Driver.Rules {
			rule := &run.Tool.Driver.Rules[j]
			raw, ok := rule.SecuritySeverity()
			if !ok {
				continue
			}
			score, err := parseSecuritySeverity(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: run %d rule %q: %v", ErrInvalidSecuritySeverity, i, rule.ID, err)
			}
			levels[ruleKey{run: i, rule: j}] = severityLevel(score)
		}
	}
	return levels, nil
}

// parseSecuritySeverity accepts a JSON number or a string holding one.
func parseSecuritySeverity(raw json.RawMessage) (float64, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return 0, err
	}
	switch v := value.(type) {
	case json.Number:
		return cast.ToFloat64E(v.String())
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, errors.New("empty string")
		}
		return cast.ToFloat64E(trimmed)
	case nil:
		return 0, errors.New("null value")
	default:
		return 0, fmt.Errorf("unsupported value %s", strings.TrimSpace(string(raw)))
	}
}

// severityLevel maps a score to error, warning, or note.
func severityLevel(score float64) string {
	switch {
	case score >= errorSeverityThreshold:
		return schema.LevelError
	case score >= warningSeverityThreshold:
		return schema.LevelWarning
	default:
		return schema.LevelNote
	}
}

// filterResults keeps errors, warnings, and security notes in their original order.
// The result is never nil so the enhanced run always carries a results array.
func filterResults(results []sarif.Result) []sarif.Result {
	kept := make([]sarif.Result, 0, len(results))
	for _, r := range results {
		if keepResult(&r) {
			kept = append(kept, r)
		}
	}
	return kept
}

func keepResult(r *sarif.Result) bool {
	switch r.EffectiveLevel() {
	case schema.LevelError, schema.LevelWarning:
		return true
	case schema.LevelNote:
		return strings.Contains(strings.ToLower(r.RuleID), securityMarker)
	default:
		return false
	}
}
