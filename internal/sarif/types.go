package sarif

import (
	"encoding/json"
	"strings"

	"github.com/broadsage/opensource-template/schema"
)

// Canonical values stamped on every enhanced document.
const (
	SchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"
	Version   = "2.1.0"
)

// Document is the root SARIF log object.
type Document struct {
	Schema     string
	Version    string
	Properties map[string]json.RawMessage
	Runs       []Run

	extra extras
}

// Run is a single execution of an analysis tool.
type Run struct {
	Tool        *Tool
	Invocations []Invocation
	Results     []Result

	extra extras
}

// Tool describes the analysis tool that produced a run.
type Tool struct {
	Driver *Driver

	extra extras
}

// Driver is the primary tool component. Only its rules are typed.
type Driver struct {
	Rules []Rule

	extra extras
}

// Rule is a reporting descriptor: a named check, optionally carrying a security-severity score.
type Rule struct {
	ID                   string
	Properties           map[string]json.RawMessage
	DefaultConfiguration *RuleConfiguration

	extra extras
}

// RuleConfiguration is a rule's default reporting configuration.
type RuleConfiguration struct {
	Level string

	extra extras
}

// Invocation holds metadata about one execution of the tool.
type Invocation struct {
	StartTimeUTC string

	extra extras
}

// Result is one finding produced by a rule.
type Result struct {
	RuleID string
	Level  string

	// Set when the member was present as a string, even an empty one.
	// Non-string values stay in extra untouched.
	hasRuleID bool
	hasLevel  bool

	extra extras
}

// securitySeverityKey is the rule property holding a CVSS-like score.
const securitySeverityKey = "security-severity"

// SecuritySeverity returns the raw security-severity property, if the rule carries one.
func (r *Rule) SecuritySeverity() (json.RawMessage, bool) {
	raw, ok := r.Properties[securitySeverityKey]
	return raw, ok
}

// EffectiveLevel returns the result level, defaulting to "note" only when the
// member is absent. A present but empty or non-string level yields "".
func (r *Result) EffectiveLevel() string {
	if r.Level != "" || r.hasLevel {
		return r.Level
	}
	if _, ok := r.extra["level"]; ok {
		return ""
	}
	return schema.LevelNote
}

// RuleIDOrUnknown returns the rule id, or "unknown" when absent or not a string.
// An explicit empty id is returned as-is.
func (r *Result) RuleIDOrUnknown() string {
	if r.RuleID != "" || r.hasRuleID {
		return r.RuleID
	}
	return schema.UnknownRuleID
}

// Category returns the rule id prefix before its first "/", or "general".
func (r *Result) Category() string {
	id := r.RuleIDOrUnknown()
	if prefix, _, found := strings.Cut(id, "/"); found {
		return prefix
	}
	return schema.GeneralCategory
}

// MessageText returns message.text, or "" when the result carries none.
func (r *Result) MessageText() string {
	raw, ok := r.extra["message"]
	if !ok {
		return ""
	}
	var msg struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ""
	}
	return msg.Text
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	rest, err := decodeObject(data, map[string]any{
		"$schema":    &d.Schema,
		"version":    &d.Version,
		"properties": &d.Properties,
		"runs":       &d.Runs,
	})
	if err != nil {
		return err
	}
	d.extra = rest
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	return encodeObject(d.extra, []member{
		{key: "$schema", value: d.Schema, omit: d.Schema == ""},
		{key: "version", value: d.Version, omit: d.Version == ""},
		{key: "properties", value: d.Properties, omit: d.Properties == nil},
		{key: "runs", value: d.Runs, omit: d.Runs == nil},
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Run) UnmarshalJSON(data []byte) error {
	rest, err := decodeObject(data, map[string]any{
		"tool":        &r.Tool,
		"invocations": &r.Invocations,
		"results":     &r.Results,
	})
	if err != nil {
		return err
	}
	r.extra = rest
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r Run) MarshalJSON() ([]byte, error) {
	return encodeObject(r.extra, []member{
		{key: "tool", value: r.Tool, omit: r.Tool == nil},
		{key: "invocations", value: r.Invocations, omit: r.Invocations == nil},
		{key: "results", value: r.Results, omit: r.Results == nil},
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tool) UnmarshalJSON(data []byte) error {
	rest, err := decodeObject(data, map[string]any{"driver": &t.Driver})
	if err != nil {
		return err
	}
	t.extra = rest
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Tool) MarshalJSON() ([]byte, error) {
	return encodeObject(t.extra, []member{
		{key: "driver", value: t.Driver, omit: t.Driver == nil},
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Driver) UnmarshalJSON(data []byte) error {
	rest, err := decodeObject(data, map[string]any{"rules": &d.Rules})
	if err != nil {
		return err
	}
	d.extra = rest
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Driver) MarshalJSON() ([]byte, error) {
	return encodeObject(d.extra, []member{
		{key: "rules", value: d.Rules, omit: d.Rules == nil},
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Rule) UnmarshalJSON(data []byte) error {
	rest, err := decodeObject(data, map[string]any{
		"id":                   &r.ID,
		"properties":           &r.Properties,
		"defaultConfiguration": &r.DefaultConfiguration,
	})
	if err != nil {
		return err
	}
	r.extra = rest
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r Rule) MarshalJSON() ([]byte, error) {
	return encodeObject(r.extra, []member{
		{key: "id", value: r.ID, omit: r.ID == ""},
		{key: "properties", value: r.Properties, omit: r.Properties == nil},
		{key: "defaultConfiguration", value: r.DefaultConfiguration, omit: r.DefaultConfiguration == nil},
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *RuleConfiguration) UnmarshalJSON(data []byte) error {
	rest, err := decodeObject(data, map[string]any{"level": &c.Level})
	if err != nil {
		return err
	}
	c.extra = rest
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c RuleConfiguration) MarshalJSON() ([]byte, error) {
	return encodeObject(c.extra, []member{
		{key: "level", value: c.Level, omit: c.Level == ""},
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Invocation) UnmarshalJSON(data []byte) error {
	rest, err := decodeObject(data, map[string]any{"startTimeUtc": &i.StartTimeUTC})
	if err != nil {
		return err
	}
	i.extra = rest
	return nil
}

// MarshalJSON implements json.Marshaler.
func (i Invocation) MarshalJSON() ([]byte, error) {
	return encodeObject(i.extra, []member{
		{key: "startTimeUtc", value: i.StartTimeUTC, omit: i.StartTimeUTC == ""},
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Result) UnmarshalJSON(data []byte) error {
	rest, err := decodeObject(data, map[string]any{})
	if err != nil {
		return err
	}
	r.hasRuleID = takeString(rest, "ruleId", &r.RuleID)
	r.hasLevel = takeString(rest, "level", &r.Level)
	r.extra = rest
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	return encodeObject(r.extra, []member{
		{key: "ruleId", value: r.RuleID, omit: r.RuleID == "" && !r.hasRuleID},
		{key: "level", value: r.Level, omit: r.Level == "" && !r.hasLevel},
	})
}
