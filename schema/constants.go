package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the stdout summary.
	OutputMode string

	// VCSBackend represents the implementation answering history queries.
	VCSBackend string

	// SectionStatus represents what happened to one anchored report section.
	SectionStatus string
)

// All output modes supported.
const (
	TextOut  OutputMode = "text" // default
	TableOut OutputMode = "table"
	JSONOut  OutputMode = "json"
)

// All VCS backends supported.
const (
	GitBackend   VCSBackend = "git" // default
	GoGitBackend VCSBackend = "go-git"
)

// All section statuses reported by the report rewriter.
const (
	SectionUpdated   SectionStatus = "updated"
	SectionMissing   SectionStatus = "missing"
	SectionAmbiguous SectionStatus = "ambiguous"
)

// SARIF severity levels counted by the summarizer.
const (
	LevelError   = "error"
	LevelWarning = "warning"
	LevelNote    = "note"
)

// Category and rule fallbacks used by the summarizer.
const (
	GeneralCategory = "general"
	UnknownRuleID   = "unknown"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:  {},
	TableOut: {},
	JSONOut:  {},
}

// ValidVCSBackends lists all valid VCS backends.
var ValidVCSBackends = map[VCSBackend]struct{}{
	GitBackend:   {},
	GoGitBackend: {},
}
