package contract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/broadsage/opensource-template/schema"
)

// Default values for configuration.
const (
	DefaultContributorsFile = "CONTRIBUTORS.md"
	DefaultRepoPath         = "."
	DefaultLogLevel         = "warn"
	DefaultQueryWorkers     = 1
	EnhancedPrefix          = "enhanced_"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Clock returns the current time. Commands use time.Now; tests pin it.
type Clock func() time.Time

// Config holds the runtime configuration for a command.
// This struct is the "final, validated" config.
type Config struct {
	LogLevel  string
	UseEmojis bool // Enable emojis in the contributor summary
	UseColors bool // Enable colored counts in the SARIF summary
	Width     int  // Terminal width override (0 = auto-detect)

	// ParquetFile is the optional columnar export destination.
	ParquetFile string

	// --- sarif ---
	InputFile    string
	OutputFile   string
	SummaryFile  string
	MetadataFile string
	Output       schema.OutputMode

	// --- contributors ---
	RepoSearchPath   string // Where repo root resolution starts
	RepoPath         string // Resolved repository root
	ContributorsFile string
	VCSBackend       schema.VCSBackend
	DryRun           bool
	QueryWorkers     int // History queries in flight; 1 runs the battery in order

	Now Clock
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPath string

	// --- Fields from rootCmd.PersistentFlags() ---
	LogLevel      string `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	Color         string `mapstructure:"color" validate:"yesno"`
	Emoji         string `mapstructure:"emoji" validate:"yesno"`
	Width         int    `mapstructure:"width" validate:"gte=0"`
	ExportParquet string `mapstructure:"export-parquet"`

	// --- Fields from sarifCmd.Flags() ---
	Output   string `mapstructure:"output"`
	Summary  string `mapstructure:"summary"`
	Metadata string `mapstructure:"metadata"`
	Format   string `mapstructure:"format" validate:"output_mode"`

	// --- Fields from contributorsCmd.Flags() ---
	Repo         string `mapstructure:"repo"`
	File         string `mapstructure:"file"`
	VCSBackend   string `mapstructure:"vcs-backend" validate:"vcs_backend"`
	DryRun       bool   `mapstructure:"dry-run"`
	QueryWorkers int    `mapstructure:"query-workers" validate:"gte=0"`
}

// Clock returns the configured clock, defaulting to time.Now.
func (c *Config) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// newInputValidator builds a validator that reports fields by their flag names.
func newInputValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("yesno", func(fl validator.FieldLevel) bool {
		_, err := ParseBoolString(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("output_mode", func(fl validator.FieldLevel) bool {
		_, ok := schema.ValidOutputModes[schema.OutputMode(strings.ToLower(fl.Field().String()))]
		return ok
	})
	_ = v.RegisterValidation("vcs_backend", func(fl validator.FieldLevel) bool {
		_, ok := schema.ValidVCSBackends[schema.VCSBackend(strings.ToLower(fl.Field().String()))]
		return ok
	})
	return v
}

var inputValidator = newInputValidator()

// validateRawInput runs the struct tag checks and flattens failures into one error.
func validateRawInput(input *ConfigRawInput) error {
	err := inputValidator.Struct(input)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, fmt.Sprintf("invalid --%s value '%v'", e.Field(), e.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ProcessAndValidate turns raw inputs into cfg without touching the repository.
// Repository resolution happens separately in ResolveRepoRoot since only the
// contributors command needs a work tree.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	normalizeRawInput(input)
	if err := validateRawInput(input); err != nil {
		return err
	}
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	processSARIFPaths(cfg, input)
	processContributorsPaths(cfg, input)
	return nil
}

// normalizeRawInput fills empty enum fields with defaults and folds case.
func normalizeRawInput(input *ConfigRawInput) {
	input.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if input.LogLevel == "" {
		input.LogLevel = DefaultLogLevel
	}
	input.Format = strings.ToLower(strings.TrimSpace(input.Format))
	if input.Format == "" {
		input.Format = string(schema.TextOut)
	}
	input.VCSBackend = strings.ToLower(strings.TrimSpace(input.VCSBackend))
	if input.VCSBackend == "" {
		input.VCSBackend = string(schema.GitBackend)
	}
	if input.Color == "" {
		input.Color = "yes"
	}
	if input.Emoji == "" {
		input.Emoji = "yes"
	}
}

// validateSimpleInputs processes all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.LogLevel = input.LogLevel
	cfg.Width = input.Width
	cfg.DryRun = input.DryRun
	cfg.ParquetFile = input.ExportParquet
	cfg.Output = schema.OutputMode(input.Format)
	cfg.VCSBackend = schema.VCSBackend(input.VCSBackend)
	cfg.QueryWorkers = input.QueryWorkers
	if cfg.QueryWorkers == 0 {
		cfg.QueryWorkers = DefaultQueryWorkers
	}

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors
	return nil
}

// processSARIFPaths derives the enhanced output path next to the input file.
func processSARIFPaths(cfg *Config, input *ConfigRawInput) {
	cfg.InputFile = input.InputPath
	cfg.SummaryFile = input.Summary
	cfg.MetadataFile = input.Metadata
	cfg.OutputFile = input.Output
	if cfg.OutputFile == "" && cfg.InputFile != "" {
		cfg.OutputFile = DefaultEnhancedPath(cfg.InputFile)
	}
}

// processContributorsPaths resolves the markdown file against the repo search path.
func processContributorsPaths(cfg *Config, input *ConfigRawInput) {
	cfg.RepoSearchPath = input.Repo
	if cfg.RepoSearchPath == "" {
		cfg.RepoSearchPath = DefaultRepoPath
	}
	cfg.ContributorsFile = input.File
	if cfg.ContributorsFile == "" {
		cfg.ContributorsFile = DefaultContributorsFile
	}
	if !filepath.IsAbs(cfg.ContributorsFile) {
		cfg.ContributorsFile = filepath.Join(cfg.RepoSearchPath, cfg.ContributorsFile)
	}
}

// DefaultEnhancedPath returns "<dir>/enhanced_<base>" for an input path.
func DefaultEnhancedPath(inputPath string) string {
	dir, base := filepath.Split(inputPath)
	return filepath.Join(dir, EnhancedPrefix+base)
}

// ResolveRepoRoot sets cfg.RepoPath to the root of the work tree containing
// cfg.RepoSearchPath. Failures wrap ErrNotGitRepository.
func ResolveRepoRoot(ctx context.Context, cfg *Config, client GitClient) error {
	absPath, err := filepath.Abs(cfg.RepoSearchPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotGitRepository, err)
	}
	root, err := client.GetRepoRoot(ctx, absPath)
	if err != nil {
		if errors.Is(err, ErrNotGitRepository) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrNotGitRepository, err)
	}
	cfg.RepoPath = root
	return nil
}
