// Package cmd defines the command-line interface for repokit.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(sarifCmd)
	rootCmd.AddCommand(contributorsCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("log-level", contract.DefaultLogLevel, "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored counts in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in the contributor summary (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("export-parquet", "", "Optional path to write a Parquet export")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of sarifCmd to Viper
	sarifCmd.Flags().StringP("output", "o", "", "Enhanced SARIF path (default: enhanced_<input> next to the input)")
	sarifCmd.Flags().String("summary", "", "Optional path to write the summary JSON")
	sarifCmd.Flags().String("metadata", "", "Optional JSON or YAML metadata merged into the document properties")
	sarifCmd.Flags().String("format", string(schema.TextOut), "Summary format: text or table or json")
	if err := viper.BindPFlags(sarifCmd.Flags()); err != nil {
		contract.LogFatal("Error binding sarif flags", err)
	}

	// Bind all flags of contributorsCmd to Viper
	contributorsCmd.Flags().String("repo", contract.DefaultRepoPath, "Path inside the Git repository")
	contributorsCmd.Flags().StringP("file", "f", contract.DefaultContributorsFile, "Contributors markdown file (relative to --repo)")
	contributorsCmd.Flags().String("vcs-backend", string(schema.GitBackend), "History backend: git or go-git")
	contributorsCmd.Flags().Bool("dry-run", false, "Print the rewritten markdown instead of saving it")
	contributorsCmd.Flags().Int("query-workers", contract.DefaultQueryWorkers, "History queries to run at once (1 runs them in order)")
	if err := viper.BindPFlags(contributorsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding contributors flags", err)
	}
}
