package cmd

import (
	"github.com/spf13/cobra"

	"github.com/broadsage/opensource-template/internal/gitclient"
	"github.com/broadsage/opensource-template/internal/mcp"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the repokit MCP server",
	Long:  `Launch an MCP server that allows AI agents to summarize SARIF files and collect contributor statistics via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs go to stderr; stdout carries the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, gitclient.New, version)
	},
}
