// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/schema"
)

// ClientFactory builds the GitClient for a backend.
type ClientFactory func(schema.VCSBackend) contract.GitClient

// NewMCPServer initializes and configures the repokit MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, newClient ClientFactory, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Repokit Maintenance Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:   baseCfg,
		newClient: newClient,
	}

	// --- 1. Tool: summarize_sarif ---
	s.AddTool(mcp.NewTool("summarize_sarif",
		mcp.WithDescription("Enhance a SARIF file in memory and return its summary (counts by severity, category, and rule)."),
		mcp.WithString("path", mcp.Description("Path to the SARIF file."), mcp.Required()),
	), h.handleSummarizeSARIF)

	// --- 2. Tool: enhance_sarif ---
	s.AddTool(mcp.NewTool("enhance_sarif",
		mcp.WithDescription("Return the enhanced SARIF document: canonical schema, severity levels, and filtered results. Nothing is written to disk."),
		mcp.WithString("path", mcp.Description("Path to the SARIF file."), mcp.Required()),
		mcp.WithString("metadata_path", mcp.Description("Optional JSON or YAML file merged into the document properties.")),
	), h.handleEnhanceSARIF)

	// --- 3. Tool: collect_contributor_stats ---
	s.AddTool(mcp.NewTool("collect_contributor_stats",
		mcp.WithDescription("Mine version-control history for contributor statistics."),
		mcp.WithString("repo_path", mcp.Description("Path inside the Git repository (defaults to the configured repository).")),
		mcp.WithString("vcs_backend", mcp.Description("History backend. Defaults to the configured backend."), mcp.Enum(string(schema.GitBackend), string(schema.GoGitBackend))),
	), h.handleCollectContributorStats)

	return s
}

// StartMCPServer starts the repokit MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, newClient ClientFactory, version string) error {
	s := NewMCPServer(baseCfg, newClient, version)
	return server.ServeStdio(s)
}
