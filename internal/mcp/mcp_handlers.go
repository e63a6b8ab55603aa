package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/broadsage/opensource-template/core"
	"github.com/broadsage/opensource-template/internal/contract"
	"github.com/broadsage/opensource-template/internal/sarif"
	"github.com/broadsage/opensource-template/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg   *contract.Config
	newClient ClientFactory
}

// loadEnhanced reads and enhances a SARIF file without writing anything.
func (h *toolHandler) loadEnhanced(path, metadataPath string) (*sarif.Document, error) {
	doc, err := sarif.Load(path)
	if err != nil {
		return nil, err
	}
	metadata, err := sarif.LoadMetadata(metadataPath)
	if err != nil {
		return nil, err
	}
	if err := core.EnhanceSARIF(doc, metadata, h.baseCfg.Clock()); err != nil {
		return nil, err
	}
	return doc, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := sarif.MarshalIndent(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (h *toolHandler) handleSummarizeSARIF(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	doc, err := h.loadEnhanced(path, "")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("processing SARIF failed: %v", err)), nil
	}
	return jsonResult(core.SummarizeSARIF(doc))
}

func (h *toolHandler) handleEnhanceSARIF(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}
	doc, err := h.loadEnhanced(path, request.GetString("metadata_path", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("processing SARIF failed: %v", err)), nil
	}
	return jsonResult(doc)
}

func (h *toolHandler) handleCollectContributorStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := *h.baseCfg
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoSearchPath = p
	}
	if b := request.GetString("vcs_backend", ""); b != "" {
		backend := schema.VCSBackend(b)
		if _, ok := schema.ValidVCSBackends[backend]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid vcs_backend '%s'. must be git, go-git", b)), nil
		}
		cfg.VCSBackend = backend
	}

	client := h.newClient(cfg.VCSBackend)
	if err := contract.ResolveRepoRoot(ctx, &cfg, client); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("resolving repository failed: %v", err)), nil
	}
	return jsonResult(core.CollectContributorStats(ctx, client, cfg.RepoPath, cfg.Clock(), cfg.QueryWorkers))
}
