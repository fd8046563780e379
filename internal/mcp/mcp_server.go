// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/internal/hooks"
	"github.com/huangsam/siteagent/internal/updates"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Deps are the site services the tools operate on. History is optional.
type Deps struct {
	Registry *hooks.Registry
	VCS      *updates.VCSStatusCache
	Probe    *updates.FSProbe
	Git      contract.GitClient
	Settings *updates.ManagementSettings
	Options  contract.OptionStore
	History  contract.HistoryStore
}

// NewMCPServer initializes and configures the siteagent MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(deps *Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"Site Update Agent",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{deps: deps}

	// --- 1. Tool: get_site_updates ---
	s.AddTool(mcp.NewTool("get_site_updates",
		mcp.WithDescription("Return the last persisted update snapshot for this site. Non-primary sites report an empty object."),
	), h.handleGetSiteUpdates)

	// --- 2. Tool: refresh_site_updates ---
	s.AddTool(mcp.NewTool("refresh_site_updates",
		mcp.WithDescription("Rebuild and persist the update snapshot, then return it."),
	), h.handleRefreshSiteUpdates)

	// --- 3. Tool: get_vcs_status ---
	s.AddTool(mcp.NewTool("get_vcs_status",
		mcp.WithDescription("Report whether the install is a version-control checkout, with the cached value and the probe result."),
		mcp.WithBoolean("refresh", mcp.Description("Probe again and overwrite the 24 hour cache before reporting.")),
	), h.handleGetVCSStatus)

	// --- 4. Tool: set_full_management ---
	s.AddTool(mcp.NewTool("set_full_management",
		mcp.WithDescription("Allow or forbid centralized management of this site and return the confirmation notice."),
		mcp.WithBoolean("enabled", mcp.Description("Whether remote management is allowed."), mcp.Required()),
	), h.handleSetFullManagement)

	// --- 5. Tool: get_synced_options ---
	s.AddTool(mcp.NewTool("get_synced_options",
		mcp.WithDescription("List the options mirrored to the remote service with their stored values."),
	), h.handleGetSyncedOptions)

	// --- 6. Tool: get_snapshot_history ---
	s.AddTool(mcp.NewTool("get_snapshot_history",
		mcp.WithDescription("List recorded snapshot runs, newest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of runs returned (0 for all).")),
	), h.handleGetSnapshotHistory)

	return s
}

// StartMCPServer starts the siteagent MCP server on stdio.
func StartMCPServer(_ context.Context, deps *Deps) error {
	s := NewMCPServer(deps)
	return server.ServeStdio(s)
}
