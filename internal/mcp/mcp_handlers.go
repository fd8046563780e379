package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/siteagent/internal/updates"
	"github.com/huangsam/siteagent/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	deps *Deps
}

// jsonResult renders data as an indented JSON text result.
func jsonResult(data any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) loadSnapshot() (*mcp.CallToolResult, error) {
	rec, _, err := updates.LoadSnapshot(h.deps.Options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load snapshot: %v", err)), nil
	}
	if rec == nil {
		rec = schema.SnapshotRecord{}
	}
	return jsonResult(map[string]any(rec))
}

func (h *toolHandler) handleGetSiteUpdates(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.loadSnapshot()
}

func (h *toolHandler) handleRefreshSiteUpdates(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := h.deps.Registry.DoAction(ctx, schema.HookLoaded); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("refresh failed: %v", err)), nil
	}
	return h.loadSnapshot()
}

func (h *toolHandler) handleGetVCSStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if request.GetBool("refresh", false) {
		h.deps.VCS.Refresh(ctx)
	} else {
		h.deps.VCS.CachedValue(ctx)
	}
	report, err := updates.InspectVCS(ctx, h.deps.VCS, h.deps.Probe, h.deps.Git)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("VCS inspection failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *toolHandler) handleSetFullManagement(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	enabled, err := request.RequireBool("enabled")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.deps.Settings.Save(enabled); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := h.deps.Registry.DoAction(ctx, schema.HookManagementSaved); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("setting saved but notice hooks failed: %v", err)), nil
	}
	notice, err := h.deps.Settings.Notice()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(notice), nil
}

func (h *toolHandler) handleGetSyncedOptions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	synced, err := updates.SyncedOptions(h.deps.Options)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read synced options: %v", err)), nil
	}
	return jsonResult(synced)
}

func (h *toolHandler) handleGetSnapshotHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.deps.History == nil {
		return mcp.NewToolResultError("snapshot history is not enabled (set --history-backend)"), nil
	}
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}
	runs, err := h.deps.History.ListSnapshots(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list snapshots: %v", err)), nil
	}
	return jsonResult(runs)
}
