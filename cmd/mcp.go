package cmd

import (
	"os"

	"github.com/huangsam/siteagent/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the siteagent MCP server",
	Long:    `Launch an MCP server that lets AI agents read and refresh site update snapshots via standard tools.`,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		// Notices go to stderr since stdio carries the protocol
		a, err := newAgent(cfg, stores, os.Stderr)
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(rootCtx, a.mcpDeps())
	},
}
