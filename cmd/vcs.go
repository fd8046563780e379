package cmd

import (
	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/internal/updates"
	"github.com/spf13/cobra"
)

// vcsCmd reports whether the install is a version-control checkout.
var vcsCmd = &cobra.Command{
	Use:   "vcs",
	Short: "Show the version-control status of the install",
	Long: `Report the cached VCS status next to a fresh probe of the plugins directory.

The cached value lives in the jetpack_is_vcs transient for 24 hours. When nothing
valid is cached, the probe runs and its result is stored. Use --refresh to probe
and overwrite the cache regardless.

For git checkouts the repository root and HEAD are shown as well.

Examples:
  siteagent vcs
  siteagent vcs --refresh --output json`,
	PreRunE: sharedSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		refresh, _ := cmd.Flags().GetBool("refresh")
		a, err := newAgent(cfg, stores, nil)
		if err != nil {
			contract.LogFatal("Failed to initialize agent", err)
		}
		if refresh {
			a.vcs.Refresh(rootCtx)
		} else {
			a.vcs.CachedValue(rootCtx)
		}
		report, err := updates.InspectVCS(rootCtx, a.vcs, a.probe, a.git)
		if err != nil {
			contract.LogFatal("Failed to inspect VCS status", err)
		}
		if err := a.writer.WriteVCSReport(report, cfg); err != nil {
			contract.LogFatal("Error writing VCS report", err)
		}
	},
}
