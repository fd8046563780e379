package cmd

import (
	"fmt"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/internal/iocache"
	"github.com/huangsam/siteagent/internal/outwriter"
	"github.com/spf13/cobra"
)

// storeCmd focused on option and transient storage.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage option and transient storage",
	Long: `Manage the stores holding site options (including the update snapshot) and
expiring transients (including the cached VCS status and release checks).

Supported backends: SQLite (default), MySQL, PostgreSQL, LevelDB, or None (no persistence)

Subcommands:
  status - Show store statistics and connection info
  clear  - Remove all stored options and transients

Examples:
  siteagent store status
  SITEAGENT_STORE_BACKEND=leveldb siteagent store status`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display store statistics and connection details",
	Long: `Show entry counts, expired transients, write times and size for the option
and transient stores.

Examples:
  siteagent store status --output json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		statuses, err := stores.GetStoreStatuses()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		if err := outwriter.NewOutWriter().WriteStoreStatuses(statuses, cfg); err != nil {
			contract.LogFatal("Error writing store status", err)
		}
	},
}

// storeClearCmd clears the stores.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored options and transients",
	Long: `Delete every stored option and transient from the configured backend.

The next refresh probes for VCS metadata again and rebuilds the snapshot from
whatever release checks are imported afterwards.

For SQLite: Deletes the database file
For LevelDB: Deletes the database directory
For MySQL/PostgreSQL: Drops the option and transient tables

Examples:
  siteagent store clear`,
	PreRunE: configOnlySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ClearStores(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear stores", err)
		}
		fmt.Println("Stores cleared successfully.")
	},
}
