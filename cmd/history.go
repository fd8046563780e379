package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/internal/iocache"
	"github.com/huangsam/siteagent/internal/outwriter"
	"github.com/huangsam/siteagent/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyCmd focused on snapshot history.
//
// Note: History subcommands open only the history store, so they work
// without an install root or option storage.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage snapshot history and exports",
	Long: `Manage the history of refreshed snapshots.

When --history-backend is set, every refresh appends a run with its counts,
VCS status, offered core release and the stored record.

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics
  runs    - List recorded runs
  export  - Export runs to Parquet for analytics
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  siteagent history status --history-backend sqlite
  siteagent history export --history-backend sqlite --output-file runs.parquet`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display history statistics and connection details",
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := stores.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		if err := outwriter.NewOutWriter().WriteHistoryStatus(status, cfg); err != nil {
			contract.LogFatal("Error writing history status", err)
		}
	},
}

// historyRunsCmd lists recorded runs.
var historyRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded snapshot runs, newest first",
	Long: `List recorded snapshot runs, newest first.

Examples:
  siteagent history runs --limit 10
  siteagent history runs --output csv --output-file runs.csv`,
	PreRunE: historySetup,
	Run: func(cmd *cobra.Command, _ []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		runs, err := stores.GetHistoryStore().ListSnapshots(limit)
		if err != nil {
			contract.LogFatal("Failed to list snapshot runs", err)
		}
		if err := outwriter.NewOutWriter().WriteHistoryRuns(runs, cfg); err != nil {
			contract.LogFatal("Error writing snapshot runs", err)
		}
	},
}

// historyExportCmd exports history to Parquet.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export snapshot history to Parquet for BI tools and analytics",
	Long: `Export every recorded run to a Parquet file.

Requires: --output-file parameter

Examples:
  siteagent history export --output-file runs.parquet
  duckdb -c "SELECT recorded_at, total FROM read_parquet('runs.parquet')"`,
	PreRunE: historySetup,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.HistoryBackend == schema.NoneBackend {
			contract.LogFatal("Failed to export history", fmt.Errorf("history is disabled. Set --history-backend to record snapshots"))
		}
		if err := iocache.ExportHistory(stores.GetHistoryStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyClearCmd clears the history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all snapshot history",
	Long: `Delete all recorded runs.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  siteagent history export --output-file backup.parquet
  siteagent history clear`,
	PreRunE: configOnlySetup,
	Run: func(_ *cobra.Command, _ []string) {
		backend := cfg.HistoryBackend
		if backend == "" {
			backend = schema.NoneBackend
		}
		if err := iocache.ClearHistory(backend, cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  siteagent history migrate

  # Rollback to initial state
  siteagent history migrate --target-version 0`,
	PreRunE: configOnlySetup,
	Run: func(_ *cobra.Command, _ []string) {
		backend := cfg.HistoryBackend
		if backend == "" {
			backend = schema.NoneBackend
		}
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateHistory(backend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
