// Package cmd defines the command-line interface for siteagent.
package cmd

import (
	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(updatesCmd)
	rootCmd.AddCommand(vcsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the settings subcommands to the parent settings command
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEnableCmd)
	settingsCmd.AddCommand(settingsDisableCmd)
	settingsCmd.AddCommand(settingsSyncedCmd)

	// Add the host subcommands to the parent host command
	hostCmd.AddCommand(hostImportCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyRunsCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("install-root", ".", "Path to the site installation")
	rootCmd.PersistentFlags().String("plugins-dir", "", "Directory probed for VCS metadata (default <install-root>/wp-content/plugins)")
	rootCmd.PersistentFlags().Bool("multisite", false, "The install is a network of sites")
	rootCmd.PersistentFlags().Int("site-id", contract.DefaultSiteID, "ID of the site this agent serves")
	rootCmd.PersistentFlags().Int("main-site-id", contract.DefaultSiteID, "ID of the network's main site")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Option and transient backend: sqlite or mysql or postgresql or leveldb or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname), or a path for sqlite/leveldb")
	rootCmd.PersistentFlags().String("history-backend", "", "Snapshot history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Connection string for snapshot history; MySQL needs parseTime=true")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of watchCmd to Viper
	watchCmd.Flags().String("interval", contract.DefaultInterval.String(), "Time between refreshes (e.g., 30s, 5m)")
	if err := viper.BindPFlags(watchCmd.Flags()); err != nil {
		contract.LogFatal("Error binding watch flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}

	// Local flags read straight from the command
	vcsCmd.Flags().Bool("refresh", false, "Probe again and overwrite the cached status")
	hostImportCmd.Flags().Bool("refresh", false, "Rebuild the snapshot after importing")
	historyRunsCmd.Flags().Int("limit", 20, "Number of runs to list (0 for all)")
}
