package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/internal/outwriter"
	"github.com/huangsam/siteagent/internal/updates"
	"github.com/huangsam/siteagent/schema"
	"github.com/spf13/cobra"
)

// settingsCmd groups the centralized management settings.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage centralized site management settings",
	Long: `Read and change whether this site may be managed remotely, and list the
options mirrored to the remote service.

Subcommands:
  show    - Print the current management setting
  enable  - Allow centralized management
  disable - Forbid centralized management
  synced  - List mirrored options and their values`,
}

// saveManagement stores the toggle and fires the saved-settings hook,
// which prints the confirmation notice.
func saveManagement(enabled bool) {
	a, err := newAgent(cfg, stores, os.Stdout)
	if err != nil {
		contract.LogFatal("Failed to initialize agent", err)
	}
	if err := a.settings.Save(enabled); err != nil {
		contract.LogFatal("Failed to save setting", err)
	}
	if err := a.registry.DoAction(rootCtx, schema.HookManagementSaved); err != nil {
		contract.LogFatal("Failed to run settings hooks", err)
	}
}

// settingsShowCmd prints the management toggle.
var settingsShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print whether centralized management is enabled",
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		enabled, err := updates.NewManagementSettings(stores.GetOptionStore()).Enabled()
		if err != nil {
			contract.LogFatal("Failed to read setting", err)
		}
		state := "disabled"
		if enabled {
			state = "enabled"
		}
		fmt.Printf("Centralized management: %s\n", state)
	},
}

// settingsEnableCmd turns centralized management on.
var settingsEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Allow centralized management of this site",
	Long: `Store jetpack_json_api_full_management=true and print the confirmation notice.

Examples:
  siteagent settings enable`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		saveManagement(true)
	},
}

// settingsDisableCmd turns centralized management off.
var settingsDisableCmd = &cobra.Command{
	Use:     "disable",
	Short:   "Forbid centralized management of this site",
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		saveManagement(false)
	},
}

// settingsSyncedCmd lists mirrored options.
var settingsSyncedCmd = &cobra.Command{
	Use:   "synced",
	Short: "List the options mirrored to the remote service",
	Long: `Print every mirrored option with its stored value. The theme mods option is
named after the active stylesheet.

Examples:
  siteagent settings synced --output json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		synced, err := updates.SyncedOptions(stores.GetOptionStore())
		if err != nil {
			contract.LogFatal("Failed to read synced options", err)
		}
		if err := outwriter.NewOutWriter().WriteSyncedOptions(synced, cfg); err != nil {
			contract.LogFatal("Error writing synced options", err)
		}
	},
}
