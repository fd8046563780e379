package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/internal/updates"
	"github.com/huangsam/siteagent/schema"
	"github.com/spf13/cobra"
)

// hostCmd groups commands that feed host state into the stores.
var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Import release-check state from the host",
}

// hostImportCmd loads a YAML file of release checks into the update transients.
var hostImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import core, plugin and theme release checks from YAML",
	Long: `Read a YAML document with core, plugins and themes sections and store each
section in its update transient (update_core, update_plugins, update_themes).
An optional dismissed_core list ("current|locale" entries) is stored in the
dismissed_update_core option. Unknown fields are rejected.

Example file:
  core:
    updates:
      - response: upgrade
        current: "6.5.2"
  plugins:
    response:
      akismet/akismet.php:
        slug: akismet
        new_version: "5.3.2"

Examples:
  siteagent host import state.yaml
  siteagent host import state.yaml --refresh`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetup,
	Run: func(cmd *cobra.Command, args []string) {
		state, err := updates.LoadHostState(args[0])
		if err != nil {
			contract.LogFatal("Failed to read host state", err)
		}
		keys, err := updates.ImportHostState(stores.GetTransientStore(), state)
		if err != nil {
			contract.LogFatal("Failed to import host state", err)
		}
		for _, key := range keys {
			fmt.Fprintf(os.Stderr, "Imported %s\n", key)
		}
		imported, err := updates.ImportDismissedCore(stores.GetOptionStore(), state)
		if err != nil {
			contract.LogFatal("Failed to import dismissed core offers", err)
		}
		if imported {
			fmt.Fprintf(os.Stderr, "Imported %s\n", schema.OptionDismissedCore)
		}

		if refresh, _ := cmd.Flags().GetBool("refresh"); !refresh {
			return
		}
		a, err := newAgent(cfg, stores, os.Stdout)
		if err != nil {
			contract.LogFatal("Failed to initialize agent", err)
		}
		rec, err := a.refresh(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to refresh snapshot", err)
		}
		if err := a.writer.WriteSnapshot(rec, cfg); err != nil {
			contract.LogFatal("Error writing snapshot", err)
		}
	},
}
