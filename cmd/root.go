package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/internal/iocache"
	"github.com/huangsam/siteagent/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// stores is the persistence manager opened by the setup hooks.
var stores *iocache.StoreManager

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "siteagent",
	Short:              "Track pending site updates and version-control status.",
	Long:               `Siteagent records which plugin, theme, core and translation updates a site has pending and whether its install is a version-control checkout.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeStores()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set environment variable prefix
	viper.SetEnvPrefix("SITEAGENT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("install-root", ".")
	viper.SetDefault("site-id", contract.DefaultSiteID)
	viper.SetDefault("main-site-id", contract.DefaultSiteID)
	viper.SetDefault("interval", contract.DefaultInterval.String())
	viper.SetDefault("store-backend", schema.SQLiteBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("history-backend", "")
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("color", "yes")
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".siteagent") // Name of config file (without extension)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}
	return nil
}

// resolveConfig merges file, env and flags into cfg and validates the result.
func resolveConfig() error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := loadConfigFile(); err != nil {
		return err
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	return contract.ProcessAndValidate(cfg, input)
}

// sharedSetup validates config and opens the option, transient and history stores.
func sharedSetup(_ *cobra.Command, _ []string) error {
	if err := resolveConfig(); err != nil {
		return err
	}

	mgr, err := iocache.NewStoreManager(cfg.StoreBackend, cfg.StoreDBConnect, cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}
	stores = mgr
	return nil
}

// historySetup validates config and opens only the history store.
// An unset history backend opens the no-op store.
func historySetup(_ *cobra.Command, _ []string) error {
	if err := resolveConfig(); err != nil {
		return err
	}
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}

	mgr, err := iocache.NewStoreManager(schema.NoneBackend, "", cfg.HistoryBackend, cfg.HistoryDBConnect)
	if err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}
	stores = mgr
	return nil
}

// configOnlySetup validates config without opening any store.
// Used by commands that remove or migrate storage.
func configOnlySetup(_ *cobra.Command, _ []string) error {
	return resolveConfig()
}

// closeStores releases the stores opened by a setup hook.
func closeStores() {
	if stores != nil {
		stores.Close()
		stores = nil
	}
}

// Execute runs the root command.
func Execute() error {
	defer closeStores()
	return rootCmd.Execute()
}
