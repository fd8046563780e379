package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/huangsam/siteagent/schema"
)

// Default values for configuration.
const (
	DefaultSiteID   = 1
	DefaultInterval = time.Minute
	MinInterval     = time.Second
)

// DefaultPluginsSubdir is where plugins live relative to the install root.
var DefaultPluginsSubdir = filepath.Join("wp-content", "plugins")

// Config holds the runtime configuration for the agent.
// This struct is the "final, validated" config.
type Config struct {
	InstallRoot string // Absolute path to the site installation
	PluginsDir  string // Absolute path probed for VCS metadata

	Multisite  bool
	SiteID     int
	MainSiteID int

	Interval time.Duration // Tick interval for the watch loop

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	InstallRoot      string `mapstructure:"install-root"`
	PluginsDir       string `mapstructure:"plugins-dir"`
	Multisite        bool   `mapstructure:"multisite"`
	SiteID           int    `mapstructure:"site-id"`
	MainSiteID       int    `mapstructure:"main-site-id"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	StoreBackend     string `mapstructure:"store-backend"`
	StoreDBConnect   string `mapstructure:"store-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from watchCmd.Flags() ---
	Interval string `mapstructure:"interval"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateSiteInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := resolveInstallPaths(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.LevelDBBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ParseInterval parses a watch interval such as "30s" or "5m".
func ParseInterval(s string) (time.Duration, error) {
	if s == "" {
		return DefaultInterval, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid interval %q: %w", s, err)
	}
	if d < MinInterval {
		return 0, fmt.Errorf("interval must be at least %s (received %s)", MinInterval, d)
	}
	return d, nil
}

// validateSimpleInputs processes and validates the output related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	output := input.Output
	if output == "" {
		output = string(schema.TextOut)
	}
	cfg.Output = schema.OutputMode(strings.ToLower(output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	interval, err := ParseInterval(input.Interval)
	if err != nil {
		return err
	}
	cfg.Interval = interval

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	return nil
}

// validateSiteInputs validates the multi-site identity of this agent.
func validateSiteInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.Multisite = input.Multisite
	cfg.SiteID = input.SiteID
	cfg.MainSiteID = input.MainSiteID
	if cfg.SiteID == 0 {
		cfg.SiteID = DefaultSiteID
	}
	if cfg.MainSiteID == 0 {
		cfg.MainSiteID = DefaultSiteID
	}
	if cfg.SiteID < 0 || cfg.MainSiteID < 0 {
		return fmt.Errorf("site ids must be positive (site-id %d, main-site-id %d)", cfg.SiteID, cfg.MainSiteID)
	}
	return nil
}

// validateBackendConfigs validates store and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Store Backend Validation ---
	storeBackend := input.StoreBackend
	if storeBackend == "" {
		storeBackend = string(schema.SQLiteBackend)
	}
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(storeBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, leveldb, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidHistoryBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.StoreBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		storePath := cfg.StoreDBConnect
		if storePath == "" {
			storePath = GetStoreDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if storePath == historyPath {
			return fmt.Errorf("store and history must use different SQLite database files. Both resolve to %q", storePath)
		}
	}
	return nil
}

// resolveInstallPaths resolves the install root and the probed plugins directory.
func resolveInstallPaths(cfg *Config, input *ConfigRawInput) error {
	root := input.InstallRoot
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	absRoot = filepath.Clean(absRoot)

	info, err := os.Stat(absRoot)
	if err != nil {
		return fmt.Errorf("install root %q is not accessible: %w", absRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("install root %q is not a directory", absRoot)
	}
	cfg.InstallRoot = absRoot

	plugins := input.PluginsDir
	if plugins == "" {
		plugins = DefaultPluginsSubdir
	}
	if !filepath.IsAbs(plugins) {
		plugins = filepath.Join(absRoot, plugins)
	}
	cfg.PluginsDir = filepath.Clean(plugins)
	return nil
}
