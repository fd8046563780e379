package schema

import "time"

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for site storage.
	DatabaseBackend string

	// VCSKind names a version-control metadata directory.
	VCSKind string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All storage backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	LevelDBBackend    DatabaseBackend = "leveldb"
	NoneBackend       DatabaseBackend = "none"
)

// VCS metadata directories, in the order they are probed.
const (
	SVNKind    VCSKind = ".svn"
	GitKind    VCSKind = ".git"
	MercKind   VCSKind = ".hg"
	BazaarKind VCSKind = ".bzr"
)

// AllVCSKinds lists the metadata directories the checkout probe looks for.
var AllVCSKinds = []VCSKind{SVNKind, GitKind, MercKind, BazaarKind}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid storage backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	LevelDBBackend:    {},
	NoneBackend:       {},
}

// ValidHistoryBackends lists the backends that can hold snapshot history.
// History is relational, so the embedded key/value backend is excluded.
var ValidHistoryBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Option and transient keys shared with the host site.
const (
	OptionWPUpdates        = "jetpack_wp_updates"
	OptionFullManagement   = "jetpack_json_api_full_management"
	OptionSyncNonPublic    = "jetpack_sync_non_public_post_stati"
	OptionStylesheet       = "stylesheet"
	OptionDismissedCore    = "dismissed_update_core"
	ThemeModsOptionPrefix  = "theme_mods_"
	TransientIsVCS         = "jetpack_is_vcs"
	TransientUpdateCore    = "update_core"
	TransientUpdatePlugins = "update_plugins"
	TransientUpdateThemes  = "update_themes"
)

// VCSCacheTTL is how long a VCS probe result stays cached.
const VCSCacheTTL = 24 * time.Hour

// Canonical cached VCS values.
const (
	VCSCachedTrue  = "1"
	VCSCachedFalse = "0"
)

// Request-lifecycle hook names.
const (
	HookLoaded          = "wp_loaded"
	HookManagementSaved = "jetpack_notices_update_settings_json-api"
)
