package schema

import "time"

// Core update responses as reported by the host's release check.
const (
	CoreResponseUpgrade     = "upgrade"
	CoreResponseLatest      = "latest"
	CoreResponseDevelopment = "development"
)

// UpdateData is the result of the host's update-availability query.
type UpdateData struct {
	Counts map[string]int `json:"counts,omitempty"` // nil when no update check has run yet
}

// CoreUpdate is a single core release offer.
type CoreUpdate struct {
	Response  string `json:"response" yaml:"response"`
	Current   string `json:"current" yaml:"current"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	Locale    string `json:"locale,omitempty" yaml:"locale,omitempty"`
	Dismissed bool   `json:"dismissed,omitempty" yaml:"dismissed,omitempty"`
}

// TranslationUpdate is a pending language pack.
type TranslationUpdate struct {
	Type     string `json:"type" yaml:"type"`
	Slug     string `json:"slug" yaml:"slug"`
	Language string `json:"language" yaml:"language"`
	Version  string `json:"version" yaml:"version"`
}

// ExtensionUpdate is a pending plugin or theme release.
type ExtensionUpdate struct {
	Slug       string `json:"slug" yaml:"slug"`
	NewVersion string `json:"new_version" yaml:"new_version"`
	Package    string `json:"package,omitempty" yaml:"package,omitempty"`
}

// CoreUpdateState is the host's cached core release check (transient update_core).
type CoreUpdateState struct {
	LastChecked  time.Time           `json:"last_checked" yaml:"last_checked"`
	Updates      []CoreUpdate        `json:"updates" yaml:"updates"`
	Translations []TranslationUpdate `json:"translations,omitempty" yaml:"translations,omitempty"`
}

// ExtensionUpdateState is the host's cached plugin or theme release check
// (transients update_plugins and update_themes). Response is keyed by extension file.
type ExtensionUpdateState struct {
	LastChecked  time.Time                  `json:"last_checked" yaml:"last_checked"`
	Response     map[string]ExtensionUpdate `json:"response" yaml:"response"`
	Translations []TranslationUpdate        `json:"translations,omitempty" yaml:"translations,omitempty"`
}

// HostUpdateState bundles the three update checks for import.
// DismissedCore lists core offers the administrator hid, as "current|locale".
type HostUpdateState struct {
	Core          *CoreUpdateState      `yaml:"core"`
	Plugins       *ExtensionUpdateState `yaml:"plugins"`
	Themes        *ExtensionUpdateState `yaml:"themes"`
	DismissedCore []string              `yaml:"dismissed_core,omitempty"`
}

// DismissalKey identifies a core offer in the dismissed_update_core option.
func (u CoreUpdate) DismissalKey() string {
	return u.Current + "|" + u.Locale
}
