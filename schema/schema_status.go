package schema

import "time"

// StoreStatus represents the status of an option or transient store.
type StoreStatus struct {
	Backend         string    `json:"backend"`
	Store           string    `json:"store"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	ExpiredEntries  int       `json:"expired_entries"`
	LastWriteTime   time.Time `json:"last_write_time"`
	OldestWriteTime time.Time `json:"oldest_write_time"`
	SizeBytes       int64     `json:"size_bytes"`
}

// HistoryStatus represents the status of the snapshot history store.
type HistoryStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	TotalRuns     int       `json:"total_runs"`
	LastRunID     int64     `json:"last_run_id"`
	LastRunTime   time.Time `json:"last_run_time"`
	OldestRunTime time.Time `json:"oldest_run_time"`
	VCSRuns       int       `json:"vcs_runs"`
}

// SnapshotRunRecord represents a row from the siteagent_snapshot_runs table.
type SnapshotRunRecord struct {
	RunID           int64
	RecordedAt      time.Time
	PrimarySite     bool
	IsVCS           bool
	Plugins         int32
	Themes          int32
	WordPress       int32
	Translations    int32
	Total           int32
	WPUpdateVersion *string
	RecordJSON      string
}

// NewSnapshotRunRecord derives a history row from a persisted record.
func NewSnapshotRunRecord(rec SnapshotRecord, recordedAt time.Time, primary bool) (SnapshotRunRecord, error) {
	data, err := rec.Encode()
	if err != nil {
		return SnapshotRunRecord{}, err
	}
	snap := rec.Snapshot()
	run := SnapshotRunRecord{
		RecordedAt:   recordedAt,
		PrimarySite:  primary,
		IsVCS:        snap.IsVCS,
		Plugins:      int32(snap.Counts[CountPlugins]),
		Themes:       int32(snap.Counts[CountThemes]),
		WordPress:    int32(snap.Counts[CountWordPress]),
		Translations: int32(snap.Counts[CountTranslations]),
		Total:        int32(snap.Counts[CountTotal]),
		RecordJSON:   string(data),
	}
	if snap.WPUpdateVersion != "" {
		v := snap.WPUpdateVersion
		run.WPUpdateVersion = &v
	}
	return run, nil
}

// SyncedOption is a mirrored option name and its current stored value.
type SyncedOption struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Present bool   `json:"present"`
}

// VCSReport describes the cached and probed VCS state of an install.
type VCSReport struct {
	PluginsDir  string  `json:"plugins_dir"`
	Cached      *string `json:"cached"` // nil when nothing valid is cached
	IsVCS       bool    `json:"is_vcs"`
	CheckoutDir string  `json:"checkout_dir,omitempty"`
	Kind        VCSKind `json:"kind,omitempty"`
	RepoRoot    string  `json:"repo_root,omitempty"`
	Head        string  `json:"head,omitempty"`
}
