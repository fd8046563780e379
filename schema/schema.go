// Package schema has the models and constants shared by all parts of siteagent.
package schema

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Update count categories reported by the host's update query.
const (
	CountPlugins      = "plugins"
	CountThemes       = "themes"
	CountWordPress    = "wordpress"
	CountTranslations = "translations"
	CountTotal        = "total"
)

// Snapshot fields that are not update counts.
const (
	SnapshotWPVersion       = "wp_version"
	SnapshotWPUpdateVersion = "wp_update_version"
	SnapshotIsVCS           = "is_vcs"
)

// UpdateSnapshot describes available software updates and VCS status for a site.
type UpdateSnapshot struct {
	Counts          map[string]int // Update category -> count; nil when the host reported none
	WPVersion       *string        // Platform version, nil when unknown
	WPUpdateVersion string         // Recommended core release, empty unless an upgrade is offered
	IsVCS           bool           // Installation is a version-control checkout
}

// SnapshotRecord is the persisted, flattened form of an UpdateSnapshot.
// Counts sit at the top level next to the other fields.
type SnapshotRecord map[string]any

// Record flattens the snapshot into its persisted form.
func (s UpdateSnapshot) Record() SnapshotRecord {
	rec := make(SnapshotRecord, len(s.Counts)+3)
	for k, v := range s.Counts {
		rec[k] = v
	}
	if s.WPVersion != nil {
		rec[SnapshotWPVersion] = *s.WPVersion
	} else {
		rec[SnapshotWPVersion] = nil
	}
	if s.WPUpdateVersion != "" {
		rec[SnapshotWPUpdateVersion] = s.WPUpdateVersion
	}
	rec[SnapshotIsVCS] = s.IsVCS
	return rec
}

// IsEmpty reports whether the record carries no fields at all.
func (r SnapshotRecord) IsEmpty() bool {
	return len(r) == 0
}

// Clone returns a shallow copy of the record.
func (r SnapshotRecord) Clone() SnapshotRecord {
	out := make(SnapshotRecord, len(r))
	maps.Copy(out, r)
	return out
}

// Encode serializes the record as a JSON object. A nil record encodes as {}.
func (r SnapshotRecord) Encode() ([]byte, error) {
	if r == nil {
		r = SnapshotRecord{}
	}
	return json.Marshal(map[string]any(r))
}

// DecodeSnapshotRecord parses a persisted record.
func DecodeSnapshotRecord(data []byte) (SnapshotRecord, error) {
	rec := SnapshotRecord{}
	if len(data) == 0 {
		return rec, nil
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("invalid snapshot record: %w", err)
	}
	if rec == nil {
		rec = SnapshotRecord{}
	}
	return rec, nil
}

// Snapshot rebuilds the structured snapshot from a record.
// Any numeric field that is not a known snapshot field is treated as a count.
func (r SnapshotRecord) Snapshot() UpdateSnapshot {
	var s UpdateSnapshot
	for k, v := range r {
		switch k {
		case SnapshotWPVersion:
			if str, ok := v.(string); ok {
				s.WPVersion = &str
			}
		case SnapshotWPUpdateVersion:
			s.WPUpdateVersion, _ = v.(string)
		case SnapshotIsVCS:
			s.IsVCS, _ = v.(bool)
		default:
			n, ok := asInt(v)
			if !ok {
				continue
			}
			if s.Counts == nil {
				s.Counts = make(map[string]int)
			}
			s.Counts[k] = n
		}
	}
	return s
}

// asInt converts JSON-decoded and native numbers to int.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	default:
		return 0, false
	}
}
