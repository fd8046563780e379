// Package updates records which software updates a site has pending and
// whether its install is tracked by version control.
package updates

import (
	"context"
	"time"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
)

// VCSStatus reports whether the install is a version-control checkout.
type VCSStatus interface {
	IsVCS(ctx context.Context) bool
}

// SnapshotBuilder assembles the update snapshot and persists it under
// schema.OptionWPUpdates.
type SnapshotBuilder struct {
	site     contract.SiteContext
	inquirer contract.UpdateInquirer
	vcs      VCSStatus
	options  contract.OptionStore
	history  contract.HistoryStore
	now      func() time.Time
}

// NewSnapshotBuilder wires a builder from its collaborators.
func NewSnapshotBuilder(site contract.SiteContext, inquirer contract.UpdateInquirer, vcs VCSStatus, options contract.OptionStore) *SnapshotBuilder {
	return &SnapshotBuilder{
		site:     site,
		inquirer: inquirer,
		vcs:      vcs,
		options:  options,
		now:      time.Now,
	}
}

// WithHistory appends every persisted record to history. A nil store disables it.
func (b *SnapshotBuilder) WithHistory(history contract.HistoryStore) *SnapshotBuilder {
	b.history = history
	return b
}

// WithClock replaces the clock used to timestamp history runs.
func (b *SnapshotBuilder) WithClock(now func() time.Time) *SnapshotBuilder {
	b.now = now
	return b
}

// BuildAndPersist computes the snapshot for this request and replaces the
// stored record with it. Secondary sites in a network store an empty record.
// Failures are logged; the record that was meant to be stored is returned.
func (b *SnapshotBuilder) BuildAndPersist(ctx context.Context) schema.SnapshotRecord {
	primary := b.site.IsPrimarySite()

	rec := schema.SnapshotRecord{}
	if primary {
		rec = b.build(ctx).Record()
	}

	b.persist(rec)
	b.record(rec, primary)
	return rec
}

// build gathers counts, the offered core release and VCS status.
func (b *SnapshotBuilder) build(ctx context.Context) schema.UpdateSnapshot {
	var snap schema.UpdateSnapshot

	data, err := b.inquirer.UpdateData(ctx)
	if err != nil {
		contract.LogWarn("Failed to query available updates", err)
	} else if data.Counts != nil {
		snap.Counts = data.Counts
	}

	// WPVersion stays nil: the platform version is not known to the agent

	if snap.Counts[schema.CountWordPress] > 0 {
		offer, err := b.inquirer.PreferredCoreUpdate(ctx)
		if err != nil {
			contract.LogWarn("Failed to read the preferred core update", err)
		} else if offer != nil && offer.Response == schema.CoreResponseUpgrade {
			snap.WPUpdateVersion = offer.Current
		}
	}

	snap.IsVCS = b.vcs.IsVCS(ctx)
	return snap
}

// persist writes the record in a single option update.
func (b *SnapshotBuilder) persist(rec schema.SnapshotRecord) {
	data, err := rec.Encode()
	if err != nil {
		contract.LogWarn("Failed to encode update snapshot", err)
		return
	}
	if err := b.options.UpdateOption(schema.OptionWPUpdates, data); err != nil {
		contract.LogWarn("Failed to persist update snapshot", err)
	}
}

// record appends the run to history when it is enabled.
func (b *SnapshotBuilder) record(rec schema.SnapshotRecord, primary bool) {
	if b.history == nil {
		return
	}
	run, err := schema.NewSnapshotRunRecord(rec, b.now(), primary)
	if err != nil {
		contract.LogWarn("Failed to prepare snapshot history", err)
		return
	}
	if _, err := b.history.RecordSnapshot(run); err != nil {
		contract.LogWarn("Failed to record snapshot history", err)
	}
}

// LoadSnapshot reads the persisted record. ok is false when nothing was stored yet.
func LoadSnapshot(options contract.OptionStore) (schema.SnapshotRecord, bool, error) {
	data, ok, err := options.GetOption(schema.OptionWPUpdates)
	if err != nil || !ok {
		return nil, false, err
	}
	rec, err := schema.DecodeSnapshotRecord(data)
	if err != nil {
		return nil, false, err
	}
	return rec, true, nil
}
