package updates

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/siteagent/internal/iocache"
	"github.com/huangsam/siteagent/schema"
	"github.com/stretchr/testify/require"
)

// testClock is a settable clock shared by the stores under test.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// testStores holds SQLite-backed option and transient stores in a temp dir.
type testStores struct {
	options    *iocache.OptionStoreImpl
	transients *iocache.TransientStoreImpl
	clock      *testClock
}

func newTestStores(t *testing.T) *testStores {
	t.Helper()
	dir := t.TempDir()
	optionsKV, err := iocache.NewKVStore("siteagent_options", "options", schema.SQLiteBackend, filepath.Join(dir, "options.db"))
	require.NoError(t, err)
	transientsKV, err := iocache.NewKVStore("siteagent_transients", "transients", schema.SQLiteBackend, filepath.Join(dir, "transients.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = optionsKV.Close()
		_ = transientsKV.Close()
	})

	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return &testStores{
		options:    iocache.NewOptionStore(optionsKV),
		transients: iocache.NewTransientStore(transientsKV).WithClock(clock.Now),
		clock:      clock,
	}
}

// storedRecord decodes whatever the builder persisted.
func (s *testStores) storedRecord(t *testing.T) schema.SnapshotRecord {
	t.Helper()
	rec, ok, err := LoadSnapshot(s.options)
	require.NoError(t, err)
	require.True(t, ok, "a record should have been persisted")
	return rec
}
