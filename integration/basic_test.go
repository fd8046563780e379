//go:build basic

package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeRecord parses a snapshot printed with --output json.
func decodeRecord(t *testing.T, out string) map[string]any {
	t.Helper()
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &rec), "output: %s", out)
	return rec
}

func embeddedBackends(t *testing.T) map[string][]string {
	dir := t.TempDir()
	return map[string][]string{
		"sqlite": {
			"SITEAGENT_STORE_BACKEND=sqlite",
			"SITEAGENT_STORE_DB_CONNECT=" + filepath.Join(dir, "store.db"),
		},
		"leveldb": {
			"SITEAGENT_STORE_BACKEND=leveldb",
			"SITEAGENT_STORE_DB_CONNECT=" + filepath.Join(dir, "leveldb"),
		},
	}
}

func TestSnapshotLifecycle(t *testing.T) {
	for name, env := range embeddedBackends(t) {
		t.Run(name, func(t *testing.T) {
			in := newInstall(t, env...)

			// No release checks yet: no counts, no offered release
			rec := decodeRecord(t, in.mustRun(t, "refresh", "--output", "json"))
			assert.Equal(t, map[string]any{"wp_version": nil, "is_vcs": false}, rec)

			in.mustRun(t, "host", "import", in.stateFile)
			rec = decodeRecord(t, in.mustRun(t, "refresh", "--output", "json"))
			assert.Equal(t, float64(2), rec["plugins"])
			assert.Equal(t, float64(1), rec["themes"])
			assert.Equal(t, float64(1), rec["wordpress"])
			assert.Equal(t, float64(0), rec["translations"])
			assert.Equal(t, float64(4), rec["total"])
			assert.Equal(t, "6.5.2", rec["wp_update_version"])
			assert.Nil(t, rec["wp_version"])

			// The stored record matches what refresh printed
			stored := decodeRecord(t, in.mustRun(t, "updates", "--output", "json"))
			assert.Equal(t, rec, stored)

			status := in.mustRun(t, "store", "status", "--output", "csv")
			assert.Contains(t, status, "options,"+name)
			assert.Contains(t, status, "transients,"+name)

			in.mustRun(t, "store", "clear")
			_, err := in.run(t, "updates")
			require.NoError(t, err)
		})
	}
}

func TestVCSStatusIsCached(t *testing.T) {
	in := newInstall(t, embeddedBackends(t)["sqlite"]...)

	rec := decodeRecord(t, in.mustRun(t, "refresh", "--output", "json"))
	assert.Equal(t, false, rec["is_vcs"])

	// A checkout appearing later is not seen until the cache is refreshed
	require.NoError(t, os.Mkdir(filepath.Join(in.plugins, ".svn"), 0o755))
	rec = decodeRecord(t, in.mustRun(t, "refresh", "--output", "json"))
	assert.Equal(t, false, rec["is_vcs"])

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(in.mustRun(t, "vcs", "--refresh", "--output", "json")), &report))
	assert.Equal(t, "1", report["cached"])
	assert.Equal(t, ".svn", report["kind"])

	rec = decodeRecord(t, in.mustRun(t, "refresh", "--output", "json"))
	assert.Equal(t, true, rec["is_vcs"])
}

func TestSecondarySiteStoresEmptySnapshot(t *testing.T) {
	in := newInstall(t, embeddedBackends(t)["sqlite"]...)
	in.mustRun(t, "host", "import", in.stateFile)

	out := in.mustRun(t, "refresh", "--multisite", "--site-id", "2", "--main-site-id", "1", "--output", "json")
	assert.Equal(t, "{}", strings.TrimSpace(out))

	out = in.mustRun(t, "refresh", "--multisite", "--site-id", "1", "--main-site-id", "1", "--output", "json")
	assert.Equal(t, float64(4), decodeRecord(t, out)["total"])
}

func TestManagementSettings(t *testing.T) {
	in := newInstall(t, embeddedBackends(t)["sqlite"]...)

	assert.Equal(t, "Centralized management: disabled\n", in.mustRun(t, "settings", "show"))
	assert.Contains(t, in.mustRun(t, "settings", "enable"), "You are all set!")
	assert.Equal(t, "Centralized management: enabled\n", in.mustRun(t, "settings", "show"))
	assert.Contains(t, in.mustRun(t, "settings", "disable"), "Centralized Site Management is now disabled.")

	synced := in.mustRun(t, "settings", "synced", "--output", "csv")
	assert.Contains(t, synced, "jetpack_json_api_full_management,true,false")
	assert.Contains(t, synced, "jetpack_wp_updates,false,")
}

func TestSnapshotHistory(t *testing.T) {
	dir := t.TempDir()
	env := append(embeddedBackends(t)["sqlite"],
		"SITEAGENT_HISTORY_BACKEND=sqlite",
		"SITEAGENT_HISTORY_DB_CONNECT="+filepath.Join(dir, "history.db"),
	)
	in := newInstall(t, env...)

	in.mustRun(t, "refresh")
	in.mustRun(t, "host", "import", in.stateFile, "--refresh")

	runs := strings.Split(strings.TrimSpace(in.mustRun(t, "history", "runs", "--output", "csv")), "\n")
	require.Len(t, runs, 3)
	assert.True(t, strings.HasSuffix(runs[1], ",2,1,1,0,4,6.5.2"), runs[1])

	status := in.mustRun(t, "history", "status")
	assert.Contains(t, status, "Total Runs: 2")

	parquetFile := filepath.Join(dir, "runs.parquet")
	in.mustRun(t, "history", "export", "--output-file", parquetFile)
	info, err := os.Stat(parquetFile)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	in.mustRun(t, "history", "clear")
	in.mustRun(t, "history", "migrate")
	assert.Contains(t, in.mustRun(t, "history", "status"), "Total Runs: 0")
}
