package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStoreStatuses() []schema.StoreStatus {
	written := time.Date(2026, 3, 1, 12, 0, 0, 0, time.Local)
	return []schema.StoreStatus{
		{
			Backend:         "sqlite",
			Store:           "options",
			Connected:       true,
			TotalEntries:    4,
			LastWriteTime:   written,
			OldestWriteTime: written.Add(-time.Hour),
			SizeBytes:       8192,
		},
		{
			Backend:        "sqlite",
			Store:          "transients",
			Connected:      true,
			TotalEntries:   2,
			ExpiredEntries: 1,
		},
	}
}

func TestWriteStoreStatusTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStoreStatusTable(&buf, sampleStoreStatuses()))
	out := buf.String()
	assert.Contains(t, out, "options")
	assert.Contains(t, out, "transients")
	assert.Contains(t, out, "2026-03-01 12:00:00")
	assert.Contains(t, out, "8192 B")
}

func TestWriteStoreStatusCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeStoreStatusCSV(&buf, sampleStoreStatuses()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "store,backend,connected,total_entries,expired_entries,last_write,oldest_write,size_bytes", lines[0])
	assert.Equal(t, "options,sqlite,true,4,0,2026-03-01 12:00:00,2026-03-01 11:00:00,8192", lines[1])
	assert.Equal(t, "transients,sqlite,true,2,1,-,-,0", lines[2])
}

func TestWriteStoreStatuses_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "status.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: path}
	require.NoError(t, WriteStoreStatuses(sampleStoreStatuses(), cfg))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded []schema.StoreStatus
	require.NoError(t, json.Unmarshal(content, &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "transients", decoded[1].Store)
	assert.Equal(t, 1, decoded[1].ExpiredEntries)
}

func TestWriteHistoryStatusText(t *testing.T) {
	tests := []struct {
		name        string
		status      schema.HistoryStatus
		contains    []string
		notContains []string
	}{
		{
			name:        "disconnected",
			status:      schema.HistoryStatus{Backend: "none"},
			contains:    []string{"History Backend: none", "Connected: false"},
			notContains: []string{"Total Runs"},
		},
		{
			name:        "connected without runs",
			status:      schema.HistoryStatus{Backend: "sqlite", Connected: true},
			contains:    []string{"Total Runs: 0"},
			notContains: []string{"Last Run ID"},
		},
		{
			name: "connected with runs",
			status: schema.HistoryStatus{
				Backend:       "postgresql",
				Connected:     true,
				TotalRuns:     5,
				LastRunID:     9,
				LastRunTime:   time.Date(2026, 3, 2, 8, 0, 0, 0, time.Local),
				OldestRunTime: time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local),
				VCSRuns:       2,
			},
			contains: []string{"Total Runs: 5", "Last Run ID: 9", "Last Run: 2026-03-02 08:00:00", "Oldest Run: 2026-03-01 08:00:00", "Runs On A VCS Checkout: 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeHistoryStatusText(&buf, tt.status))
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

func TestWriteHistoryStatus_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: path}
	status := schema.HistoryStatus{Backend: "sqlite", Connected: true, TotalRuns: 1, LastRunID: 1}
	require.NoError(t, WriteHistoryStatus(status, cfg))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "backend,connected,total_runs,last_run_id,last_run,oldest_run,vcs_runs\nsqlite,true,1,1,-,-,0\n", string(content))
}
