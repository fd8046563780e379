package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/siteagent/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRuns(t *testing.T) []schema.SnapshotRunRecord {
	t.Helper()
	recorded := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first, err := schema.NewSnapshotRunRecord(sampleRecord(), recorded, true)
	require.NoError(t, err)
	first.RunID = 2
	second, err := schema.NewSnapshotRunRecord(schema.SnapshotRecord{}, recorded.Add(-time.Hour), false)
	require.NoError(t, err)
	second.RunID = 1
	return []schema.SnapshotRunRecord{first, second}
}

func TestWriteHistoryRunsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistoryRunsTable(&buf, sampleRuns(t), false))
	out := buf.String()
	assert.Contains(t, out, "6.5.2")
	assert.Contains(t, out, "Showing 2 runs")
}

func TestWriteHistoryRunsTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistoryRunsTable(&buf, nil, false))
	assert.Equal(t, "No snapshot runs recorded.\n", buf.String())
}

func TestWriteHistoryRunsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistoryRunsCSV(&buf, sampleRuns(t)))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "run_id,recorded_at,primary_site,is_vcs,plugins,themes,wordpress,translations,total,wp_update_version", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2,"))
	assert.True(t, strings.HasSuffix(lines[1], ",true,true,2,0,1,0,3,6.5.2"))
	assert.True(t, strings.HasSuffix(lines[2], ",false,false,0,0,0,0,0,"))
}

func TestWriteHistoryRunsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHistoryRunsJSON(&buf, sampleRuns(t)))

	var decoded []struct {
		RunID       int64          `json:"run_id"`
		RecordedAt  string         `json:"recorded_at"`
		PrimarySite bool           `json:"primary_site"`
		Record      map[string]any `json:"record"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, int64(2), decoded[0].RunID)
	assert.Equal(t, "2026-03-01T12:00:00Z", decoded[0].RecordedAt)
	assert.Equal(t, "6.5.2", decoded[0].Record["wp_update_version"])
	assert.Empty(t, decoded[1].Record)
	assert.False(t, decoded[1].PrimarySite)
}

func TestWriteHistoryRunsJSON_BadRecord(t *testing.T) {
	var buf bytes.Buffer
	err := writeHistoryRunsJSON(&buf, []schema.SnapshotRunRecord{{RunID: 7, RecordJSON: "{not json"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run 7")
}

func TestDerefString(t *testing.T) {
	v := "6.5.2"
	assert.Equal(t, "6.5.2", derefString(&v))
	assert.Empty(t, derefString(nil))
}
