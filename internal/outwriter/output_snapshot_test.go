package outwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() schema.SnapshotRecord {
	return schema.UpdateSnapshot{
		Counts: map[string]int{
			schema.CountPlugins:      2,
			schema.CountThemes:       0,
			schema.CountWordPress:    1,
			schema.CountTranslations: 0,
			schema.CountTotal:        3,
		},
		WPUpdateVersion: "6.5.2",
		IsVCS:           true,
	}.Record()
}

func TestOrderedCounts(t *testing.T) {
	rows := orderedCounts(map[string]int{
		"zeta":              9,
		schema.CountTotal:   3,
		schema.CountPlugins: 2,
		"alpha":             1,
		schema.CountThemes:  1,
	})
	var names []string
	for _, row := range rows {
		names = append(names, row.Category)
	}
	assert.Equal(t, []string{schema.CountPlugins, schema.CountThemes, schema.CountTotal, "alpha", "zeta"}, names)
	assert.Empty(t, orderedCounts(nil))
}

func TestWriteSnapshotTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSnapshotTable(&buf, sampleRecord(), false))
	out := buf.String()
	assert.Contains(t, out, "plugins")
	assert.Contains(t, out, "translations")
	assert.Contains(t, out, contract.UpdateValue)
	assert.Contains(t, out, contract.CurrentValue)
	assert.Contains(t, out, "Core update available: 6.5.2")
	assert.Contains(t, out, "Version control: "+contract.TrackedValue)
}

func TestWriteSnapshotTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSnapshotTable(&buf, schema.SnapshotRecord{}, false))
	assert.Contains(t, buf.String(), "primary site only")
}

func TestWriteSnapshotTable_NoCounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSnapshotTable(&buf, schema.UpdateSnapshot{}.Record(), false))
	out := buf.String()
	assert.Contains(t, out, "No update check has run yet.")
	assert.NotContains(t, out, "Core update available")
	assert.Contains(t, out, "Version control: "+contract.PlainValue)
}

func TestWriteSnapshotCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSnapshotCSV(&buf, sampleRecord()))
	expected := "field,value\n" +
		"plugins,2\n" +
		"themes,0\n" +
		"wordpress,1\n" +
		"translations,0\n" +
		"total,3\n" +
		"wp_version,\n" +
		"wp_update_version,6.5.2\n" +
		"is_vcs,true\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteSnapshotCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSnapshotCSV(&buf, schema.SnapshotRecord{}))
	assert.Equal(t, "field,value\n", buf.String())
}

func TestWriteSnapshotJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeSnapshotJSON(&buf, nil))
	assert.Equal(t, "{}\n", buf.String())

	buf.Reset()
	require.NoError(t, writeSnapshotJSON(&buf, sampleRecord()))
	rec, err := schema.DecodeSnapshotRecord(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, sampleRecord().Snapshot(), rec.Snapshot())
	assert.Contains(t, buf.String(), `"wp_version": null`)
}

func TestWriteSnapshot_ToFile(t *testing.T) {
	tests := []struct {
		output   schema.OutputMode
		contains string
	}{
		{output: schema.JSONOut, contains: `"wp_update_version": "6.5.2"`},
		{output: schema.CSVOut, contains: "wp_update_version,6.5.2"},
		{output: schema.TextOut, contains: "Core update available: 6.5.2"},
	}

	for _, tt := range tests {
		t.Run(string(tt.output), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "snapshot.out")
			cfg := &contract.Config{Output: tt.output, OutputFile: path}
			require.NoError(t, NewOutWriter().WriteSnapshot(sampleRecord(), cfg))

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(content), tt.contains)
		})
	}
}
