package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/siteagent/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []schema.SnapshotRunRecord {
	now := time.Now().UTC()
	version := "6.5"
	return []schema.SnapshotRunRecord{
		{
			RunID:           1,
			RecordedAt:      now.Add(-2 * time.Hour),
			PrimarySite:     true,
			IsVCS:           false,
			Plugins:         2,
			Themes:          1,
			WordPress:       1,
			Total:           4,
			WPUpdateVersion: &version,
			RecordJSON:      `{"is_vcs":false,"plugins":2,"themes":1,"total":4,"wordpress":1,"wp_update_version":"6.5","wp_version":null}`,
		},
		{
			RunID:       2,
			RecordedAt:  now.Add(-1 * time.Hour),
			PrimarySite: false,
			RecordJSON:  `{}`,
		},
	}
}

func TestSnapshotRunStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	schema := parquet.SchemaOf(new(SnapshotRun))
	require.NotNil(t, schema)

	expectedColumns := []string{
		"run_id",
		"recorded_at",
		"primary_site",
		"is_vcs",
		"plugins",
		"themes",
		"wordpress",
		"translations",
		"total",
		"wp_update_version",
		"record_json",
	}

	for _, colName := range expectedColumns {
		col, ok := schema.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestConvertSnapshotRunRecords(t *testing.T) {
	records := sampleRecords()
	converted := ConvertSnapshotRunRecords(records)
	require.Len(t, converted, len(records))

	assert.Equal(t, int64(1), converted[0].RunID)
	assert.True(t, converted[0].PrimarySite)
	assert.Equal(t, int32(4), converted[0].Total)
	require.NotNil(t, converted[0].WPUpdateVersion)
	assert.Equal(t, "6.5", *converted[0].WPUpdateVersion)

	assert.False(t, converted[1].PrimarySite)
	assert.Nil(t, converted[1].WPUpdateVersion)
	assert.Equal(t, "{}", converted[1].RecordJSON)
}

func TestWriteSnapshotRunsParquet(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "snapshot_runs.parquet")

	data := ConvertSnapshotRunRecords(sampleRecords())
	err := WriteSnapshotRunsParquet(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[SnapshotRun](file)
	defer func() { _ = reader.Close() }()

	readData := make([]SnapshotRun, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := range data {
		assert.Equal(t, data[i].RunID, readData[i].RunID)
		assert.Equal(t, data[i].PrimarySite, readData[i].PrimarySite)
		assert.Equal(t, data[i].IsVCS, readData[i].IsVCS)
		assert.Equal(t, data[i].Total, readData[i].Total)
		assert.Equal(t, data[i].RecordJSON, readData[i].RecordJSON)
		assert.WithinDuration(t, data[i].RecordedAt, readData[i].RecordedAt, time.Microsecond)

		if data[i].WPUpdateVersion == nil {
			assert.Nil(t, readData[i].WPUpdateVersion)
		} else {
			require.NotNil(t, readData[i].WPUpdateVersion)
			assert.Equal(t, *data[i].WPUpdateVersion, *readData[i].WPUpdateVersion)
		}
	}
}

func TestWriteSnapshotRunsParquet_EmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty.parquet")

	err := WriteSnapshotRunsParquet([]SnapshotRun{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	_, err = os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
}

func TestWriteSnapshotRunsParquet_BadPath(t *testing.T) {
	err := WriteSnapshotRunsParquet(nil, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}
