// Package parquet provides data structures and functions for exporting siteagent
// snapshot history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/siteagent/schema"
	"github.com/parquet-go/parquet-go"
)

// SnapshotRun represents a single persisted update snapshot.
// This struct maps to the siteagent_snapshot_runs database table.
type SnapshotRun struct {
	// RunID is the unique identifier for this snapshot
	RunID int64 `parquet:"run_id,snappy"`

	// RecordedAt is when the snapshot was persisted (stored as TIMESTAMP with nanosecond precision)
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// PrimarySite is false when the run stored an empty record for a secondary site
	PrimarySite bool `parquet:"primary_site,snappy"`

	// IsVCS reports whether the install was a version-control checkout
	IsVCS bool `parquet:"is_vcs,snappy"`

	Plugins      int32 `parquet:"plugins,snappy"`
	Themes       int32 `parquet:"themes,snappy"`
	WordPress    int32 `parquet:"wordpress,snappy"`
	Translations int32 `parquet:"translations,snappy"`
	Total        int32 `parquet:"total,snappy"`

	// WPUpdateVersion is the offered core release (nullable)
	WPUpdateVersion *string `parquet:"wp_update_version,optional,snappy"`

	// RecordJSON is the exact JSON persisted under the updates option
	RecordJSON string `parquet:"record_json,snappy"`
}

// WriteSnapshotRunsParquet writes a slice of SnapshotRun structs to a Parquet file.
func WriteSnapshotRunsParquet(data []SnapshotRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the SnapshotRun struct tags
	writer := parquet.NewGenericWriter[SnapshotRun](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	// Close flushes the footer
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertSnapshotRunRecords converts schema.SnapshotRunRecord to SnapshotRun for Parquet export.
func ConvertSnapshotRunRecords(records []schema.SnapshotRunRecord) []SnapshotRun {
	result := make([]SnapshotRun, len(records))
	for i, record := range records {
		result[i] = SnapshotRun{
			RunID:           record.RunID,
			RecordedAt:      record.RecordedAt,
			PrimarySite:     record.PrimarySite,
			IsVCS:           record.IsVCS,
			Plugins:         record.Plugins,
			Themes:          record.Themes,
			WordPress:       record.WordPress,
			Translations:    record.Translations,
			Total:           record.Total,
			WPUpdateVersion: record.WPUpdateVersion,
			RecordJSON:      record.RecordJSON,
		}
	}
	return result
}
