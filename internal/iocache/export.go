package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/internal/parquet"
)

// ExportHistory writes every recorded snapshot run to a Parquet file.
// Progress lines go to w.
func ExportHistory(store contract.HistoryStore, outputFile string, w io.Writer) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history is disabled. Set --history-backend to record snapshots")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no snapshot history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total snapshot runs: %d\n", status.TotalRuns)

	runs, err := store.ListSnapshots(0)
	if err != nil {
		return fmt.Errorf("failed to retrieve snapshot runs: %w", err)
	}

	if err := parquet.WriteSnapshotRunsParquet(parquet.ConvertSnapshotRunRecords(runs), outputFile); err != nil {
		return fmt.Errorf("failed to write snapshot runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d snapshot runs to: %s\n", len(runs), outputFile)
	return nil
}
