// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// Every method honors cfg.Output and cfg.OutputFile.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSnapshot prints a persisted update snapshot.
func (ow *OutWriter) WriteSnapshot(rec schema.SnapshotRecord, cfg *contract.Config) error {
	return WriteSnapshot(rec, cfg)
}

// WriteStoreStatuses prints option and transient store statistics.
func (ow *OutWriter) WriteStoreStatuses(statuses []schema.StoreStatus, cfg *contract.Config) error {
	return WriteStoreStatuses(statuses, cfg)
}

// WriteHistoryStatus prints snapshot history statistics.
func (ow *OutWriter) WriteHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	return WriteHistoryStatus(status, cfg)
}

// WriteHistoryRuns prints recorded snapshot runs.
func (ow *OutWriter) WriteHistoryRuns(runs []schema.SnapshotRunRecord, cfg *contract.Config) error {
	return WriteHistoryRuns(runs, cfg)
}

// WriteVCSReport prints the cached and probed VCS state.
func (ow *OutWriter) WriteVCSReport(report schema.VCSReport, cfg *contract.Config) error {
	return WriteVCSReport(report, cfg)
}

// WriteSyncedOptions prints the mirrored options and their values.
func (ow *OutWriter) WriteSyncedOptions(synced []schema.SyncedOption, cfg *contract.Config) error {
	return WriteSyncedOptions(synced, cfg)
}

// countLabel returns the update label for n, colored when enabled.
func countLabel(n int, useColors bool) string {
	if useColors {
		return contract.GetColorCountLabel(n)
	}
	return contract.GetPlainCountLabel(n)
}

// vcsLabel returns the VCS label, colored when enabled.
func vcsLabel(isVCS bool, useColors bool) string {
	if useColors {
		return contract.GetColorVCSLabel(isVCS)
	}
	return contract.GetPlainVCSLabel(isVCS)
}

// getMaxTableValueWidth calculates the maximum width for free-form values in
// table output based on terminal width and the fixed columns around them.
func getMaxTableValueWidth(cfg *contract.Config, fixedWidth int) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for table borders, separators, and padding
	available := termWidth - fixedWidth - 10
	if available < 15 {
		return 15
	}
	if available > 90 {
		return 90
	}
	return available
}
