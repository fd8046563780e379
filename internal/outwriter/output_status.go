package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"

	"github.com/olekukonko/tablewriter"
)

// WriteStoreStatuses outputs store statistics, dispatching based on the output format configured.
func WriteStoreStatuses(statuses []schema.StoreStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, statuses)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStoreStatusCSV(w, statuses)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStoreStatusTable(w, statuses)
		}, "Wrote table")
	}
}

func writeStoreStatusTable(w io.Writer, statuses []schema.StoreStatus) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Store", "Backend", "Connected", "Entries", "Expired", "Last Write", "Oldest Write", "Size"})
	var data [][]string
	for _, s := range statuses {
		data = append(data, []string{
			s.Store,
			s.Backend,
			strconv.FormatBool(s.Connected),
			strconv.Itoa(s.TotalEntries),
			strconv.Itoa(s.ExpiredEntries),
			formatTime(s.LastWriteTime),
			formatTime(s.OldestWriteTime),
			fmt.Sprintf("%d B", s.SizeBytes),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func writeStoreStatusCSV(w io.Writer, statuses []schema.StoreStatus) error {
	header := []string{"store", "backend", "connected", "total_entries", "expired_entries", "last_write", "oldest_write", "size_bytes"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, s := range statuses {
			rec := []string{
				s.Store,
				s.Backend,
				strconv.FormatBool(s.Connected),
				strconv.Itoa(s.TotalEntries),
				strconv.Itoa(s.ExpiredEntries),
				formatTime(s.LastWriteTime),
				formatTime(s.OldestWriteTime),
				strconv.FormatInt(s.SizeBytes, 10),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteHistoryStatus outputs history statistics, dispatching based on the output format configured.
func WriteHistoryStatus(status schema.HistoryStatus, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"backend", "connected", "total_runs", "last_run_id", "last_run", "oldest_run", "vcs_runs"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				return cw.Write([]string{
					status.Backend,
					strconv.FormatBool(status.Connected),
					strconv.Itoa(status.TotalRuns),
					strconv.FormatInt(status.LastRunID, 10),
					formatTime(status.LastRunTime),
					formatTime(status.OldestRunTime),
					strconv.Itoa(status.VCSRuns),
				})
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryStatusText(w, status)
		}, "Wrote status")
	}
}

func writeHistoryStatusText(w io.Writer, status schema.HistoryStatus) error {
	lines := []string{
		fmt.Sprintf("History Backend: %s", status.Backend),
		fmt.Sprintf("Connected: %t", status.Connected),
	}
	if status.Connected {
		lines = append(lines, fmt.Sprintf("Total Runs: %d", status.TotalRuns))
		if status.TotalRuns > 0 {
			lines = append(lines,
				fmt.Sprintf("Last Run ID: %d", status.LastRunID),
				fmt.Sprintf("Last Run: %s", formatTime(status.LastRunTime)),
				fmt.Sprintf("Oldest Run: %s", formatTime(status.OldestRunTime)),
				fmt.Sprintf("Runs On A VCS Checkout: %d", status.VCSRuns),
			)
		}
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
