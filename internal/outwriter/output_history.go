package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// historyRunJSON is the JSON shape of a recorded run. The stored record is
// embedded as an object rather than a string.
type historyRunJSON struct {
	RunID       int64                 `json:"run_id"`
	RecordedAt  string                `json:"recorded_at"`
	PrimarySite bool                  `json:"primary_site"`
	Record      schema.SnapshotRecord `json:"record"`
}

// WriteHistoryRuns outputs recorded runs, newest first, dispatching based on the output format configured.
func WriteHistoryRuns(runs []schema.SnapshotRunRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryRunsJSON(w, runs)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryRunsCSV(w, runs)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryRunsTable(w, runs, cfg.UseColors)
		}, "Wrote table")
	}
}

func writeHistoryRunsJSON(w io.Writer, runs []schema.SnapshotRunRecord) error {
	out := make([]historyRunJSON, 0, len(runs))
	for _, run := range runs {
		rec, err := schema.DecodeSnapshotRecord([]byte(run.RecordJSON))
		if err != nil {
			return fmt.Errorf("run %d: %w", run.RunID, err)
		}
		out = append(out, historyRunJSON{
			RunID:       run.RunID,
			RecordedAt:  run.RecordedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
			PrimarySite: run.PrimarySite,
			Record:      rec,
		})
	}
	return writeJSON(w, out)
}

func writeHistoryRunsCSV(w io.Writer, runs []schema.SnapshotRunRecord) error {
	header := []string{"run_id", "recorded_at", "primary_site", "is_vcs", "plugins", "themes", "wordpress", "translations", "total", "wp_update_version"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, run := range runs {
			rec := []string{
				strconv.FormatInt(run.RunID, 10),
				formatTime(run.RecordedAt),
				strconv.FormatBool(run.PrimarySite),
				strconv.FormatBool(run.IsVCS),
				strconv.Itoa(int(run.Plugins)),
				strconv.Itoa(int(run.Themes)),
				strconv.Itoa(int(run.WordPress)),
				strconv.Itoa(int(run.Translations)),
				strconv.Itoa(int(run.Total)),
				derefString(run.WPUpdateVersion),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeHistoryRunsTable(w io.Writer, runs []schema.SnapshotRunRecord, useColors bool) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No snapshot runs recorded.")
		return err
	}
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Run", "Recorded", "Primary", "VCS", "Plugins", "Themes", "Core", "Translations", "Total", "Core Update"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, run := range runs {
		data = append(data, []string{
			strconv.FormatInt(run.RunID, 10),
			formatTime(run.RecordedAt),
			strconv.FormatBool(run.PrimarySite),
			vcsLabel(run.IsVCS, useColors),
			strconv.Itoa(int(run.Plugins)),
			strconv.Itoa(int(run.Themes)),
			strconv.Itoa(int(run.WordPress)),
			strconv.Itoa(int(run.Translations)),
			strconv.Itoa(int(run.Total)),
			derefString(run.WPUpdateVersion),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Showing %d runs\n", len(runs))
	return err
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
