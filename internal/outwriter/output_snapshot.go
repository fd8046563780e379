package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// countOrder is the display order of the known update categories.
var countOrder = []string{
	schema.CountPlugins,
	schema.CountThemes,
	schema.CountWordPress,
	schema.CountTranslations,
	schema.CountTotal,
}

// snapshotRow is one update category in display order.
type snapshotRow struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// orderedCounts lists known categories first, then any others by name.
func orderedCounts(counts map[string]int) []snapshotRow {
	rows := make([]snapshotRow, 0, len(counts))
	for _, key := range countOrder {
		if n, ok := counts[key]; ok {
			rows = append(rows, snapshotRow{Category: key, Count: n})
		}
	}
	var extra []string
	for key := range counts {
		if !slices.Contains(countOrder, key) {
			extra = append(extra, key)
		}
	}
	slices.Sort(extra)
	for _, key := range extra {
		rows = append(rows, snapshotRow{Category: key, Count: counts[key]})
	}
	return rows
}

// WriteSnapshot outputs a snapshot record, dispatching based on the output format configured.
// JSON output is the record exactly as persisted.
func WriteSnapshot(rec schema.SnapshotRecord, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSnapshotJSON(w, rec)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSnapshotCSV(w, rec)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSnapshotTable(w, rec, cfg.UseColors)
		}, "Wrote table")
	}
}

func writeSnapshotJSON(w io.Writer, rec schema.SnapshotRecord) error {
	if rec == nil {
		rec = schema.SnapshotRecord{}
	}
	return writeJSON(w, map[string]any(rec))
}

// writeSnapshotCSV writes one field,value row per snapshot field.
func writeSnapshotCSV(w io.Writer, rec schema.SnapshotRecord) error {
	return writeCSVWithHeader(w, []string{"field", "value"}, func(cw *csv.Writer) error {
		if rec.IsEmpty() {
			return nil
		}
		snap := rec.Snapshot()
		for _, row := range orderedCounts(snap.Counts) {
			if err := cw.Write([]string{row.Category, strconv.Itoa(row.Count)}); err != nil {
				return err
			}
		}
		wpVersion := ""
		if snap.WPVersion != nil {
			wpVersion = *snap.WPVersion
		}
		rows := [][]string{
			{schema.SnapshotWPVersion, wpVersion},
			{schema.SnapshotWPUpdateVersion, snap.WPUpdateVersion},
			{schema.SnapshotIsVCS, strconv.FormatBool(snap.IsVCS)},
		}
		return cw.WriteAll(rows)
	})
}

// writeSnapshotTable renders counts as a table followed by the version and VCS lines.
func writeSnapshotTable(w io.Writer, rec schema.SnapshotRecord, useColors bool) error {
	if rec.IsEmpty() {
		_, err := fmt.Fprintln(w, "No update snapshot for this site (updates are tracked on the primary site only).")
		return err
	}
	snap := rec.Snapshot()

	if len(snap.Counts) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Category", "Count", "Status"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.Global = tw.AlignRight
		})
		var data [][]string
		for _, row := range orderedCounts(snap.Counts) {
			data = append(data, []string{row.Category, strconv.Itoa(row.Count), countLabel(row.Count, useColors)})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(w, "No update check has run yet."); err != nil {
		return err
	}

	if snap.WPUpdateVersion != "" {
		if _, err := fmt.Fprintf(w, "Core update available: %s\n", snap.WPUpdateVersion); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Version control: %s\n", vcsLabel(snap.IsVCS, useColors))
	return err
}
