package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"

	"github.com/olekukonko/tablewriter"
)

// WriteSyncedOptions outputs the mirrored options, dispatching based on the output format configured.
func WriteSyncedOptions(synced []schema.SyncedOption, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, synced)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"name", "present", "value"}, func(cw *csv.Writer) error {
				for _, opt := range synced {
					if err := cw.Write([]string{opt.Name, strconv.FormatBool(opt.Present), opt.Value}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSyncedOptionsTable(w, synced, getMaxTableValueWidth(cfg, 45))
		}, "Wrote table")
	}
}

func writeSyncedOptionsTable(w io.Writer, synced []schema.SyncedOption, maxWidth int) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Option", "Value"})
	var data [][]string
	for _, opt := range synced {
		value := "(unset)"
		if opt.Present {
			value = contract.TruncateValue(opt.Value, maxWidth)
		}
		data = append(data, []string{opt.Name, value})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
