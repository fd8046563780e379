package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
)

// WriteVCSReport outputs the VCS report, dispatching based on the output format configured.
func WriteVCSReport(report schema.VCSReport, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			header := []string{"plugins_dir", "cached", "is_vcs", "checkout_dir", "kind", "repo_root", "head"}
			return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
				return cw.Write([]string{
					report.PluginsDir,
					derefString(report.Cached),
					strconv.FormatBool(report.IsVCS),
					report.CheckoutDir,
					string(report.Kind),
					report.RepoRoot,
					report.Head,
				})
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeVCSReportText(w, report, getMaxTableValueWidth(cfg, 20), cfg.UseColors)
		}, "Wrote report")
	}
}

func writeVCSReportText(w io.Writer, report schema.VCSReport, maxWidth int, useColors bool) error {
	cached := "not cached"
	if report.Cached != nil {
		isVCS := *report.Cached == schema.VCSCachedTrue
		cached = fmt.Sprintf("%s (%s)", vcsLabel(isVCS, useColors), *report.Cached)
	}
	lines := []string{
		fmt.Sprintf("Plugins Dir: %s", contract.TruncateValue(report.PluginsDir, maxWidth)),
		fmt.Sprintf("Cached: %s", cached),
		fmt.Sprintf("Probe: %s", vcsLabel(report.IsVCS, useColors)),
	}
	if report.IsVCS {
		lines = append(lines,
			fmt.Sprintf("Checkout: %s", contract.TruncateValue(report.CheckoutDir, maxWidth)),
			fmt.Sprintf("Kind: %s", report.Kind),
		)
	}
	if report.RepoRoot != "" {
		lines = append(lines, fmt.Sprintf("Repo Root: %s", contract.TruncateValue(report.RepoRoot, maxWidth)))
	}
	if report.Head != "" {
		lines = append(lines, fmt.Sprintf("HEAD: %s", report.Head))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
