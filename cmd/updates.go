package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/internal/outwriter"
	"github.com/huangsam/siteagent/internal/updates"
	"github.com/huangsam/siteagent/schema"
	"github.com/spf13/cobra"
)

// refresh fires the loaded hook once, which rebuilds and persists the snapshot.
func (a *agent) refresh(ctx context.Context) (schema.SnapshotRecord, error) {
	if err := a.registry.DoAction(ctx, schema.HookLoaded); err != nil {
		return nil, err
	}
	return a.last, nil
}

// watch refreshes on every tick until ctx is done, logging one line per run to w.
func (a *agent) watch(ctx context.Context, interval time.Duration, w io.Writer) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		rec, err := a.refresh(ctx)
		if err != nil {
			contract.LogWarn("Snapshot refresh failed", err)
		} else {
			_, _ = fmt.Fprintln(w, summarize(rec, time.Now()))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// summarize renders one watch log line.
func summarize(rec schema.SnapshotRecord, now time.Time) string {
	stamp := now.Format(time.RFC3339)
	if rec.IsEmpty() {
		return fmt.Sprintf("%s secondary site, stored empty snapshot", stamp)
	}
	snap := rec.Snapshot()
	if snap.Counts == nil {
		return fmt.Sprintf("%s no update check yet, vcs=%s", stamp, contract.GetPlainVCSLabel(snap.IsVCS))
	}
	line := fmt.Sprintf("%s total=%d plugins=%d themes=%d wordpress=%d translations=%d vcs=%s",
		stamp,
		snap.Counts[schema.CountTotal],
		snap.Counts[schema.CountPlugins],
		snap.Counts[schema.CountThemes],
		snap.Counts[schema.CountWordPress],
		snap.Counts[schema.CountTranslations],
		contract.GetPlainVCSLabel(snap.IsVCS),
	)
	if snap.WPUpdateVersion != "" {
		line += " core_update=" + snap.WPUpdateVersion
	}
	return line
}

// refreshCmd rebuilds the snapshot once.
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild and store the update snapshot",
	Long: `Run the request-lifecycle hook once: gather pending update counts, the
offered core release and the cached VCS status, then store the result under
the jetpack_wp_updates option.

Secondary sites of a network always store an empty snapshot.

Examples:
  # Refresh and print the snapshot
  siteagent refresh --install-root /srv/www/site

  # Refresh as site 3 of a network whose main site is 1
  siteagent refresh --multisite --site-id 3 --main-site-id 1`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		a, err := newAgent(cfg, stores, os.Stdout)
		if err != nil {
			contract.LogFatal("Failed to initialize agent", err)
		}
		rec, err := a.refresh(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to refresh snapshot", err)
		}
		if err := a.writer.WriteSnapshot(rec, cfg); err != nil {
			contract.LogFatal("Error writing snapshot", err)
		}
	},
}

// watchCmd refreshes the snapshot on an interval.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the update snapshot on an interval",
	Long: `Refresh the snapshot immediately and then once per --interval until interrupted.

The VCS probe still runs at most once per 24 hours; ticks in between read the cache.

Examples:
  # Refresh every five minutes
  siteagent watch --interval 5m`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		a, err := newAgent(cfg, stores, os.Stdout)
		if err != nil {
			contract.LogFatal("Failed to initialize agent", err)
		}
		ctx, stop := signal.NotifyContext(rootCtx, os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := a.watch(ctx, cfg.Interval, os.Stdout); err != nil {
			contract.LogFatal("Watch failed", err)
		}
	},
}

// updatesCmd prints the stored snapshot without rebuilding it.
var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "Show the stored update snapshot",
	Long: `Print the snapshot stored by the last refresh.

Use --output json to see the record exactly as it is stored.

Examples:
  siteagent updates
  siteagent updates --output json`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		rec, ok, err := updates.LoadSnapshot(stores.GetOptionStore())
		if err != nil {
			contract.LogFatal("Failed to load snapshot", err)
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "No snapshot stored yet. Run 'siteagent refresh' first.")
			return
		}
		if err := outwriter.NewOutWriter().WriteSnapshot(rec, cfg); err != nil {
			contract.LogFatal("Error writing snapshot", err)
		}
	},
}
