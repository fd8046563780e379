package cmd

import (
	"io"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/internal/hooks"
	"github.com/huangsam/siteagent/internal/iocache"
	"github.com/huangsam/siteagent/internal/mcp"
	"github.com/huangsam/siteagent/internal/outwriter"
	"github.com/huangsam/siteagent/internal/updates"
	"github.com/huangsam/siteagent/schema"
)

// agent bundles the services built from one validated config.
type agent struct {
	cfg      *contract.Config
	stores   *iocache.StoreManager
	probe    *updates.FSProbe
	vcs      *updates.VCSStatusCache
	builder  *updates.SnapshotBuilder
	settings *updates.ManagementSettings
	registry *hooks.Registry
	git      contract.GitClient
	writer   *outwriter.OutWriter
	last     schema.SnapshotRecord
}

// newAgent wires the snapshot builder and its collaborators onto the stores.
// Management notices are printed to noticeOut.
func newAgent(cfg *contract.Config, stores *iocache.StoreManager, noticeOut io.Writer) (*agent, error) {
	a := &agent{
		cfg:      cfg,
		stores:   stores,
		probe:    updates.NewFSProbe(cfg.InstallRoot),
		settings: updates.NewManagementSettings(stores.GetOptionStore()),
		registry: hooks.NewRegistry(),
		git:      contract.NewLocalGitClient(),
		writer:   outwriter.NewOutWriter(),
	}
	a.vcs = updates.NewVCSStatusCache(stores.GetTransientStore(), a.probe, cfg.PluginsDir)
	inquirer := updates.NewTransientUpdateInquirer(stores.GetTransientStore()).WithDismissals(stores.GetOptionStore())
	a.builder = updates.NewSnapshotBuilder(updates.NewStaticSite(cfg), inquirer, a.vcs, stores.GetOptionStore())
	if history := stores.GetHistoryStore(); history != nil {
		a.builder.WithHistory(history)
	}

	err := updates.RegisterHooks(a.registry, a.builder, a.settings, noticeOut, func(rec schema.SnapshotRecord) {
		a.last = rec
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// mcpDeps exposes the agent's services to the MCP server.
func (a *agent) mcpDeps() *mcp.Deps {
	return &mcp.Deps{
		Registry: a.registry,
		VCS:      a.vcs,
		Probe:    a.probe,
		Git:      a.git,
		Settings: a.settings,
		Options:  a.stores.GetOptionStore(),
		History:  a.stores.GetHistoryStore(),
	}
}
