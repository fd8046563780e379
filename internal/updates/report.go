package updates

import (
	"context"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
)

// InspectVCS reports the cached status next to a fresh probe of the plugins
// directory. The cache is read but never written. For git checkouts the
// repository root and HEAD are added when git is non-nil.
func InspectVCS(ctx context.Context, cache *VCSStatusCache, probe *FSProbe, git contract.GitClient) (schema.VCSReport, error) {
	report := schema.VCSReport{PluginsDir: cache.PluginsDir()}
	if value, ok := cache.Peek(); ok {
		report.Cached = &value
	}

	checkout, err := probe.FindCheckout(ctx, cache.PluginsDir())
	if err != nil {
		return report, err
	}
	if checkout == nil {
		return report, nil
	}
	report.IsVCS = true
	report.CheckoutDir = checkout.Dir
	report.Kind = checkout.Kind

	if checkout.Kind != schema.GitKind || git == nil {
		return report, nil
	}
	root, err := git.GetRepoRoot(ctx, checkout.Dir)
	if err != nil {
		contract.LogWarn("Failed to resolve git repository root", err)
		return report, nil
	}
	report.RepoRoot = root
	head, err := git.GetRepoHash(ctx, root)
	if err != nil {
		contract.LogWarn("Failed to resolve git HEAD", err)
		return report, nil
	}
	report.Head = head
	return report, nil
}
