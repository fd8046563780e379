package updates

import (
	"context"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
)

// VCSStatusCache answers whether the install is a VCS checkout, probing the
// filesystem at most once per schema.VCSCacheTTL.
type VCSStatusCache struct {
	transients contract.TransientStore
	probe      contract.VCSProbe
	pluginsDir string
}

// NewVCSStatusCache caches probe results for pluginsDir in transients.
func NewVCSStatusCache(transients contract.TransientStore, probe contract.VCSProbe, pluginsDir string) *VCSStatusCache {
	return &VCSStatusCache{transients: transients, probe: probe, pluginsDir: pluginsDir}
}

// IsVCS returns the cached status, refreshing it on a miss. It never fails:
// read and probe errors are logged and treated as a miss and as "0".
func (c *VCSStatusCache) IsVCS(ctx context.Context) bool {
	return c.CachedValue(ctx) == schema.VCSCachedTrue
}

// CachedValue returns the canonical cached string, "1" or "0".
func (c *VCSStatusCache) CachedValue(ctx context.Context) string {
	if value, ok := c.lookup(); ok {
		return value
	}
	return c.Refresh(ctx)
}

// Refresh runs the probe unconditionally and stores the result.
func (c *VCSStatusCache) Refresh(ctx context.Context) string {
	value := schema.VCSCachedFalse
	isVCS, err := c.probe.IsVCSCheckout(ctx, c.pluginsDir)
	if err != nil {
		contract.LogWarn("VCS probe failed, recording the install as untracked", err)
	} else if isVCS {
		value = schema.VCSCachedTrue
	}

	if err := c.transients.SetTransient(schema.TransientIsVCS, []byte(value), schema.VCSCacheTTL); err != nil {
		contract.LogWarn("Failed to cache VCS status", err)
	}
	return value
}

// Peek returns the cached value without probing on a miss.
func (c *VCSStatusCache) Peek() (string, bool) {
	return c.lookup()
}

// PluginsDir is the directory the cache probes.
func (c *VCSStatusCache) PluginsDir() string {
	return c.pluginsDir
}

// lookup returns a cached value only when it is canonical.
func (c *VCSStatusCache) lookup() (string, bool) {
	data, ok, err := c.transients.GetTransient(schema.TransientIsVCS)
	if err != nil {
		contract.LogWarn("Failed to read cached VCS status", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	switch value := string(data); value {
	case schema.VCSCachedTrue, schema.VCSCachedFalse:
		return value, true
	default:
		return "", false
	}
}
