package outwriter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteVCSReportText(t *testing.T) {
	cached := "1"
	report := schema.VCSReport{
		PluginsDir:  "/srv/site/wp-content/plugins",
		Cached:      &cached,
		IsVCS:       true,
		CheckoutDir: "/srv/site",
		Kind:        schema.GitKind,
		RepoRoot:    "/srv/site",
		Head:        "abc123",
	}
	var buf bytes.Buffer
	require.NoError(t, writeVCSReportText(&buf, report, 80, false))
	out := buf.String()
	assert.Contains(t, out, "Plugins Dir: /srv/site/wp-content/plugins")
	assert.Contains(t, out, "Cached: "+contract.TrackedValue+" (1)")
	assert.Contains(t, out, "Kind: .git")
	assert.Contains(t, out, "HEAD: abc123")
}

func TestWriteVCSReportText_PlainUncached(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeVCSReportText(&buf, schema.VCSReport{PluginsDir: "/p"}, 80, false))
	out := buf.String()
	assert.Contains(t, out, "Cached: not cached")
	assert.Contains(t, out, "Probe: "+contract.PlainValue)
	assert.NotContains(t, out, "Checkout:")
	assert.NotContains(t, out, "HEAD:")
}

func TestWriteVCSReportText_TruncatesPaths(t *testing.T) {
	var buf bytes.Buffer
	report := schema.VCSReport{PluginsDir: "/a/very/long/path/to/the/site/wp-content/plugins"}
	require.NoError(t, writeVCSReportText(&buf, report, 20, false))
	assert.Contains(t, buf.String(), "Plugins Dir: ...")
}

func TestWriteVCSReport_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vcs.csv")
	cfg := &contract.Config{Output: schema.CSVOut, OutputFile: path}
	require.NoError(t, WriteVCSReport(schema.VCSReport{PluginsDir: "/p", IsVCS: true, CheckoutDir: "/", Kind: schema.SVNKind}, cfg))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "plugins_dir,cached,is_vcs,checkout_dir,kind,repo_root,head\n/p,,true,/,.svn,,\n", string(content))
}
