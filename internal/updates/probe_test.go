package updates

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/siteagent/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeInstall creates <root>/wp-content/plugins and returns both paths.
func makeInstall(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	plugins := filepath.Join(root, "wp-content", "plugins")
	require.NoError(t, os.MkdirAll(plugins, 0o755))
	return root, plugins
}

func TestFSProbe_Plain(t *testing.T) {
	root, plugins := makeInstall(t)
	isVCS, err := NewFSProbe(root).IsVCSCheckout(context.Background(), plugins)
	require.NoError(t, err)
	assert.False(t, isVCS)
}

func TestFSProbe_Kinds(t *testing.T) {
	for _, kind := range schema.AllVCSKinds {
		t.Run(string(kind), func(t *testing.T) {
			root, plugins := makeInstall(t)
			require.NoError(t, os.Mkdir(filepath.Join(plugins, string(kind)), 0o755))

			checkout, err := NewFSProbe(root).FindCheckout(context.Background(), plugins)
			require.NoError(t, err)
			require.NotNil(t, checkout)
			assert.Equal(t, kind, checkout.Kind)
			assert.Equal(t, plugins, checkout.Dir)
		})
	}
}

func TestFSProbe_AncestorCheckout(t *testing.T) {
	root, plugins := makeInstall(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, ".git"), 0o755))

	checkout, err := NewFSProbe("").FindCheckout(context.Background(), plugins)
	require.NoError(t, err)
	require.NotNil(t, checkout)
	assert.Equal(t, root, checkout.Dir)
	assert.Equal(t, schema.GitKind, checkout.Kind)
}

func TestFSProbe_InstallRootChecked(t *testing.T) {
	root, _ := makeInstall(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, ".svn"), 0o755))

	// Plugins live outside the install root
	elsewhere := t.TempDir()
	isVCS, err := NewFSProbe(root).IsVCSCheckout(context.Background(), elsewhere)
	require.NoError(t, err)
	assert.True(t, isVCS)
}

func TestFSProbe_FileIsNotCheckout(t *testing.T) {
	root, plugins := makeInstall(t)
	// A .git file (as in worktrees) is not a metadata directory
	require.NoError(t, os.WriteFile(filepath.Join(plugins, ".git"), []byte("gitdir: elsewhere"), 0o644))

	isVCS, err := NewFSProbe(root).IsVCSCheckout(context.Background(), plugins)
	require.NoError(t, err)
	assert.False(t, isVCS)
}

func TestFSProbe_Errors(t *testing.T) {
	_, err := NewFSProbe("").IsVCSCheckout(context.Background(), "")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, plugins := makeInstall(t)
	_, err = NewFSProbe("").IsVCSCheckout(ctx, plugins)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFSProbe_CandidateDirs(t *testing.T) {
	root, plugins := makeInstall(t)
	dirs, err := NewFSProbe(root).candidateDirs(plugins)
	require.NoError(t, err)

	assert.Equal(t, plugins, dirs[0])
	assert.Contains(t, dirs, filepath.Join(root, "wp-content"))
	assert.Contains(t, dirs, root)
	assert.NotContains(t, dirs, string(filepath.Separator), "the filesystem root is never checked")

	// The install root is an ancestor of plugins, so nothing is listed twice
	seen := map[string]bool{}
	for _, d := range dirs {
		assert.False(t, seen[d], "duplicate %s", d)
		seen[d] = true
	}
}
