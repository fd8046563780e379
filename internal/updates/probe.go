package updates

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
)

// FSProbe detects version-control checkouts by looking for metadata directories.
type FSProbe struct {
	InstallRoot string // Always checked in addition to the probed directory
}

var _ contract.VCSProbe = &FSProbe{} // Compile-time check

// NewFSProbe returns a probe that also checks installRoot.
func NewFSProbe(installRoot string) *FSProbe {
	return &FSProbe{InstallRoot: installRoot}
}

// Checkout describes where a VCS metadata directory was found.
type Checkout struct {
	Dir  string         // Directory that holds the metadata directory
	Kind schema.VCSKind // Metadata directory name
}

// IsVCSCheckout reports whether dir or the install root, or any of their
// ancestors below the filesystem root, holds a VCS metadata directory.
func (p *FSProbe) IsVCSCheckout(ctx context.Context, dir string) (bool, error) {
	checkout, err := p.FindCheckout(ctx, dir)
	if err != nil {
		return false, err
	}
	return checkout != nil, nil
}

// FindCheckout returns the first checkout found, or nil when there is none.
// Directories are checked nearest first, dir's ancestry before the install root's.
func (p *FSProbe) FindCheckout(ctx context.Context, dir string) (*Checkout, error) {
	candidates, err := p.candidateDirs(dir)
	if err != nil {
		return nil, err
	}

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, kind := range schema.AllVCSKinds {
			if isDir(filepath.Join(candidate, string(kind))) {
				return &Checkout{Dir: candidate, Kind: kind}, nil
			}
		}
	}
	return nil, nil
}

// candidateDirs lists dir, the install root, and their ancestors without duplicates.
// The filesystem root itself is never checked.
func (p *FSProbe) candidateDirs(dir string) ([]string, error) {
	if dir == "" {
		return nil, errors.New("probe directory cannot be empty")
	}
	starts := []string{dir}
	if p.InstallRoot != "" {
		starts = append(starts, p.InstallRoot)
	}

	var out []string
	for _, start := range starts {
		abs, err := filepath.Abs(start)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %q: %w", start, err)
		}
		for current := filepath.Clean(abs); current != filepath.Dir(current); current = filepath.Dir(current) {
			if slices.Contains(out, current) {
				break
			}
			out = append(out, current)
		}
	}
	return out, nil
}

// isDir treats unreadable paths as absent.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
