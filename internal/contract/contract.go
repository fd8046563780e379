// Package contract provides interfaces and shared utilities for siteagent's internal architecture.
package contract

import (
	"context"
	"errors"
	"time"

	"github.com/huangsam/siteagent/schema"
)

// ErrNotFound is returned by stores when a key has no value.
var ErrNotFound = errors.New("key not found")

// GitClient defines the git operations used to describe a checkout.
// This allows the VCS reporting to be tested without needing a real git executable.
type GitClient interface {
	// Run executes a git command and returns the combined output.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetRepoHash returns the current HEAD commit hash of the repository.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetRepoRoot returns the absolute path to the root of the Git repository
	// containing the given context path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)
}

// KVStore is the storage primitive behind the option and transient stores.
// expiresAt and timestamp are unix seconds; an expiresAt of 0 never expires.
type KVStore interface {
	Get(key string) (value []byte, expiresAt int64, err error)
	Set(key string, value []byte, expiresAt int64, timestamp int64) error
	Delete(key string) error
	GetStatus() (schema.StoreStatus, error)
	Close() error
}

// OptionStore is durable site-wide key/value storage.
type OptionStore interface {
	GetOption(key string) ([]byte, bool, error)
	UpdateOption(key string, value []byte) error
	DeleteOption(key string) error
}

// TransientStore is key/value storage with expiry. A ttl of 0 never expires.
type TransientStore interface {
	GetTransient(key string) ([]byte, bool, error)
	SetTransient(key string, value []byte, ttl time.Duration) error
	DeleteTransient(key string) error
}

// HistoryStore keeps a record of every persisted snapshot.
type HistoryStore interface {
	// RecordSnapshot appends a run and returns its ID
	RecordSnapshot(run schema.SnapshotRunRecord) (int64, error)

	// ListSnapshots returns the newest runs first; limit <= 0 returns all runs
	ListSnapshots(limit int) ([]schema.SnapshotRunRecord, error)

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// Close closes the underlying connection
	Close() error
}

// StoreManager hands out the configured stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetOptionStore() OptionStore
	GetTransientStore() TransientStore
	GetHistoryStore() HistoryStore
}

// UpdateInquirer answers what software updates the host knows about.
type UpdateInquirer interface {
	// UpdateData returns update counts per category.
	UpdateData(ctx context.Context) (schema.UpdateData, error)

	// PreferredCoreUpdate returns the recommended core release offer, or nil
	// when the host has never checked for core releases.
	PreferredCoreUpdate(ctx context.Context) (*schema.CoreUpdate, error)
}

// VCSProbe reports whether a directory is inside a version-control checkout.
type VCSProbe interface {
	IsVCSCheckout(ctx context.Context, dir string) (bool, error)
}

// SiteContext describes the site the agent runs for in a multi-site network.
type SiteContext interface {
	IsPrimarySite() bool
}
