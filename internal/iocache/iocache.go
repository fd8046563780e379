package iocache

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
)

// Table names for the option and transient stores.
const (
	optionsTable    = "siteagent_options"
	transientsTable = "siteagent_transients"
)

// Store names used in status output and LevelDB subdirectories.
const (
	optionsStoreName    = "options"
	transientsStoreName = "transients"
)

// StoreManager owns the option, transient and history stores.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during shutdown
	optionsKV    contract.KVStore
	transientsKV contract.KVStore
	options      *OptionStoreImpl
	transients   *TransientStoreImpl
	history      contract.HistoryStore
	closeOnce    sync.Once
}

var _ contract.StoreManager = &StoreManager{} // Compile-time check

// NewStoreManager opens the option/transient store and, when historyBackend is
// non-empty, the snapshot history store.
func NewStoreManager(storeBackend schema.DatabaseBackend, storeConnStr string, historyBackend schema.DatabaseBackend, historyConnStr string) (*StoreManager, error) {
	optionsKV, transientsKV, err := openKVStores(storeBackend, storeConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize option storage: %w", err)
	}

	mgr := &StoreManager{
		optionsKV:    optionsKV,
		transientsKV: transientsKV,
		options:      NewOptionStore(optionsKV),
		transients:   NewTransientStore(transientsKV),
	}

	if historyBackend != "" {
		history, err := NewHistoryStore(historyBackend, historyConnStr)
		if err != nil {
			mgr.Close()
			return nil, fmt.Errorf("failed to initialize history store: %w", err)
		}
		mgr.history = history
	}

	return mgr, nil
}

// openKVStores opens the option and transient KV stores for a backend.
func openKVStores(backend schema.DatabaseBackend, connStr string) (contract.KVStore, contract.KVStore, error) {
	if backend == schema.LevelDBBackend {
		root := connStr
		if root == "" {
			root = contract.GetLevelDBPath()
		}
		// LevelDB allows one handle per directory, so each store gets its own
		optionsKV, err := NewLevelStore(filepath.Join(root, optionsStoreName), optionsStoreName)
		if err != nil {
			return nil, nil, err
		}
		transientsKV, err := NewLevelStore(filepath.Join(root, transientsStoreName), transientsStoreName)
		if err != nil {
			_ = optionsKV.Close()
			return nil, nil, err
		}
		return optionsKV, transientsKV, nil
	}

	optionsKV, err := NewKVStore(optionsTable, optionsStoreName, backend, connStr)
	if err != nil {
		return nil, nil, err
	}
	transientsKV, err := NewKVStore(transientsTable, transientsStoreName, backend, connStr)
	if err != nil {
		_ = optionsKV.Close()
		return nil, nil, err
	}
	return optionsKV, transientsKV, nil
}

// GetOptionStore returns the OptionStore.
func (mgr *StoreManager) GetOptionStore() contract.OptionStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.options
}

// GetTransientStore returns the TransientStore.
func (mgr *StoreManager) GetTransientStore() contract.TransientStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.transients
}

// GetHistoryStore returns the HistoryStore, or nil when history is disabled.
func (mgr *StoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}

// GetStoreStatuses returns the status of the option and transient stores.
func (mgr *StoreManager) GetStoreStatuses() ([]schema.StoreStatus, error) {
	mgr.RLock()
	defer mgr.RUnlock()
	var out []schema.StoreStatus
	for _, kv := range []contract.KVStore{mgr.optionsKV, mgr.transientsKV} {
		status, err := kv.GetStatus()
		if err != nil {
			return nil, err
		}
		out = append(out, status)
	}
	return out, nil
}

// Close closes every store. It is safe to call more than once.
func (mgr *StoreManager) Close() {
	mgr.closeOnce.Do(func() {
		mgr.Lock()
		defer mgr.Unlock()
		if mgr.optionsKV != nil {
			_ = mgr.optionsKV.Close()
		}
		if mgr.transientsKV != nil {
			_ = mgr.transientsKV.Close()
		}
		if mgr.history != nil {
			_ = mgr.history.Close()
		}
	})
}
