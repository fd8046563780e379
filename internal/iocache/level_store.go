package iocache

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// entryPrefix namespaces value records inside the LevelDB keyspace.
const entryPrefix = "e:"

// levelEntry is the gob-encoded record stored per key.
type levelEntry struct {
	Value     []byte
	ExpiresAt int64
	UpdatedAt int64
}

// LevelStoreImpl is a KVStore backed by an embedded LevelDB directory.
type LevelStoreImpl struct {
	db        *leveldb.DB
	path      string
	storeName string
}

var _ contract.KVStore = &LevelStoreImpl{} // Compile-time check

// NewLevelStore opens (or creates) the LevelDB directory at path.
func NewLevelStore(path, storeName string) (*LevelStoreImpl, error) {
	if path == "" {
		return nil, errors.New("leveldb path cannot be empty")
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open LevelDB at %q: %w. Ensure no other process holds it open", path, err)
	}
	return &LevelStoreImpl{db: db, path: path, storeName: storeName}, nil
}

// Get retrieves a value and its expiry by key from the store.
func (ls *LevelStoreImpl) Get(key string) ([]byte, int64, error) {
	b, err := ls.db.Get([]byte(entryPrefix+key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, 0, contract.ErrNotFound
		}
		return nil, 0, fmt.Errorf("failed to read %s key %q: %w", ls.storeName, key, err)
	}
	var ent levelEntry
	if err := decodeGob(b, &ent); err != nil {
		return nil, 0, fmt.Errorf("failed to decode %s key %q: %w", ls.storeName, key, err)
	}
	return ent.Value, ent.ExpiresAt, nil
}

// Set inserts or replaces a key/value pair in the store.
func (ls *LevelStoreImpl) Set(key string, value []byte, expiresAt int64, timestamp int64) error {
	b, err := encodeGob(levelEntry{Value: value, ExpiresAt: expiresAt, UpdatedAt: timestamp})
	if err != nil {
		return fmt.Errorf("failed to encode %s key %q: %w", ls.storeName, key, err)
	}
	batch := new(leveldb.Batch)
	batch.Put([]byte(entryPrefix+key), b)
	if err := ls.db.Write(batch, nil); err != nil {
		return fmt.Errorf("failed to write %s key %q: %w", ls.storeName, key, err)
	}
	return nil
}

// Delete removes a key from the store. Deleting a missing key is not an error.
func (ls *LevelStoreImpl) Delete(key string) error {
	if err := ls.db.Delete([]byte(entryPrefix+key), nil); err != nil {
		return fmt.Errorf("failed to delete %s key %q: %w", ls.storeName, key, err)
	}
	return nil
}

// GetStatus walks every entry to report counts and write times.
func (ls *LevelStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(schema.LevelDBBackend),
		Store:     ls.storeName,
		Connected: true,
	}

	it := ls.db.NewIterator(util.BytesPrefix([]byte(entryPrefix)), nil)
	defer it.Release()

	now := time.Now().Unix()
	var last, oldest int64
	for it.Next() {
		var ent levelEntry
		if err := decodeGob(it.Value(), &ent); err != nil {
			continue
		}
		status.TotalEntries++
		if ent.ExpiresAt > 0 && ent.ExpiresAt <= now {
			status.ExpiredEntries++
		}
		if ent.UpdatedAt > last {
			last = ent.UpdatedAt
		}
		if oldest == 0 || ent.UpdatedAt < oldest {
			oldest = ent.UpdatedAt
		}
	}
	if err := it.Error(); err != nil {
		return status, fmt.Errorf("failed to iterate %s entries: %w", ls.storeName, err)
	}

	if status.TotalEntries > 0 {
		status.LastWriteTime = time.Unix(last, 0)
		status.OldestWriteTime = time.Unix(oldest, 0)
	}
	status.SizeBytes = dirSize(ls.path)
	return status, nil
}

// Close closes the LevelDB handle.
func (ls *LevelStoreImpl) Close() error {
	return ls.db.Close()
}

// dirSize sums the sizes of the regular files under path.
func dirSize(path string) int64 {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if info, err := d.Info(); err == nil {
			total += info.Size()
		}
		return nil
	})
	return total
}

func encodeGob(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeGob(b []byte, v any) error {
	dec := gob.NewDecoder(bytes.NewReader(b))
	return dec.Decode(v)
}
