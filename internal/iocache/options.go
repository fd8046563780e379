package iocache

import (
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/siteagent/internal/contract"
)

// OptionStoreImpl exposes a KVStore as durable site options.
type OptionStoreImpl struct {
	kv  contract.KVStore
	now func() time.Time
}

var _ contract.OptionStore = &OptionStoreImpl{} // Compile-time check

// NewOptionStore wraps kv as an OptionStore.
func NewOptionStore(kv contract.KVStore) *OptionStoreImpl {
	return &OptionStoreImpl{kv: kv, now: time.Now}
}

// GetOption returns the option value and whether it exists.
func (s *OptionStoreImpl) GetOption(key string) ([]byte, bool, error) {
	value, _, err := s.kv.Get(key)
	if errors.Is(err, contract.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// UpdateOption replaces the option value.
func (s *OptionStoreImpl) UpdateOption(key string, value []byte) error {
	return s.kv.Set(key, value, 0, s.now().Unix())
}

// DeleteOption removes the option.
func (s *OptionStoreImpl) DeleteOption(key string) error {
	return s.kv.Delete(key)
}

// TransientStoreImpl exposes a KVStore as expiring transients.
type TransientStoreImpl struct {
	kv  contract.KVStore
	now func() time.Time
}

var _ contract.TransientStore = &TransientStoreImpl{} // Compile-time check

// NewTransientStore wraps kv as a TransientStore.
func NewTransientStore(kv contract.KVStore) *TransientStoreImpl {
	return &TransientStoreImpl{kv: kv, now: time.Now}
}

// WithClock replaces the clock used for expiry checks.
func (ts *TransientStoreImpl) WithClock(now func() time.Time) *TransientStoreImpl {
	ts.now = now
	return ts
}

// GetTransient returns the transient value and whether it is present and unexpired.
// Expired entries are removed on read.
func (ts *TransientStoreImpl) GetTransient(key string) ([]byte, bool, error) {
	value, expiresAt, err := ts.kv.Get(key)
	if errors.Is(err, contract.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if expiresAt > 0 && expiresAt <= ts.now().Unix() {
		if err := ts.kv.Delete(key); err != nil {
			return nil, false, fmt.Errorf("failed to drop expired transient %q: %w", key, err)
		}
		return nil, false, nil
	}
	return value, true, nil
}

// SetTransient stores value for ttl. A ttl of 0 never expires.
func (ts *TransientStoreImpl) SetTransient(key string, value []byte, ttl time.Duration) error {
	if ttl < 0 {
		return fmt.Errorf("transient ttl cannot be negative: %s", ttl)
	}
	now := ts.now()
	var expiresAt int64
	if ttl > 0 {
		expiresAt = now.Add(ttl).Unix()
	}
	return ts.kv.Set(key, value, expiresAt, now.Unix())
}

// DeleteTransient removes the transient.
func (ts *TransientStoreImpl) DeleteTransient(key string) error {
	return ts.kv.Delete(key)
}
