package iocache

import (
	"time"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
	"github.com/stretchr/testify/mock"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetOptionStore implements the StoreManager interface.
func (m *MockStoreManager) GetOptionStore() contract.OptionStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.OptionStore)
	return store
}

// GetTransientStore implements the StoreManager interface.
func (m *MockStoreManager) GetTransientStore() contract.TransientStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.TransientStore)
	return store
}

// GetHistoryStore implements the StoreManager interface.
func (m *MockStoreManager) GetHistoryStore() contract.HistoryStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.HistoryStore)
	return store
}

// MockKVStore is a mock implementation of KVStore for testing.
type MockKVStore struct {
	mock.Mock
}

var _ contract.KVStore = &MockKVStore{} // Compile-time check

// Get implements the KVStore interface.
func (m *MockKVStore) Get(key string) ([]byte, int64, error) {
	args := m.Called(key)
	value, _ := args.Get(0).([]byte)
	return value, args.Get(1).(int64), args.Error(2)
}

// Set implements the KVStore interface.
func (m *MockKVStore) Set(key string, value []byte, expiresAt int64, timestamp int64) error {
	args := m.Called(key, value, expiresAt, timestamp)
	return args.Error(0)
}

// Delete implements the KVStore interface.
func (m *MockKVStore) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// GetStatus implements the KVStore interface.
func (m *MockKVStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the KVStore interface.
func (m *MockKVStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockOptionStore is a mock implementation of OptionStore for testing.
type MockOptionStore struct {
	mock.Mock
}

var _ contract.OptionStore = &MockOptionStore{} // Compile-time check

// GetOption implements the OptionStore interface.
func (m *MockOptionStore) GetOption(key string) ([]byte, bool, error) {
	args := m.Called(key)
	value, _ := args.Get(0).([]byte)
	return value, args.Bool(1), args.Error(2)
}

// UpdateOption implements the OptionStore interface.
func (m *MockOptionStore) UpdateOption(key string, value []byte) error {
	args := m.Called(key, value)
	return args.Error(0)
}

// DeleteOption implements the OptionStore interface.
func (m *MockOptionStore) DeleteOption(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// MockTransientStore is a mock implementation of TransientStore for testing.
type MockTransientStore struct {
	mock.Mock
}

var _ contract.TransientStore = &MockTransientStore{} // Compile-time check

// GetTransient implements the TransientStore interface.
func (m *MockTransientStore) GetTransient(key string) ([]byte, bool, error) {
	args := m.Called(key)
	value, _ := args.Get(0).([]byte)
	return value, args.Bool(1), args.Error(2)
}

// SetTransient implements the TransientStore interface.
func (m *MockTransientStore) SetTransient(key string, value []byte, ttl time.Duration) error {
	args := m.Called(key, value, ttl)
	return args.Error(0)
}

// DeleteTransient implements the TransientStore interface.
func (m *MockTransientStore) DeleteTransient(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// MockHistoryStore is a mock implementation of HistoryStore for testing.
type MockHistoryStore struct {
	mock.Mock
}

var _ contract.HistoryStore = &MockHistoryStore{} // Compile-time check

// RecordSnapshot implements the HistoryStore interface.
func (m *MockHistoryStore) RecordSnapshot(run schema.SnapshotRunRecord) (int64, error) {
	args := m.Called(run)
	return args.Get(0).(int64), args.Error(1)
}

// ListSnapshots implements the HistoryStore interface.
func (m *MockHistoryStore) ListSnapshots(limit int) ([]schema.SnapshotRunRecord, error) {
	args := m.Called(limit)
	runs, _ := args.Get(0).([]schema.SnapshotRunRecord)
	return runs, args.Error(1)
}

// GetStatus implements the HistoryStore interface.
func (m *MockHistoryStore) GetStatus() (schema.HistoryStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.HistoryStatus), args.Error(1)
}

// Close implements the HistoryStore interface.
func (m *MockHistoryStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
