// Package iocache holds the storage backends behind options, transients and snapshot history.
package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
)

// KVStoreImpl handles key/value storage using various SQL database backends.
type KVStoreImpl struct {
	db        *sql.DB
	tableName string
	storeName string
	backend   schema.DatabaseBackend
	connStr   string
}

var _ contract.KVStore = &KVStoreImpl{} // Compile-time check

// NewKVStore initializes and returns a new KVStore based on the backend type.
// storeName labels the store in status output ("options" or "transients").
func NewKVStore(tableName, storeName string, backend schema.DatabaseBackend, connStr string) (*KVStoreImpl, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	store := &KVStoreImpl{
		tableName: tableName,
		storeName: storeName,
		backend:   backend,
		connStr:   connStr,
	}

	switch backend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
	case schema.NoneBackend:
		// No-op store for disabled persistence
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, leveldb, or none", backend)
	}

	db, err := openDatabase(backend, connStr, contract.GetStoreDBFilePath())
	if err != nil {
		return nil, err
	}

	// Create the table schema
	if _, err := db.Exec(getCreateKVTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	store.db = db
	return store, nil
}

// getCreateKVTableQuery returns the CREATE TABLE query for the given backend.
func getCreateKVTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				store_key VARCHAR(191) PRIMARY KEY,
				store_value LONGBLOB NOT NULL,
				expires_at BIGINT NOT NULL,
				updated_at BIGINT NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				store_key TEXT PRIMARY KEY,
				store_value BYTEA NOT NULL,
				expires_at BIGINT NOT NULL,
				updated_at BIGINT NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				store_key TEXT PRIMARY KEY,
				store_value BLOB NOT NULL,
				expires_at INTEGER NOT NULL,
				updated_at INTEGER NOT NULL
			);
		`, quotedTableName)
	}
}

// Get retrieves a value and its expiry by key from the store.
func (ks *KVStoreImpl) Get(key string) ([]byte, int64, error) {
	if ks.db == nil {
		return nil, 0, contract.ErrNotFound
	}

	var value []byte
	var expiresAt int64

	quotedTableName := quoteTableName(ks.tableName, ks.backend)
	query := fmt.Sprintf(`SELECT store_value, expires_at FROM %s WHERE store_key = %s`, quotedTableName, placeholder(ks.backend, 1))
	row := ks.db.QueryRow(query, key)

	if err := row.Scan(&value, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, contract.ErrNotFound
		}
		return nil, 0, fmt.Errorf("failed to read %s key %q: %w", ks.storeName, key, err)
	}
	return value, expiresAt, nil
}

// Set inserts or replaces a key/value pair in the store.
func (ks *KVStoreImpl) Set(key string, value []byte, expiresAt int64, timestamp int64) error {
	if ks.db == nil {
		return nil
	}
	if value == nil {
		value = []byte{}
	}

	if _, err := ks.db.Exec(ks.getUpsertQuery(), key, value, expiresAt, timestamp); err != nil {
		return fmt.Errorf("failed to write %s key %q: %w", ks.storeName, key, err)
	}
	return nil
}

// Delete removes a key from the store. Deleting a missing key is not an error.
func (ks *KVStoreImpl) Delete(key string) error {
	if ks.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(ks.tableName, ks.backend)
	query := fmt.Sprintf(`DELETE FROM %s WHERE store_key = %s`, quotedTableName, placeholder(ks.backend, 1))
	if _, err := ks.db.Exec(query, key); err != nil {
		return fmt.Errorf("failed to delete %s key %q: %w", ks.storeName, key, err)
	}
	return nil
}

// getUpsertQuery returns the UPSERT query for the backend.
func (ks *KVStoreImpl) getUpsertQuery() string {
	quotedTableName := quoteTableName(ks.tableName, ks.backend)
	switch ks.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (store_key, store_value, expires_at, updated_at) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE store_value = new.store_value, expires_at = new.expires_at, updated_at = new.updated_at`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (store_key, store_value, expires_at, updated_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (store_key) DO UPDATE SET store_value = EXCLUDED.store_value, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (store_key, store_value, expires_at, updated_at) VALUES (?, ?, ?, ?)`, quotedTableName)
	}
}

// Close closes the underlying DB connection.
func (ks *KVStoreImpl) Close() error {
	if ks.db != nil {
		return ks.db.Close()
	}
	return nil
}

// GetStatus returns status information about the store.
func (ks *KVStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(ks.backend),
		Store:     ks.storeName,
		Connected: ks.db != nil,
	}

	if ks.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(ks.tableName, ks.backend)

	// Get total entries
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := ks.db.QueryRow(countQuery).Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}

	if status.TotalEntries == 0 {
		return status, nil
	}

	// Expired entries linger until they are read
	expiredQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE expires_at > 0 AND expires_at <= %s", quotedTableName, placeholder(ks.backend, 1))
	if err := ks.db.QueryRow(expiredQuery, time.Now().Unix()).Scan(&status.ExpiredEntries); err != nil {
		return status, fmt.Errorf("failed to get expired entries: %w", err)
	}

	var lastTs, oldestTs int64
	rangeQuery := fmt.Sprintf("SELECT MAX(updated_at), MIN(updated_at) FROM %s", quotedTableName)
	if err := ks.db.QueryRow(rangeQuery).Scan(&lastTs, &oldestTs); err != nil {
		return status, fmt.Errorf("failed to get write times: %w", err)
	}
	status.LastWriteTime = time.Unix(lastTs, 0)
	status.OldestWriteTime = time.Unix(oldestTs, 0)

	status.SizeBytes = ks.estimateSize(status.TotalEntries)
	return status, nil
}

// estimateSize asks the backend for the table size, falling back to a rough estimate.
func (ks *KVStoreImpl) estimateSize(totalEntries int) int64 {
	fallback := int64(totalEntries) * 1000
	var size int64

	switch ks.backend {
	case schema.SQLiteBackend:
		// page_count * page_size covers the whole file, shared by both stores
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		if err := ks.db.QueryRow(sizeQuery).Scan(&size); err != nil {
			return 0
		}
		return size

	case schema.MySQLBackend:
		cfg, err := mysql.ParseDSN(ks.connStr)
		if err != nil || cfg.DBName == "" {
			return fallback
		}
		sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		if err := ks.db.QueryRow(sizeQuery, cfg.DBName, ks.tableName).Scan(&size); err != nil {
			return fallback
		}
		return size

	case schema.PostgreSQLBackend:
		if err := ks.db.QueryRow("SELECT pg_total_relation_size($1)", ks.tableName).Scan(&size); err != nil {
			return fallback
		}
		return size

	default:
		return fallback
	}
}
