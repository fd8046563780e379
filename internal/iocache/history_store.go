package iocache

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/huangsam/siteagent/internal/contract"
	"github.com/huangsam/siteagent/schema"
)

// snapshotRunsTable holds one row per persisted snapshot.
const snapshotRunsTable = "siteagent_snapshot_runs"

// snapshotRunColumns lists the columns read back by ListSnapshots.
const snapshotRunColumns = `run_id, recorded_at, primary_site, is_vcs, plugins, themes, wordpress,
    translations, total, wp_update_version, record_json`

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore opens the history database and migrates it to the latest schema.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (*HistoryStoreImpl, error) {
	switch backend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend:
	case schema.NoneBackend:
		// No-op store for disabled history
		return &HistoryStoreImpl{backend: backend}, nil
	default:
		return nil, fmt.Errorf("unsupported history backend: %s", backend)
	}

	db, err := openDatabase(backend, connStr, contract.GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := migrateUp(db, backend); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// RecordSnapshot appends a run and returns its ID.
func (hs *HistoryStoreImpl) RecordSnapshot(run schema.SnapshotRunRecord) (int64, error) {
	if hs.db == nil {
		return 0, nil
	}

	quotedTableName := quoteTableName(snapshotRunsTable, hs.backend)
	args := []any{
		formatTime(run.RecordedAt, hs.backend), run.PrimarySite, run.IsVCS,
		run.Plugins, run.Themes, run.WordPress, run.Translations, run.Total,
		run.WPUpdateVersion, run.RecordJSON,
	}

	var runID int64
	var err error
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (recorded_at, primary_site, is_vcs, plugins, themes, wordpress,
		    translations, total, wp_update_version, record_json)
		    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING run_id`, quotedTableName)
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (recorded_at, primary_site, is_vcs, plugins, themes, wordpress,
		    translations, total, wp_update_version, record_json)
		    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, quotedTableName)
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot run: %w", err)
	}
	return runID, nil
}

// ListSnapshots returns the newest runs first; limit <= 0 returns all runs.
func (hs *HistoryStoreImpl) ListSnapshots(limit int) ([]schema.SnapshotRunRecord, error) {
	if hs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(snapshotRunsTable, hs.backend)
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY run_id DESC", snapshotRunColumns, quotedTableName)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SnapshotRunRecord
	for rows.Next() {
		var record schema.SnapshotRunRecord
		var recordedAt any
		if err := rows.Scan(&record.RunID, &recordedAt, &record.PrimarySite, &record.IsVCS,
			&record.Plugins, &record.Themes, &record.WordPress, &record.Translations, &record.Total,
			&record.WPUpdateVersion, &record.RecordJSON); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot run: %w", err)
		}
		if record.RecordedAt, err = parseTime(recordedAt); err != nil {
			return nil, fmt.Errorf("failed to parse recorded_at for run %d: %w", record.RunID, err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot runs: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(hs.backend),
		Connected: hs.db != nil,
	}

	if hs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(snapshotRunsTable, hs.backend)

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	if err := hs.db.QueryRow(runsQuery).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns == 0 {
		return status, nil
	}

	// Get last run info
	var lastRunTime any
	lastRunQuery := fmt.Sprintf("SELECT run_id, recorded_at FROM %s ORDER BY run_id DESC LIMIT 1", quotedTableName)
	if err := hs.db.QueryRow(lastRunQuery).Scan(&status.LastRunID, &lastRunTime); err != nil {
		return status, fmt.Errorf("failed to get last run info: %w", err)
	}
	t, err := parseTime(lastRunTime)
	if err != nil {
		return status, fmt.Errorf("failed to parse last run time: %w", err)
	}
	status.LastRunTime = t

	// Get oldest run time
	var oldestRunTime any
	oldestRunQuery := fmt.Sprintf("SELECT recorded_at FROM %s ORDER BY run_id ASC LIMIT 1", quotedTableName)
	if err := hs.db.QueryRow(oldestRunQuery).Scan(&oldestRunTime); err != nil {
		return status, fmt.Errorf("failed to get oldest run time: %w", err)
	}
	if t, err = parseTime(oldestRunTime); err != nil {
		return status, fmt.Errorf("failed to parse oldest run time: %w", err)
	}
	status.OldestRunTime = t

	// Count runs that saw a VCS checkout
	vcsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE is_vcs = %s", quotedTableName, placeholder(hs.backend, 1))
	if err := hs.db.QueryRow(vcsQuery, true).Scan(&status.VCSRuns); err != nil {
		return status, fmt.Errorf("failed to get vcs runs: %w", err)
	}

	return status, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// formatTime converts a time to the representation stored by the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339Nano)
	default:
		return t
	}
}

// parseTime reads a time column scanned into an any.
// SQLite stores RFC3339 text; MySQL (with parseTime=true) and PostgreSQL return time.Time.
func parseTime(v any) (time.Time, error) {
	switch tv := v.(type) {
	case time.Time:
		return tv, nil
	case string:
		return time.Parse(time.RFC3339Nano, tv)
	case []byte:
		if t, err := time.Parse(time.RFC3339Nano, string(tv)); err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02 15:04:05.999999", string(tv))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", v)
	}
}
