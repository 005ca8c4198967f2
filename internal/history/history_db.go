// Package history keeps a local journal of downloads, uploads and deletes.
package history

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/studiowebux/doh/internal/migrations"
	"github.com/studiowebux/doh/internal/types"
)

// DefaultLimit is how many entries Recent returns when limit <= 0
const DefaultLimit = 20

type Manager struct {
	db *sql.DB
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	// Run database migrations
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db}, nil
}

// Record appends a transfer to the journal
func (m *Manager) Record(t types.Transfer) error {
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}

	var host string
	if u, err := url.Parse(t.URL); err == nil {
		host = u.Host
	}

	query := `
		INSERT INTO transfers (
			timestamp, operation, url, host, local_path, status, status_text,
			bytes, duration_ms, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.Exec(query,
		t.Timestamp.UTC().Format(time.RFC3339Nano),
		string(t.Operation),
		t.URL,
		host,
		t.LocalPath,
		t.Status,
		t.StatusText,
		t.Bytes,
		t.DurationMs,
		t.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first
func (m *Manager) Recent(limit int) ([]types.Transfer, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := m.db.Query(`
		SELECT id, timestamp, operation, url, local_path, status, status_text,
		       bytes, duration_ms, error
		FROM transfers
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

// RecentForHost returns up to limit entries involving host, newest first
func (m *Manager) RecentForHost(host string, limit int) ([]types.Transfer, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := m.db.Query(`
		SELECT id, timestamp, operation, url, local_path, status, status_text,
		       bytes, duration_ms, error
		FROM transfers
		WHERE host = ?
		ORDER BY id DESC
		LIMIT ?
	`, host, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	return m.scanEntries(rows)
}

func (m *Manager) scanEntries(rows *sql.Rows) ([]types.Transfer, error) {
	var entries []types.Transfer

	for rows.Next() {
		var (
			entry     types.Transfer
			timestamp string
			operation string
			localPath sql.NullString
			errText   sql.NullString
		)

		err := rows.Scan(
			&entry.ID,
			&timestamp,
			&operation,
			&entry.URL,
			&localPath,
			&entry.Status,
			&entry.StatusText,
			&entry.Bytes,
			&entry.DurationMs,
			&errText,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		if ts, err := time.Parse(time.RFC3339Nano, timestamp); err == nil {
			entry.Timestamp = ts.Local()
		}
		entry.Operation = types.Operation(operation)
		entry.LocalPath = localPath.String
		entry.Error = errText.String

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Clear removes every entry
func (m *Manager) Clear() error {
	if _, err := m.db.Exec("DELETE FROM transfers"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// GetCount returns the number of entries
func (m *Manager) GetCount() (int, error) {
	var count int
	err := m.db.QueryRow("SELECT COUNT(*) FROM transfers").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return count, nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
