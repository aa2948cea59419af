// Package snapshot persists named captures of a device's property
// values, so a configuration can be saved before an experiment and
// restored afterwards. Snapshots are stored in a local SQLite database
// under the probe data directory.
// See docs/ARCHITECTURE.md § Snapshots.
package snapshot

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store errors.
var (
	ErrNotFound  = errors.New("snapshot not found")
	ErrEmptyName = errors.New("snapshot name must not be empty")
)

const dbFileName = "snapshots.db"

// Schema DDL. created_at is RFC 3339 text, matching SQLite's lack of a
// native timestamp type.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
    snapshot_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshot_values (
    snapshot_id TEXT NOT NULL,
    path TEXT NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (snapshot_id, path),
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(snapshot_id)
);
`

// Snapshot is one named capture.
type Snapshot struct {
	ID        string
	Name      string
	CreatedAt time.Time
	// ValueCount is the number of captured properties.
	ValueCount int
}

// Store is a snapshot database in one data directory.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the snapshot database in dataDir.
func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Save stores a new snapshot with the given name and values and returns
// its ID. Names are not unique; Find resolves the newest match.
func (s *Store) Save(name string, values map[string]string) (string, error) {
	if name == "" {
		return "", ErrEmptyName
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	id := newUUID()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.Exec(
		`INSERT INTO snapshots (snapshot_id, name, created_at) VALUES (?, ?, ?)`,
		id, name, createdAt,
	); err != nil {
		return "", err
	}
	for path, value := range values {
		if _, err := tx.Exec(
			`INSERT INTO snapshot_values (snapshot_id, path, value) VALUES (?, ?, ?)`,
			id, path, value,
		); err != nil {
			return "", err
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// List returns all snapshots, newest first.
func (s *Store) List() ([]Snapshot, error) {
	rows, err := s.db.Query(`
		SELECT s.snapshot_id, s.name, s.created_at, COUNT(v.path)
		FROM snapshots s
		LEFT JOIN snapshot_values v ON v.snapshot_id = s.snapshot_id
		GROUP BY s.snapshot_id
		ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snapshots := []Snapshot{}
	for rows.Next() {
		var snap Snapshot
		var createdAt string
		if err := rows.Scan(&snap.ID, &snap.Name, &createdAt, &snap.ValueCount); err != nil {
			return nil, err
		}
		snap.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

// Find resolves a snapshot by ID or, failing that, by name (newest
// match wins). An ID match always beats a name match. Returns
// ErrNotFound if neither resolves.
func (s *Store) Find(idOrName string) (Snapshot, error) {
	snap, err := s.findRow(`
		SELECT snapshot_id, name, created_at FROM snapshots
		WHERE snapshot_id = ?`, idOrName)
	if !errors.Is(err, ErrNotFound) {
		return snap, err
	}
	return s.findRow(`
		SELECT snapshot_id, name, created_at FROM snapshots
		WHERE name = ?
		ORDER BY created_at DESC
		LIMIT 1`, idOrName)
}

func (s *Store) findRow(query, arg string) (Snapshot, error) {
	var snap Snapshot
	var createdAt string
	if err := s.db.QueryRow(query, arg).Scan(&snap.ID, &snap.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Snapshot{}, ErrNotFound
		}
		return Snapshot{}, err
	}
	var err error
	snap.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Snapshot{}, fmt.Errorf("parse created_at: %w", err)
	}
	return snap, nil
}

// Values returns the captured path-to-value map of a snapshot.
func (s *Store) Values(id string) (map[string]string, error) {
	rows, err := s.db.Query(
		`SELECT path, value FROM snapshot_values WHERE snapshot_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := map[string]string{}
	for rows.Next() {
		var path, value string
		if err := rows.Scan(&path, &value); err != nil {
			return nil, err
		}
		values[path] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		// Distinguish an empty snapshot from a missing one.
		var n int
		if err := s.db.QueryRow(
			`SELECT COUNT(*) FROM snapshots WHERE snapshot_id = ?`, id).Scan(&n); err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, ErrNotFound
		}
	}
	return values, nil
}

// Delete removes a snapshot and its values.
func (s *Store) Delete(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM snapshot_values WHERE snapshot_id = ?`, id); err != nil {
		return err
	}
	res, err := tx.Exec(`DELETE FROM snapshots WHERE snapshot_id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}
