// Package metadata records sweep runs in an embedded SQLite database: one
// row per sweep keyed by a generated session ID, and one row per completed
// matrix cell. The record ties artifacts back to the exact configuration
// that produced them.
package metadata

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS sweeps (
	id         TEXT PRIMARY KEY,
	started_at TIMESTAMP NOT NULL,
	config     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS cells (
	sweep_id    TEXT NOT NULL REFERENCES sweeps(id),
	cache_size  INTEGER NOT NULL,
	backend     TEXT NOT NULL,
	repetition  INTEGER NOT NULL,
	artifact    TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	recorded_at TIMESTAMP NOT NULL,
	PRIMARY KEY (sweep_id, cache_size, backend, repetition)
);`

// Store keeps the sqlite handle and the session ID the current sweep's rows
// are tagged with.
type Store struct {
	db      *sql.DB
	sweepID string
}

// Open opens (creating if needed) the sweep record at path and registers a
// new sweep row with the given serialized configuration. The returned
// store's rows are all tagged with a fresh session ID.
func Open(path string, configDump string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open metadata database %q", path)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "could not create metadata schema")
	}

	store := &Store{
		db:      db,
		sweepID: uuid.New().String(),
	}

	_, err = db.Exec("INSERT INTO sweeps (id, started_at, config) VALUES (?, ?, ?)",
		store.sweepID, time.Now().UTC(), configDump)
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "could not register sweep")
	}

	return store, nil
}

// SweepID returns the session ID of the current sweep.
func (s *Store) SweepID() string {
	return s.sweepID
}

// RecordCell persists one completed measurement. Implements sweep.Recorder.
func (s *Store) RecordCell(cacheSize int64, backend string, repetition int, artifactPath string, duration time.Duration) error {
	_, err := s.db.Exec(
		`INSERT INTO cells (sweep_id, cache_size, backend, repetition, artifact, duration_ms, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.sweepID, cacheSize, backend, repetition, artifactPath,
		duration.Milliseconds(), time.Now().UTC())
	if err != nil {
		return errors.Wrapf(err, "could not record cell (%d, %s, %d)", cacheSize, backend, repetition)
	}
	return nil
}

// Cell is one recorded measurement.
type Cell struct {
	CacheSize  int64
	Backend    string
	Repetition int
	Artifact   string
	Duration   time.Duration
}

// Cells returns the recorded measurements of the current sweep in insertion
// order.
func (s *Store) Cells() ([]Cell, error) {
	rows, err := s.db.Query(
		`SELECT cache_size, backend, repetition, artifact, duration_ms
		 FROM cells WHERE sweep_id = ? ORDER BY rowid`, s.sweepID)
	if err != nil {
		return nil, errors.Wrap(err, "could not query cells")
	}
	defer rows.Close()

	cells := []Cell{}
	for rows.Next() {
		var cell Cell
		var durationMs int64
		err = rows.Scan(&cell.CacheSize, &cell.Backend, &cell.Repetition, &cell.Artifact, &durationMs)
		if err != nil {
			return nil, errors.Wrap(err, "could not scan cell")
		}
		cell.Duration = time.Duration(durationMs) * time.Millisecond
		cells = append(cells, cell)
	}

	return cells, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
