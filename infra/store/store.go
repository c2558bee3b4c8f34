// Package store persists the planner's durable state in SQLite: fetched
// price cells, cached decisions, day-plan configuration revisions, the
// switch event log and simple named counters.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database. It implements the planner's PriceSource,
// DecisionCache and ConfigSource boundaries.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS price_cells (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    price_mwh TEXT NOT NULL,
    moment_utc INTEGER NOT NULL UNIQUE,
    tariff_mwh TEXT,
    market_hour INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS power_states (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    moment_utc INTEGER NOT NULL,
    state INTEGER NOT NULL,
    configuration_id INTEGER,
    created_at INTEGER NOT NULL,
    UNIQUE(moment_utc, configuration_id)
);
CREATE TABLE IF NOT EXISTS day_configurations (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    toml TEXT NOT NULL,
    known_broken INTEGER NOT NULL DEFAULT 0,
    tried INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS switch_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    state INTEGER NOT NULL,
    created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS convar_ints (
    key TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS convar_strings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`

// Open opens or creates the database at path and ensures schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("close db: %v (schema err: %w)", cerr, err)
		}
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
