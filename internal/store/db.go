// Package store provides SQLite-backed timesheet persistence: lookup by
// employee and week-ending date, and upsert saves keyed on that pair.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS timesheets (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	employee_id   INTEGER NOT NULL,
	employee_name TEXT NOT NULL DEFAULT '',
	week_ending   TEXT NOT NULL,
	UNIQUE(employee_id, week_ending)
);

CREATE TABLE IF NOT EXISTS timesheet_rows (
	timesheet_id INTEGER NOT NULL REFERENCES timesheets(id) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	project_id   INTEGER NOT NULL DEFAULT 0,
	work_package TEXT NOT NULL DEFAULT '',
	notes        TEXT NOT NULL DEFAULT '',
	mon TEXT, tue TEXT, wed TEXT, thu TEXT, fri TEXT, sat TEXT, sun TEXT
);

CREATE INDEX IF NOT EXISTS idx_rows_timesheet ON timesheet_rows(timesheet_id);
`

// DB wraps a sql.DB with timesheet-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
