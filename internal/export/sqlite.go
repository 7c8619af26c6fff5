// Package export copies the event log into a SQLite database so it can be
// queried with SQL.
package export

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/ppiankov/agenthooks/internal/eventlog"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	seq         INTEGER PRIMARY KEY,
	timestamp   TEXT NOT NULL,
	session_id  TEXT,
	tool_name   TEXT NOT NULL,
	command     TEXT NOT NULL,
	description TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS events_session ON events(session_id);
CREATE INDEX IF NOT EXISTS events_tool ON events(tool_name);
`

// ToSQLite writes records into the events table of the database at dbPath.
// seq is the record's position in the log, so re-exporting the same log
// replaces rows instead of duplicating them, and rows past the end of a
// shorter log are removed. Returns the number of rows written.
func ToSQLite(ctx context.Context, dbPath string, records []eventlog.EventRecord) (int, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("export: open %s: %w", dbPath, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return 0, fmt.Errorf("export: create schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("export: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO events
		(seq, timestamp, session_id, tool_name, command, description)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("export: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events WHERE seq > ?`, len(records)); err != nil {
		return 0, fmt.Errorf("export: prune stale rows: %w", err)
	}

	for i, rec := range records {
		var session sql.NullString
		if rec.SessionID != nil {
			session = sql.NullString{String: *rec.SessionID, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i+1, rec.Timestamp, session, rec.ToolName, rec.Command, rec.Description); err != nil {
			return 0, fmt.Errorf("export: insert record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("export: commit: %w", err)
	}
	return len(records), nil
}
