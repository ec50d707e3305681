// Package store persists the chat list and contact names that activity
// summaries are labelled with. The database is the session's app.db; the
// WhatsApp device keys live separately in session.db.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps the app database connection.
type DB struct {
	*sql.DB
}

// Open connects to the SQLite database at path with WAL journaling.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return &DB{db}, nil
}
