// Package index maintains a per-folder full-text search index over
// the viewable Markdown files, backing the finder overlay.
package index

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS docs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    mod_time INTEGER NOT NULL,
    size INTEGER NOT NULL DEFAULT 0,
    hash TEXT NOT NULL DEFAULT ''
);

CREATE VIRTUAL TABLE IF NOT EXISTS docs_fts USING fts5(
    title, content,
    content=docs, content_rowid=id,
    tokenize='porter unicode61 remove_diacritics 2'
);
`

// DB wraps the SQLite database connection.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// OpenMemory opens an in-memory database (for testing).
func OpenMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(on)")
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// UpsertDoc inserts or updates a document row and returns its ID.
func (db *DB) UpsertDoc(path, title, hash string, modTime, size int64) (int64, error) {
	_, err := db.conn.Exec(`
		INSERT INTO docs (path, title, mod_time, size, hash)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			mod_time = excluded.mod_time,
			size = excluded.size,
			hash = excluded.hash
	`, path, title, modTime, size, hash)
	if err != nil {
		return 0, err
	}

	var id int64
	err = db.conn.QueryRow("SELECT id FROM docs WHERE path = ?", path).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateFTS replaces the FTS row for a document.
func (db *DB) UpdateFTS(docID int64, title, content string) error {
	// The delete fails for rows indexed the first time; the insert
	// below populates them either way.
	_, _ = db.conn.Exec("INSERT INTO docs_fts(docs_fts, rowid, title, content) VALUES('delete', ?, '', '')", docID)

	_, err := db.conn.Exec("INSERT INTO docs_fts(rowid, title, content) VALUES(?, ?, ?)",
		docID, title, content)
	return err
}

// GetDocHash returns the stored content hash for a path, or "" when
// the path has never been indexed.
func (db *DB) GetDocHash(path string) (string, error) {
	var hash string
	err := db.conn.QueryRow("SELECT hash FROM docs WHERE path = ?", path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}

// DeleteDoc removes a document and its FTS row.
func (db *DB) DeleteDoc(path string) error {
	var id int64
	err := db.conn.QueryRow("SELECT id FROM docs WHERE path = ?", path).Scan(&id)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}
	_, _ = db.conn.Exec("INSERT INTO docs_fts(docs_fts, rowid, title, content) VALUES('delete', ?, '', '')", id)
	_, err = db.conn.Exec("DELETE FROM docs WHERE id = ?", id)
	return err
}
