package memory

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS memory (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLiteStore keeps the memory in a single-table SQLite database.
type SQLiteStore struct {
	Path string
}

func (s *SQLiteStore) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", s.Path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", s.Path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}
	return db, nil
}

// Read returns all rows ordered by key. A database without the memory table
// is empty. Read never modifies the file; a file that is not a readable
// memory database is a CorruptStoreError.
func (s *SQLiteStore) Read() ([]Entry, error) {
	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return nil, &CorruptStoreError{Path: s.Path, Reason: err.Error()}
	}
	defer db.Close()

	var tables int
	err = db.QueryRowContext(ctx,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'memory'`).Scan(&tables)
	if err != nil {
		return nil, &CorruptStoreError{Path: s.Path, Reason: err.Error()}
	}
	if tables == 0 {
		return nil, nil
	}

	rows, err := db.QueryContext(ctx, `SELECT key, value FROM memory ORDER BY key`)
	if err != nil {
		return nil, &CorruptStoreError{Path: s.Path, Reason: err.Error()}
	}
	defer rows.Close()

	var entries []Entry
	row := 0
	for rows.Next() {
		row++
		var key, value sql.NullString
		if err := rows.Scan(&key, &value); err != nil {
			return nil, &CorruptStoreError{Path: s.Path, Row: row, Reason: err.Error()}
		}
		if !key.Valid || key.String == "" {
			return nil, &CorruptStoreError{Path: s.Path, Row: row, Reason: "empty key"}
		}
		if !value.Valid || value.String == "" {
			return nil, &CorruptStoreError{Path: s.Path, Row: row, Reason: "empty value"}
		}
		entries = append(entries, Entry{Key: key.String, Value: value.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate memory: %w", err)
	}
	return entries, nil
}

// Write replaces the table content with entries in one transaction.
func (s *SQLiteStore) Write(entries []Entry) error {
	ctx := context.Background()
	db, err := s.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create memory table: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM memory`); err != nil {
		return fmt.Errorf("clear memory: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO memory (key, value) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Key, e.Value); err != nil {
			return fmt.Errorf("insert %q: %w", e.Key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit memory: %w", err)
	}
	return nil
}
