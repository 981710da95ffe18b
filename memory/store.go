package memory

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store reads and writes the persisted form of a memory.
type Store interface {
	Read() ([]Entry, error)
	Write(entries []Entry) error
}

// StoreFor selects the store for path by extension: ".db" and ".sqlite"
// use SQLite, everything else is a Key/Value CSV file.
func StoreFor(path string) Store {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return &SQLiteStore{Path: path}
	default:
		return &CSVStore{Path: path}
	}
}

// CorruptStoreError reports a persisted row that lacks a key or a value, or a
// memory file that cannot be read in its format at all.
type CorruptStoreError struct {
	Path   string
	Row    int
	Reason string
}

func (e *CorruptStoreError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("corrupt translation memory %s, row %d: %s", e.Path, e.Row, e.Reason)
	}
	return fmt.Sprintf("corrupt translation memory %s: %s", e.Path, e.Reason)
}

// ---------------------------------------------------------------------------
// CSV store
// ---------------------------------------------------------------------------

var csvHeader = []string{"Key", "Value"}

// CSVStore keeps the memory in a UTF-8 CSV file with a Key,Value header.
type CSVStore struct {
	Path string
}

// Read parses the CSV file. A leading header row is optional.
func (s *CSVStore) Read() ([]Entry, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path, err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	var entries []Entry
	for row := 1; ; row++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &CorruptStoreError{Path: s.Path, Row: row, Reason: err.Error()}
		}
		if row == 1 && isHeader(rec) {
			continue
		}
		if len(rec) < 2 {
			return nil, &CorruptStoreError{Path: s.Path, Row: row, Reason: "missing value column"}
		}
		if rec[0] == "" {
			return nil, &CorruptStoreError{Path: s.Path, Row: row, Reason: "empty key"}
		}
		if rec[1] == "" {
			return nil, &CorruptStoreError{Path: s.Path, Row: row, Reason: "empty value"}
		}
		entries = append(entries, Entry{Key: rec[0], Value: rec[1]})
	}
	return entries, nil
}

func isHeader(rec []string) bool {
	return len(rec) == 2 && strings.EqualFold(rec[0], csvHeader[0]) && strings.EqualFold(rec[1], csvHeader[1])
}

// Write replaces the CSV file with entries. The file is written to a
// temporary sibling first and renamed into place.
func (s *CSVStore) Write(entries []Entry) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("encoding %s: %w", s.Path, err)
	}
	for _, e := range entries {
		if err := w.Write([]string{e.Key, e.Value}); err != nil {
			return fmt.Errorf("encoding %s: %w", s.Path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encoding %s: %w", s.Path, err)
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return nil
}
