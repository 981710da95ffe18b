// Package memory implements the translation memory: a persistent mapping from
// base-language captions to their confirmed work-language translations, kept
// per language pair.
//
// The memory is loaded once per run, grows append-only while captions are
// resolved, and is written back at the end of the run. Writing is skipped when
// nothing was added, so an untouched dictionary file is never reformatted.
package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Entry is one base → work mapping.
type Entry struct {
	Key   string
	Value string
}

// ---------------------------------------------------------------------------
// Types
// ---------------------------------------------------------------------------

// Memory is a sorted map of base strings to work strings.
//
// Access is single-threaded: one resolution at a time owns the memory.
type Memory struct {
	keys   []string // sorted
	values map[string]string

	// loadedCount is the entry count at load (or last save) time.
	loadedCount int
}

// New returns an empty memory.
func New() *Memory {
	return &Memory{values: make(map[string]string)}
}

// ---------------------------------------------------------------------------
// Loading and saving
// ---------------------------------------------------------------------------

// Load reads a memory from path. The storage format is selected by the file
// extension (see StoreFor). An absent file yields an empty memory.
func Load(path string) (*Memory, error) {
	m := New()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	entries, err := StoreFor(path).Read()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		m.Insert(e.Key, e.Value)
	}
	m.loadedCount = len(m.keys)
	return m, nil
}

// Save writes all entries sorted by key to path. Nothing is written when the
// entry count equals the count at load time; the returned bool reports
// whether a write happened.
func (m *Memory) Save(path string) (bool, error) {
	if !m.Dirty() {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := StoreFor(path).Write(m.Entries()); err != nil {
		return false, err
	}
	m.loadedCount = len(m.keys)
	return true, nil
}

// Dirty reports whether entries were added since load or the last save.
func (m *Memory) Dirty() bool {
	return len(m.keys) != m.loadedCount
}

// ---------------------------------------------------------------------------
// Lookup and insertion
// ---------------------------------------------------------------------------

// Lookup returns the stored translation of base. Matching is exact and
// case-sensitive.
func (m *Memory) Lookup(base string) (string, bool) {
	v, ok := m.values[base]
	return v, ok
}

// Insert stores base → work unless base is already known. Empty keys and
// values are never stored. Reports whether the entry was added.
func (m *Memory) Insert(base, work string) bool {
	if base == "" || work == "" {
		return false
	}
	if _, ok := m.values[base]; ok {
		return false
	}
	i := sort.SearchStrings(m.keys, base)
	m.keys = append(m.keys, "")
	copy(m.keys[i+1:], m.keys[i:])
	m.keys[i] = base
	m.values[base] = work
	return true
}

// Merge inserts every entry of other, keeping existing translations.
// Returns the number of entries added.
func (m *Memory) Merge(other *Memory) int {
	added := 0
	for _, e := range other.Entries() {
		if m.Insert(e.Key, e.Value) {
			added++
		}
	}
	return added
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

// Len returns the number of entries.
func (m *Memory) Len() int {
	return len(m.keys)
}

// Added returns the number of entries inserted since load or the last save.
func (m *Memory) Added() int {
	return len(m.keys) - m.loadedCount
}

// Entries returns all entries sorted by key.
func (m *Memory) Entries() []Entry {
	out := make([]Entry, len(m.keys))
	for i, k := range m.keys {
		out[i] = Entry{Key: k, Value: m.values[k]}
	}
	return out
}

// Untranslated returns the number of entries whose work string is exactly
// the base string.
func (m *Memory) Untranslated() int {
	n := 0
	for _, k := range m.keys {
		if m.values[k] == k {
			n++
		}
	}
	return n
}

// Summary returns a human-readable summary string.
func (m *Memory) Summary() string {
	if m.Len() == 0 {
		return "empty"
	}
	return fmt.Sprintf("%d entries (%d kept untranslated, %d new)", m.Len(), m.Untranslated(), m.Added())
}
