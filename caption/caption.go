// Package caption implements reading and patching of C/SIDE translation
// export lines.
//
// Format: one caption per line, an opaque key segment and a value segment
// separated by the first ':'. The key carries the object/control/property
// path followed by a language marker and a length suffix:
//
//	T18-F2-P8629-A1031-L999:Kunde
//
// The part of the key in front of the language marker is the "pattern". It is
// identical for every language of the same caption, so it is used to find the
// matching line in the base- and work-language line-sets.
package caption

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Separator divides the key segment from the value segment.
const Separator = ':'

// patternTrim lists the characters trimmed from the end of a pattern.
const patternTrim = "- "

// ---------------------------------------------------------------------------
// Pattern extraction
// ---------------------------------------------------------------------------

// Marker returns the language marker token for a Windows language id,
// e.g. Marker(1031) == "A1031".
func Marker(languageID int) string {
	return fmt.Sprintf("A%d", languageID)
}

// ExtractPattern returns the part of line in front of the language marker,
// with trailing separator characters removed.
func ExtractPattern(line, marker string) (string, error) {
	if marker == "" {
		return "", &MalformedLineError{Line: line, Marker: marker}
	}
	idx := strings.Index(line, marker)
	if idx < 0 {
		return "", &MalformedLineError{Line: line, Marker: marker}
	}
	return strings.TrimRight(line[:idx], patternTrim), nil
}

// ---------------------------------------------------------------------------
// Line-set model
// ---------------------------------------------------------------------------

// line is one export line, split once at parse time.
type line struct {
	raw string
	// colon is the byte offset of the first separator, -1 if none.
	colon int
}

func parseLine(raw string) line {
	return line{raw: raw, colon: strings.IndexByte(raw, Separator)}
}

// key returns the key segment (the whole line when there is no separator).
func (l line) key() string {
	if l.colon < 0 {
		return l.raw
	}
	return l.raw[:l.colon]
}

// value returns the text after the first separator.
func (l line) value() string {
	if l.colon < 0 {
		return ""
	}
	return l.raw[l.colon+1:]
}

// withValue returns a copy of l with its value segment replaced.
func (l line) withValue(v string) line {
	return parseLine(l.key() + string(Separator) + v)
}

// LineSet is an ordered set of export lines for one language.
type LineSet struct {
	lines []line
	// strict turns ambiguous pattern matches into DuplicatePatternError.
	strict bool
}

// NewLineSet builds a LineSet from raw lines. The slice is copied.
func NewLineSet(raw []string) *LineSet {
	s := &LineSet{lines: make([]line, 0, len(raw))}
	for _, r := range raw {
		s.lines = append(s.lines, parseLine(r))
	}
	return s
}

// SetStrict enables or disables strict matching.
func (s *LineSet) SetStrict(strict bool) {
	s.strict = strict
}

// Len returns the number of lines.
func (s *LineSet) Len() int {
	return len(s.lines)
}

// Lines returns the current raw lines in order.
func (s *LineSet) Lines() []string {
	out := make([]string, len(s.lines))
	for i, l := range s.lines {
		out[i] = l.raw
	}
	return out
}

// find returns the index of the first line starting with pattern, or -1.
func (s *LineSet) find(pattern string) (int, error) {
	found := -1
	count := 0
	for i, l := range s.lines {
		if !strings.HasPrefix(l.raw, pattern) {
			continue
		}
		count++
		if found < 0 {
			found = i
			if !s.strict {
				break
			}
		}
	}
	if s.strict && count > 1 {
		return -1, &DuplicatePatternError{Pattern: pattern, Count: count}
	}
	return found, nil
}

// ReadValue returns the value of the line matching pattern. A missing line
// is not an error: the empty string is returned.
func (s *LineSet) ReadValue(pattern string) (string, error) {
	idx, err := s.find(pattern)
	if err != nil {
		return "", err
	}
	if idx < 0 {
		return "", nil
	}
	return s.lines[idx].value(), nil
}

// WriteValue replaces the value of the line matching pattern.
func (s *LineSet) WriteValue(pattern, value string) error {
	idx, err := s.find(pattern)
	if err != nil {
		return err
	}
	if idx < 0 {
		return &PatternNotFoundError{Pattern: pattern}
	}
	s.lines[idx] = s.lines[idx].withValue(value)
	return nil
}

// ReadValue is a convenience wrapper over a plain slice of lines using the
// default first-match rule.
func ReadValue(lines []string, pattern string) string {
	v, _ := NewLineSet(lines).ReadValue(pattern)
	return v
}

// WriteValue returns a copy of lines with the value of the line matching
// pattern replaced.
func WriteValue(lines []string, pattern, value string) ([]string, error) {
	s := NewLineSet(lines)
	if err := s.WriteValue(pattern, value); err != nil {
		return nil, err
	}
	return s.Lines(), nil
}

// ---------------------------------------------------------------------------
// Parsing and serialization
// ---------------------------------------------------------------------------

// Parse splits export text into lines. Windows line endings are normalised
// and blank lines (an artifact of the export) are dropped.
func Parse(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	var out []string
	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		out = append(out, raw)
	}
	return out
}

// ParseFile reads and parses an export file from disk.
func ParseFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data), nil
}

// Marshal joins lines with CRLF line endings, the way C/SIDE writes them.
func Marshal(lines []string) []byte {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteString("\r\n")
	}
	return buf.Bytes()
}

// WriteFile serialises lines and writes them to path, creating parent
// directories with 0755 permissions.
func WriteFile(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, Marshal(lines), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Key returns the key segment of a raw line.
func Key(raw string) string {
	return parseLine(raw).key()
}

// Value returns the value segment of a raw line.
func Value(raw string) string {
	return parseLine(raw).value()
}
