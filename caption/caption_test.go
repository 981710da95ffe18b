package caption

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMarker(t *testing.T) {
	if got := Marker(1031); got != "A1031" {
		t.Fatalf("Marker(1031) = %q, want %q", got, "A1031")
	}
}

func TestExtractPattern(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		marker string
		want   string
	}{
		{"field caption", "T18-F2-P8629-A1031-L999:Kunde", "A1031", "T18-F2-P8629"},
		{"empty value", "T18-P8629-A1031-L999:", "A1031", "T18-P8629"},
		{"trailing spaces trimmed", "N50000-Q1-P26171 -A1031-L999:x", "A1031", "N50000-Q1-P26171"},
	}
	for _, tc := range tests {
		got, err := ExtractPattern(tc.line, tc.marker)
		if err != nil {
			t.Fatalf("%s: ExtractPattern() error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: ExtractPattern() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestExtractPattern_MissingMarker(t *testing.T) {
	_, err := ExtractPattern("T18-F2-P8629-A1033-L999:Customer", "A1031")
	var mle *MalformedLineError
	if !errors.As(err, &mle) {
		t.Fatalf("ExtractPattern() error = %v, want MalformedLineError", err)
	}
	if mle.Marker != "A1031" {
		t.Fatalf("Marker = %q, want A1031", mle.Marker)
	}
}

func TestReadValue(t *testing.T) {
	lines := []string{
		"T18-P8629-A1033-L999:Customer",
		"T18-F2-P8629-A1033-L999:Name",
		"T18-F3-P8629-A1033-L999:Time: 10:00",
	}
	s := NewLineSet(lines)

	tests := []struct {
		pattern string
		want    string
	}{
		{"T18-P8629", "Customer"},
		{"T18-F2-P8629", "Name"},
		{"T18-F3-P8629", "Time: 10:00"},
		{"T99-P8629", ""},
	}
	for _, tc := range tests {
		got, err := s.ReadValue(tc.pattern)
		if err != nil {
			t.Fatalf("ReadValue(%q) error: %v", tc.pattern, err)
		}
		if got != tc.want {
			t.Fatalf("ReadValue(%q) = %q, want %q", tc.pattern, got, tc.want)
		}
	}
}

func TestWriteValue_LeavesOtherLines(t *testing.T) {
	lines := []string{
		"T18-P8629-A1031-L999:",
		"T18-F2-P8629-A1031-L999:Name",
	}
	got, err := WriteValue(lines, "T18-P8629", "Kunde")
	if err != nil {
		t.Fatalf("WriteValue() error: %v", err)
	}
	want := []string{
		"T18-P8629-A1031-L999:Kunde",
		"T18-F2-P8629-A1031-L999:Name",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("WriteValue() = %#v, want %#v", got, want)
	}
	if lines[0] != "T18-P8629-A1031-L999:" {
		t.Fatalf("input slice was modified: %q", lines[0])
	}
}

func TestWriteValue_LineWithoutSeparator(t *testing.T) {
	s := NewLineSet([]string{"T18-P8629-A1031-L999"})
	if err := s.WriteValue("T18-P8629", "Kunde"); err != nil {
		t.Fatalf("WriteValue() error: %v", err)
	}
	if got := s.Lines()[0]; got != "T18-P8629-A1031-L999:Kunde" {
		t.Fatalf("line = %q", got)
	}
}

func TestWriteValue_PatternNotFound(t *testing.T) {
	_, err := WriteValue([]string{"T18-P8629-A1031-L999:"}, "T27-P8629", "Artikel")
	var pnf *PatternNotFoundError
	if !errors.As(err, &pnf) {
		t.Fatalf("WriteValue() error = %v, want PatternNotFoundError", err)
	}
}

func TestRoundTrip(t *testing.T) {
	lines := []string{
		"T18-P8629-A1031-L999:",
		"T18-F2-P8629-A1031-L999:Name",
		"T18-F3-P8629-A1031-L999:a:b",
	}
	for _, pattern := range []string{"T18-P8629", "T18-F2-P8629", "T18-F3-P8629"} {
		for _, v := range []string{"", "Kunde", "Wert: mit Doppelpunkt"} {
			patched, err := WriteValue(lines, pattern, v)
			if err != nil {
				t.Fatalf("WriteValue(%q, %q) error: %v", pattern, v, err)
			}
			if got := ReadValue(patched, pattern); got != v {
				t.Fatalf("ReadValue(WriteValue(%q, %q)) = %q", pattern, v, got)
			}
		}
	}
}

func TestFirstMatchWinsByDefault(t *testing.T) {
	s := NewLineSet([]string{
		"T18-F2-P8629-A1031-L999:first",
		"T18-F2-P8629-A1031-L999:second",
	})
	got, err := s.ReadValue("T18-F2-P8629")
	if err != nil {
		t.Fatalf("ReadValue() error: %v", err)
	}
	if got != "first" {
		t.Fatalf("ReadValue() = %q, want first", got)
	}
}

func TestStrictModeRejectsDuplicates(t *testing.T) {
	s := NewLineSet([]string{
		"T18-F2-P8629-A1031-L999:first",
		"T18-F2-P8629-A1031-L999:second",
		"T18-F3-P8629-A1031-L999:other",
	})
	s.SetStrict(true)

	var dup *DuplicatePatternError
	if _, err := s.ReadValue("T18-F2-P8629"); !errors.As(err, &dup) {
		t.Fatalf("ReadValue() error = %v, want DuplicatePatternError", err)
	}
	if dup.Count != 2 {
		t.Fatalf("Count = %d, want 2", dup.Count)
	}
	if err := s.WriteValue("T18-F2-P8629", "x"); !errors.As(err, &dup) {
		t.Fatalf("WriteValue() error = %v, want DuplicatePatternError", err)
	}
	if err := s.WriteValue("T18-F3-P8629", "x"); err != nil {
		t.Fatalf("WriteValue(unique) error: %v", err)
	}
}

func TestParse_DropsBlankLinesAndCRLF(t *testing.T) {
	data := []byte("T18-P8629-A1033-L999:Customer\r\n\r\nT18-P8629-A1031-L999:Debitor\r\n")
	got := Parse(data)
	want := []string{"T18-P8629-A1033-L999:Customer", "T18-P8629-A1031-L999:Debitor"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Parse() = %#v, want %#v", got, want)
	}
}

func TestWriteFileAndParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "TAB18.TXT")
	lines := []string{"T18-P8629-A1033-L999:Customer"}
	if err := WriteFile(path, lines); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "T18-P8629-A1033-L999:Customer\r\n" {
		t.Fatalf("file content = %q", data)
	}
	got, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error: %v", err)
	}
	if !reflect.DeepEqual(got, lines) {
		t.Fatalf("ParseFile() = %#v, want %#v", got, lines)
	}
}

func TestKeyAndValue(t *testing.T) {
	if got := Key("T18-P8629-A1031-L999:Kunde"); got != "T18-P8629-A1031-L999" {
		t.Fatalf("Key() = %q", got)
	}
	if got := Value("T18-P8629-A1031-L999:Kunde"); got != "Kunde" {
		t.Fatalf("Value() = %q", got)
	}
}
