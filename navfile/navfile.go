// Package navfile reads and writes C/SIDE translation export files.
//
// An export file holds the captions of every language in one text file, one
// caption per line:
//
//	T18-F2-P8629-A1033-L999:Customer
//	T18-F2-P8629-A1031-L999:Kunde
//
// Files is the exporter and importer used by the batch driver. Captions that
// exist in the base language but have no work-language line yet are reported
// as placeholders (the base key with the work marker and an empty value);
// Import inserts the ones that received a value right after their base line.
package navfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/minios-linux/captrans/caption"
	"github.com/minios-linux/captrans/config"
)

// MissingSuffix names the optional sidecar listing the records to translate.
const MissingSuffix = ".missing"

// Files exports and imports language line-sets of export files on disk.
type Files struct {
	setup        config.LanguageSetup
	encodingName string
	enc          encoding.Encoding
	review       bool
}

// Option configures Files.
type Option func(*Files)

// WithEncoding sets the IANA name of the file encoding (default ibm850).
func WithEncoding(name string) Option {
	return func(f *Files) { f.encodingName = name }
}

// WithReview makes ExportMissing also report work lines that already carry
// a value.
func WithReview(review bool) Option {
	return func(f *Files) { f.review = review }
}

// New returns Files for the language pair of setup.
func New(setup config.LanguageSetup, opts ...Option) (*Files, error) {
	f := &Files{setup: setup, encodingName: config.DefaultEncoding}
	for _, opt := range opts {
		opt(f)
	}
	enc, err := LookupEncoding(f.encodingName)
	if err != nil {
		return nil, err
	}
	f.enc = enc
	return f, nil
}

// LookupEncoding resolves an IANA encoding name.
func LookupEncoding(name string) (encoding.Encoding, error) {
	if strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return unicode.UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encoding %q is not supported", name)
	}
	return enc, nil
}

// ---------------------------------------------------------------------------
// Reading
// ---------------------------------------------------------------------------

func (f *Files) read(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded, err := f.enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s as %s: %w", path, f.encodingName, err)
	}
	return caption.Parse(decoded), nil
}

// hasMarker reports whether the key of raw carries marker as one of its
// dash-separated tokens.
func hasMarker(raw, marker string) bool {
	for _, tok := range strings.Split(caption.Key(raw), "-") {
		if tok == marker {
			return true
		}
	}
	return false
}

// swapMarker replaces the from token of the key with to and drops the value.
func swapMarker(raw, from, to string) string {
	toks := strings.Split(caption.Key(raw), "-")
	for i, tok := range toks {
		if tok == from {
			toks[i] = to
		}
	}
	return strings.Join(toks, "-") + string(caption.Separator)
}

// Export returns the lines of languageID in file order. For the work
// language, placeholders are added for base captions without a work line.
func (f *Files) Export(file string, languageID int) ([]string, error) {
	lines, err := f.read(file)
	if err != nil {
		return nil, err
	}
	return f.export(lines, languageID), nil
}

func (f *Files) export(lines []string, languageID int) []string {
	marker := caption.Marker(languageID)
	if languageID != f.setup.WorkLanguageID {
		var out []string
		for _, l := range lines {
			if hasMarker(l, marker) {
				out = append(out, l)
			}
		}
		return out
	}

	baseMarker := caption.Marker(f.setup.BaseLanguageID)
	present := make(map[string]bool)
	for _, l := range lines {
		if hasMarker(l, marker) {
			present[caption.Key(l)] = true
		}
	}

	var out []string
	for _, l := range lines {
		switch {
		case hasMarker(l, marker):
			out = append(out, l)
		case hasMarker(l, baseMarker):
			placeholder := swapMarker(l, baseMarker, marker)
			key := caption.Key(placeholder)
			if !present[key] {
				present[key] = true
				out = append(out, placeholder)
			}
		}
	}
	return out
}

// ExportMissing returns the work lines that need a value. A sidecar
// <file>.missing, when present, is used verbatim instead.
func (f *Files) ExportMissing(file string, languageID int) ([]string, error) {
	sidecar := file + MissingSuffix
	if _, err := os.Stat(sidecar); err == nil {
		return f.read(sidecar)
	}

	lines, err := f.Export(file, languageID)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, l := range lines {
		if f.review || strings.TrimSpace(caption.Value(l)) == "" {
			out = append(out, l)
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Writing
// ---------------------------------------------------------------------------

// Import merges the patched work lines into file. Existing work lines are
// replaced by key, filled placeholders are inserted after their base line and
// placeholders that are still empty are dropped.
func (f *Files) Import(file string, lines []string, languageID int) error {
	original, err := f.read(file)
	if err != nil {
		return err
	}
	marker := caption.Marker(languageID)
	baseMarker := caption.Marker(f.setup.BaseLanguageID)

	patched := make(map[string]string, len(lines))
	for _, l := range lines {
		patched[caption.Key(l)] = l
	}
	existing := make(map[string]bool)
	for _, l := range original {
		if hasMarker(l, marker) {
			existing[caption.Key(l)] = true
		}
	}

	out := make([]string, 0, len(original)+len(lines))
	for _, l := range original {
		key := caption.Key(l)
		if hasMarker(l, marker) {
			if p, ok := patched[key]; ok {
				l = p
			}
			out = append(out, l)
			continue
		}
		out = append(out, l)
		if languageID == f.setup.WorkLanguageID && hasMarker(l, baseMarker) {
			placeholderKey := caption.Key(swapMarker(l, baseMarker, marker))
			if existing[placeholderKey] {
				continue
			}
			if p, ok := patched[placeholderKey]; ok && caption.Value(p) != "" {
				existing[placeholderKey] = true
				out = append(out, p)
			}
		}
	}
	return f.write(file, out)
}

func (f *Files) write(path string, lines []string) error {
	encoded, err := f.enc.NewEncoder().Bytes(caption.Marshal(lines))
	if err != nil {
		return fmt.Errorf("encoding %s as %s: %w", path, f.encodingName, err)
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
