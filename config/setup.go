package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/minios-linux/captrans/langmeta"
	"github.com/minios-linux/captrans/settings"
)

// ErrSameLanguage is returned when base and work language are identical.
var ErrSameLanguage = errors.New("base and work language must differ")

// LanguageSetup is the immutable language configuration of one run. It also
// identifies the active translation memory.
type LanguageSetup struct {
	BaseLanguageID   int
	WorkLanguageID   int
	BaseLanguageName string
	WorkLanguageName string
	// WorkLanguageISO is the two-letter code sent to the MT provider.
	WorkLanguageISO string
	DictionaryPath  string
	UseMT           bool
}

// ParseLanguage accepts a numeric language id ("1031") or a language tag
// ("de-DE") and returns the language id.
func ParseLanguage(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if id, err := strconv.Atoi(ref); err == nil {
		if _, ok := langmeta.Lookup(id); !ok {
			return 0, fmt.Errorf("unknown language id %d", id)
		}
		return id, nil
	}
	if id, ok := langmeta.ByTag(ref); ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown language %q", ref)
}

// NewLanguageSetup validates the language pair and resolves the dictionary
// path. dictionary may be empty (default location in the data directory), a
// directory, or a file path.
func NewLanguageSetup(baseID, workID int, dictionary string, useMT bool) (LanguageSetup, error) {
	if baseID == workID {
		return LanguageSetup{}, fmt.Errorf("%w (both %d)", ErrSameLanguage, baseID)
	}
	base, ok := langmeta.Lookup(baseID)
	if !ok {
		return LanguageSetup{}, fmt.Errorf("unknown base language id %d", baseID)
	}
	work, ok := langmeta.Lookup(workID)
	if !ok {
		return LanguageSetup{}, fmt.Errorf("unknown work language id %d", workID)
	}

	path, err := dictionaryPath(dictionary, baseID, workID)
	if err != nil {
		return LanguageSetup{}, err
	}

	return LanguageSetup{
		BaseLanguageID:   baseID,
		WorkLanguageID:   workID,
		BaseLanguageName: base.Name(),
		WorkLanguageName: work.Name(),
		WorkLanguageISO:  work.ISO639(),
		DictionaryPath:   path,
		UseMT:            useMT,
	}, nil
}

// DictionaryFileName is the default memory file name of a language pair.
func DictionaryFileName(baseID, workID int) string {
	return fmt.Sprintf("dictionary-%d-%d.csv", baseID, workID)
}

func dictionaryPath(dictionary string, baseID, workID int) (string, error) {
	name := DictionaryFileName(baseID, workID)
	if dictionary == "" {
		dir, err := settings.DataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, name), nil
	}
	if strings.HasSuffix(dictionary, string(os.PathSeparator)) {
		return filepath.Join(dictionary, name), nil
	}
	if info, err := os.Stat(dictionary); err == nil && info.IsDir() {
		return filepath.Join(dictionary, name), nil
	}
	return dictionary, nil
}
