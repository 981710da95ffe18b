// Package langmeta maps the Windows language ids used by C/SIDE translation
// exports (e.g. 1031 for German) to language tags and display names.
package langmeta

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Meta describes one language id.
type Meta struct {
	ID  int
	Tag language.Tag
}

// ISO639 returns the two-letter language code, e.g. "de".
func (m Meta) ISO639() string {
	base, _ := m.Tag.Base()
	return base.String()
}

// Name returns the English display name, e.g. "German (Germany)".
func (m Meta) Name() string {
	return display.English.Tags().Name(m.Tag)
}

// NativeName returns the language's own name for itself.
func (m Meta) NativeName() string {
	return display.Self.Name(m.Tag)
}

// registry lists the language ids shipped with Dynamics NAV localisations.
var registry = map[int]string{
	1025: "ar-SA",
	1027: "ca-ES",
	1028: "zh-TW",
	1029: "cs-CZ",
	1030: "da-DK",
	1031: "de-DE",
	1032: "el-GR",
	1033: "en-US",
	1035: "fi-FI",
	1036: "fr-FR",
	1038: "hu-HU",
	1039: "is-IS",
	1040: "it-IT",
	1041: "ja-JP",
	1042: "ko-KR",
	1043: "nl-NL",
	1044: "nb-NO",
	1045: "pl-PL",
	1046: "pt-BR",
	1048: "ro-RO",
	1049: "ru-RU",
	1050: "hr-HR",
	1051: "sk-SK",
	1053: "sv-SE",
	1054: "th-TH",
	1055: "tr-TR",
	1058: "uk-UA",
	1060: "sl-SI",
	1061: "et-EE",
	1062: "lv-LV",
	1063: "lt-LT",
	1086: "ms-MY",
	2052: "zh-CN",
	2055: "de-CH",
	2057: "en-GB",
	2060: "fr-BE",
	2064: "it-CH",
	2067: "nl-BE",
	2070: "pt-PT",
	3079: "de-AT",
	3081: "en-AU",
	3082: "es-ES",
	3084: "fr-CA",
	4105: "en-CA",
	4108: "fr-CH",
	5129: "en-NZ",
}

// Lookup returns metadata for a language id.
func Lookup(id int) (Meta, bool) {
	code, ok := registry[id]
	if !ok {
		return Meta{}, false
	}
	return Meta{ID: id, Tag: language.MustParse(code)}, true
}

// IDs returns all known language ids in ascending order.
func IDs() []int {
	ids := make([]int, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func canonicalize(code string) string {
	return strings.ReplaceAll(strings.TrimSpace(code), "_", "-")
}

// ByTag finds the language id for a tag such as "de-DE" or "pt_BR". Exact
// tags win; a bare language ("de") resolves to its lowest id.
func ByTag(code string) (int, bool) {
	tag, err := language.Parse(canonicalize(code))
	if err != nil {
		return 0, false
	}
	var fallback int
	for _, id := range IDs() {
		known := language.MustParse(registry[id])
		if known == tag {
			return id, true
		}
		if fallback == 0 && tag.String() == baseOf(known) {
			fallback = id
		}
	}
	return fallback, fallback != 0
}

func baseOf(t language.Tag) string {
	b, _ := t.Base()
	return b.String()
}
