// Package i18n localises the messages captrans shows to the translator.
//
// Catalogues are gettext .po files embedded in the binary under
// locales/{lang}/LC_MESSAGES/captrans.po and served through gotext.
// Strings without a translation are shown unchanged.
package i18n

import (
	"embed"
	"os"
	"strings"

	"github.com/leonelquinteros/gotext"
)

//go:embed all:locales
var locales embed.FS

const domain = "captrans"

var (
	po       *gotext.Locale
	selected string
)

// Init loads the catalogue for lang. An empty lang is detected from the
// environment (LANGUAGE, LC_ALL, LC_MESSAGES, LANG, in gettext order).
func Init(lang string) {
	if lang == "" {
		lang = detectLanguage()
	}
	selected = lang

	po = gotext.NewLocaleFSWithPath(lang, locales, "locales")
	po.AddDomain(domain)
	po.SetDomain(domain)
}

// Language returns the language passed to or detected by Init.
func Language() string {
	return selected
}

// T translates msgid.
func T(msgid string) string {
	if po == nil {
		return msgid
	}
	return po.Get(msgid)
}

// N translates a message with plural forms.
func N(singular, plural string, n int) string {
	if po == nil {
		if n == 1 {
			return singular
		}
		return plural
	}
	return po.GetN(singular, plural, n)
}

func detectLanguage() string {
	for _, env := range []string{"LANGUAGE", "LC_ALL", "LC_MESSAGES", "LANG"} {
		val := os.Getenv(env)
		if env == "LANGUAGE" {
			val, _, _ = strings.Cut(val, ":")
		}
		if lang := normalize(val); lang != "" {
			return lang
		}
	}
	return "en"
}

// normalize strips the codeset and modifier ("de_DE.UTF-8@euro" → "de_DE")
// and maps the C locale to "".
func normalize(val string) string {
	val, _, _ = strings.Cut(val, ".")
	val, _, _ = strings.Cut(val, "@")
	if val == "C" || val == "POSIX" {
		return ""
	}
	return val
}
