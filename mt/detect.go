package mt

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Mismatch reports whether text is reliably detected as a language other
// than targetISO. Short or ambiguous texts never mismatch.
func Mismatch(text, targetISO string) bool {
	if targetISO == "" || strings.TrimSpace(text) == "" {
		return false
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return false
	}
	detected := info.Lang.Iso6391()
	if detected == "" {
		return false
	}
	return !strings.EqualFold(detected, targetISO)
}
