package punctuation

import (
	"slices"
	"strings"
)

// DefaultLanguages are the language codes the multilingual punctuation
// model supports.
var DefaultLanguages = []string{"en", "fr", "de", "es", "it", "nl", "pt", "bg", "pl", "cs", "sk", "sl"}

// Supported reports whether lang has a punctuation model. An empty allow
// list means DefaultLanguages. Region subtags are ignored, so "en-US"
// matches "en".
func Supported(lang string, allow []string) bool {
	if len(allow) == 0 {
		allow = DefaultLanguages
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if base, _, ok := strings.Cut(lang, "-"); ok {
		lang = base
	} else if base, _, ok := strings.Cut(lang, "_"); ok {
		lang = base
	}
	return lang != "" && slices.Contains(allow, lang)
}
