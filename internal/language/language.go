// Package language scores generated text against per-language heuristics to
// decide whether it plausibly belongs to the requested target language. The
// supported set is a closed enumeration; unknown codes resolve to the
// default language's validator rather than failing.
package language

import "strings"

// Language is a closed enumeration of supported target languages.
type Language string

const (
	English Language = "english"
	French  Language = "french"
	Spanish Language = "spanish"
	German  Language = "german"
	Italian Language = "italian"
)

// Default is the fallback language for codes without a dedicated validator.
const Default = English

// Parse maps a language code or name to a supported Language. Unknown values
// fall back to the default language; ok reports whether the input was a
// dedicated match.
func Parse(code string) (Language, bool) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "en", "eng", "english":
		return English, true
	case "fr", "fra", "french":
		return French, true
	case "es", "spa", "spanish":
		return Spanish, true
	case "de", "deu", "ger", "german":
		return German, true
	case "it", "ita", "italian":
		return Italian, true
	default:
		return Default, false
	}
}
