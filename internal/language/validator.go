package language

import (
	"regexp"
	"strings"
)

// Validator decides whether text plausibly belongs to one target language.
type Validator interface {
	// Language returns the language this validator checks.
	Language() Language

	// Score returns the heuristic match score for the text: the number of
	// distinct indicator patterns present.
	Score(text string) float64

	// Validate reports whether the text meets the acceptance threshold.
	Validate(text string) bool
}

// AcceptThreshold is the minimum indicator score for acceptance. Two
// distinct function-word hits are enough to distinguish the supported
// languages from each other on sentence-length text.
const AcceptThreshold = 2.0

// indicatorValidator matches text against a set of language-characteristic
// function words, articles, and common verb forms.
type indicatorValidator struct {
	language   Language
	indicators []*regexp.Regexp
}

// ForLanguage returns the validator for the given language, falling back to
// the default language's validator when no dedicated one exists.
func ForLanguage(lang Language) Validator {
	if v, ok := validators[lang]; ok {
		return v
	}
	return validators[Default]
}

func (v *indicatorValidator) Language() Language { return v.language }

// Score counts distinct indicator patterns present in the text. Each pattern
// contributes at most one point regardless of how often it matches.
func (v *indicatorValidator) Score(text string) float64 {
	lowered := strings.ToLower(text)
	score := 0.0
	for _, pattern := range v.indicators {
		if pattern.MatchString(lowered) {
			score++
		}
	}
	return score
}

func (v *indicatorValidator) Validate(text string) bool {
	return v.Score(text) >= AcceptThreshold
}

func newValidator(lang Language, words ...string) *indicatorValidator {
	patterns := make([]*regexp.Regexp, 0, len(words))
	for _, w := range words {
		patterns = append(patterns, regexp.MustCompile(`(?:^|[^\p{L}])`+w+`(?:[^\p{L}]|$)`))
	}
	return &indicatorValidator{language: lang, indicators: patterns}
}

// Indicator sets per language: articles, common prepositions and
// conjunctions, frequent verb forms, and for French/Spanish/Italian the
// elided article forms that survive lowercasing.
var validators = map[Language]Validator{
	English: newValidator(English,
		`the`, `and`, `of`, `to`, `is`, `are`, `was`, `that`, `with`, `for`, `what`, `which`),
	French: newValidator(French,
		`le`, `la`, `les`, `des`, `une?`, `est`, `sont`, `dans`, `que`, `qui`, `pour`, `avec`, `c'est`, `d'une?`, `l'[\p{L}]`, `quelle?`),
	Spanish: newValidator(Spanish,
		`el`, `la`, `los`, `las`, `una?`, `es`, `son`, `está`, `que`, `qué`, `para`, `con`, `por`, `cuál`, `del`),
	German: newValidator(German,
		`der`, `die`, `das`, `den`, `ein`, `eine`, `ist`, `sind`, `und`, `nicht`, `mit`, `für`, `was`, `wird`),
	Italian: newValidator(Italian,
		`il`, `lo`, `la`, `gli`, `una?`, `è`, `sono`, `che`, `per`, `con`, `di`, `del`, `della`, `qual`),
}
