package generation

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/phrazzld/cardforge/internal/language"
)

// CardStyle selects the kind of cards a prompt asks for.
type CardStyle string

const (
	// StyleBasic asks for plain question/answer cards only.
	StyleBasic CardStyle = "basic"

	// StyleCloze asks for cloze-deletion cards only.
	StyleCloze CardStyle = "cloze"

	// StyleMixed lets the model choose per fact.
	StyleMixed CardStyle = "mixed"
)

// ParseCardStyle maps a style name to a CardStyle.
func ParseCardStyle(s string) (CardStyle, error) {
	switch CardStyle(s) {
	case StyleBasic, StyleCloze, StyleMixed:
		return CardStyle(s), nil
	default:
		return "", fmt.Errorf("%w: unknown card style %q", ErrInvalidConfig, s)
	}
}

const promptTemplateText = `You are a flashcard author. Read the study material below and produce
high-quality flashcards covering its key facts.

Rules:
- Write every question and every answer in {{.LanguageName}}.
- {{.StyleInstruction}}
- Respond with JSON only, no commentary, matching exactly:
  {"cards": [{"question": "...", "answer": "...", "type": "basic"}]}
- "type" must be "basic" or "cloze". Cloze questions embed the hidden text
  in-place as {{"{{c1::hidden text}}"}} and repeat it as the answer.
- Produce between 1 and 10 cards. Skip trivia; keep facts atomic.

Study material:
---
{{.ChunkText}}
---`

var promptTemplate = template.Must(template.New("flashcards").Parse(promptTemplateText))

type promptData struct {
	LanguageName     string
	StyleInstruction string
	ChunkText        string
}

// PromptBuilder renders generation prompts for one fixed (target language,
// card style) pair, resolved once at construction per the closed language
// enumeration.
type PromptBuilder struct {
	lang  language.Language
	style CardStyle
}

// NewPromptBuilder creates a PromptBuilder for the given language and style.
func NewPromptBuilder(lang language.Language, style CardStyle) (*PromptBuilder, error) {
	if _, err := ParseCardStyle(string(style)); err != nil {
		return nil, err
	}
	return &PromptBuilder{lang: lang, style: style}, nil
}

// Build renders the prompt for one chunk of study material.
func (b *PromptBuilder) Build(chunkText string) (string, error) {
	data := promptData{
		LanguageName:     languageName(b.lang),
		StyleInstruction: styleInstruction(b.style),
		ChunkText:        chunkText,
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return buf.String(), nil
}

func languageName(lang language.Language) string {
	switch lang {
	case language.French:
		return "French"
	case language.Spanish:
		return "Spanish"
	case language.German:
		return "German"
	case language.Italian:
		return "Italian"
	default:
		return "English"
	}
}

func styleInstruction(style CardStyle) string {
	switch style {
	case StyleCloze:
		return `Every card must be a cloze-deletion card ("type": "cloze").`
	case StyleMixed:
		return `Choose per fact between plain question/answer cards and cloze-deletion cards.`
	default:
		return `Every card must be a plain question/answer card ("type": "basic").`
	}
}
