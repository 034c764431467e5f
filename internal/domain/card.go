package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CardType identifies the variant of a flashcard.
type CardType string

const (
	// CardTypeBasic is a plain question/answer card.
	CardTypeBasic CardType = "basic"

	// CardTypeCloze is a cloze-deletion card whose question embeds one or
	// more in-place deletion markers of the form {{c1::hidden text}}.
	CardTypeCloze CardType = "cloze"
)

// clozeMarkerPattern matches an Anki-style cloze deletion span.
var clozeMarkerPattern = regexp.MustCompile(`\{\{c\d+::.+?\}\}`)

// Flashcard represents a single generated or manually entered card.
// Question and answer are stored trimmed; identifiers are unique and stable
// for the lifetime of the owning collection.
type Flashcard struct {
	ID         uuid.UUID `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Type       CardType  `json:"type"`
	SourceFile string    `json:"source_file"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewFlashcard creates a new Flashcard with a fresh identifier and the
// current timestamp. Question and answer are trimmed before validation.
// Returns an error if validation fails.
func NewFlashcard(question, answer string, cardType CardType, sourceFile string) (*Flashcard, error) {
	card := &Flashcard{
		ID:         uuid.New(),
		Question:   strings.TrimSpace(question),
		Answer:     strings.TrimSpace(answer),
		Type:       cardType,
		SourceFile: sourceFile,
		CreatedAt:  time.Now().UTC(),
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks the Flashcard invariants: non-nil identifier, non-empty
// trimmed question and answer, a known card type, and a recognizable
// deletion marker for cloze cards.
func (c *Flashcard) Validate() error {
	if c.ID == uuid.Nil {
		return ErrValidation
	}

	if strings.TrimSpace(c.Question) == "" {
		return ErrCardQuestionEmpty
	}

	if strings.TrimSpace(c.Answer) == "" {
		return ErrCardAnswerEmpty
	}

	switch c.Type {
	case CardTypeBasic:
		// No extra constraints.
	case CardTypeCloze:
		if !clozeMarkerPattern.MatchString(c.Question) {
			return ErrClozeMarkerMissing
		}
	default:
		return ErrCardTypeInvalid
	}

	return nil
}

// UpdateText replaces the card's question and answer, re-validating the
// result. If the new content would violate an invariant, the card is left
// unchanged and the validation error is returned.
func (c *Flashcard) UpdateText(question, answer string) error {
	origQuestion, origAnswer := c.Question, c.Answer
	c.Question = strings.TrimSpace(question)
	c.Answer = strings.TrimSpace(answer)

	if err := c.Validate(); err != nil {
		c.Question, c.Answer = origQuestion, origAnswer
		return err
	}

	return nil
}

// HasClozeMarker reports whether the text contains an in-place cloze
// deletion span.
func HasClozeMarker(text string) bool {
	return clozeMarkerPattern.MatchString(text)
}
