package domain

import (
	"sync"

	"github.com/google/uuid"
)

// FlashcardCollection is the mutable, validated store of cards produced by a
// processing session. Cards keep insertion order, which is stable across
// edits. Identifiers are never reused within a session: deletion removes the
// entry but a freed identifier is never handed out again because fresh cards
// always receive a new random UUID.
//
// The collection assumes a single logical writer per session; the internal
// mutex keeps it consistent when a calling layer shares one instance between
// its own goroutines.
type FlashcardCollection struct {
	mu    sync.Mutex
	cards []*Flashcard
	byID  map[uuid.UUID]*Flashcard
}

// NewFlashcardCollection creates an empty collection.
func NewFlashcardCollection() *FlashcardCollection {
	return &FlashcardCollection{
		byID: make(map[uuid.UUID]*Flashcard),
	}
}

// Add validates the card and appends it to the collection, assigning a fresh
// identifier if the card has none. Returns ErrDuplicateCardID if the card's
// identifier is already present. The collection is unchanged on any error.
func (fc *FlashcardCollection) Add(card *Flashcard) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}

	if err := card.Validate(); err != nil {
		return err
	}

	if _, exists := fc.byID[card.ID]; exists {
		return ErrDuplicateCardID
	}

	fc.cards = append(fc.cards, card)
	fc.byID[card.ID] = card
	return nil
}

// Edit replaces the question and answer of the card with the given
// identifier, re-validating the result. Returns ErrCardNotFound if no such
// card exists, or a validation error with the prior state left unchanged.
func (fc *FlashcardCollection) Edit(id uuid.UUID, question, answer string) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	card, ok := fc.byID[id]
	if !ok {
		return ErrCardNotFound
	}

	return card.UpdateText(question, answer)
}

// Delete removes the card with the given identifier. Returns ErrCardNotFound
// without side effects if no such card exists.
func (fc *FlashcardCollection) Delete(id uuid.UUID) error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if _, ok := fc.byID[id]; !ok {
		return ErrCardNotFound
	}

	for i, card := range fc.cards {
		if card.ID == id {
			fc.cards = append(fc.cards[:i], fc.cards[i+1:]...)
			break
		}
	}
	delete(fc.byID, id)
	return nil
}

// Get returns the card with the given identifier, or ErrCardNotFound.
func (fc *FlashcardCollection) Get(id uuid.UUID) (*Flashcard, error) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	card, ok := fc.byID[id]
	if !ok {
		return nil, ErrCardNotFound
	}
	return card, nil
}

// List returns the current cards in insertion order. The returned slice is a
// copy and safe for the caller to hold across further mutations.
func (fc *FlashcardCollection) List() []*Flashcard {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	out := make([]*Flashcard, len(fc.cards))
	copy(out, fc.cards)
	return out
}

// Len returns the number of cards currently in the collection.
func (fc *FlashcardCollection) Len() int {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	return len(fc.cards)
}
