package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewFlashcard(t *testing.T) {
	t.Parallel()

	card, err := NewFlashcard("  What is Go?  ", "A programming language\n", CardTypeBasic, "notes.md")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if card.Question != "What is Go?" {
		t.Errorf("Expected trimmed question, got %q", card.Question)
	}

	if card.Answer != "A programming language" {
		t.Errorf("Expected trimmed answer, got %q", card.Answer)
	}

	if card.SourceFile != "notes.md" {
		t.Errorf("Expected source file notes.md, got %q", card.SourceFile)
	}

	if card.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt time")
	}

	// Empty question
	_, err = NewFlashcard("   ", "answer", CardTypeBasic, "")
	if !errors.Is(err, ErrCardQuestionEmpty) {
		t.Errorf("Expected error %v, got %v", ErrCardQuestionEmpty, err)
	}

	// Empty answer
	_, err = NewFlashcard("question", "\t", CardTypeBasic, "")
	if !errors.Is(err, ErrCardAnswerEmpty) {
		t.Errorf("Expected error %v, got %v", ErrCardAnswerEmpty, err)
	}

	// Unknown card type
	_, err = NewFlashcard("question", "answer", CardType("image"), "")
	if !errors.Is(err, ErrCardTypeInvalid) {
		t.Errorf("Expected error %v, got %v", ErrCardTypeInvalid, err)
	}
}

func TestNewFlashcardCloze(t *testing.T) {
	t.Parallel()

	card, err := NewFlashcard("The capital of France is {{c1::Paris}}.", "Paris", CardTypeCloze, "geo.txt")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if card.Type != CardTypeCloze {
		t.Errorf("Expected cloze type, got %q", card.Type)
	}

	// Cloze without a deletion marker is rejected
	_, err = NewFlashcard("The capital of France is Paris.", "Paris", CardTypeCloze, "geo.txt")
	if !errors.Is(err, ErrClozeMarkerMissing) {
		t.Errorf("Expected error %v, got %v", ErrClozeMarkerMissing, err)
	}
}

func TestUpdateText(t *testing.T) {
	t.Parallel()

	card, err := NewFlashcard("Old question?", "Old answer", CardTypeBasic, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if err := card.UpdateText("New question?", "New answer"); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if card.Question != "New question?" || card.Answer != "New answer" {
		t.Errorf("Expected updated text, got %q / %q", card.Question, card.Answer)
	}

	// Invalid update leaves prior state unchanged
	if err := card.UpdateText("", "New answer"); !errors.Is(err, ErrCardQuestionEmpty) {
		t.Errorf("Expected error %v, got %v", ErrCardQuestionEmpty, err)
	}
	if card.Question != "New question?" || card.Answer != "New answer" {
		t.Errorf("Expected text to remain unchanged, got %q / %q", card.Question, card.Answer)
	}
}

func TestUpdateTextClozeInvariant(t *testing.T) {
	t.Parallel()

	card, err := NewFlashcard("Water boils at {{c1::100}} degrees.", "100", CardTypeCloze, "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Removing the deletion marker from a cloze card is rejected
	if err := card.UpdateText("Water boils at 100 degrees.", "100"); !errors.Is(err, ErrClozeMarkerMissing) {
		t.Errorf("Expected error %v, got %v", ErrClozeMarkerMissing, err)
	}
	if card.Question != "Water boils at {{c1::100}} degrees." {
		t.Errorf("Expected question to remain unchanged, got %q", card.Question)
	}
}
