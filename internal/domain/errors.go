// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrCardQuestionEmpty is returned when a flashcard question is empty
	// after trimming.
	ErrCardQuestionEmpty = errors.New("flashcard question cannot be empty")

	// ErrCardAnswerEmpty is returned when a flashcard answer is empty
	// after trimming.
	ErrCardAnswerEmpty = errors.New("flashcard answer cannot be empty")

	// ErrCardTypeInvalid is returned when a card type is not a known variant.
	ErrCardTypeInvalid = errors.New("invalid card type")

	// ErrClozeMarkerMissing is returned when a cloze card's question contains
	// no recognizable deletion marker.
	ErrClozeMarkerMissing = errors.New("cloze card must contain a deletion marker")

	// ErrCardNotFound is returned when a collection operation references an
	// identifier that is not present.
	ErrCardNotFound = errors.New("flashcard not found")

	// ErrDuplicateCardID is returned when a card with an already-present
	// identifier is added to a collection.
	ErrDuplicateCardID = errors.New("duplicate flashcard identifier")
)

// FileProcessingError reports that a single input unit could not be read,
// recognized, or extracted. It is isolated to that unit: the run continues
// with the remaining units and the error is collected into the
// ProcessingResult.
type FileProcessingError struct {
	Source string
	Cause  error
}

// Error implements the error interface for FileProcessingError.
func (e *FileProcessingError) Error() string {
	return fmt.Sprintf("failed to process %s: %v", e.Source, e.Cause)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *FileProcessingError) Unwrap() error {
	return e.Cause
}

// NewFileProcessingError creates a new FileProcessingError for the given
// source name and cause.
func NewFileProcessingError(source string, cause error) *FileProcessingError {
	return &FileProcessingError{Source: source, Cause: cause}
}

// LLMError reports that backend invocation or response parsing failed for a
// single chunk after exhausting retries. Other chunks proceed independently.
type LLMError struct {
	Source     string
	ChunkIndex int
	Cause      error
}

// Error implements the error interface for LLMError.
func (e *LLMError) Error() string {
	return fmt.Sprintf("generation failed for %s chunk %d: %v", e.Source, e.ChunkIndex, e.Cause)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *LLMError) Unwrap() error {
	return e.Cause
}

// LanguageValidationError is a non-fatal quality warning: the retry ceiling
// was exhausted without any attempt passing language validation, and the
// best-scoring attempt was kept.
type LanguageValidationError struct {
	Source     string
	ChunkIndex int
	Score      float64
	Threshold  float64
}

// Error implements the error interface for LanguageValidationError.
func (e *LanguageValidationError) Error() string {
	return fmt.Sprintf(
		"language validation exhausted for %s chunk %d: best score %.2f below threshold %.2f",
		e.Source, e.ChunkIndex, e.Score, e.Threshold)
}

// ExportError reports a destination or serialization failure during CSV
// export. It aborts only the export step.
type ExportError struct {
	Destination string
	Cause       error
}

// Error implements the error interface for ExportError.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s failed: %v", e.Destination, e.Cause)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ExportError) Unwrap() error {
	return e.Cause
}
