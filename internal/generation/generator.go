// Package generation turns text chunks into flashcard candidates. It builds
// language- and style-specific prompts, invokes a pluggable completion
// backend per chunk with bounded parallelism, parses the structured output,
// and applies language validation with retry. This package is the boundary
// between the application core and external model services.
package generation

import (
	"context"
)

// CompletionBackend is the external text-generation capability invoked to
// produce flashcard candidates. Implementations exist per supported backend
// (Gemini, OpenAI); selection and credential checks happen once at
// construction time, never per call.
type CompletionBackend interface {
	// Complete sends the prompt and returns the raw response text.
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)

	// Name identifies the backend for logging and provenance.
	Name() string
}
