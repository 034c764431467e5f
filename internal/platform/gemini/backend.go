// Package gemini implements the completion backend interface using Google's
// Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/phrazzld/cardforge/internal/config"
	"github.com/phrazzld/cardforge/internal/generation"
)

// Backend calls the Gemini API to complete prompts. Credential and model
// validation happens once in New; Complete assumes a sound setup.
type Backend struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

var _ generation.CompletionBackend = (*Backend)(nil)

// New creates a Gemini backend from the LLM configuration.
//
// Returns an error wrapping generation.ErrInvalidConfig when the API key or
// model name is missing, so the calling layer fails before any processing
// begins.
func New(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Backend, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Backend{logger: logger, client: client, model: cfg.ModelName}, nil
}

// Name implements generation.CompletionBackend.
func (b *Backend) Name() string { return "gemini" }

// Complete implements generation.CompletionBackend. Safety blocks map to
// generation.ErrContentBlocked so the orchestrator knows not to retry them.
func (b *Backend) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	genCfg := &genai.GenerateContentConfig{}
	if maxTokens > 0 {
		genCfg.MaxOutputTokens = int32(maxTokens)
	}

	b.logger.DebugContext(ctx, "calling Gemini API",
		"model", b.model,
		"prompt_length", len(prompt))

	resp, err := b.client.Models.GenerateContent(ctx, b.model, genai.Text(prompt), genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in candidate", generation.ErrInvalidResponse)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: no text parts in response", generation.ErrInvalidResponse)
	}
	return text, nil
}
