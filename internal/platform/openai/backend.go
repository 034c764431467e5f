// Package openai implements the completion backend interface using the
// OpenAI chat completions API.
package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"

	"github.com/phrazzld/cardforge/internal/config"
	"github.com/phrazzld/cardforge/internal/generation"
)

// Backend calls the OpenAI chat completions API to complete prompts.
type Backend struct {
	logger *slog.Logger
	client openai.Client
	model  string
}

var _ generation.CompletionBackend = (*Backend)(nil)

// New creates an OpenAI backend from the LLM configuration, validating the
// credential and model name once at construction.
func New(logger *slog.Logger, cfg config.LLMConfig) (*Backend, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Backend{
		logger: logger,
		client: openai.NewClient(option.WithAPIKey(cfg.OpenAIAPIKey)),
		model:  cfg.ModelName,
	}, nil
}

// Name implements generation.CompletionBackend.
func (b *Backend) Name() string { return "openai" }

// Complete implements generation.CompletionBackend.
func (b *Backend) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{Type: "json_object"},
		},
	}
	if maxTokens > 0 {
		params.MaxTokens = openai.Int(int64(maxTokens))
	}

	b.logger.DebugContext(ctx, "calling OpenAI API",
		"model", b.model,
		"prompt_length", len(prompt))

	completion, err := b.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no completion choices returned", generation.ErrInvalidResponse)
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("%w: empty completion content", generation.ErrInvalidResponse)
	}
	return content, nil
}
