// Package config defines the explicit configuration value object consumed by
// the core packages. The calling layer constructs it once (via Load or by
// hand) and passes it in; the core never reads environment state directly.
package config

// Config holds all application configuration, organized into logical groups.
type Config struct {
	LogLevel   string           `mapstructure:"log_level"  validate:"required,oneof=debug info warn error"`
	LLM        LLMConfig        `mapstructure:"llm"        validate:"required"`
	Generation GenerationConfig `mapstructure:"generation" validate:"required"`
	Ingest     IngestConfig     `mapstructure:"ingest"`
}

// LLMConfig selects and credentials the completion backend.
type LLMConfig struct {
	// Backend is the completion backend identifier.
	Backend string `mapstructure:"backend" validate:"required,oneof=gemini openai"`

	// GeminiAPIKey is required when Backend is "gemini".
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required_if=Backend gemini"`

	// OpenAIAPIKey is required when Backend is "openai".
	OpenAIAPIKey string `mapstructure:"openai_api_key" validate:"required_if=Backend openai"`

	// ModelName is the backend-specific model identifier.
	ModelName string `mapstructure:"model_name" validate:"required"`
}

// GenerationConfig carries the token budget and retry ceilings.
type GenerationConfig struct {
	// TokenBudget caps the size of each chunk fed to the backend.
	TokenBudget int `mapstructure:"token_budget" validate:"gt=0"`

	// MaxCompletionTokens caps each backend completion.
	MaxCompletionTokens int `mapstructure:"max_completion_tokens" validate:"gt=0"`

	// ParseRetries re-invokes the backend after a malformed response.
	ParseRetries int `mapstructure:"parse_retries" validate:"gte=0"`

	// TransientRetries retries failed backend calls before giving up.
	TransientRetries int `mapstructure:"transient_retries" validate:"gte=0"`

	// ValidationRetries re-runs generation after language rejection.
	ValidationRetries int `mapstructure:"validation_retries" validate:"gte=0"`

	// Workers bounds the number of simultaneous backend calls.
	Workers int `mapstructure:"workers" validate:"gt=0"`
}

// IngestConfig carries input limits and folder expansion policy.
type IngestConfig struct {
	// MaxFileSizeMB caps any single input file.
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb" validate:"gte=0"`

	// MaxArchiveSizeMB caps the total expanded size of an archive.
	MaxArchiveSizeMB int64 `mapstructure:"max_archive_size_mb" validate:"gte=0"`

	// Recurse expands folders recursively instead of one level deep.
	Recurse bool `mapstructure:"recurse"`
}
