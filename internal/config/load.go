package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables (CARDFORGE_ prefix)
// and an optional config file, applies defaults, and validates the result.
// Environment variables take precedence over file values. configFile may be
// empty, in which case only defaults and the environment apply.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("llm.backend", "gemini")
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	// Empty defaults register the credential keys with viper so that
	// AutomaticEnv surfaces them through Unmarshal.
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("generation.token_budget", 800)
	v.SetDefault("generation.max_completion_tokens", 2048)
	v.SetDefault("generation.parse_retries", 2)
	v.SetDefault("generation.transient_retries", 2)
	v.SetDefault("generation.validation_retries", 2)
	v.SetDefault("generation.workers", 4)
	v.SetDefault("ingest.max_file_size_mb", 20)
	v.SetDefault("ingest.max_archive_size_mb", 100)
	v.SetDefault("ingest.recurse", false)

	v.SetEnvPrefix("CARDFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields = append(fields, fieldErr.Namespace())
			}
			return nil, fmt.Errorf("invalid configuration for %s: %w", strings.Join(fields, ", "), err)
		}
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
