package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains settings for the HTTP server and process-wide logging.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// RequestTimeoutSeconds bounds a single artifact request made through
	// the HTTP API, including the backend call.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"gt=0"`
}

// RequestTimeout returns RequestTimeoutSeconds as a duration.
func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// LLMConfig contains all generative backend settings.
type LLMConfig struct {
	// Provider selects the backend: "gemini" or "openai".
	Provider string `mapstructure:"provider" validate:"required,oneof=gemini openai"`

	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	OpenAIAPIKey string `mapstructure:"openai_api_key"`
	// OpenAIBaseURL points the openai provider at any compatible endpoint.
	OpenAIBaseURL string `mapstructure:"openai_base_url" validate:"omitempty,url"`

	ModelName string `mapstructure:"model_name" validate:"required"`

	// Extractor selects how JSON arrays are located in model output.
	Extractor string `mapstructure:"extractor" validate:"required,oneof=greedy balanced"`

	// Validation selects how strictly extracted arrays are checked.
	Validation string `mapstructure:"validation" validate:"required,oneof=strict shape off"`
}

// APIKey returns the key for the configured provider.
func (c LLMConfig) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// Supported providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)
