package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the loader reads,
// e.g. COMPANION_LLM_GEMINI_API_KEY for llm.gemini_api_key.
const EnvPrefix = "COMPANION"

// defaults lists every known key. Keys must be registered here for
// environment-only values to reach Unmarshal.
var defaults = map[string]any{
	"server.port":                    8080,
	"server.log_level":               "info",
	"server.request_timeout_seconds": 60,
	"llm.provider":                   ProviderGemini,
	"llm.gemini_api_key":             "",
	"llm.openai_api_key":             "",
	"llm.openai_base_url":            "",
	"llm.model_name":                 "gemini-1.5-pro",
	"llm.extractor":                  "greedy",
	"llm.validation":                 "strict",
}

// Load reads configuration from defaults, the optional YAML file at
// configPath and environment variables, in increasing precedence.
// Returns a populated Config or an error if loading or validation fails.
func Load(configPath string) (*Config, error) {
	v, err := newViper(configPath)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

func newViper(configPath string) (*viper.Viper, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		return v, nil
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return v, nil
}

// decode unmarshals and validates the current viper state.
func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints and that the selected provider has an
// API key.
func Validate(cfg *Config) error {
	validate := validator.New()
	validate.RegisterStructValidation(validateLLM, LLMConfig{})
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func validateLLM(sl validator.StructLevel) {
	llm := sl.Current().Interface().(LLMConfig)
	switch llm.Provider {
	case ProviderGemini:
		if llm.GeminiAPIKey == "" {
			sl.ReportError(llm.GeminiAPIKey, "GeminiAPIKey", "gemini_api_key", "required_for_provider", llm.Provider)
		}
	case ProviderOpenAI:
		if llm.OpenAIAPIKey == "" {
			sl.ReportError(llm.OpenAIAPIKey, "OpenAIAPIKey", "openai_api_key", "required_for_provider", llm.Provider)
		}
	}
}
