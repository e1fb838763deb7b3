// Package openai implements generation.Backend for any OpenAI-compatible
// chat-completions endpoint using the official openai-go SDK.
package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/phrazzld/lecture-companion/internal/config"
	"github.com/phrazzld/lecture-companion/internal/generation"
)

const finishReasonContentFilter = "content_filter"

// Backend implements generation.Backend with chat completions.
type Backend struct {
	logger *slog.Logger
	client openai.Client
	model  string
}

var _ generation.Backend = (*Backend)(nil)

// NewBackend creates an OpenAI-compatible backend. The SDK's built-in retries
// are disabled so each Complete is a single HTTP request.
//
// Parameters:
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing the API key, model and optional base URL
//   - httpClient: Optional HTTP client; nil uses http.DefaultClient
//
// Returns:
//   - A ready Backend, or an error wrapping generation.ErrInvalidConfig
func NewBackend(logger *slog.Logger, cfg config.LLMConfig, httpClient *http.Client) (*Backend, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}

	return &Backend{
		logger: logger.With("backend", "openai"),
		client: openai.NewClient(opts...),
		model:  cfg.ModelName,
	}, nil
}

// Model returns the configured model name.
func (b *Backend) Model() string {
	return b.model
}

// Complete sends prompt as a single user message and returns the content of
// the first choice.
func (b *Backend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(b.model),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", generation.ErrBackend, mapOpenAIError(err))
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", generation.ErrBackend)
	}

	choice := resp.Choices[0]
	if choice.FinishReason == finishReasonContentFilter {
		b.logger.WarnContext(ctx, "Completion stopped by content filter", "model", b.model)
		return "", fmt.Errorf("%w: %w", generation.ErrBackend, generation.ErrContentBlocked)
	}

	if refusal := strings.TrimSpace(choice.Message.Refusal); refusal != "" && choice.Message.Content == "" {
		return refusal, nil
	}
	return choice.Message.Content, nil
}

// mapOpenAIError condenses SDK API errors to status and message.
func mapOpenAIError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Errorf("openai error (status %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("openai error (status %d)", apiErr.StatusCode)
	}
	return err
}
