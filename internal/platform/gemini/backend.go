package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/lecture-companion/internal/config"
	"github.com/phrazzld/lecture-companion/internal/generation"
	"google.golang.org/genai"
)

// contentGenerator is the slice of the genai Models service the backend uses.
// *genai.Models satisfies it; tests substitute a stub.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Backend implements generation.Backend using the Gemini API.
type Backend struct {
	// logger is used for structured logging
	logger *slog.Logger

	// models issues GenerateContent calls
	models contentGenerator

	// model is the name of the Gemini model to use
	model string
}

var _ generation.Backend = (*Backend)(nil)

// NewBackend creates a Gemini backend from the LLM configuration.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing the API key and model name
//
// Returns:
//   - A ready Backend, or an error wrapping generation.ErrInvalidConfig
func NewBackend(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Backend, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "Initialized Gemini backend", "model", cfg.ModelName)

	return newBackend(logger, client.Models, cfg.ModelName), nil
}

func newBackend(logger *slog.Logger, models contentGenerator, model string) *Backend {
	return &Backend{
		logger: logger.With("backend", "gemini"),
		models: models,
		model:  model,
	}
}

// Model returns the configured Gemini model name.
func (b *Backend) Model() string {
	return b.model
}

// Complete sends prompt to Gemini as a single user turn and returns the
// concatenated text of the first candidate.
func (b *Backend) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := b.models.GenerateContent(ctx, b.model, genai.Text(prompt), nil)
	if err != nil {
		b.logger.DebugContext(ctx, "Gemini API call failed", "model", b.model)
		return "", fmt.Errorf("%w: %w", generation.ErrBackend, err)
	}

	text, err := responseText(resp)
	if err != nil {
		b.logger.WarnContext(ctx, "Gemini API returned no usable text",
			"model", b.model,
			"reason", err.Error())
		return "", err
	}
	return text, nil
}

// blockedFinishReasons are the finish reasons meaning the model stopped
// because of a content policy rather than finishing or failing.
var blockedFinishReasons = map[genai.FinishReason]bool{
	genai.FinishReasonSafety:            true,
	genai.FinishReasonProhibitedContent: true,
	genai.FinishReasonBlocklist:         true,
	genai.FinishReasonSPII:              true,
	genai.FinishReasonImageSafety:       true,
}

// responseText flattens a GenerateContent response to plain text. Thought
// parts are skipped.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrBackend)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: %w: prompt blocked (%s)",
			generation.ErrBackend, generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return "", fmt.Errorf("%w: no candidates in response", generation.ErrBackend)
	}

	candidate := resp.Candidates[0]
	if blockedFinishReasons[candidate.FinishReason] {
		return "", fmt.Errorf("%w: %w: finished with %s",
			generation.ErrBackend, generation.ErrContentBlocked, candidate.FinishReason)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrBackend)
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
