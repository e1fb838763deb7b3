package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/phrazzld/lecture-companion/internal/domain"
	"github.com/phrazzld/lecture-companion/internal/redact"
)

// Pipeline builds prompts, calls the backend and converts its output into
// typed artifacts. It holds no per-request state and may be shared; it makes
// a single backend attempt per request and imposes no timeout of its own, so
// callers that need bounded latency must cancel ctx.
type Pipeline struct {
	backend   Backend
	extractor Extractor
	validator *Validator
	logger    *slog.Logger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithExtractor replaces the default GreedyExtractor.
func WithExtractor(e Extractor) Option {
	return func(p *Pipeline) {
		p.extractor = e
	}
}

// WithValidator replaces the default strict Validator.
func WithValidator(v *Validator) Option {
	return func(p *Pipeline) {
		p.validator = v
	}
}

// NewPipeline creates a Pipeline around backend.
//
// Parameters:
//   - backend: The generative-text backend requests are sent to
//   - logger: A structured logger for request logging
//   - opts: Optional extractor and validator overrides
//
// Returns:
//   - A ready Pipeline, or an error if a dependency is missing
func NewPipeline(backend Backend, logger *slog.Logger, opts ...Option) (*Pipeline, error) {
	if backend == nil {
		return nil, fmt.Errorf("%w: backend cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	p := &Pipeline{
		backend:   backend,
		extractor: GreedyExtractor{},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.extractor == nil {
		return nil, fmt.Errorf("%w: extractor cannot be nil", ErrInvalidConfig)
	}
	if p.validator == nil {
		v, err := NewValidator(ValidationStrict)
		if err != nil {
			return nil, err
		}
		p.validator = v
	}

	return p, nil
}

// RequestSummary asks the backend for a structured summary of notes.
//
// Empty notes are rejected with ErrEmptyInput before any backend call. When
// the backend fails the Result carries the error and SummaryFailureMessage
// as its Value, so a successful or failed summary always has text to show.
func (p *Pipeline) RequestSummary(ctx context.Context, notes string) (result Result[string]) {
	result = Result[string]{Kind: domain.ArtifactSummary, RequestID: uuid.NewString()}
	defer func() {
		if r := recover(); r != nil {
			result.Value = SummaryFailureMessage
			result.Err = p.panicError(ctx, result.RequestID, result.Kind, r)
		}
	}()

	text, err := p.run(ctx, result.RequestID, domain.ArtifactSummary, notes)
	if err != nil {
		result.Err = err
		if !errors.Is(err, ErrEmptyInput) {
			result.Value = SummaryFailureMessage
		}
		return result
	}

	result.Value = text
	return result
}

// RequestQuiz asks the backend for multiple-choice questions about notes.
// On any failure the Result's Value is nil.
func (p *Pipeline) RequestQuiz(ctx context.Context, notes string) Result[[]domain.QuizQuestion] {
	return requestStructured[domain.QuizQuestion](ctx, p, domain.ArtifactQuiz, notes)
}

// RequestFlashcards asks the backend for term/definition flashcards about
// notes. On any failure the Result's Value is nil.
func (p *Pipeline) RequestFlashcards(ctx context.Context, notes string) Result[[]domain.Flashcard] {
	return requestStructured[domain.Flashcard](ctx, p, domain.ArtifactFlashcards, notes)
}

// Model returns the backend's model identifier.
func (p *Pipeline) Model() string {
	return p.backend.Model()
}

func requestStructured[T any](
	ctx context.Context,
	p *Pipeline,
	kind domain.ArtifactKind,
	notes string,
) (result Result[[]T]) {
	result = Result[[]T]{Kind: kind, RequestID: uuid.NewString()}
	defer func() {
		if r := recover(); r != nil {
			result.Value = nil
			result.Err = p.panicError(ctx, result.RequestID, kind, r)
		}
	}()

	text, err := p.run(ctx, result.RequestID, kind, notes)
	if err != nil {
		result.Err = err
		return result
	}

	items, err := p.decode(kind, text)
	if err != nil {
		p.logger.WarnContext(ctx, "Backend response could not be converted",
			"request_id", result.RequestID,
			"artifact", kind,
			"response_length", len(text),
			"error", redact.Error(err))
		result.Err = err
		return result
	}

	var value []T
	if err := json.Unmarshal(items, &value); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrInvalidShape, err)
		return result
	}

	result.Value = value
	return result
}

// run validates notes, builds the prompt and calls the backend once.
func (p *Pipeline) run(ctx context.Context, requestID string, kind domain.ArtifactKind, notes string) (string, error) {
	logger := p.logger.With("request_id", requestID, "artifact", kind)

	if err := domain.ValidateNotes(notes); err != nil {
		logger.DebugContext(ctx, "Rejected empty notes")
		return "", err
	}

	prompt, err := BuildPrompt(kind, notes)
	if err != nil {
		return "", err
	}

	logger.InfoContext(ctx, "Requesting artifact from backend",
		"model", p.backend.Model(),
		"notes_length", len(notes),
		"prompt_length", len(prompt))

	start := time.Now()
	text, err := p.backend.Complete(ctx, prompt)
	elapsed := time.Since(start)
	if err != nil {
		if !errors.Is(err, ErrBackend) {
			err = fmt.Errorf("%w: %w", ErrBackend, err)
		}
		logger.ErrorContext(ctx, "Backend request failed",
			"duration_ms", elapsed.Milliseconds(),
			"error", redact.Error(err))
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		logger.WarnContext(ctx, "Backend returned empty text", "duration_ms", elapsed.Milliseconds())
		return "", ErrEmptyResponse
	}

	logger.InfoContext(ctx, "Backend request succeeded",
		"duration_ms", elapsed.Milliseconds(),
		"response_length", len(text))
	return text, nil
}

// decode extracts and validates the JSON array for a structured kind.
func (p *Pipeline) decode(kind domain.ArtifactKind, text string) (json.RawMessage, error) {
	payload, err := p.extractor.Extract(text)
	if err != nil {
		return nil, err
	}
	if err := p.validator.Validate(kind, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// panicError logs a recovered panic and converts it into ErrGenerationFailed
// so it never propagates past the pipeline boundary.
func (p *Pipeline) panicError(ctx context.Context, requestID string, kind domain.ArtifactKind, r any) error {
	p.logger.ErrorContext(ctx, "Recovered from panic during generation",
		"request_id", requestID,
		"artifact", kind,
		"panic", fmt.Sprint(r))
	return fmt.Errorf("%w: %v", ErrGenerationFailed, r)
}
