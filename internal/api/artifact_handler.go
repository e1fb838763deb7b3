package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/lecture-companion/internal/api/shared"
	"github.com/phrazzld/lecture-companion/internal/domain"
	"github.com/phrazzld/lecture-companion/internal/generation"
)

// ArtifactService produces study artifacts from notes.
// *generation.Pipeline satisfies it.
type ArtifactService interface {
	RequestSummary(ctx context.Context, notes string) generation.Result[string]
	RequestQuiz(ctx context.Context, notes string) generation.Result[[]domain.QuizQuestion]
	RequestFlashcards(ctx context.Context, notes string) generation.Result[[]domain.Flashcard]
	Model() string
}

// ArtifactHandler handles the generation endpoints.
type ArtifactHandler struct {
	service ArtifactService
	timeout time.Duration
	logger  *slog.Logger
}

// NewArtifactHandler creates an ArtifactHandler. Each request's generation is
// cancelled after timeout; a non-positive timeout leaves only the client's
// own cancellation in effect.
func NewArtifactHandler(service ArtifactService, timeout time.Duration, logger *slog.Logger) *ArtifactHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArtifactHandler{
		service: service,
		timeout: timeout,
		logger:  logger.With("component", "artifact_handler"),
	}
}

// Summary handles POST /api/summary requests.
func (h *ArtifactHandler) Summary(w http.ResponseWriter, r *http.Request) {
	serveArtifact(h, w, r, h.service.RequestSummary, func(requestID string, summary string) any {
		return SummaryResponse{RequestID: requestID, Summary: summary}
	})
}

// Quiz handles POST /api/quiz requests.
func (h *ArtifactHandler) Quiz(w http.ResponseWriter, r *http.Request) {
	serveArtifact(h, w, r, h.service.RequestQuiz, func(requestID string, questions []domain.QuizQuestion) any {
		return QuizResponse{RequestID: requestID, Questions: questions}
	})
}

// Flashcards handles POST /api/flashcards requests.
func (h *ArtifactHandler) Flashcards(w http.ResponseWriter, r *http.Request) {
	serveArtifact(h, w, r, h.service.RequestFlashcards, func(requestID string, cards []domain.Flashcard) any {
		return FlashcardsResponse{RequestID: requestID, Flashcards: cards}
	})
}

// Health handles GET /health requests.
func (h *ArtifactHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status: "ok",
		Model:  h.service.Model(),
	})
}

// serveArtifact decodes the request, runs one pipeline request under the
// handler timeout and writes either the response built by respond or an
// error response.
func serveArtifact[T any](
	h *ArtifactHandler,
	w http.ResponseWriter,
	r *http.Request,
	request func(context.Context, string) generation.Result[T],
	respond func(requestID string, value T) any,
) {
	var req ArtifactRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		if errors.Is(err, shared.ErrBodyTooLarge) {
			shared.RespondWithErrorAndLog(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Notes are too long: requests are limited to %d MiB", shared.MaxRequestBodyBytes>>20), err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result := request(ctx, req.Notes)
	if err := result.Err; err != nil {
		// Backends do not always preserve the context error in their chain.
		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: %w", err, context.DeadlineExceeded)
		}

		status := MapErrorToStatusCode(err)
		opts := []shared.ResponseOption{shared.WithRequestID(result.RequestID)}
		if status == http.StatusUnprocessableEntity {
			opts = append(opts, shared.WithElevatedLogLevel())
		}
		shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
		return
	}

	h.logger.DebugContext(ctx, "Artifact generated",
		"request_id", result.RequestID,
		"artifact", result.Kind,
		"trace_id", shared.GetTraceID(ctx))
	shared.RespondWithJSON(w, r, http.StatusOK, respond(result.RequestID, result.Value))
}
