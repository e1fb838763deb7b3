package api

import (
	"github.com/phrazzld/lecture-companion/internal/domain"
)

// ArtifactRequest is the payload for every generation endpoint.
type ArtifactRequest struct {
	Notes string `json:"notes" validate:"required"`
}

// SummaryResponse is returned by POST /api/summary.
type SummaryResponse struct {
	RequestID string `json:"request_id" yaml:"request_id"`
	Summary   string `json:"summary" yaml:"summary"`
}

// QuizResponse is returned by POST /api/quiz.
type QuizResponse struct {
	RequestID string                `json:"request_id" yaml:"request_id"`
	Questions []domain.QuizQuestion `json:"questions" yaml:"questions"`
}

// FlashcardsResponse is returned by POST /api/flashcards.
type FlashcardsResponse struct {
	RequestID  string             `json:"request_id" yaml:"request_id"`
	Flashcards []domain.Flashcard `json:"flashcards" yaml:"flashcards"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status" yaml:"status"`
	Model  string `json:"model" yaml:"model"`
}
