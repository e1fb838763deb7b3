package domain

import (
	"fmt"
	"strings"
)

// ArtifactKind identifies one of the study artifacts generated from notes.
type ArtifactKind string

// Artifact kinds.
const (
	ArtifactSummary    ArtifactKind = "summary"
	ArtifactQuiz       ArtifactKind = "quiz"
	ArtifactFlashcards ArtifactKind = "flashcards"
)

// Conforming result sizes requested from the backend.
const (
	QuizQuestionCount = 3
	QuizOptionCount   = 4
	FlashcardCount    = 5
)

// AllArtifactKinds lists every kind in display order.
func AllArtifactKinds() []ArtifactKind {
	return []ArtifactKind{ArtifactSummary, ArtifactQuiz, ArtifactFlashcards}
}

// String implements fmt.Stringer.
func (k ArtifactKind) String() string {
	return string(k)
}

// Valid reports whether k is a known kind.
func (k ArtifactKind) Valid() bool {
	switch k {
	case ArtifactSummary, ArtifactQuiz, ArtifactFlashcards:
		return true
	default:
		return false
	}
}

// Structured reports whether the backend is asked for a JSON payload for
// this kind (as opposed to free-form text).
func (k ArtifactKind) Structured() bool {
	return k == ArtifactQuiz || k == ArtifactFlashcards
}

// ParseArtifactKind converts a case-insensitive name into an ArtifactKind.
func ParseArtifactKind(s string) (ArtifactKind, error) {
	k := ArtifactKind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownArtifactKind, s)
	}
	return k, nil
}

// ValidateNotes returns ErrEmptyNotes when notes contain nothing but
// whitespace. Notes are otherwise opaque and have no length limit.
func ValidateNotes(notes string) error {
	if strings.TrimSpace(notes) == "" {
		return ErrEmptyNotes
	}
	return nil
}
