// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrEmptyNotes is returned when notes text is empty or whitespace-only.
	ErrEmptyNotes = errors.New("notes text cannot be empty")

	// ErrUnknownArtifactKind is returned when an artifact kind is not one of
	// summary, quiz or flashcards.
	ErrUnknownArtifactKind = errors.New("unknown artifact kind")

	// ErrOptionOutOfRange is returned when an option index does not address
	// one of a question's options.
	ErrOptionOutOfRange = errors.New("option index out of range")
)
