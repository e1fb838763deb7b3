package generation

import (
	"errors"
	"fmt"

	"github.com/phrazzld/lecture-companion/internal/domain"
)

// Common errors returned by the generation package
var (
	// ErrEmptyInput is returned when notes are empty or whitespace-only.
	// The request is rejected before any backend call is made.
	ErrEmptyInput = domain.ErrEmptyNotes

	// ErrBackend is returned when the generative backend cannot be reached or
	// rejects the request (network, auth, quota, safety).
	ErrBackend = errors.New("generative backend request failed")

	// ErrContentBlocked is returned alongside ErrBackend when the model refuses
	// to answer because of its safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrEmptyResponse is returned when the backend answered with no text.
	ErrEmptyResponse = fmt.Errorf("%w: empty response text", ErrBackend)

	// ErrExtraction is the parent of every failure to turn backend text into
	// a structured payload.
	ErrExtraction = errors.New("could not extract structured payload from response")

	// ErrNoPayload is returned when the response contains no "[...]" span.
	ErrNoPayload = fmt.Errorf("%w: no JSON array found", ErrExtraction)

	// ErrMalformedPayload is returned when a "[...]" span exists but is not
	// valid JSON.
	ErrMalformedPayload = fmt.Errorf("%w: JSON array is malformed", ErrExtraction)

	// ErrInvalidShape is returned when the parsed array does not match the
	// expected quiz or flashcard shape.
	ErrInvalidShape = fmt.Errorf("%w: payload does not match expected shape", ErrExtraction)

	// ErrInvalidConfig is returned when a backend or pipeline is configured
	// incorrectly.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrGenerationFailed is returned for unexpected failures inside the
	// pipeline itself.
	ErrGenerationFailed = errors.New("failed to generate artifact from notes")
)
