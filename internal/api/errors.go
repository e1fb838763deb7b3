package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/phrazzld/lecture-companion/internal/domain"
	"github.com/phrazzld/lecture-companion/internal/generation"
)

// MapErrorToStatusCode maps pipeline errors to HTTP status codes. Order
// matters: a timed-out backend call is also an ErrBackend, and a safety
// block is both ErrContentBlocked and ErrBackend.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, generation.ErrEmptyInput),
		errors.Is(err, domain.ErrUnknownArtifactKind):
		return http.StatusBadRequest

	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout

	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	case errors.Is(err, generation.ErrBackend),
		errors.Is(err, generation.ErrExtraction):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err that never
// includes backend diagnostics.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, generation.ErrEmptyInput):
		return "Notes cannot be empty"

	case errors.Is(err, domain.ErrUnknownArtifactKind):
		return "Unknown artifact kind"

	case errors.Is(err, context.DeadlineExceeded):
		return "Timed out waiting for the language model"

	case errors.Is(err, generation.ErrContentBlocked):
		return "The language model declined to process these notes"

	case errors.Is(err, generation.ErrBackend):
		return "Could not get a response from the language model"

	case errors.Is(err, generation.ErrExtraction):
		return "The language model response could not be understood"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a request validation failure into a
// message naming the first offending JSON field, e.g. "Invalid notes:
// required field". Anything else becomes "Validation error".
func SanitizeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return "Validation error"
	}

	fe := fieldErrs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), validationTagMessage(fe.Tag()))
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	default:
		return "validation failed"
	}
}
