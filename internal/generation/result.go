package generation

import (
	"github.com/phrazzld/lecture-companion/internal/domain"
	"github.com/phrazzld/lecture-companion/internal/redact"
)

// SummaryFailureMessage is shown in place of a summary when the backend
// could not produce one.
const SummaryFailureMessage = "Error: Could not generate summary. Please check your API key and try again."

// Result is the outcome of one pipeline request: either a typed value or a
// failure. There is no partial success; when Err is set, Value is the zero
// value (or SummaryFailureMessage for summaries that reached the backend).
type Result[T any] struct {
	Kind      domain.ArtifactKind
	RequestID string
	Value     T
	Err       error
}

// OK reports whether the request succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Diagnostic returns a human-readable description of the failure with
// credentials and paths redacted, or an empty string on success.
func (r Result[T]) Diagnostic() string {
	return redact.Error(r.Err)
}
