package generation

import (
	"context"
)

// Backend defines the boundary between the pipeline and an external
// generative-text model.
type Backend interface {
	// Complete sends prompt to the configured model and returns its raw text
	// output. Any transport, auth or quota failure is returned wrapped in
	// ErrBackend. Implementations make exactly one attempt and never cache.
	Complete(ctx context.Context, prompt string) (string, error)

	// Model returns the identifier of the model requests are sent to.
	Model() string
}
