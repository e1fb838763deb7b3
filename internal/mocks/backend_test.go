package mocks_test

import (
	"context"
	"testing"

	"github.com/phrazzld/lecture-companion/internal/generation"
	"github.com/phrazzld/lecture-companion/internal/mocks"
	"github.com/stretchr/testify/assert"
)

func TestMockBackend(t *testing.T) {
	t.Parallel()

	t.Run("Default response", func(t *testing.T) {
		t.Parallel()

		backend := mocks.NewMockBackendWithResponse("hello")
		text, err := backend.Complete(context.Background(), "prompt one")

		assert.NoError(t, err)
		assert.Equal(t, "hello", text)
		assert.Equal(t, 1, backend.CallCount(), "Complete should be called once")
		assert.Equal(t, "prompt one", backend.LastPrompt())
		assert.Equal(t, "mock-model", backend.Model())
	})

	t.Run("Error case", func(t *testing.T) {
		t.Parallel()

		backend := mocks.MockBackendWithContentBlocked()
		text, err := backend.Complete(context.Background(), "prompt")

		assert.ErrorIs(t, err, generation.ErrContentBlocked)
		assert.Empty(t, text)
	})

	t.Run("Samples by prompt", func(t *testing.T) {
		t.Parallel()

		backend := mocks.NewMockBackendWithSamples()
		ctx := context.Background()

		for kind, expected := range map[string]string{
			"create 3 multiple choice questions": mocks.SampleQuizResponse,
			"create 5 flashcards":                mocks.SampleFlashcardsResponse,
			"Please summarize":                   mocks.SampleSummaryResponse,
		} {
			text, err := backend.Complete(ctx, kind)
			assert.NoError(t, err)
			assert.Equal(t, expected, text)
		}
		assert.Equal(t, 3, backend.CallCount())
	})

	t.Run("Reset", func(t *testing.T) {
		t.Parallel()

		backend := mocks.NewMockBackendWithResponse("x")
		_, _ = backend.Complete(context.Background(), "p")
		backend.Reset()

		assert.Equal(t, 0, backend.CallCount())
		assert.Empty(t, backend.LastPrompt())
	})
}
