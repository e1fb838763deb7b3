package openai

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/phrazzld/lecture-companion/internal/config"
	"github.com/phrazzld/lecture-companion/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func completionBody(content, finishReason string) string {
	body := map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": finishReason,
			"logprobs":      nil,
			"message": map[string]any{
				"role":    "assistant",
				"content": content,
				"refusal": nil,
			},
		}},
	}
	b, _ := json.Marshal(body)
	return string(b)
}

func newTestBackend(t *testing.T, handler http.HandlerFunc) *Backend {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	backend, err := NewBackend(newTestLogger(), config.LLMConfig{
		OpenAIAPIKey:  "test-key",
		OpenAIBaseURL: server.URL,
		ModelName:     "gpt-4o-mini",
	}, server.Client())
	require.NoError(t, err)
	return backend
}

func TestNewBackendValidation(t *testing.T) {
	_, err := NewBackend(nil, config.LLMConfig{OpenAIAPIKey: "k", ModelName: "m"}, nil)
	assert.EqualError(t, err, "logger cannot be nil")

	_, err = NewBackend(newTestLogger(), config.LLMConfig{ModelName: "m"}, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewBackend(newTestLogger(), config.LLMConfig{OpenAIAPIKey: "k"}, nil)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	backend, err := NewBackend(newTestLogger(), config.LLMConfig{OpenAIAPIKey: "k", ModelName: "gpt-4o-mini"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", backend.Model())
}

func TestCompleteSuccess(t *testing.T) {
	var payload map[string]any
	var auth string

	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody("1. Main Topic/Title: Photosynthesis", "stop"))
	})

	text, err := backend.Complete(context.Background(), "Summarize these notes")

	require.NoError(t, err)
	assert.Equal(t, "1. Main Topic/Title: Photosynthesis", text)
	assert.Equal(t, "Bearer test-key", auth)
	assert.Equal(t, "gpt-4o-mini", payload["model"])

	messages, ok := payload["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	message := messages[0].(map[string]any)
	assert.Equal(t, "user", message["role"])
	assert.Equal(t, "Summarize these notes", message["content"])
}

func TestCompleteServerErrorIsNotRetried(t *testing.T) {
	var calls atomic.Int32

	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, `{"error":{"message":"overloaded","type":"server_error"}}`)
	})

	text, err := backend.Complete(context.Background(), "prompt")

	assert.Empty(t, text)
	assert.ErrorIs(t, err, generation.ErrBackend)
	assert.Contains(t, err.Error(), "status 503")
	assert.Equal(t, int32(1), calls.Load())
}

func TestCompleteContentFilter(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completionBody("", "content_filter"))
	})

	_, err := backend.Complete(context.Background(), "prompt")

	assert.ErrorIs(t, err, generation.ErrContentBlocked)
	assert.ErrorIs(t, err, generation.ErrBackend)
}

func TestCompleteNoChoices(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[]}`)
	})

	_, err := backend.Complete(context.Background(), "prompt")

	assert.ErrorIs(t, err, generation.ErrBackend)
}
