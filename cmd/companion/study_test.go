package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/lecture-companion/internal/mocks"
	"github.com/phrazzld/lecture-companion/internal/study"
)

func runScript(t *testing.T, backend *mocks.MockBackend, script ...string) string {
	t.Helper()
	app := newTestApp(t, backend)
	session, err := study.NewSession(app.pipeline, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	require.NoError(t, runStudy(context.Background(), session, in, &out))
	return out.String()
}

func TestStudyQuiz(t *testing.T) {
	out := runScript(t, mocks.NewMockBackendWithSamples(),
		"notes",
		testNotes,
		".",
		"quiz",
		"answer 1 B",
		"answer 2 3",
		"answer 4 1",
		"quit",
	)

	assert.Contains(t, out, "Notes saved (1 lines).")
	assert.Contains(t, out, "Q1. Where is most ATP produced?")
	assert.Contains(t, out, "Correct!")
	assert.Contains(t, out, "Incorrect. The correct answer is: A. Glucose")
	assert.Contains(t, out, "Error: there is no question 4")
}

func TestStudyFlashcards(t *testing.T) {
	out := runScript(t, mocks.NewMockBackendWithSamples(),
		"notes",
		testNotes,
		".",
		"flashcards",
		"prev",
		"flip",
		"next",
	)

	assert.Contains(t, out, "Card 1/5\n  Term: ATP")
	assert.Contains(t, out, "No more cards in that direction.")
	assert.Contains(t, out, "  Definition: The energy currency of the cell")
	assert.Contains(t, out, "Card 2/5\n  Term: Mitochondria")
}

func TestStudyEmptyNotes(t *testing.T) {
	backend := mocks.NewMockBackendWithSamples()
	out := runScript(t, backend, "summary", "show quiz", "show essay")

	assert.Contains(t, out, "Error: Notes cannot be empty")
	assert.Contains(t, out, "No quiz yet.")
	assert.Contains(t, out, `Error: unknown tab "essay"`)
	assert.Equal(t, 0, backend.CallCount())
}

func TestStudyFailedQuizKeepsPrevious(t *testing.T) {
	backend := mocks.NewMockBackendWithSamples()
	app := newTestApp(t, backend)
	session, err := study.NewSession(app.pipeline, nil)
	require.NoError(t, err)
	session.SetNotes(testNotes)
	require.NoError(t, session.GenerateQuiz(context.Background()))

	backend.CompleteFn = func(context.Context, string) (string, error) {
		return "I cannot help with that.", nil
	}
	var out bytes.Buffer
	require.NoError(t, runStudy(context.Background(), session, strings.NewReader("quiz\nshow\n"), &out))

	assert.Contains(t, out.String(), "Error: The language model response could not be understood")
	assert.Contains(t, out.String(), "Q1. Where is most ATP produced?")
}

func TestStudyLongNotesLine(t *testing.T) {
	backend := mocks.NewMockBackendWithSamples()
	long := strings.Repeat("a", 2<<20) + " TAIL-OF-LECTURE"

	out := runScript(t, backend, "notes", long, ".", "summary", "quit")

	assert.Contains(t, out, "Notes saved (1 lines).")
	assert.Contains(t, out, "Cellular Respiration")
	assert.Contains(t, backend.LastPrompt(), long)
}

func TestLineReader(t *testing.T) {
	r := newLineReader(strings.NewReader("first\r\nsecond\nlast"))

	var lines []string
	for r.Scan() {
		lines = append(lines, r.Text())
	}

	assert.Equal(t, []string{"first", "second", "last"}, lines)
	assert.NoError(t, r.Err())
	assert.False(t, r.Scan())
}

func TestParseOption(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 0, true},
		{"4", 3, true},
		{"b", 1, true},
		{"D", 3, true},
		{"??", 0, false},
	}
	for _, tt := range tests {
		got, ok := parseOption(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}
