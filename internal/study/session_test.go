package study_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/lecture-companion/internal/domain"
	"github.com/phrazzld/lecture-companion/internal/generation"
	"github.com/phrazzld/lecture-companion/internal/mocks"
	"github.com/phrazzld/lecture-companion/internal/study"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notes = "Cellular respiration breaks down glucose. Mitochondria produce most ATP."

func newSession(t *testing.T, backend *mocks.MockBackend) *study.Session {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pipeline, err := generation.NewPipeline(backend, logger)
	require.NoError(t, err)
	session, err := study.NewSession(pipeline, logger)
	require.NoError(t, err)
	return session
}

func TestNewSessionRequiresRequester(t *testing.T) {
	_, err := study.NewSession(nil, nil)
	assert.Error(t, err)
}

func TestGenerateSummary(t *testing.T) {
	t.Run("empty notes rejected before any request", func(t *testing.T) {
		backend := mocks.NewMockBackendWithSamples()
		session := newSession(t, backend)
		session.SetNotes("")

		err := session.GenerateSummary(context.Background())

		assert.ErrorIs(t, err, generation.ErrEmptyInput)
		assert.Equal(t, 0, backend.CallCount())
		assert.False(t, session.Loading())
		assert.False(t, session.HasOutput())
	})

	t.Run("success shows summary tab", func(t *testing.T) {
		session := newSession(t, mocks.NewMockBackendWithSamples())
		session.SetNotes(notes)
		require.NoError(t, session.SelectTab(domain.ArtifactQuiz))

		require.NoError(t, session.GenerateSummary(context.Background()))

		view := session.View()
		assert.Equal(t, mocks.SampleSummaryResponse, view.Summary)
		assert.Equal(t, domain.ArtifactSummary, view.Tab)
		assert.True(t, session.HasOutput())
	})

	t.Run("failure shows placeholder", func(t *testing.T) {
		session := newSession(t, mocks.NewMockBackendWithError(errors.New("quota exceeded")))
		session.SetNotes(notes)

		err := session.GenerateSummary(context.Background())

		assert.ErrorIs(t, err, generation.ErrBackend)
		assert.Equal(t, generation.SummaryFailureMessage, session.View().Summary)
		assert.False(t, session.Loading())
	})
}

func TestGenerateQuiz(t *testing.T) {
	t.Run("success resets answers", func(t *testing.T) {
		session := newSession(t, mocks.NewMockBackendWithSamples())
		session.SetNotes(notes)
		require.NoError(t, session.GenerateQuiz(context.Background()))
		_, err := session.SelectAnswer(0, 2)
		require.NoError(t, err)

		require.NoError(t, session.GenerateQuiz(context.Background()))

		view := session.View()
		assert.Len(t, view.Quiz, domain.QuizQuestionCount)
		assert.Empty(t, view.Answers)
		assert.Equal(t, domain.ArtifactQuiz, view.Tab)
	})

	t.Run("refusal keeps previous quiz", func(t *testing.T) {
		backend := mocks.NewMockBackendWithSamples()
		session := newSession(t, backend)
		session.SetNotes(notes)
		require.NoError(t, session.GenerateQuiz(context.Background()))
		before := session.View().Quiz

		backend.CompleteFn = func(context.Context, string) (string, error) {
			return "I cannot help with that.", nil
		}
		err := session.GenerateQuiz(context.Background())

		assert.ErrorIs(t, err, generation.ErrNoPayload)
		assert.Equal(t, before, session.View().Quiz)
		assert.False(t, session.Loading())
	})

	t.Run("refusal with no previous quiz leaves it empty", func(t *testing.T) {
		session := newSession(t, mocks.NewMockBackendWithResponse("I cannot help with that."))
		session.SetNotes(notes)

		err := session.GenerateQuiz(context.Background())

		assert.ErrorIs(t, err, generation.ErrExtraction)
		assert.Empty(t, session.View().Quiz)
		assert.False(t, session.HasOutput())
	})
}

func TestSelectAnswer(t *testing.T) {
	session := newSession(t, mocks.NewMockBackendWithSamples())
	session.SetNotes(notes)
	require.NoError(t, session.GenerateQuiz(context.Background()))

	feedback, err := session.SelectAnswer(0, 1)
	require.NoError(t, err)
	assert.True(t, feedback.Correct)
	assert.Equal(t, "B. Mitochondria", feedback.CorrectOption)
	assert.Equal(t, "Oxidative phosphorylation happens in mitochondria.", feedback.Explanation)

	feedback, err = session.SelectAnswer(0, 3)
	require.NoError(t, err)
	assert.False(t, feedback.Correct)
	assert.Equal(t, 1, feedback.CorrectIndex)
	assert.Equal(t, map[int]int{0: 3}, session.View().Answers)

	_, err = session.SelectAnswer(3, 0)
	assert.ErrorIs(t, err, study.ErrQuestionOutOfRange)

	_, err = session.SelectAnswer(1, 4)
	assert.ErrorIs(t, err, domain.ErrOptionOutOfRange)
	assert.NotContains(t, session.View().Answers, 1)
}

func TestFlashcardNavigation(t *testing.T) {
	session := newSession(t, mocks.NewMockBackendWithSamples())
	session.SetNotes(notes)
	require.NoError(t, session.GenerateFlashcards(context.Background()))

	card, index, ok := session.CurrentCard()
	require.True(t, ok)
	assert.Equal(t, 0, index)
	assert.Equal(t, "ATP", card.Term)

	// Previous on the first card is a no-op.
	assert.False(t, session.PrevCard())
	_, index, _ = session.CurrentCard()
	assert.Equal(t, 0, index)

	assert.True(t, session.Flip())
	assert.True(t, session.NextCard())
	assert.False(t, session.View().Flipped, "moving shows the front of the next card")

	for session.NextCard() {
	}
	_, index, _ = session.CurrentCard()
	assert.Equal(t, domain.FlashcardCount-1, index)

	// Next on the last card is a no-op and keeps the card flipped.
	assert.True(t, session.Flip())
	assert.False(t, session.NextCard())
	view := session.View()
	assert.Equal(t, domain.FlashcardCount-1, view.Card)
	assert.True(t, view.Flipped)

	assert.False(t, session.Flip())
}

func TestFlashcardNavigationWithoutCards(t *testing.T) {
	session := newSession(t, mocks.NewMockBackendWithSamples())

	assert.False(t, session.NextCard())
	assert.False(t, session.PrevCard())
	assert.False(t, session.Flip())
	_, _, ok := session.CurrentCard()
	assert.False(t, ok)
}

func TestSelectTab(t *testing.T) {
	session := newSession(t, mocks.NewMockBackendWithSamples())

	require.NoError(t, session.SelectTab(domain.ArtifactFlashcards))
	assert.Equal(t, domain.ArtifactFlashcards, session.View().Tab)

	err := session.SelectTab(domain.ArtifactKind("essay"))
	assert.ErrorIs(t, err, domain.ErrUnknownArtifactKind)
	assert.Equal(t, domain.ArtifactFlashcards, session.View().Tab)
}

func TestGenerateDispatch(t *testing.T) {
	session := newSession(t, mocks.NewMockBackendWithSamples())
	session.SetNotes(notes)

	for _, kind := range domain.AllArtifactKinds() {
		require.NoError(t, session.Generate(context.Background(), kind))
	}
	view := session.View()
	assert.NotEmpty(t, view.Summary)
	assert.Len(t, view.Quiz, domain.QuizQuestionCount)
	assert.Len(t, view.Flashcards, domain.FlashcardCount)

	assert.ErrorIs(t, session.Generate(context.Background(), "essay"), domain.ErrUnknownArtifactKind)
}

func TestClearAll(t *testing.T) {
	session := newSession(t, mocks.NewMockBackendWithSamples())
	session.SetNotes(notes)
	require.NoError(t, session.GenerateSummary(context.Background()))
	require.NoError(t, session.GenerateFlashcards(context.Background()))
	session.NextCard()

	session.ClearAll()

	view := session.View()
	assert.False(t, session.HasOutput())
	assert.Empty(t, view.Notes)
	assert.Equal(t, 0, view.Card)
	assert.Equal(t, domain.ArtifactSummary, view.Tab)
}

func TestGenerateWhileLoading(t *testing.T) {
	release := make(chan struct{})
	backend := mocks.NewMockBackendWithSamples()
	samples := backend.CompleteFn
	backend.CompleteFn = func(ctx context.Context, prompt string) (string, error) {
		<-release
		return samples(ctx, prompt)
	}
	session := newSession(t, backend)
	session.SetNotes(notes)

	var wg sync.WaitGroup
	var quizErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		quizErr = session.GenerateQuiz(context.Background())
	}()

	assert.Eventually(t, session.Loading, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, session.GenerateSummary(context.Background()), study.ErrBusy)

	// Clearing while the quiz is in flight drops its result.
	session.ClearAll()
	close(release)
	wg.Wait()

	require.NoError(t, quizErr)
	assert.False(t, session.Loading())
	assert.Empty(t, session.View().Quiz)
	assert.Equal(t, 1, backend.CallCount())
}

// panickingRequester fails every request by panicking, the way a broken
// Requester implementation might.
type panickingRequester struct{}

func (panickingRequester) RequestSummary(context.Context, string) generation.Result[string] {
	panic("summary exploded")
}

func (panickingRequester) RequestQuiz(context.Context, string) generation.Result[[]domain.QuizQuestion] {
	panic("quiz exploded")
}

func (panickingRequester) RequestFlashcards(context.Context, string) generation.Result[[]domain.Flashcard] {
	panic("flashcards exploded")
}

func TestGeneratePanickingRequester(t *testing.T) {
	session, err := study.NewSession(panickingRequester{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	session.SetNotes(notes)

	for _, kind := range domain.AllArtifactKinds() {
		err := session.Generate(context.Background(), kind)

		assert.ErrorIs(t, err, generation.ErrGenerationFailed, kind)
		assert.NotErrorIs(t, err, study.ErrBusy, kind)
		assert.False(t, session.Loading(), kind)
	}

	view := session.View()
	assert.Equal(t, generation.SummaryFailureMessage, view.Summary)
	assert.Empty(t, view.Quiz)
	assert.Empty(t, view.Flashcards)
}
