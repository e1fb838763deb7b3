package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/lecture-companion/internal/domain"
	"github.com/phrazzld/lecture-companion/internal/generation"
	"github.com/phrazzld/lecture-companion/internal/redact"
)

var (
	// ErrBusy is returned when a generation is requested while another one
	// is still in flight.
	ErrBusy = errors.New("a generation request is already in progress")

	// ErrQuestionOutOfRange is returned when an answer is selected for a
	// question the current quiz does not have.
	ErrQuestionOutOfRange = errors.New("question index out of range")
)

// Requester produces artifacts from notes. *generation.Pipeline satisfies it.
type Requester interface {
	RequestSummary(ctx context.Context, notes string) generation.Result[string]
	RequestQuiz(ctx context.Context, notes string) generation.Result[[]domain.QuizQuestion]
	RequestFlashcards(ctx context.Context, notes string) generation.Result[[]domain.Flashcard]
}

// Feedback describes the outcome of selecting a quiz answer.
type Feedback struct {
	Correct       bool
	Selected      int
	CorrectIndex  int
	CorrectOption string
	Explanation   string
}

// View is a point-in-time copy of a Session for rendering.
type View struct {
	Notes      string
	Summary    string
	Quiz       []domain.QuizQuestion
	Flashcards []domain.Flashcard
	Tab        domain.ArtifactKind
	Answers    map[int]int
	Card       int
	Flipped    bool
	Loading    bool
}

// Session is the state of one study session. It is safe for concurrent use;
// at most one generation runs at a time.
type Session struct {
	requester Requester
	logger    *slog.Logger

	mu      sync.Mutex
	notes   string
	summary string
	quiz    []domain.QuizQuestion
	cards   []domain.Flashcard
	tab     domain.ArtifactKind
	answers map[int]int
	card    int
	flipped bool
	loading bool

	// epoch is bumped by ClearAll so results of requests started before the
	// clear are discarded.
	epoch int
}

// NewSession creates an empty Session that generates through requester.
func NewSession(requester Requester, logger *slog.Logger) (*Session, error) {
	if requester == nil {
		return nil, errors.New("requester cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		requester: requester,
		logger:    logger.With("component", "study_session"),
		tab:       domain.ArtifactSummary,
		answers:   make(map[int]int),
	}, nil
}

// SetNotes replaces the notes text. Existing artifacts are kept until they
// are regenerated.
func (s *Session) SetNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
}

// begin validates the notes and marks the session as loading, returning the
// notes and epoch the request runs against.
func (s *Session) begin(kind domain.ArtifactKind) (string, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return "", 0, ErrBusy
	}
	if err := domain.ValidateNotes(s.notes); err != nil {
		return "", 0, fmt.Errorf("%w: nothing to generate a %s from", generation.ErrEmptyInput, kind)
	}
	s.loading = true
	return s.notes, s.epoch, nil
}

// finish applies the result through apply when the session has not been
// cleared in the meantime.
func (s *Session) finish(epoch int, apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if epoch != s.epoch {
		s.logger.Debug("Discarding result of request started before clear")
		return
	}
	apply()
}

// end is deferred by every generation started with begin. It clears the
// loading flag even when the Requester panics, and reports the panic through
// err as generation.ErrGenerationFailed.
func (s *Session) end(kind domain.ArtifactKind, epoch int, err *error) {
	r := recover()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if r == nil {
		return
	}
	s.logger.Error("Recovered from panic during generation", "artifact", kind, "panic", fmt.Sprint(r))
	*err = fmt.Errorf("%w: %v", generation.ErrGenerationFailed, r)
	if kind == domain.ArtifactSummary && epoch == s.epoch {
		s.summary = generation.SummaryFailureMessage
		s.tab = domain.ArtifactSummary
	}
}

// GenerateSummary requests a summary of the current notes and switches to the
// summary tab. On failure the summary shows generation.SummaryFailureMessage
// and the error is returned.
func (s *Session) GenerateSummary(ctx context.Context) (err error) {
	notes, epoch, err := s.begin(domain.ArtifactSummary)
	if err != nil {
		return err
	}
	defer s.end(domain.ArtifactSummary, epoch, &err)

	result := s.requester.RequestSummary(ctx, notes)
	s.finish(epoch, func() {
		s.summary = result.Value
		if !result.OK() && s.summary == "" {
			s.summary = generation.SummaryFailureMessage
		}
		s.tab = domain.ArtifactSummary
	})
	return s.outcome(result.Kind, result.RequestID, result.Err)
}

// GenerateQuiz requests a quiz for the current notes. On success the quiz
// replaces the previous one, chosen answers are reset and the quiz tab is
// shown. On failure the previous quiz, if any, is left in place.
func (s *Session) GenerateQuiz(ctx context.Context) (err error) {
	notes, epoch, err := s.begin(domain.ArtifactQuiz)
	if err != nil {
		return err
	}
	defer s.end(domain.ArtifactQuiz, epoch, &err)

	result := s.requester.RequestQuiz(ctx, notes)
	s.finish(epoch, func() {
		if !result.OK() {
			return
		}
		s.quiz = result.Value
		s.answers = make(map[int]int)
		s.tab = domain.ArtifactQuiz
	})
	return s.outcome(result.Kind, result.RequestID, result.Err)
}

// GenerateFlashcards requests flashcards for the current notes. On success
// the deck replaces the previous one, the first card is shown face up and the
// flashcards tab is selected. On failure the previous deck is left in place.
func (s *Session) GenerateFlashcards(ctx context.Context) (err error) {
	notes, epoch, err := s.begin(domain.ArtifactFlashcards)
	if err != nil {
		return err
	}
	defer s.end(domain.ArtifactFlashcards, epoch, &err)

	result := s.requester.RequestFlashcards(ctx, notes)
	s.finish(epoch, func() {
		if !result.OK() {
			return
		}
		s.cards = result.Value
		s.card = 0
		s.flipped = false
		s.tab = domain.ArtifactFlashcards
	})
	return s.outcome(result.Kind, result.RequestID, result.Err)
}

func (s *Session) outcome(kind domain.ArtifactKind, requestID string, err error) error {
	if err != nil {
		s.logger.Warn("Generation failed",
			"artifact", kind,
			"request_id", requestID,
			"error", redact.Error(err))
		return err
	}
	s.logger.Debug("Generation succeeded", "artifact", kind, "request_id", requestID)
	return nil
}

// Generate dispatches to the generator for kind.
func (s *Session) Generate(ctx context.Context, kind domain.ArtifactKind) error {
	switch kind {
	case domain.ArtifactSummary:
		return s.GenerateSummary(ctx)
	case domain.ArtifactQuiz:
		return s.GenerateQuiz(ctx)
	case domain.ArtifactFlashcards:
		return s.GenerateFlashcards(ctx)
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownArtifactKind, kind)
	}
}

// SelectTab switches the active tab.
func (s *Session) SelectTab(kind domain.ArtifactKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownArtifactKind, kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tab = kind
	return nil
}

// SelectAnswer records option as the answer to question and reports whether
// it is correct. Selecting again replaces the earlier answer.
func (s *Session) SelectAnswer(question, option int) (Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if question < 0 || question >= len(s.quiz) {
		return Feedback{}, fmt.Errorf("%w: %d not in [0,%d)", ErrQuestionOutOfRange, question, len(s.quiz))
	}
	q := s.quiz[question]
	correct, err := q.CheckAnswer(option)
	if err != nil {
		return Feedback{}, err
	}
	s.answers[question] = option

	text, _ := q.CorrectOption()
	return Feedback{
		Correct:       correct,
		Selected:      option,
		CorrectIndex:  q.CorrectIndex,
		CorrectOption: text,
		Explanation:   q.Explanation,
	}, nil
}

// NextCard advances to the next flashcard and shows its front. It reports
// false and changes nothing on the last card.
func (s *Session) NextCard() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.card >= len(s.cards)-1 {
		return false
	}
	s.card++
	s.flipped = false
	return true
}

// PrevCard moves back to the previous flashcard and shows its front. It
// reports false and changes nothing on the first card.
func (s *Session) PrevCard() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.card <= 0 {
		return false
	}
	s.card--
	s.flipped = false
	return true
}

// Flip turns the current flashcard over and returns whether the definition
// is now showing. With no flashcards it does nothing.
func (s *Session) Flip() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cards) == 0 {
		return false
	}
	s.flipped = !s.flipped
	return s.flipped
}

// CurrentCard returns the flashcard being shown and its index.
func (s *Session) CurrentCard() (domain.Flashcard, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cards) == 0 {
		return domain.Flashcard{}, 0, false
	}
	return s.cards[s.card], s.card, true
}

// ClearAll empties the notes and every artifact and returns to the summary
// tab. A request still in flight completes but its result is dropped.
func (s *Session) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = ""
	s.summary = ""
	s.quiz = nil
	s.cards = nil
	s.answers = make(map[int]int)
	s.card = 0
	s.flipped = false
	s.tab = domain.ArtifactSummary
	s.epoch++
}

// HasOutput reports whether any artifact has been generated.
func (s *Session) HasOutput() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary != "" || len(s.quiz) > 0 || len(s.cards) > 0
}

// Loading reports whether a generation is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// View returns a copy of the session state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make(map[int]int, len(s.answers))
	for q, o := range s.answers {
		answers[q] = o
	}
	return View{
		Notes:      s.notes,
		Summary:    s.summary,
		Quiz:       append([]domain.QuizQuestion(nil), s.quiz...),
		Flashcards: append([]domain.Flashcard(nil), s.cards...),
		Tab:        s.tab,
		Answers:    answers,
		Card:       s.card,
		Flipped:    s.flipped,
		Loading:    s.loading,
	}
}
