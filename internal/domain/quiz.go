package domain

import "fmt"

// QuizQuestion is a single multiple-choice question generated from notes.
// CorrectIndex is zero-based and must address one of Options.
type QuizQuestion struct {
	Question     string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correct" yaml:"correct"`
	Explanation  string   `json:"explanation" yaml:"explanation"`
}

// CheckAnswer reports whether option is the correct answer. It returns
// ErrOptionOutOfRange when option does not address one of the options, so
// callers rendering unvalidated questions never index past the slice.
func (q QuizQuestion) CheckAnswer(option int) (bool, error) {
	if option < 0 || option >= len(q.Options) {
		return false, fmt.Errorf("%w: %d not in [0,%d)", ErrOptionOutOfRange, option, len(q.Options))
	}
	return option == q.CorrectIndex, nil
}

// CorrectOption returns the text of the correct option, or false when
// CorrectIndex is out of bounds.
func (q QuizQuestion) CorrectOption() (string, bool) {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return "", false
	}
	return q.Options[q.CorrectIndex], true
}
