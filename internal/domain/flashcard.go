package domain

// Flashcard pairs a key term from the notes with its definition.
type Flashcard struct {
	Term       string `json:"term" yaml:"term"`
	Definition string `json:"definition" yaml:"definition"`
}
