// Package study holds the interactive state of a study session: the notes
// being studied, the artifacts generated from them, and what the student is
// looking at (active tab, chosen quiz answers, current flashcard and whether
// it is flipped).
//
// Session drives a Requester for generation and never exposes its own state
// to it. Rendering is left to the caller; cmd/companion renders a Session in
// the terminal.
package study
