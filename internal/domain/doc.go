// Package domain contains the core entities of the lecture companion: the
// artifact kinds a user can request from their notes, and the typed shapes
// (quiz questions, flashcards) the generation pipeline produces. It has no
// knowledge of prompts, backends, or how results are rendered.
package domain
