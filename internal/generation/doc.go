// Package generation turns lecture notes into study artifacts by way of an
// external generative-text model.
//
// The package owns the request pipeline and nothing else:
//
//  1. Prompt construction: BuildPrompt renders a kind-specific instruction
//     (summary, quiz, flashcards) around the user's notes.
//  2. Backend invocation: a Backend sends the prompt to a configured model
//     and returns raw text. Implementations live under internal/platform
//     (Gemini, OpenAI-compatible); tests use internal/mocks.
//  3. Extraction: an Extractor locates the JSON array inside free-form model
//     output. GreedyExtractor reproduces the first-"[" to last-"]" scan;
//     BalancedExtractor matches nested brackets.
//  4. Validation: a Validator checks the array against a JSON Schema before
//     it is decoded into domain.QuizQuestion or domain.Flashcard values.
//
// Pipeline ties the stages together and converts every failure into a
// Result value. Backend failures, unparseable payloads and shape violations
// stay distinguishable through errors.Is (ErrBackend, ErrExtraction and its
// children) even though callers that only check Result.OK see a single
// failure channel.
package generation
