// Package gemini implements generation.Backend on top of Google's Gemini API
// using the google.golang.org/genai client.
//
// The backend makes exactly one GenerateContent call per Complete and never
// retries. Responses are flattened to plain text; safety blocks on either the
// prompt or the first candidate are reported as generation.ErrContentBlocked,
// and every other failure is wrapped in generation.ErrBackend so callers can
// tell backend problems apart from extraction problems.
package gemini
