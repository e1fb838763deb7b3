package mocks

import (
	"context"
	"strings"
	"sync"

	"github.com/phrazzld/lecture-companion/internal/generation"
)

// SampleSummaryResponse is a well-formed summary as a model would return it.
const SampleSummaryResponse = `1. Main Topic/Title: Cellular Respiration

2. Key Points:
- Glucose is broken down to release energy
- Most ATP is produced in the mitochondria

3. Important Definitions:
- ATP: the energy currency of the cell

4. Conclusion: Respiration converts food into usable energy.`

// SampleQuizResponse contains three conforming questions wrapped in prose.
const SampleQuizResponse = `Here are your questions:
[
  {"question": "Where is most ATP produced?", "options": ["A. Nucleus", "B. Mitochondria", "C. Ribosome", "D. Golgi"], "correct": 1, "explanation": "Oxidative phosphorylation happens in mitochondria."},
  {"question": "What is broken down during respiration?", "options": ["A. Glucose", "B. DNA", "C. Chlorophyll", "D. Cellulose"], "correct": 0, "explanation": "Glucose is the main fuel."},
  {"question": "What is ATP?", "options": ["A. A hormone", "B. A protein", "C. The energy currency of the cell", "D. A lipid"], "correct": 2, "explanation": "ATP stores and transfers energy."}
]
Hope this helps!`

// SampleFlashcardsResponse contains five conforming flashcards.
const SampleFlashcardsResponse = `[
  {"term": "ATP", "definition": "The energy currency of the cell"},
  {"term": "Mitochondria", "definition": "Organelle where most ATP is produced"},
  {"term": "Glycolysis", "definition": "Splitting glucose into pyruvate"},
  {"term": "Krebs cycle", "definition": "Series of reactions that oxidize acetyl-CoA"},
  {"term": "Electron transport chain", "definition": "Membrane proteins that drive ATP synthase"}
]`

// MockBackend implements generation.Backend for testing
type MockBackend struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, prompt string) (string, error)

	// Default response values
	Response  string
	Err       error
	ModelName string

	// Call tracking for verification
	CompleteCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Complete was called
		Count int

		// Prompts contains all prompts passed to Complete calls
		Prompts []string

		// Contexts contains all contexts passed to Complete calls
		Contexts []context.Context
	}
}

var _ generation.Backend = (*MockBackend)(nil)

// Complete implements the generation.Backend interface
func (m *MockBackend) Complete(ctx context.Context, prompt string) (string, error) {
	// Track call details for verification
	m.CompleteCalls.mu.Lock()
	m.CompleteCalls.Count++
	m.CompleteCalls.Prompts = append(m.CompleteCalls.Prompts, prompt)
	m.CompleteCalls.Contexts = append(m.CompleteCalls.Contexts, ctx)
	m.CompleteCalls.mu.Unlock()

	// Use custom function if provided
	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, prompt)
	}

	// Return default values
	return m.Response, m.Err
}

// Model implements the generation.Backend interface
func (m *MockBackend) Model() string {
	if m.ModelName == "" {
		return "mock-model"
	}
	return m.ModelName
}

// CallCount returns how many times Complete was called.
func (m *MockBackend) CallCount() int {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	return m.CompleteCalls.Count
}

// LastPrompt returns the most recent prompt, or an empty string.
func (m *MockBackend) LastPrompt() string {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()
	if len(m.CompleteCalls.Prompts) == 0 {
		return ""
	}
	return m.CompleteCalls.Prompts[len(m.CompleteCalls.Prompts)-1]
}

// NewMockBackendWithResponse creates a MockBackend that returns text
func NewMockBackendWithResponse(text string) *MockBackend {
	return &MockBackend{
		Response: text,
	}
}

// NewMockBackendWithError creates a MockBackend that returns the specified error
func NewMockBackendWithError(err error) *MockBackend {
	return &MockBackend{
		Err: err,
	}
}

// NewMockBackendWithSamples creates a MockBackend that answers each prompt
// with the sample response matching the artifact it asks for.
func NewMockBackendWithSamples() *MockBackend {
	return &MockBackend{
		CompleteFn: func(_ context.Context, prompt string) (string, error) {
			switch {
			case strings.Contains(prompt, "multiple choice questions"):
				return SampleQuizResponse, nil
			case strings.Contains(prompt, "flashcards"):
				return SampleFlashcardsResponse, nil
			default:
				return SampleSummaryResponse, nil
			}
		},
	}
}

// MockBackendWithContentBlocked creates a MockBackend that simulates content being blocked
func MockBackendWithContentBlocked() *MockBackend {
	return &MockBackend{
		Err: generation.ErrContentBlocked,
	}
}

// Reset resets the call tracking state
func (m *MockBackend) Reset() {
	m.CompleteCalls.mu.Lock()
	defer m.CompleteCalls.mu.Unlock()

	m.CompleteCalls.Count = 0
	m.CompleteCalls.Prompts = nil
	m.CompleteCalls.Contexts = nil
}
