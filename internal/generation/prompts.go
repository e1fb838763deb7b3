package generation

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/phrazzld/lecture-companion/internal/domain"
)

// promptData represents the data passed to the prompt templates
type promptData struct {
	Notes         string
	QuestionCount int
	OptionCount   int
	CardCount     int
}

const summaryPrompt = `Please summarize the following lecture notes in a clear, structured format:

{{.Notes}}

Provide:
1. Main Topic/Title
2. Key Points (bullet points)
3. Important Definitions
4. Conclusion

Keep it concise but informative.`

const quizPrompt = `Based on these lecture notes, create {{.QuestionCount}} multiple choice questions with {{.OptionCount}} options each:

{{.Notes}}

IMPORTANT: Return ONLY valid JSON, no other text. "correct" is the zero-based index of the right option. Format:
[
  {
    "question": "question text",
    "options": ["A. option1", "B. option2", "C. option3", "D. option4"],
    "correct": 0,
    "explanation": "why this answer is correct"
  }
]`

const flashcardsPrompt = `Based on these lecture notes, create {{.CardCount}} flashcards with term and definition:

{{.Notes}}

IMPORTANT: Return ONLY valid JSON, no other text. Format:
[
  {
    "term": "key concept",
    "definition": "clear explanation"
  }
]`

var promptTemplates = map[domain.ArtifactKind]*template.Template{
	domain.ArtifactSummary:    template.Must(template.New("summary").Parse(summaryPrompt)),
	domain.ArtifactQuiz:       template.Must(template.New("quiz").Parse(quizPrompt)),
	domain.ArtifactFlashcards: template.Must(template.New("flashcards").Parse(flashcardsPrompt)),
}

// BuildPrompt renders the instruction sent to the backend for kind. The notes
// are embedded verbatim; checking that they are non-empty is the caller's job.
func BuildPrompt(kind domain.ArtifactKind, notes string) (string, error) {
	tmpl, ok := promptTemplates[kind]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownArtifactKind, kind)
	}

	data := promptData{
		Notes:         notes,
		QuestionCount: domain.QuizQuestionCount,
		OptionCount:   domain.QuizOptionCount,
		CardCount:     domain.FlashcardCount,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute %s prompt template: %w", kind, err)
	}
	return buf.String(), nil
}
