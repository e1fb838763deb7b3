package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/phrazzld/lecture-companion/internal/domain"
)

// ValidationMode controls how strictly extracted payloads are checked.
type ValidationMode string

// Validation modes.
const (
	// ValidationStrict checks every entry's shape and the exact entry count
	// (3 questions, 5 flashcards).
	ValidationStrict ValidationMode = "strict"
	// ValidationShape checks every entry's shape but accepts any non-zero count.
	ValidationShape ValidationMode = "shape"
	// ValidationOff accepts whatever parsed; callers must guard every field.
	ValidationOff ValidationMode = "off"
)

// ParseValidationMode converts a configuration value into a ValidationMode.
// An empty value selects ValidationStrict.
func ParseValidationMode(s string) (ValidationMode, error) {
	switch mode := ValidationMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return ValidationStrict, nil
	case ValidationStrict, ValidationShape, ValidationOff:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: unknown validation mode %q", ErrInvalidConfig, s)
	}
}

// Validator checks extracted payloads against a JSON Schema per artifact kind.
// A compiled Validator is safe for concurrent use.
type Validator struct {
	mode    ValidationMode
	schemas map[domain.ArtifactKind]*jsonschema.Schema
}

// NewValidator compiles the quiz and flashcard schemas for mode.
func NewValidator(mode ValidationMode) (*Validator, error) {
	v := &Validator{
		mode:    mode,
		schemas: make(map[domain.ArtifactKind]*jsonschema.Schema, 2),
	}
	if mode == ValidationOff {
		return v, nil
	}
	if mode != ValidationStrict && mode != ValidationShape {
		return nil, fmt.Errorf("%w: unknown validation mode %q", ErrInvalidConfig, mode)
	}

	for kind, doc := range schemaDocuments(mode) {
		schema, err := compileSchema(string(kind)+".json", doc)
		if err != nil {
			return nil, err
		}
		v.schemas[kind] = schema
	}
	return v, nil
}

// Mode returns the mode the validator was compiled for.
func (v *Validator) Mode() ValidationMode {
	return v.mode
}

// Validate checks payload for kind. Shape violations wrap ErrInvalidShape.
func (v *Validator) Validate(kind domain.ArtifactKind, payload json.RawMessage) error {
	schema, ok := v.schemas[kind]
	if !ok {
		return nil
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidShape, kind, err)
	}
	return nil
}

func schemaDocuments(mode ValidationMode) map[domain.ArtifactKind]map[string]any {
	str := map[string]any{"type": "string"}

	quiz := map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":     "object",
			"required": []string{"question", "options", "correct", "explanation"},
			"properties": map[string]any{
				"question": str,
				"options": map[string]any{
					"type":     "array",
					"minItems": domain.QuizOptionCount,
					"maxItems": domain.QuizOptionCount,
					"items":    str,
				},
				"correct": map[string]any{
					"type":    "integer",
					"minimum": 0,
					"maximum": domain.QuizOptionCount - 1,
				},
				"explanation": map[string]any{"type": "string"},
			},
		},
	}

	flashcards := map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":     "object",
			"required": []string{"term", "definition"},
			"properties": map[string]any{
				"term":       str,
				"definition": str,
			},
		},
	}

	if mode == ValidationStrict {
		quiz["minItems"] = domain.QuizQuestionCount
		quiz["maxItems"] = domain.QuizQuestionCount
		flashcards["minItems"] = domain.FlashcardCount
		flashcards["maxItems"] = domain.FlashcardCount
	}

	return map[domain.ArtifactKind]map[string]any{
		domain.ArtifactQuiz:       quiz,
		domain.ArtifactFlashcards: flashcards,
	}
}

func compileSchema(name string, doc map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize %s schema: %w", name, err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("failed to load %s schema: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s schema: %w", name, err)
	}
	return schema, nil
}
