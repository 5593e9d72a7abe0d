package mocktest

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/notes"
)

var paperSchema = &llm.Schema{
	Name: "mock-test-paper",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":     "object",
			"required": []any{"type", "question"},
			"properties": map[string]any{
				"type":     map[string]any{"enum": []any{"mcq", "short"}},
				"question": map[string]any{"type": "string", "minLength": 1},
				"marks":    map[string]any{"type": "integer", "minimum": 1},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
				"correct":  map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
				"keywords": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
			// An mcq item without a declared answer would decode with
			// Correct == 0 and silently make option 0 right.
			"if": map[string]any{
				"properties": map[string]any{"type": map[string]any{"const": "mcq"}},
			},
			"then": map[string]any{"required": []any{"options", "correct"}},
		},
	},
}

// Generator builds exam papers from the note buffer.
type Generator struct {
	provider llm.Provider
}

// NewGenerator creates a paper generator.
func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate produces a paper for cfg from the notes. Any failure after
// validation is an *ErrGeneration; prior state is untouched and the
// caller stays in configuration.
func (g *Generator) Generate(ctx context.Context, notesText string, cfg Config) (*Test, error) {
	if strings.TrimSpace(notesText) == "" {
		return nil, notes.ErrEmptyNotes
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, "mocktest")
	resp, err := g.provider.Complete(ctx, llm.Request{
		Prompt: buildPaperPrompt(notesText, cfg),
	})
	if err != nil {
		return nil, &ErrGeneration{Err: err}
	}

	raw, err := llm.FirstArray(resp.Text)
	if err != nil {
		return nil, &ErrGeneration{Err: err}
	}

	var questions []Question
	if err := llm.DecodeValidated(raw, paperSchema, &questions); err != nil {
		return nil, &ErrGeneration{Err: err}
	}

	return NewTest(cfg, questions), nil
}

func buildPaperPrompt(notesText string, cfg Config) string {
	mcqCount, shortCount := cfg.Split()
	return fmt.Sprintf(`Generate a comprehensive mock test based on the following study notes.

Requirements:
- Total questions: %d
- Multiple choice questions: %d
- Short answer questions: %d
- Difficulty: Mix of easy, medium, and hard questions
- Cover key topics from the notes

For multiple choice questions, format as:
{
  "type": "mcq",
  "question": "Question text?",
  "options": ["Option A", "Option B", "Option C", "Option D"],
  "correct": 1,
  "marks": 2
}

For short answer questions, format as:
{
  "type": "short",
  "question": "Question text?",
  "marks": 5,
  "keywords": ["keyword1", "keyword2", "keyword3"]
}

Study notes:
%s

Return ONLY valid JSON array with exactly %d questions.`,
		cfg.QuestionCount, mcqCount, shortCount, notesText, cfg.QuestionCount)
}
