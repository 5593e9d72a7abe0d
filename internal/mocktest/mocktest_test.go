package mocktest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/notes"
)

func TestConfig_Split(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantMCQ   int
		wantShort int
	}{
		{"both types, 10 questions", Config{QuestionCount: 10, MCQ: true, Short: true}, 7, 3},
		{"both types, 5 questions", Config{QuestionCount: 5, MCQ: true, Short: true}, 4, 1},
		{"short only", Config{QuestionCount: 10, Short: true}, 0, 10},
		{"mcq only", Config{QuestionCount: 10, MCQ: true}, 7, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mcq, short := tt.cfg.Split()
			if mcq != tt.wantMCQ || short != tt.wantShort {
				t.Errorf("Split() = (%d, %d), want (%d, %d)", mcq, short, tt.wantMCQ, tt.wantShort)
			}
		})
	}
}

func TestConfig_NormalizeAndValidate(t *testing.T) {
	cfg := Config{DurationMins: 60, QuestionCount: 50, MCQ: true}
	cfg.Normalize()
	if cfg.QuestionCount != MaxQuestions {
		t.Errorf("count not clamped down: %d", cfg.QuestionCount)
	}

	cfg.QuestionCount = 2
	cfg.Normalize()
	if cfg.QuestionCount != MinQuestions {
		t.Errorf("count not clamped up: %d", cfg.QuestionCount)
	}

	if err := (Config{DurationMins: 60}).Validate(); err == nil {
		t.Error("empty type set must not validate")
	}
	if err := (Config{DurationMins: 45, MCQ: true}).Validate(); err == nil {
		t.Error("off-menu duration must not validate")
	}
	if err := (Config{DurationMins: 120, Short: true}).Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestQuestion_MaxMarks(t *testing.T) {
	if got := (&Question{Type: TypeMCQ}).MaxMarks(); got != 2 {
		t.Errorf("mcq default marks = %d, want 2", got)
	}
	if got := (&Question{Type: TypeShort}).MaxMarks(); got != 5 {
		t.Errorf("short default marks = %d, want 5", got)
	}
	if got := (&Question{Type: TypeShort, Marks: 3}).MaxMarks(); got != 3 {
		t.Errorf("explicit marks ignored: %d", got)
	}
}

const paperReply = `[
  {"type": "mcq", "question": "Pick B", "options": ["A", "B", "C", "D"], "correct": 1, "marks": 2},
  {"type": "short", "question": "Describe mitosis", "marks": 5, "keywords": ["mitosis", "anaphase"]}
]`

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Here you go:\n" + paperReply})
	gen := NewGenerator(mock)

	test, err := gen.Generate(context.Background(), "cell division notes", Config{
		DurationMins: 30, QuestionCount: 5, MCQ: true, Short: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(test.Questions) != 2 {
		t.Fatalf("got %d questions", len(test.Questions))
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected one provider call, got %d", mock.CallCount())
	}
	if !strings.Contains(mock.Calls[0].Prompt, "Multiple choice questions: 4") {
		t.Error("mcq split missing from prompt")
	}
	if !strings.Contains(mock.Calls[0].Prompt, "Short answer questions: 1") {
		t.Error("short split missing from prompt")
	}
}

func TestGenerate_EmptyNotes(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := NewGenerator(mock).Generate(context.Background(), " ", DefaultConfig())
	if !errors.Is(err, notes.ErrEmptyNotes) {
		t.Fatalf("expected ErrEmptyNotes, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Error("empty notes must not reach the provider")
	}
}

func TestGenerate_NoFallback(t *testing.T) {
	for _, resp := range []llm.MockResponse{
		{Err: errors.New("upstream down")},
		{Text: "I'd be happy to help but cannot."},
		{Text: `[{"type": "essay", "question": "invalid type"}]`},
		{Text: `[{"type": "mcq", "question": "two options only", "options": ["A", "B"], "correct": 0}]`},
		{Text: `[{"type": "mcq", "question": "no declared answer", "options": ["A", "B", "C", "D"]}]`},
		{Text: `[{"type": "mcq", "question": "no options", "correct": 1}]`},
	} {
		mock := llm.NewMockProvider(resp)
		_, err := NewGenerator(mock).Generate(context.Background(), "notes", DefaultConfig())

		var genErr *ErrGeneration
		if !errors.As(err, &genErr) {
			t.Errorf("response %+v: expected ErrGeneration, got %v", resp, err)
		}
	}
}

func TestTest_AnswersIgnoredAfterSubmit(t *testing.T) {
	test := NewTest(DefaultConfig(), []Question{
		{Type: TypeMCQ, Question: "q", Options: []string{"a", "b", "c", "d"}, Correct: 0},
	})
	test.SetOption(0, 2)
	if !test.markSubmitted() {
		t.Fatal("first submit should win")
	}
	test.SetOption(0, 0)

	a, ok := test.AnswerFor(0)
	if !ok || a.Option != 2 {
		t.Errorf("post-submit write changed the answer: %+v", a)
	}
}
