package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/progress"
	"github.com/abhisek/studyflow/internal/store"
)

const quizReply = `Sure, here is your quiz:
[
  {"question": "What is 2+2?", "options": ["3", "4", "5", "6"], "correct": 1, "explanation": "Basic addition."},
  {"question": "Capital of France?", "options": ["Berlin", "Rome", "Paris", "Madrid"], "correct": 2, "explanation": "Paris is the capital."}
]`

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: quizReply})
	svc := NewService(mock, nil)

	q := svc.Generate(context.Background(), "arithmetic and geography", 2, Medium)
	if q.Fallback {
		t.Fatalf("unexpected fallback: %s", q.Warning)
	}
	if len(q.Questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(q.Questions))
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected one provider call, got %d", mock.CallCount())
	}
	if !strings.Contains(mock.Calls[0].Prompt, "moderate difficulty") {
		t.Error("difficulty phrase missing from prompt")
	}
	if !strings.Contains(mock.Calls[0].Prompt, "exactly 2 multiple-choice") {
		t.Error("question count missing from prompt")
	}
}

func TestGenerate_EmptyNotesFallsBack(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, nil)

	q := svc.Generate(context.Background(), "   ", 5, Easy)
	if !q.Fallback || q.Warning == "" {
		t.Fatal("expected fallback with warning")
	}
	if len(q.Questions) != 5 {
		t.Errorf("got %d questions, want 5", len(q.Questions))
	}
	if mock.CallCount() != 0 {
		t.Error("empty notes must not reach the provider")
	}
}

func TestGenerate_ProviderErrorFallsBack(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("timeout")})
	q := NewService(mock, nil).Generate(context.Background(), "notes", 10, Hard)
	if !q.Fallback {
		t.Fatal("expected fallback on provider error")
	}
	if len(q.Questions) != 10 {
		t.Errorf("got %d questions, want 10", len(q.Questions))
	}
}

func TestGenerate_BadReplyFallsBack(t *testing.T) {
	for _, reply := range []string{
		"I cannot help with that.",
		`[{"question": "missing options", "correct": 0}]`,
		`[{"question": "bad index", "options": ["a","b","c","d"], "correct": 7}]`,
	} {
		mock := llm.NewMockProvider(llm.MockResponse{Text: reply})
		q := NewService(mock, nil).Generate(context.Background(), "notes", 5, Medium)
		if !q.Fallback {
			t.Errorf("reply %q should fall back", reply)
		}
	}
}

func TestGenerate_FallbackTruncatesToBankSize(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("down")})
	q := NewService(mock, nil).Generate(context.Background(), "notes", 15, Medium)
	if len(q.Questions) != 10 {
		t.Errorf("bank holds 10 questions, got %d", len(q.Questions))
	}
}

func TestGrade(t *testing.T) {
	questions := []Question{
		{Correct: 1}, {Correct: 2}, {Correct: 0},
	}
	answers := map[int]int{0: 1, 1: 3}

	if got := Grade(questions, answers); got != 1 {
		t.Errorf("Grade = %d, want 1 (one match, one wrong, one unanswered)", got)
	}
	if got := Grade(questions, nil); got != 0 {
		t.Errorf("Grade with no answers = %d, want 0", got)
	}
}

type memKV struct {
	data map[string][]byte
}

func (m *memKV) Save(_ context.Context, key string, v any) {
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	if b, err := json.Marshal(v); err == nil {
		m.data[key] = b
	}
}

func (m *memKV) Load(_ context.Context, key string, out any) bool {
	b, ok := m.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, out) == nil
}

func TestSubmit_RecordsAttempt(t *testing.T) {
	kv := &memKV{}
	svc := NewService(llm.NewMockProvider(), progress.NewService(kv))

	q := &Quiz{
		Questions:  []Question{{Correct: 0}, {Correct: 1}},
		Difficulty: Hard,
	}
	res := svc.Submit(context.Background(), q, map[int]int{0: 0, 1: 0})

	if res.Score != 1 || res.Total != 2 || res.Percentage != 50 {
		t.Errorf("result = %+v", res)
	}

	var rec progress.Record
	if !kv.Load(context.Background(), store.KeyProgress, &rec) || len(rec.Quizzes) != 1 {
		t.Fatalf("attempt not recorded: %+v", rec)
	}
	if rec.Quizzes[0].Difficulty != "hard" || rec.Quizzes[0].Percentage != 50 {
		t.Errorf("attempt = %+v", rec.Quizzes[0])
	}
	if rec.Quizzes[0].Score != 1 || rec.Quizzes[0].Total != 2 {
		t.Errorf("attempt score = %v/%v, want 1/2", rec.Quizzes[0].Score, rec.Quizzes[0].Total)
	}
}

func TestTimeLimit(t *testing.T) {
	q := &Quiz{Questions: make([]Question, 5)}
	if q.TimeLimit().Minutes() != 5 {
		t.Errorf("TimeLimit = %v, want 5m", q.TimeLimit())
	}
}
