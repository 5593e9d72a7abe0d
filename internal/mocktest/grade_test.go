package mocktest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/progress"
	"github.com/abhisek/studyflow/internal/store"
)

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

func mcqQuestion(correct, marks int) Question {
	return Question{
		Type:     TypeMCQ,
		Question: "pick one",
		Options:  []string{"A", "B", "C", "D"},
		Correct:  correct,
		Marks:    marks,
	}
}

func TestGrade_MCQDeterministic(t *testing.T) {
	test := NewTest(DefaultConfig(), []Question{
		mcqQuestion(1, 2),
		mcqQuestion(2, 2),
		mcqQuestion(0, 2), // left unanswered
	})
	test.SetOption(0, 1) // right
	test.SetOption(1, 3) // wrong

	grader := NewGrader(llm.NewMockProvider(), nil)
	res, performed := grader.Grade(context.Background(), test)
	if !performed {
		t.Fatal("first grade should perform")
	}

	if res.TotalMarks != 6 || res.EarnedMarks != 2 {
		t.Errorf("marks = %v/%d, want 2/6", res.EarnedMarks, res.TotalMarks)
	}
	if !res.Answers[0].Correct || res.Answers[1].Correct || res.Answers[2].Correct {
		t.Errorf("correctness flags = %+v", res.Answers)
	}
	if res.Answers[2].Score != 0 {
		t.Error("unanswered mcq must score zero")
	}
}

func TestGrade_UnansweredMCQDoesNotMatchOptionZero(t *testing.T) {
	test := NewTest(DefaultConfig(), []Question{mcqQuestion(0, 2)})

	res, _ := NewGrader(llm.NewMockProvider(), nil).Grade(context.Background(), test)
	if res.EarnedMarks != 0 {
		t.Errorf("unanswered question earned %v marks", res.EarnedMarks)
	}
}

func TestGrade_ShortByModel(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Text: `The grade is: {"score": 4, "explanation": "Good coverage of mitosis."}`,
	})
	test := NewTest(DefaultConfig(), []Question{
		{Type: TypeShort, Question: "Describe mitosis", Marks: 5, Keywords: []string{"mitosis"}},
	})
	test.SetText(0, "Mitosis is cell division with anaphase and telophase.")

	res, _ := NewGrader(mock, nil).Grade(context.Background(), test)

	if res.Answers[0].Score != 4 {
		t.Errorf("score = %v, want 4", res.Answers[0].Score)
	}
	if !res.Answers[0].Correct {
		t.Error("4/5 is above the 70% threshold")
	}
	if res.Answers[0].Explanation != "Good coverage of mitosis." {
		t.Errorf("explanation = %q", res.Answers[0].Explanation)
	}
}

func TestGrade_ShortScoreClamped(t *testing.T) {
	tests := []struct {
		reply string
		want  float64
	}{
		{`{"score": 99, "explanation": "x"}`, 5},
		{`{"score": -3, "explanation": "x"}`, 0},
	}
	for _, tt := range tests {
		mock := llm.NewMockProvider(llm.MockResponse{Text: tt.reply})
		test := NewTest(DefaultConfig(), []Question{
			{Type: TypeShort, Question: "q", Marks: 5},
		})
		test.SetText(0, "an answer")

		res, _ := NewGrader(mock, nil).Grade(context.Background(), test)
		if res.Answers[0].Score != tt.want {
			t.Errorf("reply %s: score = %v, want %v", tt.reply, res.Answers[0].Score, tt.want)
		}
	}
}

func TestGrade_KeywordFallback(t *testing.T) {
	// Grading call fails, so the keyword overlap decides:
	// 1 of 2 keywords at 5 marks rounds to 3.
	mock := llm.NewMockProvider(llm.MockResponse{Err: errors.New("upstream down")})
	test := NewTest(DefaultConfig(), []Question{
		{Type: TypeShort, Question: "Describe mitosis", Marks: 5, Keywords: []string{"mitosis", "anaphase"}},
	})
	test.SetText(0, "Mitosis splits one cell into two.")

	res, _ := NewGrader(mock, nil).Grade(context.Background(), test)
	if res.Answers[0].Score != 3 {
		t.Errorf("fallback score = %v, want 3", res.Answers[0].Score)
	}
	if res.Answers[0].Correct {
		t.Error("3/5 is below the 70% threshold")
	}
}

func TestGrade_BlankShortAnswerSkipsCall(t *testing.T) {
	mock := llm.NewMockProvider()
	test := NewTest(DefaultConfig(), []Question{
		{Type: TypeShort, Question: "q", Marks: 5, Keywords: []string{"k"}},
	})
	test.SetText(0, "   ")

	res, _ := NewGrader(mock, nil).Grade(context.Background(), test)
	if res.Answers[0].Score != 0 || res.Answers[0].Correct {
		t.Errorf("blank answer graded: %+v", res.Answers[0])
	}
	if mock.CallCount() != 0 {
		t.Error("blank answer must not reach the provider")
	}
}

func TestGrade_MarksConservation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"score": 3, "explanation": "partial"}`})
	test := NewTest(DefaultConfig(), []Question{
		mcqQuestion(0, 2),
		{Type: TypeShort, Question: "q", Marks: 5, Keywords: []string{"a"}},
	})
	test.SetOption(0, 0)
	test.SetText(1, "something")

	res, _ := NewGrader(mock, nil).Grade(context.Background(), test)

	var sum float64
	for _, a := range res.Answers {
		sum += a.Score
	}
	if sum != res.EarnedMarks {
		t.Errorf("per-question sum %v != earned %v", sum, res.EarnedMarks)
	}
	if res.EarnedMarks > float64(res.TotalMarks) {
		t.Errorf("earned %v exceeds total %d", res.EarnedMarks, res.TotalMarks)
	}
}

func TestGrade_DoubleSubmitGradesOnce(t *testing.T) {
	kv := &memKV{}
	mock := llm.NewMockProvider()
	grader := NewGrader(mock, progress.NewService(kv))

	test := NewTest(DefaultConfig(), []Question{mcqQuestion(0, 2)})
	test.SetOption(0, 0)

	first, performed := grader.Grade(context.Background(), test)
	if !performed {
		t.Fatal("first grade should perform")
	}
	second, performed := grader.Grade(context.Background(), test)
	if performed {
		t.Fatal("second grade must be a no-op")
	}
	if second != first {
		t.Error("second call should return the stored results")
	}

	var rec progress.Record
	if !kv.Load(context.Background(), store.KeyProgress, &rec) || len(rec.Tests) != 1 {
		t.Errorf("want exactly one recorded attempt, got %+v", rec.Tests)
	}
}

func TestGrade_EmptyPaperPercentage(t *testing.T) {
	res, _ := NewGrader(llm.NewMockProvider(), nil).Grade(context.Background(), NewTest(DefaultConfig(), nil))
	if res.Percentage != 0 {
		t.Errorf("empty paper percentage = %v", res.Percentage)
	}
}

func TestGrade_RecordsAttempt(t *testing.T) {
	kv := &memKV{}
	test := NewTest(Config{DurationMins: 30, QuestionCount: 5, MCQ: true}, []Question{
		mcqQuestion(1, 2),
		mcqQuestion(1, 2),
	})
	test.SetOption(0, 1)

	NewGrader(llm.NewMockProvider(), progress.NewService(kv)).Grade(context.Background(), test)

	var rec progress.Record
	if !kv.Load(context.Background(), store.KeyProgress, &rec) {
		t.Fatal("no record persisted")
	}
	got := rec.Tests[0]
	if got.Score != 2 || got.Total != 4 || got.Percentage != 50 {
		t.Errorf("attempt = %+v", got)
	}
	if got.DurationMins != 30 || got.QuestionCount != 5 {
		t.Errorf("config fields not recorded: %+v", got)
	}
}

func TestResults_TypeScore(t *testing.T) {
	questions := []Question{
		mcqQuestion(0, 2),
		{Type: TypeShort, Question: "q", Marks: 5},
	}
	res := &Results{Answers: []GradedAnswer{{Score: 2}, {Score: 3}}}

	if earned, max := res.TypeScore(questions, TypeMCQ); earned != 2 || max != 2 {
		t.Errorf("mcq breakdown = %v/%d", earned, max)
	}
	if earned, max := res.TypeScore(questions, TypeShort); earned != 3 || max != 5 {
		t.Errorf("short breakdown = %v/%d", earned, max)
	}
}
