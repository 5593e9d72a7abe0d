package progress

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestNextStreak(t *testing.T) {
	jan1 := date("2024-01-01")

	tests := []struct {
		name    string
		current int
		last    *time.Time
		at      time.Time
		want    int
	}{
		{"no history starts at 1", 0, nil, date("2024-01-01"), 1},
		{"consecutive day increments", 3, &jan1, date("2024-01-02"), 4},
		{"gap resets to 1", 3, &jan1, date("2024-01-05"), 1},
		{"same day unchanged", 3, &jan1, date("2024-01-01"), 3},
		{"clock moved back resets", 3, &jan1, date("2023-12-30"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextStreak(tt.current, tt.last, tt.at)
			if got != tt.want {
				t.Errorf("NextStreak(%d, %v, %v) = %d, want %d",
					tt.current, tt.last, tt.at, got, tt.want)
			}
		})
	}
}

func TestNextStreak_SameCalendarDayDifferentHours(t *testing.T) {
	morning := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 1, 1, 22, 30, 0, 0, time.UTC)
	if got := NextStreak(2, &morning, evening); got != 2 {
		t.Errorf("same-day repeat changed streak: got %d, want 2", got)
	}

	nextMorning := time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)
	if got := NextStreak(2, &evening, nextMorning); got != 3 {
		t.Errorf("calendar-day rollover not counted: got %d, want 3", got)
	}
}

func TestRecordAppend_TimestampsAndStreak(t *testing.T) {
	var rec Record

	rec.Append(KindQuiz, Attempt{Score: 8, Total: 10, Percentage: 80}, date("2024-01-01"))
	rec.Append(KindTest, Attempt{Score: 14, Total: 20, Percentage: 70}, date("2024-01-02"))
	rec.Append(KindFlashcard, Attempt{Count: 12}, date("2024-01-02"))

	if len(rec.Quizzes) != 1 || len(rec.Tests) != 1 || len(rec.Flashcards) != 1 {
		t.Fatalf("unexpected list lengths: %d/%d/%d", len(rec.Quizzes), len(rec.Tests), len(rec.Flashcards))
	}
	if rec.Quizzes[0].Date != date("2024-01-01") {
		t.Errorf("attempt not timestamped at append: %v", rec.Quizzes[0].Date)
	}
	if rec.Streak != 2 {
		t.Errorf("streak = %d, want 2 (day 1, day 2, day 2 repeat)", rec.Streak)
	}
	if rec.LastStudy == nil || !rec.LastStudy.Equal(date("2024-01-02")) {
		t.Errorf("LastStudy = %v", rec.LastStudy)
	}
}

func TestSummarize(t *testing.T) {
	rec := Record{
		Quizzes: []Attempt{
			{Date: date("2024-01-01"), Percentage: 60},
			{Date: date("2024-01-03"), Percentage: 80},
		},
		Tests: []Attempt{
			{Date: date("2024-01-02"), Percentage: 50},
		},
		Flashcards: []Attempt{
			{Date: date("2024-01-01"), Count: 12},
		},
		Streak: 2,
	}

	sum := Summarize(rec, 2)

	if sum.TotalQuizzes != 2 || sum.TotalTests != 1 || sum.TotalFlashcards != 1 {
		t.Errorf("totals = %d/%d/%d", sum.TotalQuizzes, sum.TotalTests, sum.TotalFlashcards)
	}
	if sum.AvgQuizScore != 70 {
		t.Errorf("AvgQuizScore = %v, want 70", sum.AvgQuizScore)
	}
	if sum.AvgTestScore != 50 {
		t.Errorf("AvgTestScore = %v, want 50", sum.AvgTestScore)
	}
	if sum.Streak != 2 {
		t.Errorf("Streak = %d", sum.Streak)
	}

	// Recent: merged quizzes+tests, newest first, truncated to limit.
	if len(sum.Recent) != 2 {
		t.Fatalf("len(Recent) = %d, want 2", len(sum.Recent))
	}
	if sum.Recent[0].Kind != KindQuiz || !sum.Recent[0].Attempt.Date.Equal(date("2024-01-03")) {
		t.Errorf("Recent[0] = %+v", sum.Recent[0])
	}
	if sum.Recent[1].Kind != KindTest {
		t.Errorf("Recent[1] = %+v", sum.Recent[1])
	}

	if sum.Distribution[KindFlashcard] != 1 {
		t.Errorf("Distribution = %v", sum.Distribution)
	}
}

func TestSummarize_EmptyRecord(t *testing.T) {
	sum := Summarize(Record{}, 0)
	if sum.AvgQuizScore != 0 || sum.AvgTestScore != 0 {
		t.Errorf("averages over empty lists should be 0: %+v", sum)
	}
	if len(sum.Recent) != 0 {
		t.Errorf("Recent should be empty: %+v", sum.Recent)
	}
}

// memKV is an in-memory store.KV for service tests.
type memKV struct {
	data map[string][]byte
}

func (m *memKV) Save(_ context.Context, key string, v any) {
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	m.data[key] = b
}

func (m *memKV) Load(_ context.Context, key string, out any) bool {
	b, ok := m.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, out) == nil
}

func TestService_RecordAttemptPersists(t *testing.T) {
	kv := &memKV{}
	svc := NewService(kv)
	svc.now = func() time.Time { return date("2024-01-01") }

	svc.RecordAttempt(context.Background(), KindQuiz, Attempt{Score: 7, Total: 10, Percentage: 70})

	svc.now = func() time.Time { return date("2024-01-02") }
	rec := svc.RecordAttempt(context.Background(), KindTest, Attempt{Score: 10, Total: 20, Percentage: 50})

	if rec.Streak != 2 {
		t.Errorf("streak = %d, want 2", rec.Streak)
	}

	// A fresh service over the same kv sees the persisted aggregate.
	rec2 := NewService(kv).Record(context.Background())
	if len(rec2.Quizzes) != 1 || len(rec2.Tests) != 1 {
		t.Errorf("persisted record = %+v", rec2)
	}
}
