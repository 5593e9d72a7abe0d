// Package progress owns the persisted study-progress aggregate: append-only
// attempt lists per category, the daily streak, and the read-only
// derivations the dashboard renders.
package progress

import "time"

// Kind labels an attempt category.
type Kind string

const (
	KindQuiz      Kind = "quiz"
	KindTest      Kind = "test"
	KindFlashcard Kind = "flashcard"
)

// Attempt is one recorded study event. Quiz and test attempts carry scores;
// flashcard attempts only a count. Every attempt is timestamped at append;
// the timestamp drives both recency sorting and streak computation.
type Attempt struct {
	Date time.Time `json:"date"`

	// Quiz and test fields.
	Score      float64 `json:"score,omitempty"`
	Total      float64 `json:"total,omitempty"`
	Percentage float64 `json:"percentage,omitempty"`
	Difficulty string  `json:"difficulty,omitempty"`

	// Test fields.
	DurationMins  int `json:"durationMins,omitempty"`
	QuestionCount int `json:"questionCount,omitempty"`

	// Flashcard fields.
	Count int `json:"count,omitempty"`
}

// Record is the single persisted aggregate. Lists are append-only; each
// write replaces the whole record (read-modify-write, single writer).
type Record struct {
	Quizzes    []Attempt  `json:"quizzes"`
	Tests      []Attempt  `json:"tests"`
	Flashcards []Attempt  `json:"flashcards"`
	Streak     int        `json:"streak"`
	LastStudy  *time.Time `json:"lastStudyDate"`
}

// Append adds a timestamped attempt to the list for kind and updates the
// streak. The attempt's Date field is set to at.
func (r *Record) Append(kind Kind, a Attempt, at time.Time) {
	a.Date = at
	switch kind {
	case KindQuiz:
		r.Quizzes = append(r.Quizzes, a)
	case KindTest:
		r.Tests = append(r.Tests, a)
	case KindFlashcard:
		r.Flashcards = append(r.Flashcards, a)
	}
	r.Streak = NextStreak(r.Streak, r.LastStudy, at)
	t := at
	r.LastStudy = &t
}

// NextStreak computes the study-day streak after an attempt at "at":
// same calendar day as the last study → unchanged; exactly the next
// calendar day → +1; anything else (no history, longer gap, clock moved
// backwards) → reset to 1.
func NextStreak(current int, last *time.Time, at time.Time) int {
	if last == nil {
		return 1
	}
	lastDay := calendarDay(*last)
	atDay := calendarDay(at)
	switch atDay.Sub(lastDay) {
	case 0:
		if current < 1 {
			return 1
		}
		return current
	case 24 * time.Hour:
		return current + 1
	default:
		return 1
	}
}

// calendarDay truncates t to local midnight.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
