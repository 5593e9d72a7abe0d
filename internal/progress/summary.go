package progress

import "sort"

// Summary is the derived view the dashboard renders. Pure function of a
// Record; deriving it never mutates stored state.
type Summary struct {
	TotalQuizzes    int
	TotalTests      int
	TotalFlashcards int

	AvgQuizScore float64 // mean percentage over all quiz attempts
	AvgTestScore float64 // mean percentage over all test attempts

	Streak int

	// Recent holds the most recent attempts across quizzes and tests,
	// merged and sorted by timestamp descending.
	Recent []RecentAttempt

	// Distribution counts attempts per category.
	Distribution map[Kind]int
}

// RecentAttempt is one row of the recent-activity list.
type RecentAttempt struct {
	Kind    Kind
	Attempt Attempt
}

// DefaultRecentLimit is how many recent attempts the dashboard shows.
const DefaultRecentLimit = 7

// Summarize derives dashboard statistics from a record.
func Summarize(rec Record, recentLimit int) Summary {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	sum := Summary{
		TotalQuizzes:    len(rec.Quizzes),
		TotalTests:      len(rec.Tests),
		TotalFlashcards: len(rec.Flashcards),
		AvgQuizScore:    meanPercentage(rec.Quizzes),
		AvgTestScore:    meanPercentage(rec.Tests),
		Streak:          rec.Streak,
		Distribution: map[Kind]int{
			KindQuiz:      len(rec.Quizzes),
			KindTest:      len(rec.Tests),
			KindFlashcard: len(rec.Flashcards),
		},
	}

	merged := make([]RecentAttempt, 0, len(rec.Quizzes)+len(rec.Tests))
	for _, a := range rec.Quizzes {
		merged = append(merged, RecentAttempt{Kind: KindQuiz, Attempt: a})
	}
	for _, a := range rec.Tests {
		merged = append(merged, RecentAttempt{Kind: KindTest, Attempt: a})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Attempt.Date.After(merged[j].Attempt.Date)
	})
	if len(merged) > recentLimit {
		merged = merged[:recentLimit]
	}
	sum.Recent = merged

	return sum
}

func meanPercentage(attempts []Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	var total float64
	for _, a := range attempts {
		total += a.Percentage
	}
	return total / float64(len(attempts))
}
