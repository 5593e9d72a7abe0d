// Package quiz generates multiple-choice quizzes and grades them locally.
package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/progress"
)

// Difficulty selects how hard the generated questions should be.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists the selectable levels in menu order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

var difficultyPhrase = map[Difficulty]string{
	Easy:   "simple and straightforward",
	Medium: "moderate difficulty",
	Hard:   "challenging and complex",
}

// Counts lists the selectable question counts in menu order.
var Counts = []int{5, 10, 15}

// Question is one multiple-choice question. Correct indexes into Options.
type Question struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// Quiz is a ready-to-take question set. When generation fails for any
// reason the built-in bank stands in and Warning explains why; the quiz
// still runs. This is the only place degraded content substitutes for
// a hard error.
type Quiz struct {
	Questions  []Question
	Difficulty Difficulty
	Fallback   bool
	Warning    string
}

// TimeLimit allots one minute per question.
func (q *Quiz) TimeLimit() time.Duration {
	return time.Duration(len(q.Questions)) * time.Minute
}

var questionSchema = &llm.Schema{
	Name: "quiz-questions",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":     "object",
			"required": []any{"question", "options", "correct"},
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
				"options": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"minItems": 4,
					"maxItems": 4,
				},
				"correct":     map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
				"explanation": map[string]any{"type": "string"},
			},
		},
	},
}

// Service generates quizzes and records results.
type Service struct {
	provider llm.Provider
	progress *progress.Service
}

// NewService creates a quiz service.
func NewService(provider llm.Provider, prog *progress.Service) *Service {
	return &Service{provider: provider, progress: prog}
}

// Generate builds a quiz of count questions at the given difficulty.
// Empty notes, a failed call, or an unparseable reply all degrade to the
// built-in bank truncated to count; the user still gets a quiz either way.
func (s *Service) Generate(ctx context.Context, notesText string, count int, difficulty Difficulty) *Quiz {
	if strings.TrimSpace(notesText) == "" {
		return fallbackQuiz(count, difficulty, "No notes loaded. Using sample questions instead.")
	}

	ctx = llm.WithPurpose(ctx, "quiz")
	resp, err := s.provider.Complete(ctx, llm.Request{
		Prompt: buildPrompt(notesText, count, difficulty),
	})
	if err != nil {
		return fallbackQuiz(count, difficulty, "Using sample questions. Failed to generate from notes.")
	}

	raw, err := llm.FirstArray(resp.Text)
	if err != nil {
		return fallbackQuiz(count, difficulty, "Using sample questions. AI response format was invalid.")
	}

	var questions []Question
	if err := llm.DecodeValidated(raw, questionSchema, &questions); err != nil {
		return fallbackQuiz(count, difficulty, "Using sample questions. AI response format was invalid.")
	}

	return &Quiz{Questions: questions, Difficulty: difficulty}
}

// Grade counts exact answer matches. Unanswered questions score zero.
func Grade(questions []Question, answers map[int]int) int {
	score := 0
	for i, q := range questions {
		if got, ok := answers[i]; ok && got == q.Correct {
			score++
		}
	}
	return score
}

// Result is a graded quiz outcome.
type Result struct {
	Score      int
	Total      int
	Percentage float64
}

// Submit grades the quiz and records one attempt. Safe to call with a
// nil progress service in tests.
func (s *Service) Submit(ctx context.Context, quiz *Quiz, answers map[int]int) Result {
	score := Grade(quiz.Questions, answers)
	total := len(quiz.Questions)

	res := Result{Score: score, Total: total}
	if total > 0 {
		res.Percentage = float64(score) / float64(total) * 100
	}

	if s.progress != nil {
		s.progress.RecordAttempt(ctx, progress.KindQuiz, progress.Attempt{
			Score:      float64(score),
			Total:      float64(total),
			Percentage: res.Percentage,
			Difficulty: string(quiz.Difficulty),
		})
	}
	return res
}

func fallbackQuiz(count int, difficulty Difficulty, warning string) *Quiz {
	bank := sampleBank()
	if count > len(bank) {
		count = len(bank)
	}
	if count < 0 {
		count = 0
	}
	return &Quiz{
		Questions:  bank[:count],
		Difficulty: difficulty,
		Fallback:   true,
		Warning:    warning,
	}
}

func buildPrompt(notesText string, count int, difficulty Difficulty) string {
	return fmt.Sprintf(`Based on the following study notes, generate exactly %d multiple-choice questions with %s difficulty level.

For each question, provide:
1. A clear, well-formulated question
2. Four answer options (A, B, C, D)
3. The correct answer (0-indexed: 0, 1, 2, or 3)
4. A brief explanation

Format your response as a JSON array where each object has:
- "question": the question text
- "options": array of 4 options
- "correct": index of correct answer (0-3)
- "explanation": why this answer is correct

Study notes:
%s

Return ONLY valid JSON in this exact format:
[
  {
    "question": "Question text?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correct": 1,
    "explanation": "Explanation text"
  }
]`, count, difficultyPhrase[difficulty], notesText)
}
