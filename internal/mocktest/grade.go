package mocktest

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/progress"
)

// DefaultCorrectThreshold marks a short answer "correct" when it earns at
// least this fraction of the question's marks.
const DefaultCorrectThreshold = 0.70

// GradedAnswer is the grading outcome for one question.
type GradedAnswer struct {
	Correct     bool
	Score       float64
	Explanation string
}

// Results is the graded paper.
type Results struct {
	TotalMarks  int
	EarnedMarks float64
	Percentage  float64
	Answers     []GradedAnswer
}

// TypeScore sums earned and maximum marks for questions of the given type,
// for the results breakdown.
func (r *Results) TypeScore(questions []Question, qt QuestionType) (earned float64, max int) {
	for i := range questions {
		if questions[i].Type != qt {
			continue
		}
		max += questions[i].MaxMarks()
		if i < len(r.Answers) {
			earned += r.Answers[i].Score
		}
	}
	return earned, max
}

var gradeSchema = &llm.Schema{
	Name: "short-answer-grade",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"score"},
		"properties": map[string]any{
			"score":       map[string]any{"type": "number"},
			"explanation": map[string]any{"type": "string"},
		},
	},
}

type gradeReply struct {
	Score       float64 `json:"score"`
	Explanation string  `json:"explanation"`
}

// Grader scores submitted papers. MCQs grade locally; short answers get
// one grading call each, sequentially, with a keyword-overlap fallback
// when the call or its reply fails.
type Grader struct {
	provider llm.Provider
	progress *progress.Service

	// Threshold is the correct-mark fraction; zero means the default.
	Threshold float64
}

// NewGrader creates a grader with the default threshold.
func NewGrader(provider llm.Provider, prog *progress.Service) *Grader {
	return &Grader{provider: provider, progress: prog, Threshold: DefaultCorrectThreshold}
}

func (g *Grader) threshold() float64 {
	if g.Threshold > 0 {
		return g.Threshold
	}
	return DefaultCorrectThreshold
}

// Grade hands in the paper and scores it. The first call wins: a timer
// expiry racing a manual submit grades once, and later calls return the
// stored results with performed false.
func (g *Grader) Grade(ctx context.Context, t *Test) (*Results, bool) {
	if !t.markSubmitted() {
		return t.Results(), false
	}

	res := &Results{Answers: make([]GradedAnswer, len(t.Questions))}
	for i := range t.Questions {
		q := &t.Questions[i]
		res.TotalMarks += q.MaxMarks()

		answer, answered := t.AnswerFor(i)
		switch q.Type {
		case TypeMCQ:
			res.Answers[i] = g.gradeMCQ(q, answer, answered)
		case TypeShort:
			res.Answers[i] = g.gradeShort(ctx, q, answer)
		}
		res.EarnedMarks += res.Answers[i].Score
	}

	if res.TotalMarks > 0 {
		res.Percentage = res.EarnedMarks / float64(res.TotalMarks) * 100
	}

	t.setResults(res)
	if g.progress != nil {
		g.progress.RecordAttempt(ctx, progress.KindTest, progress.Attempt{
			Score:         res.EarnedMarks,
			Total:         float64(res.TotalMarks),
			Percentage:    res.Percentage,
			DurationMins:  t.Config.DurationMins,
			QuestionCount: t.Config.QuestionCount,
		})
	}
	return res, true
}

// gradeMCQ is all-or-nothing on an exact option match. Unanswered
// questions score zero.
func (g *Grader) gradeMCQ(q *Question, a Answer, answered bool) GradedAnswer {
	if answered && a.Option == q.Correct {
		return GradedAnswer{Correct: true, Score: float64(q.MaxMarks())}
	}
	return GradedAnswer{}
}

// gradeShort scores a free-text answer. Blank answers score zero without
// a call; otherwise one grading call, falling back to keyword overlap.
func (g *Grader) gradeShort(ctx context.Context, q *Question, a Answer) GradedAnswer {
	text := strings.TrimSpace(a.Text)
	if text == "" {
		return GradedAnswer{}
	}

	marks := q.MaxMarks()
	graded, err := g.gradeShortByModel(ctx, q, text, marks)
	if err != nil {
		score := keywordScore(q.Keywords, text, marks)
		return GradedAnswer{
			Correct: score >= g.threshold()*float64(marks),
			Score:   score,
		}
	}
	graded.Correct = graded.Score >= g.threshold()*float64(marks)
	return graded
}

func (g *Grader) gradeShortByModel(ctx context.Context, q *Question, answer string, marks int) (GradedAnswer, error) {
	ctx = llm.WithPurpose(ctx, "grading")
	resp, err := g.provider.Complete(ctx, llm.Request{
		Prompt: buildGradingPrompt(q, answer, marks),
	})
	if err != nil {
		return GradedAnswer{}, err
	}

	raw, err := llm.FirstObject(resp.Text)
	if err != nil {
		return GradedAnswer{}, err
	}

	var reply gradeReply
	if err := llm.DecodeValidated(raw, gradeSchema, &reply); err != nil {
		return GradedAnswer{}, err
	}

	score := math.Min(math.Max(0, reply.Score), float64(marks))
	return GradedAnswer{Score: score, Explanation: reply.Explanation}, nil
}

// keywordScore is the offline fallback: the fraction of expected keywords
// present in the answer, scaled to the mark ceiling and rounded.
func keywordScore(keywords []string, answer string, marks int) float64 {
	if len(keywords) == 0 {
		return 0
	}
	lower := strings.ToLower(answer)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched++
		}
	}
	return math.Round(float64(matched) / float64(len(keywords)) * float64(marks))
}

func buildGradingPrompt(q *Question, answer string, marks int) string {
	keywords := "N/A"
	if len(q.Keywords) > 0 {
		keywords = strings.Join(q.Keywords, ", ")
	}
	return fmt.Sprintf(`Grade this short answer question:

Question: %s
Expected keywords: %s
Student answer: %s
Maximum marks: %d

Provide a score from 0 to %d and a brief explanation. Return as JSON:
{"score": number, "explanation": "text"}`,
		q.Question, keywords, answer, marks, marks)
}
