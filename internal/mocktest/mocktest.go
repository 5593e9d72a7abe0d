// Package mocktest generates and grades timed exam papers. Unlike the
// quiz there is no fallback content: a paper that can't be generated or
// parsed fails hard and the user stays on the configuration screen.
package mocktest

import (
	"fmt"
	"math"
	"sync"
)

// QuestionType discriminates paper questions.
type QuestionType string

const (
	TypeMCQ   QuestionType = "mcq"
	TypeShort QuestionType = "short"
)

// Default marks when the model omits the field.
const (
	defaultMCQMarks   = 2
	defaultShortMarks = 5
)

// Question is one exam question. MCQ questions carry Options and Correct;
// short-answer questions carry the Keywords the grader scores against.
type Question struct {
	Type     QuestionType `json:"type"`
	Question string       `json:"question"`
	Marks    int          `json:"marks,omitempty"`
	Options  []string     `json:"options,omitempty"`
	Correct  int          `json:"correct,omitempty"`
	Keywords []string     `json:"keywords,omitempty"`
}

// MaxMarks returns the question's mark ceiling, defaulting by type when
// the generated paper omitted marks.
func (q *Question) MaxMarks() int {
	if q.Marks > 0 {
		return q.Marks
	}
	if q.Type == TypeShort {
		return defaultShortMarks
	}
	return defaultMCQMarks
}

// Duration choices and question count bounds for the config form.
var DurationChoices = []int{30, 60, 120}

const (
	MinQuestions = 5
	MaxQuestions = 30
)

// Config is the paper shape the user picks before generation.
type Config struct {
	DurationMins  int
	QuestionCount int
	MCQ           bool
	Short         bool
}

// DefaultConfig matches the form's initial state.
func DefaultConfig() Config {
	return Config{DurationMins: 60, QuestionCount: 10, MCQ: true, Short: true}
}

// Normalize clamps the question count into bounds.
func (c *Config) Normalize() {
	if c.QuestionCount < MinQuestions {
		c.QuestionCount = MinQuestions
	}
	if c.QuestionCount > MaxQuestions {
		c.QuestionCount = MaxQuestions
	}
}

// Validate rejects configs the form should never submit.
func (c Config) Validate() error {
	if !c.MCQ && !c.Short {
		return fmt.Errorf("select at least one question type")
	}
	for _, d := range DurationChoices {
		if c.DurationMins == d {
			return nil
		}
	}
	return fmt.Errorf("duration must be one of 30, 60 or 120 minutes")
}

// Split computes the per-type question counts: MCQs take 70% of the paper
// (rounded up) when enabled, short answers the remainder.
func (c Config) Split() (mcqCount, shortCount int) {
	if c.MCQ {
		mcqCount = int(math.Ceil(float64(c.QuestionCount) * 0.7))
	}
	if c.Short {
		shortCount = c.QuestionCount - mcqCount
	}
	return mcqCount, shortCount
}

// Answer is a student response to one question.
type Answer struct {
	Option int    // selected option index for MCQ, -1 when unset
	Text   string // free text for short answers
}

// Test is one generated paper plus the student's answers. The submitted
// flag is single-assignment so a timer expiry racing a manual submit
// yields exactly one grading pass.
type Test struct {
	Config    Config
	Questions []Question

	mu        sync.Mutex
	answers   map[int]Answer
	submitted bool
	results   *Results
}

// NewTest wraps generated questions into a runnable paper.
func NewTest(cfg Config, questions []Question) *Test {
	return &Test{
		Config:    cfg,
		Questions: questions,
		answers:   make(map[int]Answer),
	}
}

// SetOption records an MCQ answer. Ignored after submission.
func (t *Test) SetOption(i, option int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.submitted || i < 0 || i >= len(t.Questions) {
		return
	}
	t.answers[i] = Answer{Option: option}
}

// SetText records a short-answer response. Ignored after submission.
func (t *Test) SetText(i int, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.submitted || i < 0 || i >= len(t.Questions) {
		return
	}
	t.answers[i] = Answer{Option: -1, Text: text}
}

// AnswerFor returns the recorded answer for question i.
func (t *Test) AnswerFor(i int) (Answer, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	a, ok := t.answers[i]
	return a, ok
}

// Submitted reports whether the paper has been handed in.
func (t *Test) Submitted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.submitted
}

// Results returns the grading outcome once graded.
func (t *Test) Results() *Results {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.results
}

// markSubmitted flips the one-shot flag. Returns false if already set.
func (t *Test) markSubmitted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.submitted {
		return false
	}
	t.submitted = true
	return true
}

func (t *Test) setResults(r *Results) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.results = r
}

// TotalMarks sums the paper's mark ceilings.
func (t *Test) TotalMarks() int {
	total := 0
	for i := range t.Questions {
		total += t.Questions[i].MaxMarks()
	}
	return total
}

// ErrGeneration wraps a failed paper generation. There is deliberately no
// sample-paper fallback: the caller returns to configuration.
type ErrGeneration struct {
	Err error
}

func (e *ErrGeneration) Error() string {
	return fmt.Sprintf("generate mock test: %v", e.Err)
}

func (e *ErrGeneration) Unwrap() error { return e.Err }
