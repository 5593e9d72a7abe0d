package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/notes"
	quizzes "github.com/abhisek/studyflow/internal/quiz"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/ui/components"
	"github.com/abhisek/studyflow/internal/ui/layout"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

type phase int

const (
	phaseConfig phase = iota
	phaseLoading
	phaseActive
	phaseDone
)

// quizReadyMsg carries the generated quiz. Seq drops stale replies.
type quizReadyMsg struct {
	Seq  int
	Quiz *quizzes.Quiz
}

// timerTickMsg is sent every second to update the countdown.
type timerTickMsg time.Time

// QuizScreen runs the full quiz flow: settings, timed questions, review.
type QuizScreen struct {
	svc *quizzes.Service
	buf *notes.Buffer

	phase      phase
	seq        int
	difficulty int // index into quizzes.Difficulties
	countIdx   int // index into quizzes.Counts

	quiz      *quizzes.Quiz
	options   []components.OptionList
	current   int
	remaining int
	result    quizzes.Result
	reviewOff int
	focusRow  int // config: 0 difficulty, 1 count
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)

// New opens the quiz settings screen.
func New(svc *quizzes.Service, buf *notes.Buffer) *QuizScreen {
	return &QuizScreen{
		svc:        svc,
		buf:        buf,
		difficulty: 1, // medium
		countIdx:   1, // 10 questions
	}
}

func (q *QuizScreen) Init() tea.Cmd {
	return nil
}

func (q *QuizScreen) Title() string {
	return "Quiz"
}

func (q *QuizScreen) KeyHints() []layout.KeyHint {
	switch q.phase {
	case phaseConfig:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Setting"},
			{Key: "←→", Description: "Change"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseActive:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "←→", Description: "Question"},
			{Key: "S", Description: "Submit"},
			{Key: "Esc", Description: "Quit quiz"},
		}
	case phaseDone:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Review"},
			{Key: "R", Description: "New quiz"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (q *QuizScreen) start() tea.Cmd {
	q.phase = phaseLoading
	q.seq++
	seq := q.seq
	svc, buf := q.svc, q.buf
	count := quizzes.Counts[q.countIdx]
	difficulty := quizzes.Difficulties[q.difficulty]
	return func() tea.Msg {
		quiz := svc.Generate(context.Background(), buf.Text(), count, difficulty)
		return quizReadyMsg{Seq: seq, Quiz: quiz}
	}
}

func (q *QuizScreen) submit() (screen.Screen, tea.Cmd) {
	answers := make(map[int]int)
	for i, o := range q.options {
		if o.Chosen >= 0 {
			answers[i] = o.Chosen
		}
	}
	q.result = q.svc.Submit(context.Background(), q.quiz, answers)
	q.phase = phaseDone
	q.reviewOff = 0
	return q, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (q *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if msg.Seq != q.seq || q.phase != phaseLoading {
			return q, nil
		}
		q.quiz = msg.Quiz
		q.options = make([]components.OptionList, len(msg.Quiz.Questions))
		for i, question := range msg.Quiz.Questions {
			q.options[i] = components.NewOptionList(question.Options)
		}
		q.current = 0
		q.remaining = int(msg.Quiz.TimeLimit().Seconds())
		q.phase = phaseActive
		return q, tickCmd()

	case timerTickMsg:
		if q.phase != phaseActive {
			return q, nil
		}
		q.remaining--
		if q.remaining <= 0 {
			return q.submit()
		}
		return q, tickCmd()

	case tea.KeyMsg:
		return q.handleKey(msg)
	}
	return q, nil
}

func (q *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch q.phase {
	case phaseConfig:
		switch key {
		case "up", "k":
			q.focusRow = 0
		case "down", "j":
			q.focusRow = 1
		case "left", "h":
			if q.focusRow == 0 && q.difficulty > 0 {
				q.difficulty--
			} else if q.focusRow == 1 && q.countIdx > 0 {
				q.countIdx--
			}
		case "right", "l":
			if q.focusRow == 0 && q.difficulty < len(quizzes.Difficulties)-1 {
				q.difficulty++
			} else if q.focusRow == 1 && q.countIdx < len(quizzes.Counts)-1 {
				q.countIdx++
			}
		case "enter":
			return q, q.start()
		}

	case phaseActive:
		switch key {
		case "left":
			if q.current > 0 {
				q.current--
			}
			return q, nil
		case "right":
			if q.current < len(q.options)-1 {
				q.current++
			}
			return q, nil
		case "s":
			return q.submit()
		case "enter":
			// Enter on the last question submits, otherwise picks and moves on.
			if q.current == len(q.options)-1 && q.options[q.current].Chosen >= 0 {
				return q.submit()
			}
		}
		var cmd tea.Cmd
		q.options[q.current], cmd = q.options[q.current].Update(msg)
		if key == "enter" || key == "1" || key == "2" || key == "3" || key == "4" {
			if q.current < len(q.options)-1 {
				q.current++
			}
		}
		return q, cmd

	case phaseDone:
		switch key {
		case "up", "k":
			if q.reviewOff > 0 {
				q.reviewOff--
			}
		case "down", "j":
			if q.reviewOff < len(q.quiz.Questions)-1 {
				q.reviewOff++
			}
		case "r":
			q.phase = phaseConfig
			q.quiz = nil
			q.options = nil
		}
	}
	return q, nil
}

func (q *QuizScreen) View(width, height int) string {
	switch q.phase {
	case phaseConfig:
		return q.viewConfig()
	case phaseLoading:
		return theme.Subtitle().Width(width).Render("\nGenerating quiz questions...")
	case phaseActive:
		return q.viewActive(width)
	case phaseDone:
		return q.viewResults(width, height)
	}
	return ""
}

func (q *QuizScreen) viewConfig() string {
	row := func(label string, choices []string, selected int, focused bool) string {
		marker := "  "
		if focused {
			marker = "▸ "
		}
		parts := make([]string, len(choices))
		for i, c := range choices {
			if i == selected {
				parts[i] = theme.Selected().Render("[" + c + "]")
			} else {
				parts[i] = theme.Body().Render(" " + c + " ")
			}
		}
		return marker + theme.Body().Render(label) + "  " + strings.Join(parts, " ")
	}

	diffs := make([]string, len(quizzes.Difficulties))
	for i, d := range quizzes.Difficulties {
		diffs[i] = string(d)
	}
	counts := make([]string, len(quizzes.Counts))
	for i, c := range quizzes.Counts {
		counts[i] = fmt.Sprintf("%d", c)
	}

	s := theme.Title().Render("Quiz Settings") + "\n\n"
	s += row("Difficulty", diffs, q.difficulty, q.focusRow == 0) + "\n\n"
	s += row("Questions ", counts, q.countIdx, q.focusRow == 1) + "\n\n"
	s += theme.Hint().Render("  One minute per question. Press Enter to start.")
	return s
}

func (q *QuizScreen) viewActive(width int) string {
	var s string

	if q.quiz.Warning != "" {
		s += theme.Card().BorderForeground(theme.Warning).Width(width - 8).
			Render(theme.Body().Render(q.quiz.Warning)) + "\n\n"
	}

	s += theme.Hint().Render(fmt.Sprintf("  Time %s   Question %d of %d",
		layout.FormatClock(q.remaining), q.current+1, len(q.quiz.Questions))) + "\n\n"

	question := q.quiz.Questions[q.current]
	s += theme.Body().Bold(true).Render("  "+question.Question) + "\n\n"
	s += q.options[q.current].View()
	return s
}

func (q *QuizScreen) viewResults(width, height int) string {
	pct := q.result.Percentage

	s := theme.Title().Render("Quiz Results") + "\n\n"
	s += theme.Body().Bold(true).Render(fmt.Sprintf("  %d / %d   %.1f%%",
		q.result.Score, q.result.Total, pct)) + "\n"
	s += "  " + components.NewProgressBar("", pct/100, false, width-8).View() + "\n\n"

	// One reviewed question at a time, scrolled with the offset.
	i := q.reviewOff
	question := q.quiz.Questions[i]
	verdict := theme.Incorrect().Render("✗")
	if q.options[i].Chosen == question.Correct {
		verdict = theme.Correct().Render("✓")
	}
	s += fmt.Sprintf("  %s Question %d: %s\n\n", verdict, i+1,
		theme.Body().Render(question.Question))
	s += q.options[i].ReviewView(question.Correct)
	if q.options[i].Chosen != question.Correct && question.Explanation != "" {
		s += "\n" + theme.Hint().Render("  "+question.Explanation) + "\n"
	}
	return s
}
