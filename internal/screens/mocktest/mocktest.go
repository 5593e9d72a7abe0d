package mocktest

import (
	"context"
	"fmt"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/mocktest"
	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/router"
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
	phaseGrading
	phaseResults
)

// Config form rows.
const (
	rowDuration = iota
	rowCount
	rowMCQ
	rowShort
	rowGenerate
)

// paperReadyMsg carries the generated paper. Seq drops stale replies.
type paperReadyMsg struct {
	Seq  int
	Test *mocktest.Test
	Err  error
}

// gradedMsg carries the grading outcome.
type gradedMsg struct {
	Results *mocktest.Results
}

// timerTickMsg is sent every second to update the countdown.
type timerTickMsg time.Time

// MockTestScreen runs the exam flow: configure, sit the paper, review.
type MockTestScreen struct {
	gen    *mocktest.Generator
	grader *mocktest.Grader
	buf    *notes.Buffer

	phase phase
	seq   int

	cfg        mocktest.Config
	durIdx     int
	countInput components.TextInput
	focusRow   int
	errs       string

	test      *mocktest.Test
	options   []components.OptionList
	shorts    []components.TextArea
	current   int
	remaining int
	confirm   bool

	results   *mocktest.Results
	reviewOff int
}

var _ screen.Screen = (*MockTestScreen)(nil)
var _ screen.KeyHintProvider = (*MockTestScreen)(nil)

// New opens the test configuration screen.
func New(gen *mocktest.Generator, grader *mocktest.Grader, buf *notes.Buffer) *MockTestScreen {
	cfg := mocktest.DefaultConfig()
	countInput := components.NewTextInput("10", true, 2)
	countInput.SetValue(strconv.Itoa(cfg.QuestionCount))
	return &MockTestScreen{
		gen:        gen,
		grader:     grader,
		buf:        buf,
		cfg:        cfg,
		durIdx:     1, // 60 minutes
		countInput: countInput,
	}
}

func (m *MockTestScreen) Init() tea.Cmd {
	return nil
}

func (m *MockTestScreen) Title() string {
	return "Mock Test"
}

func (m *MockTestScreen) KeyHints() []layout.KeyHint {
	switch m.phase {
	case phaseConfig:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Field"},
			{Key: "←→/Space", Description: "Change"},
			{Key: "Enter", Description: "Generate"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseActive:
		if m.confirm {
			return []layout.KeyHint{
				{Key: "Y", Description: "Submit"},
				{Key: "N", Description: "Keep going"},
			}
		}
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next question"},
			{Key: "Ctrl+S", Description: "Submit"},
			{Key: "Esc", Description: "Abandon"},
		}
	case phaseResults:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Review"},
			{Key: "R", Description: "New test"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

// restart swaps in a fresh configuration screen. Replies still in flight
// for the old screen die with it.
func (m *MockTestScreen) restart() tea.Cmd {
	gen, grader, buf := m.gen, m.grader, m.buf
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: New(gen, grader, buf)}
	}
}

func (m *MockTestScreen) generate() tea.Cmd {
	m.cfg.DurationMins = mocktest.DurationChoices[m.durIdx]
	if n, err := m.countInput.NumericValue(); err == nil {
		m.cfg.QuestionCount = n
	}
	m.cfg.Normalize()
	m.countInput.SetValue(strconv.Itoa(m.cfg.QuestionCount))
	if err := m.cfg.Validate(); err != nil {
		m.errs = err.Error()
		return nil
	}

	m.phase = phaseLoading
	m.errs = ""
	m.seq++
	seq := m.seq
	gen, buf, cfg := m.gen, m.buf, m.cfg
	return func() tea.Msg {
		test, err := gen.Generate(context.Background(), buf.Text(), cfg)
		return paperReadyMsg{Seq: seq, Test: test, Err: err}
	}
}

// submit hands the paper to the grader. The grader's one-shot flag makes
// this safe to reach from both the timer and the confirm dialog.
func (m *MockTestScreen) submit() (screen.Screen, tea.Cmd) {
	m.phase = phaseGrading
	m.confirm = false
	m.syncAnswers()
	grader, test := m.grader, m.test
	return m, func() tea.Msg {
		res, _ := grader.Grade(context.Background(), test)
		return gradedMsg{Results: res}
	}
}

// syncAnswers copies component state into the paper before grading.
func (m *MockTestScreen) syncAnswers() {
	for i := range m.test.Questions {
		switch m.test.Questions[i].Type {
		case mocktest.TypeMCQ:
			if m.options[i].Chosen >= 0 {
				m.test.SetOption(i, m.options[i].Chosen)
			}
		case mocktest.TypeShort:
			if m.shorts[i].Value() != "" {
				m.test.SetText(i, m.shorts[i].Value())
			}
		}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (m *MockTestScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case paperReadyMsg:
		if msg.Seq != m.seq || m.phase != phaseLoading {
			return m, nil
		}
		if msg.Err != nil {
			m.phase = phaseConfig
			m.errs = msg.Err.Error()
			return m, nil
		}
		m.test = msg.Test
		m.options = make([]components.OptionList, len(msg.Test.Questions))
		m.shorts = make([]components.TextArea, len(msg.Test.Questions))
		for i, q := range msg.Test.Questions {
			switch q.Type {
			case mocktest.TypeMCQ:
				m.options[i] = components.NewOptionList(q.Options)
			case mocktest.TypeShort:
				m.shorts[i] = components.NewTextArea("Type your answer here...", 70, 5)
			}
		}
		m.current = 0
		m.remaining = m.test.Config.DurationMins * 60
		m.phase = phaseActive
		return m, tickCmd()

	case timerTickMsg:
		if m.phase != phaseActive {
			return m, nil
		}
		m.remaining--
		if m.remaining <= 0 {
			return m.submit()
		}
		return m, tickCmd()

	case gradedMsg:
		if m.phase != phaseGrading {
			return m, nil
		}
		m.results = msg.Results
		m.phase = phaseResults
		m.reviewOff = 0
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.forwardToComponents(msg)
}

func (m *MockTestScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch m.phase {
	case phaseConfig:
		return m.handleConfigKey(msg)

	case phaseActive:
		if m.confirm {
			switch key {
			case "y", "Y":
				return m.submit()
			case "n", "N", "esc":
				m.confirm = false
			}
			return m, nil
		}

		switch key {
		case "tab":
			if m.current < len(m.test.Questions)-1 {
				m.current++
			}
			return m, nil
		case "shift+tab":
			if m.current > 0 {
				m.current--
			}
			return m, nil
		case "ctrl+s":
			m.confirm = true
			return m, nil
		}
		return m.forwardToComponents(msg)

	case phaseResults:
		switch key {
		case "up", "k":
			if m.reviewOff > 0 {
				m.reviewOff--
			}
		case "down", "j":
			if m.reviewOff < len(m.test.Questions)-1 {
				m.reviewOff++
			}
		case "r":
			return m, m.restart()
		}
	}
	return m, nil
}

func (m *MockTestScreen) handleConfigKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch key {
	case "up", "k":
		if m.focusRow > rowDuration {
			m.focusRow--
		}
		return m, nil
	case "down", "j":
		if m.focusRow < rowGenerate {
			m.focusRow++
		}
		return m, nil
	case "enter":
		return m, m.generate()
	}

	switch m.focusRow {
	case rowDuration:
		switch key {
		case "left", "h":
			if m.durIdx > 0 {
				m.durIdx--
			}
		case "right", "l":
			if m.durIdx < len(mocktest.DurationChoices)-1 {
				m.durIdx++
			}
		}
	case rowCount:
		var cmd tea.Cmd
		m.countInput, cmd = m.countInput.Update(msg)
		return m, cmd
	case rowMCQ:
		if key == " " || key == "space" {
			m.cfg.MCQ = !m.cfg.MCQ
		}
	case rowShort:
		if key == " " || key == "space" {
			m.cfg.Short = !m.cfg.Short
		}
	}
	return m, nil
}

// forwardToComponents routes input to the active question's component.
func (m *MockTestScreen) forwardToComponents(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m.phase != phaseActive || m.test == nil {
		return m, nil
	}

	var cmd tea.Cmd
	switch m.test.Questions[m.current].Type {
	case mocktest.TypeMCQ:
		m.options[m.current], cmd = m.options[m.current].Update(msg)
		if chosen := m.options[m.current].Chosen; chosen >= 0 {
			m.test.SetOption(m.current, chosen)
		}
	case mocktest.TypeShort:
		m.shorts[m.current], cmd = m.shorts[m.current].Update(msg)
		m.test.SetText(m.current, m.shorts[m.current].Value())
	}
	return m, cmd
}

func (m *MockTestScreen) View(width, height int) string {
	switch m.phase {
	case phaseConfig:
		return m.viewConfig()
	case phaseLoading:
		return theme.Subtitle().Width(width).Render("\nGenerating test questions...")
	case phaseActive:
		return m.viewActive(width)
	case phaseGrading:
		return theme.Subtitle().Width(width).Render("\nGrading your test...")
	case phaseResults:
		return m.viewResults(width)
	}
	return ""
}

func (m *MockTestScreen) viewConfig() string {
	focus := func(row int, s string) string {
		if m.focusRow == row {
			return theme.Selected().Render("▸ " + s)
		}
		return theme.Body().Render("  " + s)
	}
	check := func(on bool) string {
		if on {
			return "[x]"
		}
		return "[ ]"
	}

	durations := ""
	for i, d := range mocktest.DurationChoices {
		label := fmt.Sprintf(" %d min ", d)
		if i == m.durIdx {
			durations += theme.Selected().Render("[" + label + "]")
		} else {
			durations += theme.Body().Render(" " + label + " ")
		}
	}

	s := theme.Title().Render("Test Configuration") + "\n\n"
	s += focus(rowDuration, "Duration   ") + durations + "\n\n"
	s += focus(rowCount, "Questions  ") + m.countInput.View() +
		theme.Hint().Render(fmt.Sprintf("  (%d-%d)", mocktest.MinQuestions, mocktest.MaxQuestions)) + "\n\n"
	s += focus(rowMCQ, check(m.cfg.MCQ)+" Multiple Choice Questions") + "\n"
	s += focus(rowShort, check(m.cfg.Short)+" Short Answer Questions") + "\n\n"
	s += focus(rowGenerate, "Generate Test")
	if m.errs != "" {
		s += "\n\n" + theme.Incorrect().Render("  "+m.errs)
	}
	return s
}

func (m *MockTestScreen) viewActive(width int) string {
	q := m.test.Questions[m.current]

	clock := layout.FormatClock(m.remaining)
	timer := theme.Body().Bold(true).Render("  ⏱ " + clock)
	if m.remaining < 300 {
		timer = theme.Incorrect().Render("  ⏱ " + clock + "  less than 5 minutes!")
	}

	kind := "Short Answer"
	if q.Type == mocktest.TypeMCQ {
		kind = "MCQ"
	}

	s := timer + "\n\n"
	s += theme.Hint().Render(fmt.Sprintf("  Question %d of %d (%s) - %d marks",
		m.current+1, len(m.test.Questions), kind, q.MaxMarks())) + "\n\n"
	s += theme.Body().Bold(true).Render("  "+q.Question) + "\n\n"

	switch q.Type {
	case mocktest.TypeMCQ:
		s += m.options[m.current].View()
	case mocktest.TypeShort:
		s += m.shorts[m.current].View()
	}

	if m.confirm {
		s += "\n\n" + theme.Card().BorderForeground(theme.Warning).Render(
			theme.Body().Render("Submit the test? (y/n)"))
	}
	return s
}

func (m *MockTestScreen) viewResults(width int) string {
	res := m.results

	s := theme.Title().Render("Test Results") + "\n\n"
	s += theme.Body().Bold(true).Render(fmt.Sprintf("  %.1f / %d   %.1f%%",
		res.EarnedMarks, res.TotalMarks, res.Percentage)) + "\n"
	s += "  " + components.NewProgressBar("", res.Percentage/100, false, width-8).View() + "\n\n"

	mcqEarned, mcqMax := res.TypeScore(m.test.Questions, mocktest.TypeMCQ)
	shortEarned, shortMax := res.TypeScore(m.test.Questions, mocktest.TypeShort)
	s += theme.Hint().Render(fmt.Sprintf("  MCQ %.1f/%d   Short Answer %.1f/%d",
		mcqEarned, mcqMax, shortEarned, shortMax)) + "\n\n"

	// Review one question at a time.
	i := m.reviewOff
	q := m.test.Questions[i]
	grade := res.Answers[i]

	verdict := theme.Incorrect().Render("✗")
	if grade.Correct {
		verdict = theme.Correct().Render("✓")
	}
	s += fmt.Sprintf("  %s Question %d: %s   %s\n\n", verdict, i+1,
		theme.Body().Render(q.Question),
		theme.Hint().Render(fmt.Sprintf("%.1f/%d marks", grade.Score, q.MaxMarks())))

	switch q.Type {
	case mocktest.TypeMCQ:
		s += m.options[i].ReviewView(q.Correct)
	case mocktest.TypeShort:
		answer := m.shorts[i].Value()
		if answer == "" {
			answer = "No answer provided"
		}
		s += theme.Hint().Render("  Your answer: ") + theme.Body().Render(answer) + "\n"
		if grade.Explanation != "" {
			s += theme.Hint().Render("  Feedback: "+grade.Explanation) + "\n"
		}
	}
	return s
}
