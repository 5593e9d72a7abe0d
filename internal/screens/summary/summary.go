package summary

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/summarize"
	"github.com/abhisek/studyflow/internal/ui/layout"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

// summaryReadyMsg carries the generated summary. Seq ties the reply to
// the generation that requested it; replies from an abandoned generation
// are dropped.
type summaryReadyMsg struct {
	Seq     int
	Summary string
	Err     error
}

// SummaryScreen generates and displays the notes summary.
type SummaryScreen struct {
	svc   *summarize.Service
	buf   *notes.Buffer
	seq   int
	lines []string
	offs  int
	errs  string
	busy  bool
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates the summary screen and kicks off generation.
func New(svc *summarize.Service, buf *notes.Buffer) *SummaryScreen {
	return &SummaryScreen{svc: svc, buf: buf}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return s.generate()
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	if s.busy {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "G", Description: "Regenerate"},
		{Key: "Esc", Description: "Back"},
	}
}

// generate issues one summary request tagged with the current sequence.
func (s *SummaryScreen) generate() tea.Cmd {
	s.busy = true
	s.errs = ""
	s.seq++
	seq := s.seq
	svc, buf := s.svc, s.buf
	return func() tea.Msg {
		text, err := svc.Summarize(context.Background(), buf.Text())
		return summaryReadyMsg{Seq: seq, Summary: text, Err: err}
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryReadyMsg:
		if msg.Seq != s.seq {
			return s, nil
		}
		s.busy = false
		if msg.Err != nil {
			s.errs = msg.Err.Error()
			return s, nil
		}
		s.lines = strings.Split(msg.Summary, "\n")
		s.offs = 0
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.offs > 0 {
				s.offs--
			}
		case "down", "j":
			if s.offs < len(s.lines)-1 {
				s.offs++
			}
		case "g":
			if !s.busy {
				return s, s.generate()
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	if s.errs != "" {
		return theme.Incorrect().Render("Could not generate summary") + "\n\n" +
			theme.Body().Render(s.errs) + "\n\n" +
			theme.Hint().Render("Press G to try again, Esc to go back")
	}
	if s.busy {
		return theme.Subtitle().Width(width).Render("\nAnalyzing your notes...")
	}

	visible := height - 2
	if visible < 1 {
		visible = 1
	}
	end := s.offs + visible
	if end > len(s.lines) {
		end = len(s.lines)
	}

	body := strings.Join(s.lines[s.offs:end], "\n")
	out := theme.Body().Width(width - 4).Render(body)
	if end < len(s.lines) {
		out += "\n" + theme.Hint().Render("  ↓ more")
	}
	return out
}
