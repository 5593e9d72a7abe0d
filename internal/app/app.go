package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	cards "github.com/abhisek/studyflow/internal/flashcards"
	"github.com/abhisek/studyflow/internal/mocktest"
	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/progress"
	quizzes "github.com/abhisek/studyflow/internal/quiz"
	"github.com/abhisek/studyflow/internal/router"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/screens/home"
	"github.com/abhisek/studyflow/internal/store"
	"github.com/abhisek/studyflow/internal/summarize"
	"github.com/abhisek/studyflow/internal/ui/layout"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

// Options carries the wired services into the TUI.
type Options struct {
	Notes      *notes.Buffer
	Summarizer *summarize.Service
	Flashcards *cards.Service
	Quiz       *quizzes.Service
	MockGen    *mocktest.Generator
	Grader     *mocktest.Grader
	Progress   *progress.Service
	KV         store.KV
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	var dark bool
	if opts.KV.Load(context.Background(), store.KeyDarkMode, &dark) {
		theme.SetDarkMode(dark)
	}

	homeScreen := home.New(home.Deps{
		Notes:      opts.Notes,
		Summarizer: opts.Summarizer,
		Flashcards: opts.Flashcards,
		Quiz:       opts.Quiz,
		MockGen:    opts.MockGen,
		Grader:     opts.Grader,
		Progress:   opts.Progress,
	})
	return AppModel{
		opts:   opts,
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+t":
			theme.SetDarkMode(!theme.IsDark())
			m.opts.KV.Save(context.Background(), store.KeyDarkMode, theme.IsDark())
			return m, nil
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	rec := m.opts.Progress.Record(context.Background())
	header := layout.RenderHeader(title, m.opts.Notes.WordCount(), rec.Streak, m.width)

	footerHints := m.footerHints(active)
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// footerHints asks the active screen for its hints, falling back to the
// stack-level defaults.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if provider, ok := active.(screen.KeyHintProvider); ok {
		return append(provider.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+T", Description: "Theme"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
