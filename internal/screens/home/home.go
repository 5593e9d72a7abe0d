package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	cards "github.com/abhisek/studyflow/internal/flashcards"
	"github.com/abhisek/studyflow/internal/mocktest"
	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/progress"
	quizzes "github.com/abhisek/studyflow/internal/quiz"
	"github.com/abhisek/studyflow/internal/router"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/screens/dashboard"
	"github.com/abhisek/studyflow/internal/screens/editor"
	flashcardscreen "github.com/abhisek/studyflow/internal/screens/flashcards"
	mocktestscreen "github.com/abhisek/studyflow/internal/screens/mocktest"
	quizscreen "github.com/abhisek/studyflow/internal/screens/quiz"
	summaryscreen "github.com/abhisek/studyflow/internal/screens/summary"
	"github.com/abhisek/studyflow/internal/summarize"
	"github.com/abhisek/studyflow/internal/ui/components"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

// Deps bundles the services the home screen hands to child screens.
type Deps struct {
	Notes      *notes.Buffer
	Summarizer *summarize.Service
	Flashcards *cards.Service
	Quiz       *quizzes.Service
	MockGen    *mocktest.Generator
	Grader     *mocktest.Grader
	Progress   *progress.Service
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps Deps) *HomeScreen {
	push := func(make func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: make()}
			}
		}
	}

	items := []components.MenuItem{
		{Label: "EDIT NOTES", Action: push(func() screen.Screen {
			return editor.NewEditor(deps.Notes)
		})},
		{Label: "IMPORT NOTES FILE", Action: push(func() screen.Screen {
			return editor.NewImport(deps.Notes)
		})},
		{Label: "SUMMARIZE NOTES", Action: push(func() screen.Screen {
			return summaryscreen.New(deps.Summarizer, deps.Notes)
		})},
		{Label: "FLASHCARDS", Action: push(func() screen.Screen {
			return flashcardscreen.New(deps.Flashcards, deps.Notes)
		})},
		{Label: "QUIZ", Action: push(func() screen.Screen {
			return quizscreen.New(deps.Quiz, deps.Notes)
		})},
		{Label: "MOCK TEST", Action: push(func() screen.Screen {
			return mocktestscreen.New(deps.MockGen, deps.Grader, deps.Notes)
		})},
		{Label: "DASHBOARD", Action: push(func() screen.Screen {
			return dashboard.New(deps.Progress)
		})},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections,
		theme.Title().Width(width).Render("StudyFlow"),
		theme.Subtitle().Width(width).Render("Your AI-powered study companion"))

	status := "No notes loaded. Start with EDIT NOTES or IMPORT NOTES FILE."
	if !h.deps.Notes.IsEmpty() {
		status = fmt.Sprintf("Notes loaded: %d words.", h.deps.Notes.WordCount())
	}
	sections = append(sections,
		theme.Hint().Width(width).Align(lipgloss.Center).Render(status))

	menu := theme.Card().Render(h.menu.View())
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center, menu))

	return "\n" + strings.Join(sections, "\n\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}
