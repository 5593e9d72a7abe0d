package dashboard

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/progress"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/ui/components"
	"github.com/abhisek/studyflow/internal/ui/layout"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

// DashboardScreen renders study statistics from the progress aggregate.
type DashboardScreen struct {
	svc *progress.Service
	sum progress.Summary
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New loads the current aggregate and opens the dashboard.
func New(svc *progress.Service) *DashboardScreen {
	rec := svc.Record(context.Background())
	return &DashboardScreen{
		svc: svc,
		sum: progress.Summarize(rec, progress.DefaultRecentLimit),
	}
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return d, nil
}

func (d *DashboardScreen) View(width, height int) string {
	s := theme.Title().Render("Progress Dashboard") + "\n\n"

	s += theme.Body().Render(fmt.Sprintf(
		"  Quizzes %d   Tests %d   Flashcard decks %d   Streak %d days",
		d.sum.TotalQuizzes, d.sum.TotalTests, d.sum.TotalFlashcards, d.sum.Streak)) + "\n\n"

	barWidth := width - 30
	if barWidth < 20 {
		barWidth = 20
	}
	s += "  " + components.NewProgressBar("Avg quiz score", d.sum.AvgQuizScore/100, true, barWidth).View() + "\n"
	s += "  " + components.NewProgressBar("Avg test score", d.sum.AvgTestScore/100, true, barWidth).View() + "\n\n"

	s += theme.Subtitle().Render("Recent Activity") + "\n"
	if len(d.sum.Recent) == 0 {
		s += theme.Hint().Render("  No attempts yet. Take a quiz or a mock test to get started.") + "\n"
	}
	for _, r := range d.sum.Recent {
		label := "Quiz"
		detail := r.Attempt.Difficulty
		if r.Kind == progress.KindTest {
			label = "Test"
			detail = fmt.Sprintf("%d min", r.Attempt.DurationMins)
		}
		if detail != "" {
			detail = "  " + detail
		}
		s += theme.Body().Render(fmt.Sprintf("  %s  %-5s %.0f%%%s",
			r.Attempt.Date.Local().Format("2006-01-02"), label, r.Attempt.Percentage, detail)) + "\n"
	}

	s += "\n" + theme.Subtitle().Render("Activity Split") + "\n"
	s += theme.Hint().Render(fmt.Sprintf("  quizzes %d   tests %d   flashcards %d",
		d.sum.Distribution[progress.KindQuiz],
		d.sum.Distribution[progress.KindTest],
		d.sum.Distribution[progress.KindFlashcard])) + "\n"

	return s
}
