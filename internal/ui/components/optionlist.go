package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyflow/internal/ui/theme"
)

// OptionList is an A-D answer selector. Unlike a menu, choosing an option
// doesn't fire an action: the chosen index is read back by the screen, so
// the user can revisit questions before submitting.
type OptionList struct {
	Options []string
	Cursor  int
	Chosen  int // -1 until an option is picked
}

// NewOptionList creates a selector with nothing chosen.
func NewOptionList(options []string) OptionList {
	return OptionList{Options: options, Chosen: -1}
}

// Update handles navigation and choice keys.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "enter", " ", "space":
		o.Chosen = o.Cursor
	case "1", "2", "3", "4":
		i := int(kmsg.String()[0] - '1')
		if i < len(o.Options) {
			o.Cursor = i
			o.Chosen = i
		}
	}

	return o, nil
}

// View renders the options with the cursor and current choice.
func (o OptionList) View() string {
	labels := []string{"A", "B", "C", "D"}

	var s string
	for i, opt := range o.Options {
		label := "?"
		if i < len(labels) {
			label = labels[i]
		}

		prefix := "  "
		if i == o.Cursor {
			prefix = "▸ "
		}
		mark := " "
		if i == o.Chosen {
			mark = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, mark, label, opt)
		switch {
		case i == o.Chosen:
			s += theme.Selected().Render(line) + "\n"
		case i == o.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += theme.Body().Render(line) + "\n"
		}
	}
	return s
}

// ReviewView renders the options after grading, marking the correct
// option and the user's wrong pick.
func (o OptionList) ReviewView(correct int) string {
	labels := []string{"A", "B", "C", "D"}

	var s string
	for i, opt := range o.Options {
		label := "?"
		if i < len(labels) {
			label = labels[i]
		}
		line := fmt.Sprintf("  %s)  %s", label, opt)

		switch {
		case i == correct:
			s += theme.Correct().Render(line+"  ✓") + "\n"
		case i == o.Chosen:
			s += theme.Incorrect().Render(line+"  ✗ your answer") + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		}
	}
	return s
}
