// Package editor holds the note-entry screens: the in-app editor and
// the file importer.
package editor

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/router"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/ui/components"
	"github.com/abhisek/studyflow/internal/ui/layout"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

// EditorScreen edits the shared note buffer in place.
type EditorScreen struct {
	buf   *notes.Buffer
	input components.TextArea
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)

// NewEditor opens the editor preloaded with the current notes.
func NewEditor(buf *notes.Buffer) *EditorScreen {
	input := components.NewTextArea("Paste or type your study notes here...", 76, 16)
	input.SetValue(buf.Text())
	return &EditorScreen{buf: buf, input: input}
}

func (e *EditorScreen) Init() tea.Cmd {
	return e.input.Init()
}

func (e *EditorScreen) Title() string {
	return "Notes"
}

func (e *EditorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Ctrl+S", Description: "Save"},
		{Key: "Esc", Description: "Discard"},
	}
}

func (e *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "ctrl+s":
			e.buf.Set(e.input.Value())
			return e, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	e.input, cmd = e.input.Update(msg)
	return e, cmd
}

func (e *EditorScreen) View(width, height int) string {
	e.input.Resize(width-4, height-4)
	return theme.Body().Render("  Edit your study notes:") + "\n\n" + e.input.View()
}
