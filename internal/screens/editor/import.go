package editor

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/router"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/ui/components"
	"github.com/abhisek/studyflow/internal/ui/layout"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

// importDoneMsg reports a finished file load.
type importDoneMsg struct {
	Text string
	Err  error
}

// ImportScreen loads notes from a .txt/.md/.pdf file into the buffer.
type ImportScreen struct {
	buf   *notes.Buffer
	path  components.TextInput
	busy  bool
	errs  string
}

var _ screen.Screen = (*ImportScreen)(nil)
var _ screen.KeyHintProvider = (*ImportScreen)(nil)

// NewImport opens the file import prompt.
func NewImport(buf *notes.Buffer) *ImportScreen {
	return &ImportScreen{
		buf:  buf,
		path: components.NewTextInput("/path/to/notes.pdf", false, 256),
	}
}

func (i *ImportScreen) Init() tea.Cmd {
	return i.path.Init()
}

func (i *ImportScreen) Title() string {
	return "Import Notes"
}

func (i *ImportScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Load file"},
		{Key: "Esc", Description: "Back"},
	}
}

func (i *ImportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case importDoneMsg:
		i.busy = false
		if msg.Err != nil {
			i.errs = msg.Err.Error()
			return i, nil
		}
		i.buf.Set(notes.Normalize(msg.Text))
		return i, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		if msg.String() == "enter" && !i.busy {
			path := i.path.Value()
			if path == "" {
				return i, nil
			}
			i.busy = true
			i.errs = ""
			return i, func() tea.Msg {
				text, err := notes.LoadFile(path)
				return importDoneMsg{Text: text, Err: err}
			}
		}
	}

	var cmd tea.Cmd
	i.path, cmd = i.path.Update(msg)
	return i, cmd
}

func (i *ImportScreen) View(width, height int) string {
	s := theme.Body().Render("  Load study notes from a file (.txt, .md or .pdf):") + "\n\n"
	s += "  " + i.path.View() + "\n\n"
	if i.busy {
		s += theme.Hint().Render("  Reading file...")
	}
	if i.errs != "" {
		s += theme.Incorrect().Render(fmt.Sprintf("  %s", i.errs))
	}
	return s
}
