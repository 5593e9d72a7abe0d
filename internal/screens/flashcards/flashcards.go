package flashcards

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	cards "github.com/abhisek/studyflow/internal/flashcards"
	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/screen"
	"github.com/abhisek/studyflow/internal/ui/layout"
	"github.com/abhisek/studyflow/internal/ui/theme"
)

// deckReadyMsg carries a generated deck. Seq drops replies that belong
// to a generation the user has already abandoned.
type deckReadyMsg struct {
	Seq  int
	Deck *cards.Deck
	Err  error
}

// FlashcardsScreen drills the user through the current deck.
type FlashcardsScreen struct {
	svc *cards.Service
	buf *notes.Buffer

	seq     int
	deck    *cards.Deck
	current int
	flipped bool
	busy    bool
	errs    string
}

var _ screen.Screen = (*FlashcardsScreen)(nil)
var _ screen.KeyHintProvider = (*FlashcardsScreen)(nil)

// New opens the flashcards screen. A previously saved deck is shown
// immediately; otherwise a fresh one is generated from the notes.
func New(svc *cards.Service, buf *notes.Buffer) *FlashcardsScreen {
	return &FlashcardsScreen{svc: svc, buf: buf}
}

func (f *FlashcardsScreen) Init() tea.Cmd {
	if deck, ok := f.svc.Saved(context.Background()); ok {
		f.deck = deck
		return nil
	}
	return f.generate()
}

func (f *FlashcardsScreen) Title() string {
	return "Flashcards"
}

func (f *FlashcardsScreen) KeyHints() []layout.KeyHint {
	if f.busy {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Card"},
		{Key: "Space", Description: "Flip"},
		{Key: "M", Description: "Known"},
		{Key: "G", Description: "New deck"},
		{Key: "Esc", Description: "Back"},
	}
}

func (f *FlashcardsScreen) generate() tea.Cmd {
	f.busy = true
	f.errs = ""
	f.seq++
	seq := f.seq
	svc, buf := f.svc, f.buf
	return func() tea.Msg {
		deck, err := svc.Generate(context.Background(), buf.Text())
		return deckReadyMsg{Seq: seq, Deck: deck, Err: err}
	}
}

func (f *FlashcardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deckReadyMsg:
		if msg.Seq != f.seq {
			return f, nil
		}
		f.busy = false
		if msg.Err != nil {
			f.errs = msg.Err.Error()
			return f, nil
		}
		f.deck = msg.Deck
		f.current = 0
		f.flipped = false
		return f, nil

	case tea.KeyMsg:
		return f.handleKey(msg)
	}
	return f, nil
}

func (f *FlashcardsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if f.busy {
		return f, nil
	}

	switch msg.String() {
	case "g":
		return f, f.generate()
	}

	if f.deck == nil || len(f.deck.Cards) == 0 {
		return f, nil
	}

	switch msg.String() {
	case "left", "h":
		if f.current > 0 {
			f.current--
			f.flipped = false
		}
	case "right", "l":
		if f.current < len(f.deck.Cards)-1 {
			f.current++
			f.flipped = false
		}
	case " ", "space", "enter":
		f.flipped = !f.flipped
	case "m":
		f.deck.ToggleKnown(f.current)
		f.svc.SaveMarks(context.Background(), f.deck)
	}
	return f, nil
}

func (f *FlashcardsScreen) View(width, height int) string {
	if f.errs != "" {
		return theme.Incorrect().Render("Could not generate flashcards") + "\n\n" +
			theme.Body().Render(f.errs) + "\n\n" +
			theme.Hint().Render("Press G to try again, Esc to go back")
	}
	if f.busy {
		return theme.Subtitle().Width(width).Render("\nCreating flashcards from your notes...")
	}
	if f.deck == nil || len(f.deck.Cards) == 0 {
		return theme.Hint().Render("  No flashcards yet. Press G to generate a deck.")
	}

	card := f.deck.Cards[f.current]

	side := "Question"
	text := card.Question
	if f.flipped {
		side = "Answer"
		text = card.Answer
	}

	status := fmt.Sprintf("Card %d of %d   Known %d",
		f.current+1, len(f.deck.Cards), f.deck.KnownCount())
	if f.deck.IsKnown(f.current) {
		status += "   ✓ known"
	}

	cardBox := theme.Card().Width(width - 8).Render(
		theme.Subtitle().Render(side) + "\n\n" + theme.Body().Render(text),
	)

	return theme.Hint().Render("  "+status) + "\n\n" + cardBox
}
