package flashcards

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/progress"
	"github.com/abhisek/studyflow/internal/store"
)

type memKV struct {
	data map[string][]byte
}

func (m *memKV) Save(_ context.Context, key string, v any) {
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	m.data[key] = b
}

func (m *memKV) Load(_ context.Context, key string, out any) bool {
	b, ok := m.data[key]
	if !ok {
		return false
	}
	return json.Unmarshal(b, out) == nil
}

const cardsReply = `Here are your flashcards:
[{"question": "What is mitosis?", "answer": "Cell division producing two identical daughter cells"},
 {"question": "What is ATP?", "answer": "The cell's energy currency"}]`

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: cardsReply})
	kv := &memKV{}
	svc := NewService(mock, kv, progress.NewService(kv))

	deck, err := svc.Generate(context.Background(), "mitosis and ATP notes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(deck.Cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(deck.Cards))
	}
	if mock.CallCount() != 1 {
		t.Errorf("expected one provider call, got %d", mock.CallCount())
	}

	// Success persists the deck and a study event.
	saved, ok := svc.Saved(context.Background())
	if !ok || len(saved.Cards) != 2 {
		t.Error("deck not persisted")
	}
	var rec progress.Record
	if !kv.Load(context.Background(), store.KeyProgress, &rec) || len(rec.Flashcards) != 1 {
		t.Errorf("flashcard event not recorded: %+v", rec)
	}
	if rec.Flashcards[0].Count != 2 {
		t.Errorf("event count = %d, want 2", rec.Flashcards[0].Count)
	}
}

func TestGenerate_EmptyNotes(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, &memKV{}, nil)

	_, err := svc.Generate(context.Background(), "  ")
	if !errors.Is(err, notes.ErrEmptyNotes) {
		t.Fatalf("expected ErrEmptyNotes, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Error("empty notes must not reach the provider")
	}
}

func TestGenerate_FailureLeavesSavedDeck(t *testing.T) {
	kv := &memKV{}
	svc := NewService(llm.NewMockProvider(llm.MockResponse{Text: cardsReply}), kv, nil)
	if _, err := svc.Generate(context.Background(), "notes"); err != nil {
		t.Fatal(err)
	}

	// A second generation that fails to parse must not clobber the deck.
	svc = NewService(llm.NewMockProvider(llm.MockResponse{Text: "no json here"}), kv, nil)
	var parseErr *llm.ErrParse
	if _, err := svc.Generate(context.Background(), "notes"); !errors.As(err, &parseErr) {
		t.Fatalf("expected parse error, got %v", err)
	}

	deck, ok := svc.Saved(context.Background())
	if !ok || len(deck.Cards) != 2 {
		t.Error("failed generation clobbered the saved deck")
	}
}

func TestDeck_ToggleKnown(t *testing.T) {
	deck := &Deck{Cards: []Card{{}, {}, {}}}

	deck.ToggleKnown(1)
	if !deck.IsKnown(1) || deck.KnownCount() != 1 {
		t.Errorf("mark not set: %+v", deck.Known)
	}
	deck.ToggleKnown(1)
	if deck.IsKnown(1) || deck.KnownCount() != 0 {
		t.Errorf("mark not cleared: %+v", deck.Known)
	}

	deck.ToggleKnown(7)
	deck.ToggleKnown(-1)
	if deck.KnownCount() != 0 {
		t.Errorf("out-of-range toggle recorded: %+v", deck.Known)
	}
}

func TestSaved_DropsStaleMarks(t *testing.T) {
	kv := &memKV{}
	kv.Save(context.Background(), store.KeyFlashcards, Deck{
		Cards: []Card{{Question: "q", Answer: "a"}},
		Known: []int{0, 3, 9},
	})

	svc := NewService(llm.NewMockProvider(), kv, nil)
	deck, ok := svc.Saved(context.Background())
	if !ok {
		t.Fatal("deck not loaded")
	}
	if len(deck.Known) != 1 || deck.Known[0] != 0 {
		t.Errorf("stale marks survived: %+v", deck.Known)
	}
}
