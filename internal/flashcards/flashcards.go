// Package flashcards generates and stores question/answer study cards.
package flashcards

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/progress"
	"github.com/abhisek/studyflow/internal/store"
)

// Card is a single flashcard.
type Card struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Deck is a generated card set plus the user's known marks.
// Known holds card indices; marks never outlive the deck they were made on.
type Deck struct {
	Cards []Card `json:"cards"`
	Known []int  `json:"known"`
}

// IsKnown reports whether card i is marked known.
func (d *Deck) IsKnown(i int) bool {
	for _, k := range d.Known {
		if k == i {
			return true
		}
	}
	return false
}

// ToggleKnown flips the known mark on card i. Out-of-range indices are ignored.
func (d *Deck) ToggleKnown(i int) {
	if i < 0 || i >= len(d.Cards) {
		return
	}
	for j, k := range d.Known {
		if k == i {
			d.Known = append(d.Known[:j], d.Known[j+1:]...)
			return
		}
	}
	d.Known = append(d.Known, i)
	sort.Ints(d.Known)
}

// KnownCount returns the number of cards marked known.
func (d *Deck) KnownCount() int { return len(d.Known) }

// sanitize drops marks that don't point at a card in this deck. A deck
// loaded from disk may carry marks from before a schema or size change.
func (d *Deck) sanitize() {
	valid := d.Known[:0]
	for _, k := range d.Known {
		if k >= 0 && k < len(d.Cards) {
			valid = append(valid, k)
		}
	}
	d.Known = valid
}

var cardSchema = &llm.Schema{
	Name: "flashcards",
	Definition: map[string]any{
		"type":     "array",
		"minItems": 1,
		"items": map[string]any{
			"type":     "object",
			"required": []any{"question", "answer"},
			"properties": map[string]any{
				"question": map[string]any{"type": "string", "minLength": 1},
				"answer":   map[string]any{"type": "string", "minLength": 1},
			},
		},
	},
}

// Service generates flashcard decks and persists them.
type Service struct {
	provider llm.Provider
	kv       store.KV
	progress *progress.Service
}

// NewService creates a flashcard service.
func NewService(provider llm.Provider, kv store.KV, prog *progress.Service) *Service {
	return &Service{provider: provider, kv: kv, progress: prog}
}

// Generate creates a fresh deck from the notes. On success the deck
// replaces any saved one, known marks reset, and a study event is
// recorded. On any failure the previous deck is left untouched.
func (s *Service) Generate(ctx context.Context, notesText string) (*Deck, error) {
	if strings.TrimSpace(notesText) == "" {
		return nil, notes.ErrEmptyNotes
	}

	ctx = llm.WithPurpose(ctx, "flashcards")
	resp, err := s.provider.Complete(ctx, llm.Request{
		Prompt: buildPrompt(notesText),
	})
	if err != nil {
		return nil, fmt.Errorf("generate flashcards: %w", err)
	}

	raw, err := llm.FirstArray(resp.Text)
	if err != nil {
		return nil, err
	}

	var cards []Card
	if err := llm.DecodeValidated(raw, cardSchema, &cards); err != nil {
		return nil, err
	}

	deck := &Deck{Cards: cards}
	s.kv.Save(ctx, store.KeyFlashcards, deck)
	if s.progress != nil {
		s.progress.RecordAttempt(ctx, progress.KindFlashcard, progress.Attempt{
			Count: len(cards),
		})
	}
	return deck, nil
}

// Saved loads the persisted deck, if any. Stale known marks are dropped.
func (s *Service) Saved(ctx context.Context) (*Deck, bool) {
	var deck Deck
	if !s.kv.Load(ctx, store.KeyFlashcards, &deck) || len(deck.Cards) == 0 {
		return nil, false
	}
	deck.sanitize()
	return &deck, true
}

// SaveMarks persists the deck's current known marks.
func (s *Service) SaveMarks(ctx context.Context, deck *Deck) {
	s.kv.Save(ctx, store.KeyFlashcards, deck)
}

func buildPrompt(notesText string) string {
	var b strings.Builder
	b.WriteString(`Based on the following study notes, create 12-15 flashcards. Each flashcard should have a clear question on one side and a concise answer on the other. Focus on key concepts, definitions, and important facts.

Notes:
`)
	b.WriteString(notesText)
	b.WriteString(`

Return ONLY a JSON array in this exact format, with no additional text:
[{"question": "...", "answer": "..."}]`)
	return b.String()
}
