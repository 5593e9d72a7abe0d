package notes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBuffer_RequireEmpty(t *testing.T) {
	b := NewBuffer()
	if _, err := b.Require(); !errors.Is(err, ErrEmptyNotes) {
		t.Fatalf("expected ErrEmptyNotes, got %v", err)
	}

	b.Set("   \n\t ")
	if _, err := b.Require(); !errors.Is(err, ErrEmptyNotes) {
		t.Fatalf("whitespace-only buffer should be empty, got %v", err)
	}

	b.Set("mitochondria produce ATP")
	text, err := b.Require()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "mitochondria produce ATP" {
		t.Errorf("got %q", text)
	}
	if b.WordCount() != 3 {
		t.Errorf("WordCount = %d, want 3", b.WordCount())
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"runs   of    spaces", "runs of spaces"},
		{"tabs\tand\ncontrol\rchars", "tabs and control chars"},
		{"photo-\nsynthesis continues", "photosynthesis continues"},
		{"  trimmed  ", "trimmed"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadFile_PlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("cell walls and membranes"), 0o644); err != nil {
		t.Fatal(err)
	}

	text, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "cell walls and membranes" {
		t.Errorf("got %q", text)
	}
}

func TestLoadFile_UnsupportedExtension(t *testing.T) {
	if _, err := LoadFile("slides.pptx"); err == nil {
		t.Fatal("expected error for unsupported extension")
	}
}
