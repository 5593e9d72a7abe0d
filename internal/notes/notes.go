// Package notes manages the shared working buffer every generator reads.
// The buffer lives only in memory; it is never persisted.
package notes

import (
	"errors"
	"strings"
	"sync"
)

// ErrEmptyNotes is returned when a generator is invoked with no notes.
// Purely a validation failure: no network call is made.
var ErrEmptyNotes = errors.New("no study notes loaded")

// Buffer is the single shared note buffer.
type Buffer struct {
	mu   sync.RWMutex
	text string
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Set replaces the buffer contents.
func (b *Buffer) Set(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = text
}

// Text returns the current contents.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// IsEmpty reports whether the buffer holds no usable text.
func (b *Buffer) IsEmpty() bool {
	return strings.TrimSpace(b.Text()) == ""
}

// Require returns the buffer text, or ErrEmptyNotes when blank.
func (b *Buffer) Require() (string, error) {
	text := b.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyNotes
	}
	return text, nil
}

// WordCount counts whitespace-separated tokens, for the home screen status.
func (b *Buffer) WordCount() int {
	return len(strings.Fields(b.Text()))
}
