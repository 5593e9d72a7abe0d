// Package summarize turns the note buffer into a structured study summary.
package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/notes"
)

// Service generates note summaries. Unlike the other generators the reply
// is consumed as plain text, so there is no embedded JSON to extract.
type Service struct {
	provider llm.Provider
}

// NewService creates a summarizer over the given provider.
func NewService(provider llm.Provider) *Service {
	return &Service{provider: provider}
}

// Summarize issues one summary request for the given notes.
// Errors propagate to the caller; there is no fallback content.
func (s *Service) Summarize(ctx context.Context, notesText string) (string, error) {
	if strings.TrimSpace(notesText) == "" {
		return "", notes.ErrEmptyNotes
	}

	ctx = llm.WithPurpose(ctx, "summary")
	resp, err := s.provider.Complete(ctx, llm.Request{
		Prompt: buildPrompt(notesText),
	})
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

func buildPrompt(notesText string) string {
	var b strings.Builder
	b.WriteString(`Please analyze the following study notes and create a comprehensive, well-organized summary. Extract the key topics and concepts, and present them in a clear, structured format with main points highlighted.

Notes:
`)
	b.WriteString(notesText)
	b.WriteString(`

Please provide:
1. Main topics identified
2. Key concepts for each topic
3. Important points to remember
4. Any connections or relationships between concepts

Format the summary with clear headings and bullet points.`)
	return b.String()
}
