package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/studyflow/internal/app"
	"github.com/abhisek/studyflow/internal/flashcards"
	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/mocktest"
	"github.com/abhisek/studyflow/internal/notes"
	"github.com/abhisek/studyflow/internal/progress"
	"github.com/abhisek/studyflow/internal/quiz"
	"github.com/abhisek/studyflow/internal/store"
	"github.com/abhisek/studyflow/internal/summarize"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	buf := notes.NewBuffer()
	if path, _ := cmd.Flags().GetString("notes"); path != "" {
		text, err := notes.LoadFile(path)
		if err != nil {
			return fmt.Errorf("load notes: %w", err)
		}
		buf.Set(notes.Normalize(text))
	}

	provider, err := llm.NewProviderFromEnv(ctx, st)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI features will fail; the quiz falls back to built-in questions.")
		provider = llm.Unavailable(err)
	}

	prog := progress.NewService(st)
	opts := app.Options{
		Notes:      buf,
		Summarizer: summarize.NewService(provider),
		Flashcards: flashcards.NewService(provider, st, prog),
		Quiz:       quiz.NewService(provider, prog),
		MockGen:    mocktest.NewGenerator(provider),
		Grader:     mocktest.NewGrader(provider, prog),
		Progress:   prog,
		KV:         st,
	}

	return app.Run(opts)
}
