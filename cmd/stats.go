package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/studyflow/internal/progress"
	"github.com/abhisek/studyflow/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		svc := progress.NewService(st)
		rec := svc.Record(context.Background())
		sum := progress.Summarize(rec, progress.DefaultRecentLimit)

		fmt.Println("Study Progress")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("Quizzes taken:    %d (avg %.1f%%)\n", sum.TotalQuizzes, sum.AvgQuizScore)
		fmt.Printf("Mock tests taken: %d (avg %.1f%%)\n", sum.TotalTests, sum.AvgTestScore)
		fmt.Printf("Flashcard decks:  %d\n", sum.TotalFlashcards)
		fmt.Printf("Study streak:     %d day(s)\n", sum.Streak)

		if len(sum.Recent) == 0 {
			fmt.Println("\nNo attempts recorded yet.")
			return nil
		}

		fmt.Println("\nRecent Activity")
		fmt.Println(strings.Repeat("─", 48))
		for _, r := range sum.Recent {
			label := "quiz"
			if r.Kind == progress.KindTest {
				label = "test"
			}
			fmt.Printf("%s  %-5s %6.1f%%\n",
				r.Attempt.Date.Local().Format("2006-01-02 15:04"), label, r.Attempt.Percentage)
		}
		return nil
	},
}
