package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/studyflow/internal/store"
	"github.com/spf13/cobra"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the local LLM request log",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		rows, err := st.RecentRequests(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("query request log: %w", err)
		}
		if len(rows) == 0 {
			fmt.Println("No LLM requests logged yet.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-12s  %-24s  %6s  %6s  %7s  %s\n",
			"Request", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 120))

		for _, r := range rows {
			if purpose != "" && r.Purpose != purpose {
				continue
			}
			ok := "✓"
			if !r.Success {
				ok = "✗"
			}
			model := r.Model
			if len(model) > 24 {
				model = model[:24]
			}
			fmt.Printf("%-36s  %-19s  %-12s  %-24s  %6d  %6d  %7d  %s\n",
				r.RequestID,
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				r.Purpose,
				model,
				r.InputTokens,
				r.OutputTokens,
				r.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		from := time.Now().AddDate(0, 0, -days)
		stats, err := st.RequestStatsSince(context.Background(), from)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if stats.Total == 0 {
			fmt.Println("No LLM usage recorded in this window.")
			return nil
		}

		fmt.Printf("LLM usage, last %d day(s)\n", days)
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("Requests:      %d (%d failed)\n", stats.Total, stats.Failed)
		fmt.Printf("Input tokens:  %d\n", stats.InputTokens)
		fmt.Printf("Output tokens: %d\n", stats.OutputTokens)
		fmt.Printf("Total tokens:  %d\n", stats.InputTokens+stats.OutputTokens)
		return nil
	},
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. summary, quiz, grading)")
	llmStatsCmd.Flags().Int("days", 30, "Window size in days")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
