package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/abhisek/studyflow/internal/llm"
	"github.com/abhisek/studyflow/internal/proxy"
	"github.com/abhisek/studyflow/internal/store"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP prompt proxy",
	Long:  "Serves POST /api/prompt so browser or script clients can reach the configured model without holding API keys.",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		provider, err := llm.NewProviderFromEnv(ctx, st)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		fmt.Println("Serving prompt proxy on", addr)
		return proxy.NewServer(provider).Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":3001", "Address to listen on")
}
