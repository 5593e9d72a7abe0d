// Package proxy serves the HTTP prompt endpoint so browser or script
// clients can reach the configured model without holding API keys.
package proxy

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/studyflow/internal/llm"
)

// promptRequest is the POST /api/prompt body. Type is an informational
// label carried into the request log; it never changes behavior.
type promptRequest struct {
	Prompt string `json:"prompt" binding:"required"`
	Type   string `json:"type"`
}

// Server is the stateless prompt proxy. Each request maps to exactly one
// outbound model call; nothing is cached or retried.
type Server struct {
	provider llm.Provider
	engine   *gin.Engine
}

// NewServer builds the proxy around the given provider.
func NewServer(provider llm.Provider) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{provider: provider}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.HandleMethodNotAllowed = true
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})
	engine.POST("/api/prompt", s.handlePrompt)

	s.engine = engine
	return s
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handlePrompt(c *gin.Context) {
	var req promptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: prompt is required"})
		return
	}

	ctx := llm.WithPurpose(c.Request.Context(), purposeLabel(req.Type))
	resp, err := s.provider.Complete(ctx, llm.Request{Prompt: req.Prompt})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": resp.Text})
}

func purposeLabel(t string) string {
	if t == "" {
		return "proxy"
	}
	return "proxy:" + t
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
