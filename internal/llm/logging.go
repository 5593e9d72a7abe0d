package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// RequestLogEntry captures one LLM call for the local request log.
type RequestLogEntry struct {
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestLogger persists request log entries. Implemented by the store.
type RequestLogger interface {
	AppendRequest(ctx context.Context, entry RequestLogEntry) error
}

// LoggingProvider is a decorator that records every LLM call.
type LoggingProvider struct {
	inner Provider
	log   RequestLogger
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, log RequestLogger) Provider {
	return &LoggingProvider{inner: p, log: log}
}

func (l *LoggingProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Complete(ctx, req)

	entry := RequestLogEntry{
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		entry.Model = resp.Model
		entry.InputTokens = resp.Usage.InputTokens
		entry.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		entry.ErrorMessage = err.Error()
	}

	// Log the entry but never fail the call if logging fails.
	if logErr := l.log.AppendRequest(ctx, entry); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
