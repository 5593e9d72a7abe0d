package llm

import (
	"context"
	"fmt"
)

// NewProvider creates a Provider from configuration, wrapped with request
// logging when a logger is given. There is deliberately no retry layer:
// every StudyFlow action is a single best-effort call that the user
// re-triggers explicitly on failure.
func NewProvider(ctx context.Context, cfg Config, log RequestLogger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if log != nil {
		base = WithLogging(base, log)
	}
	return base, nil
}

// NewProviderFromEnv builds a Provider from STUDYFLOW_* env vars, falling
// back to standard API key discovery (ANTHROPIC_API_KEY and friends).
func NewProviderFromEnv(ctx context.Context, log RequestLogger) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, log)
}

// Unavailable returns a Provider that fails every call with err. It stands
// in when no real provider is configured, so AI actions surface the
// configuration problem instead of crashing, and the quiz can still fall
// back to its built-in questions.
func Unavailable(err error) Provider {
	return unavailableProvider{err: err}
}

type unavailableProvider struct{ err error }

func (u unavailableProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	return nil, &ErrRequest{Err: u.err}
}

func (u unavailableProvider) ModelID() string { return "unconfigured" }
