package llm

import "context"

// Provider is the core abstraction for LLM interaction. Consumers call
// Complete with a Request and receive the model's plain-text reply.
// Structured payloads (flashcards, quiz questions, grades) are embedded
// in the text and recovered with the extract helpers.
type Provider interface {
	// Complete sends a prompt to the LLM and returns its reply.
	// One best-effort call: no retries, no rate limiting.
	Complete(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Empty for most StudyFlow prompts; the
	// format instructions live in the user message, matching the contract
	// the proxy exposes to browser clients.
	System string

	// Prompt is the user message. Always a single turn.
	Prompt string

	// MaxTokens is the maximum number of tokens in the reply.
	// When 0 the provider default (DefaultMaxTokens) applies.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// DefaultMaxTokens is the output ceiling applied when a request does not
// set its own.
const DefaultMaxTokens = 4096

// Response holds the LLM's output.
type Response struct {
	// Text is the raw reply. Not guaranteed to be pure JSON even when the
	// prompt asked for it.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// maxTokens resolves the effective output ceiling for a request.
func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return DefaultMaxTokens
}
