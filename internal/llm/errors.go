package llm

import "fmt"

// ErrRequest indicates the transport failed: the provider could not be
// reached or answered with a non-2xx status.
type ErrRequest struct {
	StatusCode int
	Err        error
}

func (e *ErrRequest) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("LLM request failed (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("LLM request failed: %v", e.Err)
}

func (e *ErrRequest) Unwrap() error { return e.Err }

// ErrUpstream indicates the provider answered but the reply body was
// missing or malformed (no text content).
type ErrUpstream struct {
	Err error
}

func (e *ErrUpstream) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed LLM reply: %v", e.Err)
	}
	return "malformed LLM reply"
}

func (e *ErrUpstream) Unwrap() error { return e.Err }

// ErrParse indicates the reply text did not contain a parseable structured
// payload, or the payload failed schema validation.
type ErrParse struct {
	Text string
	Err  error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("unparseable LLM reply: %v", e.Err)
}

func (e *ErrParse) Unwrap() error { return e.Err }
