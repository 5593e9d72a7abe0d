package llm

import (
	"encoding/json"
	"fmt"
)

// The model is asked to return pure JSON but is not guaranteed to: replies
// often carry a preamble ("Here are your questions:") or markdown fences.
// These helpers recover the first balanced JSON span from the free text.
// The span is treated as an untrusted external contract: callers validate
// it against a schema (DecodeValidated) before use.

// FirstArray returns the first balanced [...] span in text.
func FirstArray(text string) (json.RawMessage, error) {
	return firstBalanced(text, '[', ']')
}

// FirstObject returns the first balanced {...} span in text.
func FirstObject(text string) (json.RawMessage, error) {
	return firstBalanced(text, '{', '}')
}

// firstBalanced scans for open, then tracks nesting depth until the
// matching close. JSON strings and escape sequences are honored so
// brackets inside string values don't terminate the span early.
func firstBalanced(text string, open, close byte) (json.RawMessage, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
		c := text[i]

		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case open:
			if start < 0 {
				start = i
			}
			depth++
		case close:
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return json.RawMessage(text[start : i+1]), nil
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	if start < 0 {
		return nil, &ErrParse{Text: text, Err: fmt.Errorf("no %c...%c span found", open, close)}
	}
	return nil, &ErrParse{Text: text, Err: fmt.Errorf("unbalanced %c...%c span", open, close)}
}
