// Package llm provides the text-generation client used for narration
// and the assist prompts. The client is an explicitly constructed,
// injected collaborator; callers must tolerate it being unavailable and
// degrade gracefully.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when no client is configured. Callers
// treat this as a soft failure: reports are produced without narration.
var ErrUnavailable = errors.New("LLM client not configured. Please set CRMKIT_LLM_API_KEY.")

// Request describes a single text-generation call
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Client generates text from prompts. Implementations must be safe for
// concurrent use.
type Client interface {
	// Generate returns the generated text for the request
	Generate(ctx context.Context, req Request) (string, error)

	// Available reports whether the client is configured and usable
	Available() bool
}

// disabled is the no-op client used when no API key is configured
type disabled struct{}

// Disabled returns a client that is never available. It stands in for a
// real client so callers can hold a non-nil Client unconditionally.
func Disabled() Client {
	return disabled{}
}

func (disabled) Generate(ctx context.Context, req Request) (string, error) {
	return "", ErrUnavailable
}

func (disabled) Available() bool {
	return false
}
