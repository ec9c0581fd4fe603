// Package llm defines the provider client interface and its adapters.
//
// The trainer treats the LLM provider as an opaque text service: one prompt
// in, one player reply out. Each provider gets its own adapter; callers hold
// the Client interface and never see provider wire formats.
package llm

import "context"

// Request carries one generation call to a provider.
type Request struct {
	// System holds the out-of-band instructions for the simulated player.
	System string
	// Prompt holds the speaker-labeled conversation history.
	Prompt string
}

// Response holds the provider's generated text.
type Response struct {
	Text string
}

// Client generates a player reply from a prompt. Implementations classify
// failures with the internal/errors provider codes so front ends can tell
// recoverable provider trouble from fatal misconfiguration.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}
