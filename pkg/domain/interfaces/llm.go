package interfaces

import (
	"context"
)

// RelayResponse carries the upstream response exactly as received, so the
// HTTP layer can forward it without reshaping
type RelayResponse struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// LLMRelay defines the interface for forwarding prompts to the upstream
// chat-completion API
type LLMRelay interface {
	// Relay sends the system/user prompt pair upstream and returns the raw
	// upstream status and body
	Relay(ctx context.Context, systemPrompt, userPrompt string) (*RelayResponse, error)

	// IsConfigured reports whether an API key is available
	IsConfigured() bool
}
