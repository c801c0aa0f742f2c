package llm

import (
	"context"
)

// Message is a chat message sent to the model. Images carries image URLs for
// vision turns; only the turn that attached them includes them.
type Message struct {
	Role    string
	Content string
	Images  []string
}

// GenerateRequest is a single generation call.
type GenerateRequest struct {
	Model    string
	Messages []Message
}

// StreamResponse is one chunk of a streamed generation.
type StreamResponse struct {
	Content string
	Done    bool
	Error   string
}

// Provider defines the interface for interacting with a language model.
// GenerateStream closes ch when the stream ends; a canceled ctx stops it.
type Provider interface {
	GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- StreamResponse) error
}
