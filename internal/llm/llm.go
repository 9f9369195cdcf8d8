package llm

import (
	"context"
	"errors"
)

// Request captures the inputs for a single chat completion.
type Request struct {
	System string
	User   string
	// JSONOnly asks the provider to return a single JSON object.
	JSONOnly bool
}

// Client abstracts chat-completion providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("LLM provider not configured")

// PlaceholderClient is a stub implementation used when no provider is wired.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, req Request) (string, error) {
	_ = ctx
	_ = req
	return "", ErrNotConfigured
}

var _ Client = PlaceholderClient{}
