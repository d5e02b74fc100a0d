// Package ai abstracts the language model that writes strategy reports.
package ai

import (
	"context"
)

// Provider generates text from a prompt. Implementations must be safe for
// concurrent use; the analysis server shares one provider across requests.
type Provider interface {
	// Name returns the provider name ("gemini", "ollama")
	Name() string

	// Complete performs a single, non-streaming completion
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// HealthCheck verifies provider connectivity
	HealthCheck(ctx context.Context) error

	// Close releases provider resources
	Close() error
}

// ModelLister is implemented by providers that can enumerate their models
type ModelLister interface {
	ListModelNames(ctx context.Context) ([]string, error)
}
