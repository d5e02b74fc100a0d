//go:build integration

package ollama

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yildizm/LifeStrat/internal/ai"
)

// TestOllamaIntegration runs against a real Ollama instance.
// Run with: go test -tags=integration
func TestOllamaIntegration(t *testing.T) {
	config := DefaultConfig()
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		config.BaseURL = host
	}
	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		config.DefaultModel = model
	}

	provider, err := New(config)
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}
	defer func() { _ = provider.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := provider.HealthCheck(ctx); err != nil {
		t.Skipf("Ollama not available - skipping integration test: %v", err)
	}

	available, err := provider.IsModelAvailable(ctx, config.DefaultModel)
	if err != nil {
		t.Fatalf("Failed to check model availability: %v", err)
	}
	if !available {
		t.Skipf("model %s not installed", config.DefaultModel)
	}

	resp, err := provider.Complete(ctx, &ai.CompletionRequest{
		Prompt:      "Reply with a single markdown heading line starting with '## '.",
		Temperature: 0.1,
		MaxTokens:   30,
	})
	if err != nil {
		t.Fatalf("Completion failed: %v", err)
	}

	if resp.Content == "" {
		t.Error("Expected non-empty response content")
	}
	t.Logf("Response: %s", resp.Content)
}
