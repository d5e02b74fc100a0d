package ai

import (
	"time"

	"github.com/yildizm/LifeStrat/internal/config"
)

// CompletionRequest represents a request for text completion
type CompletionRequest struct {
	// Prompt is the user prompt
	Prompt string `json:"prompt"`

	// SystemPrompt provides system-level instructions
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Model overrides the provider's configured model
	Model string `json:"model,omitempty"`

	// MaxTokens limits the response length, 0 means provider default
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness, 0 means provider default
	Temperature float64 `json:"temperature,omitempty"`

	RequestID string `json:"request_id,omitempty"`
}

// Validate checks the request before it is sent
func (r *CompletionRequest) Validate() error {
	if r.Prompt == "" {
		return NewValidationError("prompt", r.Prompt, "prompt cannot be empty")
	}
	if r.MaxTokens < 0 {
		return NewValidationError("max_tokens", "", "max_tokens cannot be negative")
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		return NewValidationError("temperature", "", "temperature must be between 0 and 2")
	}
	return nil
}

// CompletionResponse represents the response from a completion request
type CompletionResponse struct {
	// Content is the generated text
	Content string `json:"content"`

	// FinishReason indicates why the completion finished
	FinishReason string `json:"finish_reason"`

	Usage *TokenUsage `json:"usage,omitempty"`

	// Model indicates which model was used
	Model string `json:"model"`

	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenUsage tracks token consumption
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderConfig contains configuration for a provider
type ProviderConfig struct {
	// Type selects the factory ("gemini", "ollama")
	Type string `json:"type"`

	// APIKey for authentication
	APIKey string `json:"api_key,omitempty"`

	// BaseURL for the API endpoint
	BaseURL string `json:"base_url,omitempty"`

	// Model is the default model
	Model string `json:"model,omitempty"`

	// MaxTokens is the default response limit
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature is the default sampling temperature
	Temperature float64 `json:"temperature,omitempty"`

	// Timeout for requests
	Timeout time.Duration `json:"timeout,omitempty"`
}

// FromConfig converts the ai section of the application config
func FromConfig(c config.AIConfig) *ProviderConfig {
	return &ProviderConfig{
		Type:        c.Provider,
		APIKey:      c.APIKey,
		BaseURL:     c.Endpoint,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		Timeout:     c.Timeout,
	}
}

// Validate checks the fields every provider needs
func (c *ProviderConfig) Validate() error {
	if c.Type == "" {
		return NewValidationError("type", c.Type, "type cannot be empty")
	}
	if c.Timeout < 0 {
		return NewValidationError("timeout", c.Timeout.String(), "timeout cannot be negative")
	}
	if c.MaxTokens < 0 {
		return NewValidationError("max_tokens", "", "max_tokens cannot be negative")
	}
	return nil
}
