// Package gemini implements ai.Provider on the Google Gen AI SDK.
package gemini

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/yildizm/LifeStrat/internal/ai"
)

const (
	providerName = "gemini"

	// DefaultModel is used when the configuration names none
	DefaultModel = "gemini-1.5-flash"
)

// Config holds Gemini-specific configuration
type Config struct {
	APIKey      string        `json:"-"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Timeout     time.Duration `json:"timeout"`

	// BaseURL overrides the API endpoint, empty uses the SDK default
	BaseURL string `json:"base_url,omitempty"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ai.NewConfigurationError(providerName, "api_key", "API key is required (set GEMINI_API_KEY)")
	}
	if c.Model == "" {
		return ai.NewConfigurationError(providerName, "model", "model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return ai.NewConfigurationError(providerName, "temperature", "temperature must be between 0 and 2")
	}
	if c.MaxTokens < 0 {
		return ai.NewConfigurationError(providerName, "max_tokens", "max tokens cannot be negative")
	}
	return nil
}

// FromProviderConfig creates Gemini config from generic provider config.
// The generic BaseURL is the Ollama endpoint and is not carried over.
func FromProviderConfig(pc *ai.ProviderConfig) *Config {
	config := &Config{
		APIKey:      pc.APIKey,
		Model:       pc.Model,
		Temperature: pc.Temperature,
		MaxTokens:   pc.MaxTokens,
		Timeout:     pc.Timeout,
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	return config
}

// Provider implements the AI provider interface for Gemini
type Provider struct {
	config *Config
	client *genai.Client
}

// New creates a Gemini provider. No request is made until Complete.
func New(ctx context.Context, config *Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	cc := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: config.Timeout}
	}
	if config.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeConfiguration, "failed to create client", providerName, err)
	}

	return &Provider{config: config, client: client}, nil
}

// Factory builds a Gemini provider from generic provider config
func Factory(cfg *ai.ProviderConfig) (ai.Provider, error) {
	p, err := New(context.Background(), FromProviderConfig(cfg))
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Register adds the Gemini factory to r
func Register(r *ai.Registry) error {
	return r.Register(providerName, Factory)
}

// Name returns the provider name
func (p *Provider) Name() string {
	return providerName
}

// Model returns the configured model
func (p *Provider) Model() string {
	return p.config.Model
}

// Complete performs a single generateContent call
func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	startTime := time.Now()

	model := req.Model
	if model == "" {
		model = p.config.Model
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.config.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}

	gc := &genai.GenerateContentConfig{}
	if temperature > 0 {
		gc.Temperature = genai.Ptr(float32(temperature))
	}
	if maxTokens > 0 {
		gc.MaxOutputTokens = int32(maxTokens)
	}
	if req.SystemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, model, genai.Text(req.Prompt), gc)
	if err != nil {
		return nil, classify(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return nil, ai.NewProviderError(ai.ErrTypeEmptyResponse, "model returned no text", providerName)
	}

	out := &ai.CompletionResponse{
		Content:   text,
		Model:     model,
		RequestID: req.RequestID,
		CreatedAt: startTime,
	}
	if len(resp.Candidates) > 0 {
		out.FinishReason = strings.ToLower(string(resp.Candidates[0].FinishReason))
	}
	if u := resp.UsageMetadata; u != nil {
		out.Usage = &ai.TokenUsage{
			PromptTokens:     int(u.PromptTokenCount),
			CompletionTokens: int(u.CandidatesTokenCount),
			TotalTokens:      int(u.TotalTokenCount),
		}
	}
	return out, nil
}

// HealthCheck fetches the configured model's metadata
func (p *Provider) HealthCheck(ctx context.Context) error {
	if _, err := p.client.Models.Get(ctx, p.config.Model, nil); err != nil {
		return classify(err)
	}
	return nil
}

// ListModelNames returns the names of the models the API key can use
func (p *Provider) ListModelNames(ctx context.Context) ([]string, error) {
	var names []string
	for model, err := range p.client.Models.All(ctx) {
		if err != nil {
			return nil, classify(err)
		}
		names = append(names, strings.TrimPrefix(model.Name, "models/"))
	}
	return names, nil
}

// Close releases provider resources
func (p *Provider) Close() error {
	return nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		errType := ai.ErrTypeProvider
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			errType = ai.ErrTypeAuthentication
		case http.StatusTooManyRequests:
			errType = ai.ErrTypeRateLimit
		case http.StatusNotFound:
			errType = ai.ErrTypeNotFound
		case http.StatusGatewayTimeout:
			errType = ai.ErrTypeTimeout
		}
		pe := ai.NewProviderErrorWithCause(errType, apiErr.Message, providerName, err)
		pe.StatusCode = apiErr.Code
		return pe
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request timed out", providerName, err)
	}
	return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request failed", providerName, err)
}
