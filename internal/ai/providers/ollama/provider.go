// Package ollama implements ai.Provider against a local Ollama server.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yildizm/LifeStrat/internal/ai"
)

// Provider implements the AI provider interface for Ollama
type Provider struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

// New creates a new Ollama provider instance
func New(config *Config) (*Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, ai.NewConfigurationError(providerName, "base_url", "invalid base URL: "+err.Error())
	}

	return &Provider{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
	}, nil
}

// Name returns the provider name
func (p *Provider) Name() string {
	return providerName
}

// Model returns the default model
func (p *Provider) Model() string {
	return p.config.DefaultModel
}

// Complete performs text completion
func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	startTime := time.Now()

	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}

	options := &Options{
		Temperature: req.Temperature,
		NumPredict:  req.MaxTokens,
	}
	if options.Temperature == 0 {
		options.Temperature = p.config.DefaultTemperature
	}
	if options.NumPredict == 0 {
		options.NumPredict = p.config.NumPredict
	}

	resp, err := p.generate(ctx, &GenerateRequest{
		Model:   model,
		Prompt:  req.Prompt,
		System:  req.SystemPrompt,
		Stream:  false,
		Options: options,
	})
	if err != nil {
		return nil, err
	}

	finish := resp.DoneReason
	if finish == "" {
		finish = "stop"
	}

	return &ai.CompletionResponse{
		Content:      resp.Response,
		FinishReason: finish,
		Usage: &ai.TokenUsage{
			PromptTokens:     resp.PromptEvalCount,
			CompletionTokens: resp.EvalCount,
			TotalTokens:      resp.PromptEvalCount + resp.EvalCount,
		},
		Model:     resp.Model,
		RequestID: req.RequestID,
		CreatedAt: startTime,
	}, nil
}

// Close cleans up provider resources
func (p *Provider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// HealthCheck verifies the server answers /api/tags
func (p *Provider) HealthCheck(ctx context.Context) error {
	_, err := p.ListModels(ctx)
	return err
}

// ListModels returns the locally installed models
func (p *Provider) ListModels(ctx context.Context) ([]Model, error) {
	endpoint := p.baseURL.JoinPath("/api/tags")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to create request", providerName, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		pe := ai.NewProviderError(ai.ErrTypeProvider, fmt.Sprintf("list models failed with status %d", resp.StatusCode), providerName)
		pe.StatusCode = resp.StatusCode
		return nil, pe
	}

	var tagsResp TagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tagsResp); err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to decode response", providerName, err)
	}

	return tagsResp.Models, nil
}

// IsModelAvailable checks if a model is installed, with or without a tag
func (p *Provider) IsModelAvailable(ctx context.Context, modelName string) (bool, error) {
	models, err := p.ListModels(ctx)
	if err != nil {
		return false, err
	}

	for _, model := range models {
		if model.Name == modelName || strings.HasPrefix(model.Name, modelName+":") {
			return true, nil
		}
	}

	return false, nil
}

func (p *Provider) generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	endpoint := p.baseURL.JoinPath("/api/generate")

	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to marshal request", providerName, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to create request", providerName, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, transportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		message := fmt.Sprintf("request failed with status %d", resp.StatusCode)
		var errorResp ErrorResponse
		if json.Unmarshal(body, &errorResp) == nil && errorResp.Error != "" {
			message = errorResp.Error
		}
		pe := ai.NewProviderError(ai.ErrTypeProvider, message, providerName)
		pe.StatusCode = resp.StatusCode
		return nil, pe
	}

	var result GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, ai.NewProviderErrorWithCause(ai.ErrTypeInternal, "failed to decode response", providerName, err)
	}

	if strings.TrimSpace(result.Response) == "" {
		return nil, ai.NewProviderError(ai.ErrTypeEmptyResponse, "model returned no text", providerName)
	}

	return &result, nil
}

func transportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request timed out", providerName, err)
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ai.NewProviderErrorWithCause(ai.ErrTypeTimeout, "request timed out", providerName, err)
	}
	return ai.NewProviderErrorWithCause(ai.ErrTypeNetwork, "request failed", providerName, err)
}

// ListModelNames returns the installed model names
func (p *Provider) ListModelNames(ctx context.Context) ([]string, error) {
	models, err := p.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	return names, nil
}
