package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yildizm/LifeStrat/internal/ai"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := New(context.Background(), &Config{
		APIKey:      "test-key",
		Model:       DefaultModel,
		Temperature: 0.7,
		BaseURL:     server.URL,
	})
	require.NoError(t, err)
	return p
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		field   string
		wantErr bool
	}{
		{"valid", Config{APIKey: "k", Model: DefaultModel}, "", false},
		{"missing key", Config{Model: DefaultModel}, "api_key", true},
		{"missing model", Config{APIKey: "k"}, "model", true},
		{"temperature", Config{APIKey: "k", Model: DefaultModel, Temperature: 2.1}, "temperature", true},
		{"max tokens", Config{APIKey: "k", Model: DefaultModel, MaxTokens: -1}, "max_tokens", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var ce *ai.ConfigurationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestFromProviderConfig(t *testing.T) {
	c := FromProviderConfig(&ai.ProviderConfig{Type: "gemini", APIKey: "k", BaseURL: "http://localhost:11434"})

	assert.Equal(t, DefaultModel, c.Model)
	assert.Equal(t, "k", c.APIKey)
	assert.Empty(t, c.BaseURL)
}

func TestProvider_Complete(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, ":generateContent"), r.URL.Path)
		assert.Contains(t, r.URL.Path, DefaultModel)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "systemInstruction")
		assert.Contains(t, body, "contents")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "【総合運】\n- 良好\n---"}]},
				"finishReason": "STOP"
			}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 8, "totalTokenCount": 20}
		}`))
	})

	resp, err := p.Complete(context.Background(), &ai.CompletionRequest{
		Prompt:       "analyze",
		SystemPrompt: "You are a strategist.",
		RequestID:    "r1",
	})
	require.NoError(t, err)

	assert.Equal(t, "【総合運】\n- 良好\n---", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, DefaultModel, resp.Model)
	assert.Equal(t, "r1", resp.RequestID)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 20, resp.Usage.TotalTokens)
}

func TestProvider_CompleteEmptyText(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates": [{"finishReason": "SAFETY"}]}`))
	})

	_, err := p.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
	assert.True(t, errors.Is(err, &ai.ProviderError{Type: ai.ErrTypeEmptyResponse}), "got %v", err)
}

func TestProvider_CompleteAPIErrors(t *testing.T) {
	tests := []struct {
		status int
		want   ai.ErrorType
	}{
		{http.StatusUnauthorized, ai.ErrTypeAuthentication},
		{http.StatusForbidden, ai.ErrTypeAuthentication},
		{http.StatusTooManyRequests, ai.ErrTypeRateLimit},
		{http.StatusNotFound, ai.ErrTypeNotFound},
		{http.StatusInternalServerError, ai.ErrTypeProvider},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"code": tt.status, "message": "upstream says no", "status": "X"},
				})
			})

			_, err := p.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
			var pe *ai.ProviderError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tt.want, pe.Type)
			assert.Equal(t, tt.status, pe.StatusCode)
			assert.Equal(t, "upstream says no", pe.Message)
		})
	}
}

func TestProvider_CompleteValidates(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := p.Complete(context.Background(), &ai.CompletionRequest{})
	assert.True(t, ai.IsValidationError(err))
}

func TestRegister(t *testing.T) {
	registry := ai.NewRegistry()
	require.NoError(t, Register(registry))

	_, err := registry.Create(&ai.ProviderConfig{Type: "gemini"})
	assert.True(t, ai.IsConfigurationError(err), "missing api key should be a configuration error, got %v", err)

	p, err := registry.Create(&ai.ProviderConfig{Type: "gemini", APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())
}
