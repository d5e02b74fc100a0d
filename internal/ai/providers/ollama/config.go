package ollama

import (
	"strings"
	"time"

	"github.com/yildizm/LifeStrat/internal/ai"
)

// Config holds Ollama-specific configuration
type Config struct {
	// BaseURL is the Ollama API endpoint
	BaseURL string `json:"base_url"`

	// DefaultModel is used when a request names none
	DefaultModel string `json:"default_model"`

	// Timeout for HTTP requests
	Timeout time.Duration `json:"timeout"`

	// NumPredict limits generated tokens, 0 leaves the server default
	NumPredict int `json:"num_predict"`

	DefaultTemperature float64 `json:"default_temperature"`
}

// DefaultConfig returns a default Ollama configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:            "http://localhost:11434",
		DefaultModel:       "llama3",
		Timeout:            120 * time.Second,
		DefaultTemperature: 0.7,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ai.NewConfigurationError(providerName, "base_url", "base URL is required")
	}

	if c.DefaultModel == "" {
		return ai.NewConfigurationError(providerName, "default_model", "default model is required")
	}

	if c.Timeout <= 0 {
		return ai.NewConfigurationError(providerName, "timeout", "timeout must be positive")
	}

	if c.NumPredict < 0 {
		return ai.NewConfigurationError(providerName, "num_predict", "num_predict cannot be negative")
	}

	if c.DefaultTemperature < 0 || c.DefaultTemperature > 2 {
		return ai.NewConfigurationError(providerName, "default_temperature", "temperature must be between 0 and 2")
	}

	return nil
}

// FromProviderConfig creates Ollama config from generic provider config.
// Gemini model names are not valid here, so a "gemini-" model keeps the
// Ollama default.
func FromProviderConfig(pc *ai.ProviderConfig) *Config {
	config := DefaultConfig()

	if pc.BaseURL != "" {
		config.BaseURL = pc.BaseURL
	}

	if pc.Model != "" && !strings.HasPrefix(pc.Model, "gemini-") {
		config.DefaultModel = pc.Model
	}

	if pc.MaxTokens > 0 {
		config.NumPredict = pc.MaxTokens
	}

	if pc.Temperature > 0 {
		config.DefaultTemperature = pc.Temperature
	}

	if pc.Timeout > 0 {
		config.Timeout = pc.Timeout
	}

	return config
}
