package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version   string          `yaml:"version" json:"version"`
	Service   ServiceConfig   `yaml:"service" json:"service"`
	Server    ServerConfig    `yaml:"server" json:"server"`
	AI        AIConfig        `yaml:"ai" json:"ai"`
	UI        UIConfig        `yaml:"ui" json:"ui"`
	Output    OutputConfig    `yaml:"output" json:"output"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	Telemetry TelemetryConfig `yaml:"telemetry" json:"telemetry"`
}

// ServiceConfig configures how the wizard reaches the analysis service
type ServiceConfig struct {
	URL     string        `yaml:"url" json:"url"`         // base URL, /analyze is appended
	Timeout time.Duration `yaml:"timeout" json:"timeout"` // whole-request timeout
}

// ServerConfig configures the analysis service started by "serve"
type ServerConfig struct {
	Host            string        `yaml:"host" json:"host"`
	Port            int           `yaml:"port" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// AIConfig configures the LLM used by the analysis service
type AIConfig struct {
	Provider    string        `yaml:"provider" json:"provider"`       // gemini|ollama
	Model       string        `yaml:"model" json:"model"`             // model name/identifier
	Endpoint    string        `yaml:"endpoint" json:"endpoint"`       // API endpoint URL (ollama)
	APIKey      string        `yaml:"api_key" json:"api_key"`         // API key (gemini)
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`         // request timeout
	Temperature float64       `yaml:"temperature" json:"temperature"` // sampling temperature
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens"`   // response token limit, 0 = provider default
}

// UIConfig configures the interactive wizard
type UIConfig struct {
	ProgressInterval time.Duration `yaml:"progress_interval" json:"progress_interval"` // one segment per interval
	ProgressSegments []string      `yaml:"progress_segments" json:"progress_segments"`
	Theme            string        `yaml:"theme" json:"theme"` // default|mono
}

// OutputConfig configures report rendering outside the wizard
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|markdown|pretty|html|json
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	ShowProfile   bool   `yaml:"show_profile" json:"show_profile"`     // append the profile summary
	Width         int    `yaml:"width" json:"width"`                   // word wrap for pretty output
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level"`             // debug|info|warn|error
	File        string `yaml:"file" json:"file"`               // empty = stderr (discarded in the wizard)
	Development bool   `yaml:"development" json:"development"` // console encoder
}

// TelemetryConfig configures OpenTelemetry tracing
type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" json:"enabled"`
	Endpoint    string `yaml:"endpoint" json:"endpoint"` // host:port of an OTLP/HTTP collector
	ServiceName string `yaml:"service_name" json:"service_name"`
	Insecure    bool   `yaml:"insecure" json:"insecure"`
}

// DefaultProgressSegments are the loading steps shown while the service works
var DefaultProgressSegments = []string{
	"Calculating numerology profile",
	"Calculating nine star ki profile",
	"Analyzing strategy",
	"Writing report",
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	segments := make([]string, len(DefaultProgressSegments))
	copy(segments, DefaultProgressSegments)

	return &Config{
		Version: "1.0",
		Service: ServiceConfig{
			URL:     "http://localhost:5000",
			Timeout: 120 * time.Second,
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5000,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    150 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		AI: AIConfig{
			Provider:    "gemini",
			Model:       "gemini-1.5-flash",
			Endpoint:    "http://localhost:11434",
			Timeout:     120 * time.Second,
			Temperature: 0.7,
		},
		UI: UIConfig{
			ProgressInterval: time.Second,
			ProgressSegments: segments,
			Theme:            "default",
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			ShowProfile:   true,
			Width:         80,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "lifestrat",
			Insecure:    true,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServiceConfig(); err != nil {
		return err
	}
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateAIConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateLoggingConfig(); err != nil {
		return err
	}
	return nil
}

// validateServiceConfig validates the analysis service client configuration
func (c *Config) validateServiceConfig() error {
	if c.Service.URL == "" {
		return fmt.Errorf("service.url is required")
	}
	u, err := url.Parse(c.Service.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid service url: %s", c.Service.URL)
	}
	if c.Service.Timeout < 0 {
		return fmt.Errorf("service.timeout must be non-negative")
	}
	return nil
}

// validateServerConfig validates the listening side
func (c *Config) validateServerConfig() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}
	return nil
}

// validateAIConfig validates AI-related configuration
func (c *Config) validateAIConfig() error {
	if c.AI.Provider != "" {
		validProviders := map[string]bool{
			"gemini": true,
			"ollama": true,
		}
		if !validProviders[c.AI.Provider] {
			return fmt.Errorf("invalid AI provider: %s (must be one of: gemini, ollama)", c.AI.Provider)
		}
	}
	if c.AI.Temperature < 0 || c.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be between 0 and 2")
	}
	if c.AI.MaxTokens < 0 {
		return fmt.Errorf("ai.max_tokens must be non-negative")
	}
	return nil
}

// validateUIConfig validates wizard settings
func (c *Config) validateUIConfig() error {
	if c.UI.ProgressInterval <= 0 {
		return fmt.Errorf("ui.progress_interval must be positive")
	}
	if len(c.UI.ProgressSegments) == 0 {
		return fmt.Errorf("ui.progress_segments must not be empty")
	}
	if c.UI.Theme != "" && c.UI.Theme != "default" && c.UI.Theme != "mono" {
		return fmt.Errorf("invalid theme: %s (must be one of: default, mono)", c.UI.Theme)
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"text":     true,
			"markdown": true,
			"pretty":   true,
			"html":     true,
			"json":     true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, markdown, pretty, html, json)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	if c.Output.Width < 0 {
		return fmt.Errorf("output.width must be non-negative")
	}
	return nil
}

// validateLoggingConfig validates logging configuration
func (c *Config) validateLoggingConfig() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.Logging.Level)
	}
}

// ListenAddr returns host:port for the analysis service
func (c *Config) ListenAddr() string {
	return c.Server.ListenAddr()
}

// ListenAddr returns host:port
func (s ServerConfig) ListenAddr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
