package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.lifestrat.yaml",               // Project-specific config (highest priority)
	"~/.config/lifestrat/config.yaml", // User config
	"/etc/lifestrat/config.yaml",      // System config (lowest priority)
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	lookupEnv   func(string) string
	warn        func(path string, err error)
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		lookupEnv:   os.Getenv,
		warn: func(path string, err error) {
			fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", path, err)
		},
	}
}

// WithPaths replaces the search paths, highest priority first
func (l *Loader) WithPaths(paths ...string) *Loader {
	l.configPaths = paths
	return l
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables
// 3. ./.lifestrat.yaml
// 4. ~/.config/lifestrat/config.yaml
// 5. /etc/lifestrat/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				l.warn(expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file over the existing config. Keys absent
// from the file keep their current value.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Service Config
		"LIFESTRAT_SERVICE_URL":     func(v string) error { config.Service.URL = v; return nil },
		"LIFESTRAT_SERVICE_TIMEOUT": func(v string) error { return parseDuration(v, &config.Service.Timeout) },

		// Server Config
		"LIFESTRAT_SERVER_HOST": func(v string) error { config.Server.Host = v; return nil },
		"LIFESTRAT_SERVER_PORT": func(v string) error { return parseInt(v, &config.Server.Port) },

		// AI Config
		"LIFESTRAT_AI_PROVIDER":    func(v string) error { config.AI.Provider = v; return nil },
		"LIFESTRAT_AI_MODEL":       func(v string) error { config.AI.Model = v; return nil },
		"LIFESTRAT_AI_ENDPOINT":    func(v string) error { config.AI.Endpoint = v; return nil },
		"LIFESTRAT_AI_API_KEY":     func(v string) error { config.AI.APIKey = v; return nil },
		"LIFESTRAT_AI_TIMEOUT":     func(v string) error { return parseDuration(v, &config.AI.Timeout) },
		"LIFESTRAT_AI_TEMPERATURE": func(v string) error { return parseFloat(v, &config.AI.Temperature) },

		// UI Config
		"LIFESTRAT_UI_PROGRESS_INTERVAL": func(v string) error { return parseDuration(v, &config.UI.ProgressInterval) },
		"LIFESTRAT_UI_THEME":             func(v string) error { config.UI.Theme = v; return nil },

		// Output Config
		"LIFESTRAT_OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"LIFESTRAT_OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"LIFESTRAT_OUTPUT_SHOW_PROFILE":   func(v string) error { return parseBool(v, &config.Output.ShowProfile) },

		// Logging Config
		"LIFESTRAT_LOGGING_LEVEL": func(v string) error { config.Logging.Level = v; return nil },
		"LIFESTRAT_LOGGING_FILE":  func(v string) error { config.Logging.File = v; return nil },

		// Telemetry Config
		"LIFESTRAT_TELEMETRY_ENABLED":  func(v string) error { return parseBool(v, &config.Telemetry.Enabled) },
		"LIFESTRAT_TELEMETRY_ENDPOINT": func(v string) error { config.Telemetry.Endpoint = v; return nil },
	}

	// Names understood by the original deployment; the LIFESTRAT_ ones win
	compatMappings := map[string]func(string) error{
		"GEMINI_API_KEY": func(v string) error { config.AI.APIKey = v; return nil },
		"GEMINI_MODEL":   func(v string) error { config.AI.Model = v; return nil },
		"PORT":           func(v string) error { return parseInt(v, &config.Server.Port) },
		"OTEL_EXPORTER_OTLP_ENDPOINT": func(v string) error {
			config.Telemetry.Enabled = true
			config.Telemetry.Endpoint = v
			return nil
		},
	}

	for _, mappings := range []map[string]func(string) error{compatMappings, envMappings} {
		for envVar, setter := range mappings {
			if value := l.lookupEnv(envVar); value != "" {
				if err := setter(value); err != nil {
					return fmt.Errorf("invalid value for %s: %w", envVar, err)
				}
			}
		}
	}

	if segments := l.lookupEnv("LIFESTRAT_UI_PROGRESS_SEGMENTS"); segments != "" {
		config.UI.ProgressSegments = strings.Split(segments, ",")
		for i, s := range config.UI.ProgressSegments {
			config.UI.ProgressSegments[i] = strings.TrimSpace(s)
		}
	}

	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Save writes the config as YAML, creating parent directories
func Save(config *Config, path string) error {
	if err := validateConfigPath(path); err != nil {
		return fmt.Errorf("invalid config path: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path = expandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(path, data, 0o600)
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(expandPath(cleanPath))
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
