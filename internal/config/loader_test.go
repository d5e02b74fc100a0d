package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolatedLoader ignores the real search paths and environment
func isolatedLoader(env map[string]string, paths ...string) *Loader {
	l := NewLoader().WithPaths(paths...)
	l.lookupEnv = func(key string) string { return env[key] }
	return l
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := isolatedLoader(nil).LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.AI.Provider != "gemini" {
		t.Errorf("Expected default AI provider gemini, got %s", cfg.AI.Provider)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "test-config.yaml", `version: "1.0"
service:
  url: "http://analysis.internal:8080"
ai:
  provider: "ollama"
  model: "llama3.2"
  timeout: 60s
output:
  default_format: "markdown"
ui:
  progress_segments: ["one", "two"]
`)

	cfg, err := isolatedLoader(nil).LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Service.URL != "http://analysis.internal:8080" {
		t.Errorf("Expected service url from file, got %s", cfg.Service.URL)
	}
	if cfg.AI.Provider != "ollama" {
		t.Errorf("Expected AI provider ollama, got %s", cfg.AI.Provider)
	}
	if cfg.AI.Timeout != 60*time.Second {
		t.Errorf("Expected AI timeout 60s, got %v", cfg.AI.Timeout)
	}
	if cfg.Output.DefaultFormat != "markdown" {
		t.Errorf("Expected output format markdown, got %s", cfg.Output.DefaultFormat)
	}
	if len(cfg.UI.ProgressSegments) != 2 {
		t.Errorf("Expected 2 progress segments, got %d", len(cfg.UI.ProgressSegments))
	}

	// keys absent from the file keep their defaults
	if !cfg.Output.ShowProfile {
		t.Errorf("Expected show_profile to keep its default")
	}
	if cfg.Server.Port != 5000 {
		t.Errorf("Expected default port 5000, got %d", cfg.Server.Port)
	}
}

func TestLoadConfigPriority(t *testing.T) {
	dir := t.TempDir()
	high := writeConfig(t, dir, "high.yaml", "ai:\n  model: high-model\n")
	low := writeConfig(t, dir, "low.yaml", "ai:\n  model: low-model\n  provider: ollama\n")

	cfg, err := isolatedLoader(nil, high, low).LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.AI.Model != "high-model" {
		t.Errorf("Expected higher priority file to win, got %s", cfg.AI.Model)
	}
	if cfg.AI.Provider != "ollama" {
		t.Errorf("Expected lower priority value to survive, got %s", cfg.AI.Provider)
	}
}

func TestLoadConfigSkipsBrokenSearchPathFile(t *testing.T) {
	dir := t.TempDir()
	broken := writeConfig(t, dir, "broken.yaml", "ai: [unclosed\n")

	var warned []string
	loader := isolatedLoader(nil, broken)
	loader.warn = func(path string, _ error) { warned = append(warned, path) }

	if _, err := loader.LoadConfig(""); err != nil {
		t.Fatalf("Broken search path file should only warn: %v", err)
	}
	if len(warned) != 1 || warned[0] != broken {
		t.Errorf("Expected one warning for %s, got %v", broken, warned)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "invalid-config.yaml", `version: "1.0"
ai:
  provider: "ollama"
output:
  default_format: "json
`)

	if _, err := isolatedLoader(nil).LoadConfig(configPath); err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigValidationFailure(t *testing.T) {
	configPath := writeConfig(t, t.TempDir(), "bad.yaml", "ai:\n  provider: openai\n")

	_, err := isolatedLoader(nil).LoadConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "configuration validation failed") {
		t.Errorf("Expected validation failure, got %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	env := map[string]string{
		"LIFESTRAT_SERVICE_URL":          "http://example.com:9000",
		"LIFESTRAT_AI_PROVIDER":          "ollama",
		"LIFESTRAT_UI_PROGRESS_INTERVAL": "250ms",
		"LIFESTRAT_UI_PROGRESS_SEGMENTS": "a, b ,c",
		"LIFESTRAT_OUTPUT_SHOW_PROFILE":  "false",
		"GEMINI_API_KEY":                 "secret",
		"PORT":                           "8081",
	}

	cfg := DefaultConfig()
	if err := isolatedLoader(env).applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.Service.URL != "http://example.com:9000" {
		t.Errorf("Expected service url override, got %s", cfg.Service.URL)
	}
	if cfg.AI.Provider != "ollama" {
		t.Errorf("Expected AI provider ollama, got %s", cfg.AI.Provider)
	}
	if cfg.AI.APIKey != "secret" {
		t.Errorf("Expected API key from GEMINI_API_KEY")
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("Expected port 8081, got %d", cfg.Server.Port)
	}
	if cfg.UI.ProgressInterval != 250*time.Millisecond {
		t.Errorf("Expected 250ms interval, got %v", cfg.UI.ProgressInterval)
	}
	if cfg.Output.ShowProfile {
		t.Errorf("Expected show_profile to be false")
	}

	expected := []string{"a", "b", "c"}
	if len(cfg.UI.ProgressSegments) != len(expected) {
		t.Fatalf("Expected %d segments, got %d", len(expected), len(cfg.UI.ProgressSegments))
	}
	for i, want := range expected {
		if cfg.UI.ProgressSegments[i] != want {
			t.Errorf("Expected segment %s, got %s", want, cfg.UI.ProgressSegments[i])
		}
	}
}

func TestApplyEnvOverridesPrefixedWins(t *testing.T) {
	env := map[string]string{
		"GEMINI_MODEL":       "from-compat",
		"LIFESTRAT_AI_MODEL": "from-prefixed",
	}

	cfg := DefaultConfig()
	if err := isolatedLoader(env).applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}
	if cfg.AI.Model != "from-prefixed" {
		t.Errorf("Expected LIFESTRAT_AI_MODEL to win, got %s", cfg.AI.Model)
	}
}

func TestApplyEnvOverridesOTLPEndpoint(t *testing.T) {
	cfg := DefaultConfig()
	env := map[string]string{"OTEL_EXPORTER_OTLP_ENDPOINT": "localhost:4318"}
	if err := isolatedLoader(env).applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Endpoint != "localhost:4318" {
		t.Errorf("Expected telemetry enabled for localhost:4318, got %+v", cfg.Telemetry)
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid int", "LIFESTRAT_SERVER_PORT", "not-a-number"},
		{"invalid bool", "LIFESTRAT_OUTPUT_SHOW_PROFILE", "not-a-bool"},
		{"invalid duration", "LIFESTRAT_AI_TIMEOUT", "not-a-duration"},
		{"invalid float", "LIFESTRAT_AI_TEMPERATURE", "warm"},
		{"invalid compat port", "PORT", "http"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := isolatedLoader(map[string]string{tt.envVar: tt.value}).applyEnvOverrides(cfg)
			if err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.AI.Model = "saved-model"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := isolatedLoader(nil).LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if loaded.AI.Model != "saved-model" {
		t.Errorf("Expected saved-model, got %s", loaded.AI.Model)
	}
}

func TestParseDuration(t *testing.T) {
	var duration time.Duration

	if err := parseDuration("30s", &duration); err != nil {
		t.Errorf("Failed to parse duration: %v", err)
	}
	if duration != 30*time.Second {
		t.Errorf("Expected 30s, got %v", duration)
	}

	if err := parseDuration("invalid", &duration); err == nil {
		t.Error("Expected error for invalid duration, but got none")
	}
}

func TestParseInt(t *testing.T) {
	var value int

	if err := parseInt("42", &value); err != nil {
		t.Errorf("Failed to parse int: %v", err)
	}
	if value != 42 {
		t.Errorf("Expected 42, got %d", value)
	}

	if err := parseInt("not-a-number", &value); err == nil {
		t.Error("Expected error for invalid int, but got none")
	}
}

func TestParseBool(t *testing.T) {
	var value bool

	if err := parseBool("true", &value); err != nil {
		t.Errorf("Failed to parse bool: %v", err)
	}
	if !value {
		t.Errorf("Expected true, got %v", value)
	}

	if err := parseBool("not-a-bool", &value); err == nil {
		t.Error("Expected error for invalid bool, but got none")
	}
}

func TestFileExists(t *testing.T) {
	if fileExists("/path/that/does/not/exist") {
		t.Error("Expected file to not exist, but fileExists returned true")
	}

	tempFile := filepath.Join(t.TempDir(), "test-file")
	if err := os.WriteFile(tempFile, []byte("test"), 0o600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if !fileExists(tempFile) {
		t.Error("Expected file to exist, but fileExists returned false")
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid yaml file",
			path:    "config.yaml",
			wantErr: false,
		},
		{
			name:    "valid yml file",
			path:    "config.yml",
			wantErr: false,
		},
		{
			name:    "path traversal attempt",
			path:    "../../../etc/passwd",
			wantErr: true,
			errMsg:  "path traversal not allowed",
		},
		{
			name:    "non-yaml file",
			path:    "config.txt",
			wantErr: true,
			errMsg:  "config file must have .yaml or .yml extension",
		},
		{
			name:    "system file access",
			path:    "/etc/passwd.yaml",
			wantErr: true,
			errMsg:  "access to system files not allowed",
		},
		{
			name:    "proc filesystem access",
			path:    "/proc/version.yaml",
			wantErr: true,
			errMsg:  "access to system files not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}
