package lifeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	defaults "github.com/lifelinehq/lifeline/default"
)

// Config represents the user's lifeline configuration.
type Config struct {
	Version    int              `json:"version"`
	Generation GenerationConfig `json:"generation"`
	Workflow   WorkflowConfig   `json:"workflow"`
}

// GenerationConfig holds settings for the chat-completion API.
type GenerationConfig struct {
	BaseURL     string   `json:"base_url"`
	APIKey      string   `json:"api_key"`
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   int      `json:"max_tokens,omitempty"`
}

// WorkflowConfig holds settings for processing request files.
type WorkflowConfig struct {
	CopyToClipboard *bool `json:"copy_to_clipboard,omitempty"`
	OpenResponse    *bool `json:"open_response,omitempty"`
	// SettleDelayMS is how long to wait after a create event before reading the
	// file, so editors that create then write get their content flushed.
	SettleDelayMS *int `json:"settle_delay_ms,omitempty"`
	// Editor is a command line used to open written responses. When empty,
	// responses are printed to the terminal.
	Editor string `json:"editor,omitempty"`
	// FrontMatter enables "+++" TOML overrides at the top of request files.
	FrontMatter *bool `json:"front_matter,omitempty"`
}

// ConfigDir returns the config directory path.
// Resolution order: $LIFELINE_CONFIG_DIR > $XDG_CONFIG_HOME/lifeline > ~/.config/lifeline
func ConfigDir() string {
	if dir := os.Getenv("LIFELINE_CONFIG_DIR"); dir != "" {
		return dir
	}
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "lifeline")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "lifeline-config")
	}
	return filepath.Join(home, ".config", "lifeline")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// PromptPath returns the custom system prompt file path.
func PromptPath() string {
	return filepath.Join(ConfigDir(), "prompt.md")
}

// DefaultConfig returns the default configuration from the embedded default_config.json.
func DefaultConfig() *Config {
	var cfg Config
	if err := json.Unmarshal(defaults.DefaultConfigJSON, &cfg); err != nil {
		panic("lifeline: invalid embedded default_config.json: " + err.Error())
	}
	return &cfg
}

// LoadConfig loads config from disk or returns defaults if not found.
func LoadConfig() (*Config, error) {
	return LoadConfigFile(ConfigPath())
}

// LoadConfigFile loads config from path, filling missing fields from the defaults.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if cfg.Version == 0 {
		cfg.Version = defaults.Version
	}
	if cfg.Generation.BaseURL == "" {
		cfg.Generation.BaseURL = defaults.Generation.BaseURL
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = defaults.Generation.Model
	}
	if cfg.Generation.Temperature == nil {
		cfg.Generation.Temperature = defaults.Generation.Temperature
	}
	if cfg.Generation.MaxTokens == 0 {
		cfg.Generation.MaxTokens = defaults.Generation.MaxTokens
	}
	if cfg.Workflow.CopyToClipboard == nil {
		cfg.Workflow.CopyToClipboard = defaults.Workflow.CopyToClipboard
	}
	if cfg.Workflow.OpenResponse == nil {
		cfg.Workflow.OpenResponse = defaults.Workflow.OpenResponse
	}
	if cfg.Workflow.SettleDelayMS == nil {
		cfg.Workflow.SettleDelayMS = defaults.Workflow.SettleDelayMS
	}
	if cfg.Workflow.FrontMatter == nil {
		cfg.Workflow.FrontMatter = defaults.Workflow.FrontMatter
	}

	return &cfg, nil
}

// ValidateConfig checks configuration for potential issues and returns warnings.
func ValidateConfig(cfg *Config) []string {
	var warnings []string
	if cfg == nil {
		return warnings
	}
	if ResolveAPIKey(cfg) == "" {
		warnings = append(warnings, "API key is not configured; set LIFELINE_API_KEY or generation.api_key")
	}
	if t := ResolveTemperature(cfg); t < 0 || t > 2 {
		warnings = append(warnings, "temperature "+strconv.FormatFloat(t, 'f', -1, 64)+" is outside the range 0-2")
	}
	if cfg.Workflow.SettleDelayMS != nil && *cfg.Workflow.SettleDelayMS < 0 {
		warnings = append(warnings, "settle_delay_ms is negative; treating as 0")
	}
	return warnings
}

// ResolveBaseURL returns the API base URL.
// Priority: $LIFELINE_BASE_URL env > config value.
func ResolveBaseURL(cfg *Config) string {
	if url := os.Getenv("LIFELINE_BASE_URL"); url != "" {
		return url
	}
	if cfg != nil {
		return cfg.Generation.BaseURL
	}
	return ""
}

// ResolveAPIKey returns the API key.
// Priority: $LIFELINE_API_KEY env > config value.
func ResolveAPIKey(cfg *Config) string {
	if key := os.Getenv("LIFELINE_API_KEY"); key != "" {
		return key
	}
	if cfg != nil {
		return cfg.Generation.APIKey
	}
	return ""
}

// ResolveModel returns the model name.
// Priority: $LIFELINE_MODEL env > config value.
func ResolveModel(cfg *Config) string {
	if model := os.Getenv("LIFELINE_MODEL"); model != "" {
		return model
	}
	if cfg != nil {
		return cfg.Generation.Model
	}
	return ""
}

// ResolveTemperature returns the default sampling temperature.
// Priority: $LIFELINE_TEMPERATURE env (when parseable) > config value > 0.7.
func ResolveTemperature(cfg *Config) float64 {
	if v := os.Getenv("LIFELINE_TEMPERATURE"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			return t
		}
	}
	if cfg != nil && cfg.Generation.Temperature != nil {
		return *cfg.Generation.Temperature
	}
	return 0.7
}

// ResolveEditor returns the command used to open responses.
// Priority: $LIFELINE_EDITOR env > config value.
func ResolveEditor(cfg *Config) string {
	if editor := os.Getenv("LIFELINE_EDITOR"); editor != "" {
		return editor
	}
	if cfg != nil {
		return cfg.Workflow.Editor
	}
	return ""
}

// CopyToClipboardEnabled returns whether responses are copied after being written.
func CopyToClipboardEnabled(cfg *Config) bool {
	if cfg == nil || cfg.Workflow.CopyToClipboard == nil {
		return true // default true
	}
	return *cfg.Workflow.CopyToClipboard
}

// OpenResponseEnabled returns whether responses are opened after being written.
func OpenResponseEnabled(cfg *Config) bool {
	if cfg == nil || cfg.Workflow.OpenResponse == nil {
		return true // default true
	}
	return *cfg.Workflow.OpenResponse
}

// FrontMatterEnabled returns whether request files may carry TOML front matter.
func FrontMatterEnabled(cfg *Config) bool {
	if cfg == nil || cfg.Workflow.FrontMatter == nil {
		return false
	}
	return *cfg.Workflow.FrontMatter
}

// SettleDelay returns the pause between a create event and reading the file.
func SettleDelay(cfg *Config) time.Duration {
	if cfg == nil || cfg.Workflow.SettleDelayMS == nil || *cfg.Workflow.SettleDelayMS < 0 {
		return 0
	}
	return time.Duration(*cfg.Workflow.SettleDelayMS) * time.Millisecond
}

// LoadSystemPrompt returns the custom system prompt from PromptPath, or the
// embedded reviewer prompt when no custom prompt exists.
func LoadSystemPrompt() string {
	data, err := os.ReadFile(PromptPath())
	if err != nil || len(data) == 0 {
		return defaults.DefaultPrompt
	}
	return string(data)
}
