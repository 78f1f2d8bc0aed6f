package lifeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Generation.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("unexpected default base URL %q", cfg.Generation.BaseURL)
	}
	if cfg.Generation.Model == "" {
		t.Error("expected a default model")
	}
	if cfg.Generation.Temperature == nil || *cfg.Generation.Temperature != 0.7 {
		t.Errorf("expected default temperature 0.7, got %v", cfg.Generation.Temperature)
	}
	if cfg.Generation.APIKey != "" {
		t.Error("expected no default API key")
	}
}

func TestLoadConfigFileMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generation.Model != DefaultConfig().Generation.Model {
		t.Errorf("expected default model, got %q", cfg.Generation.Model)
	}
}

func TestLoadConfigFileFillsMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"generation":{"api_key":"sk-test","temperature":0},"workflow":{"copy_to_clipboard":false}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generation.APIKey != "sk-test" {
		t.Errorf("expected api key from file, got %q", cfg.Generation.APIKey)
	}
	if cfg.Generation.BaseURL == "" || cfg.Generation.Model == "" {
		t.Error("expected base URL and model to be filled from defaults")
	}
	// An explicit zero temperature is kept.
	if cfg.Generation.Temperature == nil || *cfg.Generation.Temperature != 0 {
		t.Errorf("expected temperature 0, got %v", cfg.Generation.Temperature)
	}
	if CopyToClipboardEnabled(cfg) {
		t.Error("expected clipboard copy disabled")
	}
	if !OpenResponseEnabled(cfg) {
		t.Error("expected open response to default to true")
	}
}

func TestLoadConfigFileInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigFile(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestResolveEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Generation.APIKey = "from-file"

	t.Setenv("LIFELINE_API_KEY", "from-env")
	t.Setenv("LIFELINE_MODEL", "gpt-test")
	t.Setenv("LIFELINE_BASE_URL", "http://localhost:1234/v1")
	t.Setenv("LIFELINE_TEMPERATURE", "0.2")

	if got := ResolveAPIKey(cfg); got != "from-env" {
		t.Errorf("expected env API key, got %q", got)
	}
	if got := ResolveModel(cfg); got != "gpt-test" {
		t.Errorf("expected env model, got %q", got)
	}
	if got := ResolveBaseURL(cfg); got != "http://localhost:1234/v1" {
		t.Errorf("expected env base URL, got %q", got)
	}
	if got := ResolveTemperature(cfg); got != 0.2 {
		t.Errorf("expected env temperature 0.2, got %v", got)
	}
}

func TestResolveTemperatureIgnoresBadEnv(t *testing.T) {
	t.Setenv("LIFELINE_TEMPERATURE", "warm")
	if got := ResolveTemperature(DefaultConfig()); got != 0.7 {
		t.Errorf("expected config temperature 0.7, got %v", got)
	}
}

func TestConfigDirPrecedence(t *testing.T) {
	t.Setenv("LIFELINE_CONFIG_DIR", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := ConfigDir(); got != filepath.Join("/xdg", "lifeline") {
		t.Errorf("expected XDG config dir, got %q", got)
	}
	t.Setenv("LIFELINE_CONFIG_DIR", "/custom")
	if got := ConfigDir(); got != "/custom" {
		t.Errorf("expected custom config dir, got %q", got)
	}
}

func TestValidateConfigWarnsOnMissingKey(t *testing.T) {
	t.Setenv("LIFELINE_API_KEY", "")
	warnings := ValidateConfig(DefaultConfig())
	if len(warnings) == 0 || !strings.Contains(warnings[0], "API key") {
		t.Errorf("expected API key warning, got %v", warnings)
	}
}

func TestSettleDelay(t *testing.T) {
	cfg := DefaultConfig()
	ms := 100
	cfg.Workflow.SettleDelayMS = &ms
	if got := SettleDelay(cfg); got != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", got)
	}
	neg := -5
	cfg.Workflow.SettleDelayMS = &neg
	if got := SettleDelay(cfg); got != 0 {
		t.Errorf("expected 0 for negative delay, got %v", got)
	}
}

func TestLoadSystemPromptCustom(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LIFELINE_CONFIG_DIR", dir)
	if got := LoadSystemPrompt(); !strings.Contains(got, "software engineer") {
		t.Errorf("expected embedded default prompt, got %q", got)
	}
	if err := os.WriteFile(filepath.Join(dir, "prompt.md"), []byte("be brief"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := LoadSystemPrompt(); got != "be brief" {
		t.Errorf("expected custom prompt, got %q", got)
	}
}

func TestResolveEditor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workflow.Editor = "code"
	t.Setenv("LIFELINE_EDITOR", "")
	if got := ResolveEditor(cfg); got != "code" {
		t.Errorf("expected config editor, got %q", got)
	}
	t.Setenv("LIFELINE_EDITOR", "subl -n")
	if got := ResolveEditor(cfg); got != "subl -n" {
		t.Errorf("expected env editor, got %q", got)
	}
}

func TestFrontMatterEnabled(t *testing.T) {
	if FrontMatterEnabled(DefaultConfig()) {
		t.Error("expected front matter disabled by default")
	}
	if FrontMatterEnabled(nil) {
		t.Error("expected front matter disabled for nil config")
	}
	cfg := DefaultConfig()
	on := true
	cfg.Workflow.FrontMatter = &on
	if !FrontMatterEnabled(cfg) {
		t.Error("expected front matter enabled")
	}
}
