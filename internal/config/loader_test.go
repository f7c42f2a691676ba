package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// isolateEnv clears every override variable for the duration of the test
// and disables .env loading unless the test points DotEnvFile elsewhere.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvAPIKey, EnvBaseURL, EnvModel, EnvMemoryPath, "OPENAI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	prev := DotEnvFile
	DotEnvFile = ""
	t.Cleanup(func() { DotEnvFile = prev })
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_NonExistent(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	def := DefaultConfig()
	if cfg.Agent.Model != "deepseek-chat" || cfg.Agent.Model != def.Agent.Model {
		t.Errorf("expected default model, got %q", cfg.Agent.Model)
	}
	if cfg.Agent.Temperature != 0.7 {
		t.Errorf("expected temperature 0.7, got %v", cfg.Agent.Temperature)
	}
	if cfg.Provider.APIBase != "https://api.deepseek.com" {
		t.Errorf("unexpected api base %q", cfg.Provider.APIBase)
	}
	if cfg.Store.Path != "data/memory.json" {
		t.Errorf("unexpected store path %q", cfg.Store.Path)
	}
	if cfg.Weather.TimeoutSeconds != 10 {
		t.Errorf("unexpected weather timeout %d", cfg.Weather.TimeoutSeconds)
	}
}

func TestLoad_YAML(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, t.TempDir(), "config.yaml", `
provider:
  apiKey: sk-file
agent:
  model: deepseek-reasoner
  maxTokens: 4096
store:
  path: /tmp/mem.json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Agent.Model != "deepseek-reasoner" || cfg.Agent.MaxTokens != 4096 {
		t.Errorf("unexpected agent section %+v", cfg.Agent)
	}
	if cfg.Provider.APIKey != "sk-file" {
		t.Errorf("unexpected api key %q", cfg.Provider.APIKey)
	}
	// Unset fields keep their defaults.
	if cfg.Agent.Temperature != 0.7 || cfg.Provider.Name != "deepseek" {
		t.Errorf("defaults lost: %+v %+v", cfg.Agent, cfg.Provider)
	}
	if cfg.Store.Path != "/tmp/mem.json" {
		t.Errorf("unexpected store path %q", cfg.Store.Path)
	}
}

func TestLoad_JSON(t *testing.T) {
	isolateEnv(t)
	data, _ := json.Marshal(map[string]any{
		"agent": map[string]any{"model": "gpt-4o", "systemPrompt": "be brief"},
		"mcp":   map[string]any{"addr": "0.0.0.0:9000"},
	})
	path := writeFile(t, t.TempDir(), "config.json", string(data))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Agent.Model != "gpt-4o" || cfg.Agent.SystemPrompt != "be brief" {
		t.Errorf("unexpected agent section %+v", cfg.Agent)
	}
	if cfg.MCP.Addr != "0.0.0.0:9000" {
		t.Errorf("unexpected addr %q", cfg.MCP.Addr)
	}
}

func TestLoad_InvalidFallsBackToDefaults(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, t.TempDir(), "config.json", "{not valid json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected no error for invalid file (falls back to default), got: %v", err)
	}
	if cfg.Agent.Model != DefaultConfig().Agent.Model {
		t.Errorf("expected default model, got %q", cfg.Agent.Model)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, t.TempDir(), "config.yaml", "provider:\n  apiKey: sk-file\nagent:\n  model: from-file\n")
	t.Setenv(EnvAPIKey, "sk-env")
	t.Setenv(EnvBaseURL, "http://localhost:1234")
	t.Setenv(EnvModel, "from-env")
	t.Setenv(EnvMemoryPath, "/var/mem.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider.APIKey != "sk-env" || cfg.Provider.APIBase != "http://localhost:1234" {
		t.Errorf("provider overrides not applied: %+v", cfg.Provider)
	}
	if cfg.Agent.Model != "from-env" || cfg.Store.Path != "/var/mem.json" {
		t.Errorf("overrides not applied: %+v %+v", cfg.Agent, cfg.Store)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	DotEnvFile = writeFile(t, dir, ".env", "DEEPSEEK_API_KEY=sk-dotenv\nTOOLCHAT_MODEL=deepseek-coder\n")

	cfg, err := Load(filepath.Join(dir, "none.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider.APIKey != "sk-dotenv" || cfg.Agent.Model != "deepseek-coder" {
		t.Errorf(".env not applied: %+v %+v", cfg.Provider, cfg.Agent)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	isolateEnv(t)
	for _, name := range []string{"config.yaml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			original := DefaultConfig()
			original.Agent.Model = "deepseek-reasoner"
			original.Agent.MaxTokens = 1234
			original.Provider.ExtraHeaders = map[string]string{"X-Trace": "1"}

			if err := Save(&original, path); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if loaded.Agent != original.Agent {
				t.Errorf("agent mismatch: got %+v, want %+v", loaded.Agent, original.Agent)
			}
			if loaded.Provider.ExtraHeaders["X-Trace"] != "1" {
				t.Errorf("headers lost: %v", loaded.Provider.ExtraHeaders)
			}
		})
	}
}

func TestSave_FilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	if err := Save(&cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("expected permissions 0600, got %04o", perm)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.yaml")

	cfg := DefaultConfig()
	if err := Save(&cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestProviderName(t *testing.T) {
	cases := []struct {
		provider, model, want string
	}{
		{"deepseek", "deepseek-chat", "deepseek"},
		{"openrouter", "deepseek/deepseek-chat", "openrouter"},
		{"", "gpt-4o", "openai"},
		{"nonsense", "deepseek-chat", "deepseek"},
		{"", "mystery-model", "deepseek"},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		cfg.Provider.Name = tc.provider
		cfg.Agent.Model = tc.model
		if got := cfg.ProviderName(); got != tc.want {
			t.Errorf("ProviderName(%q, %q) = %q, want %q", tc.provider, tc.model, got, tc.want)
		}
	}

	cfg := DefaultConfig()
	cfg.Provider.APIKey = "k"
	p := cfg.ProviderParams()
	if p.DefaultModel != "deepseek-chat" || p.ProviderName != "deepseek" || p.APIKey != "k" {
		t.Errorf("unexpected params %+v", p)
	}
}

func TestLoadFile_IgnoresEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv(EnvModel, "from-env")

	path := writeFile(t, t.TempDir(), "config.yaml", "agent:\n  model: from-file\n")
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Agent.Model != "from-file" {
		t.Errorf("expected file model, got %q", cfg.Agent.Model)
	}
}

func TestLoad_ProviderKeyVariable(t *testing.T) {
	isolateEnv(t)
	path := writeFile(t, t.TempDir(), "config.yaml", "provider:\n  name: openai\nagent:\n  model: gpt-4o\n")
	t.Setenv("OPENAI_API_KEY", "sk-openai")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.APIKeyEnv() != "OPENAI_API_KEY" {
		t.Errorf("unexpected key variable %q", cfg.APIKeyEnv())
	}
	if cfg.Provider.APIKey != "sk-openai" {
		t.Errorf("expected key from OPENAI_API_KEY, got %q", cfg.Provider.APIKey)
	}

	t.Setenv(EnvAPIKey, "sk-deepseek-var")
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Provider.APIKey != "sk-deepseek-var" {
		t.Errorf("%s must win, got %q", EnvAPIKey, cfg.Provider.APIKey)
	}
}

func TestAPIKeyEnv_Default(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.APIKeyEnv(); got != EnvAPIKey {
		t.Errorf("got %q, want %q", got, EnvAPIKey)
	}
	cfg.Provider.Name = "custom"
	if got := cfg.APIKeyEnv(); got != EnvAPIKey {
		t.Errorf("custom: got %q, want %q", got, EnvAPIKey)
	}
}
