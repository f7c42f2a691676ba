package dependency

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/toolchat/toolchat/internal/config"
	"github.com/toolchat/toolchat/internal/tools"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Store.Path = filepath.Join(t.TempDir(), "data", "memory.json")
	return &cfg
}

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New(testConfig(t))
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestNew_WiresEverything(t *testing.T) {
	cfg := testConfig(t)
	cfg.Provider.APIKey = "sk-test"

	c, err := New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Orchestrator() == nil || c.Provider() == nil || c.Registry() == nil || c.Store() == nil {
		t.Fatal("container has nil services")
	}
	if c.Provider().DefaultModel() != "deepseek-chat" {
		t.Errorf("unexpected model %q", c.Provider().DefaultModel())
	}
	if c.Config() != cfg {
		t.Error("container must hold the config it was built from")
	}
	if c.Store().Path() != cfg.Store.Path {
		t.Errorf("store path %q, want %q", c.Store().Path(), cfg.Store.Path)
	}
}

func TestNewTools_NoAPIKeyNeeded(t *testing.T) {
	c, err := NewTools(testConfig(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Provider() != nil || c.Orchestrator() != nil {
		t.Error("tools container must not build the endpoint client")
	}
	if got := len(c.Registry().Descriptors()); got != len(tools.Advertised()) {
		t.Errorf("expected %d tools, got %d", len(tools.Advertised()), got)
	}
}
