package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvAPIKey     = "DEEPSEEK_API_KEY"
	EnvBaseURL    = "DEEPSEEK_BASE_URL"
	EnvModel      = "TOOLCHAT_MODEL"
	EnvMemoryPath = "TOOLCHAT_MEMORY_PATH"
)

// DotEnvFile is read from the working directory before the environment is
// consulted. Variables already set in the process win.
var DotEnvFile = ".env"

// ConfigPath returns the default configuration file path: ~/.toolchat/config.yaml.
func ConfigPath() string {
	return filepath.Join(DataDir(), "config.yaml")
}

// DataDir returns the toolchat data directory: ~/.toolchat.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".toolchat"
	}
	return filepath.Join(home, ".toolchat")
}

// Load reads and parses the config file at path, then applies .env and
// environment overrides. If path is empty, ConfigPath() is used.
// A missing file yields DefaultConfig(); on parse failure it logs a warning
// and uses DefaultConfig().
func Load(path string) (*Config, error) {
	loadDotEnv(DotEnvFile)

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	applyEnv(cfg)
	if cfg.Provider.APIKey == "" {
		if env := cfg.APIKeyEnv(); env != EnvAPIKey {
			cfg.Provider.APIKey = os.Getenv(env)
		}
	}
	if cfg.Provider.APIKey == "" {
		slog.Warn(cfg.APIKeyEnv() + " not found in environment")
	}
	return cfg, nil
}

// LoadFile reads the config file at path without consulting the environment.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := unmarshal(path, data, &cfg); err != nil {
			slog.Warn("failed to parse config, using defaults", "path", path, "err", err)
			cfg = DefaultConfig()
		}
	}
	return &cfg, nil
}

// Save writes cfg to path as YAML, or as indented JSON when path ends in
// .json. If path is empty, ConfigPath() is used.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := marshal(path, cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

func unmarshal(path string, data []byte, cfg *Config) error {
	if isJSON(path) {
		return json.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}

func marshal(path string, cfg *Config) ([]byte, error) {
	if isJSON(path) {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return yaml.Marshal(cfg)
}

func loadDotEnv(file string) {
	if file == "" {
		return
	}
	if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load env file", "file", file, "err", err)
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.Provider.APIBase = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Agent.Model = v
	}
	if v := os.Getenv(EnvMemoryPath); v != "" {
		cfg.Store.Path = v
	}
}
