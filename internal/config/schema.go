// Package config defines the configuration schema for toolchat.
//
// Keys use camelCase in both the YAML and the JSON rendering.
package config

import (
	"time"

	"github.com/toolchat/toolchat/internal/weather"
)

// ProviderConfig holds the chat-completion endpoint credentials.
type ProviderConfig struct {
	Name         string            `json:"name" yaml:"name"`
	APIKey       string            `json:"apiKey" yaml:"apiKey"`
	APIBase      string            `json:"apiBase,omitempty" yaml:"apiBase,omitempty"`
	ExtraHeaders map[string]string `json:"extraHeaders,omitempty" yaml:"extraHeaders,omitempty"`
}

func defaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		Name:    "deepseek",
		APIBase: "https://api.deepseek.com",
	}
}

// AgentConfig holds the per-request model settings.
type AgentConfig struct {
	Model        string  `json:"model" yaml:"model"`
	Temperature  float64 `json:"temperature" yaml:"temperature"`
	MaxTokens    int     `json:"maxTokens" yaml:"maxTokens"`
	SystemPrompt string  `json:"systemPrompt,omitempty" yaml:"systemPrompt,omitempty"`
}

func defaultAgentConfig() AgentConfig {
	return AgentConfig{
		Model:       "deepseek-chat",
		Temperature: 0.7,
		MaxTokens:   1024,
	}
}

// StoreConfig locates the memory document.
type StoreConfig struct {
	Path string `json:"path" yaml:"path"`
}

func defaultStoreConfig() StoreConfig {
	return StoreConfig{Path: "data/memory.json"}
}

// WeatherConfig points the weather lookup at its two upstream APIs.
type WeatherConfig struct {
	GeocodeURL     string `json:"geocodeUrl" yaml:"geocodeUrl"`
	ForecastURL    string `json:"forecastUrl" yaml:"forecastUrl"`
	TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds"`
}

func defaultWeatherConfig() WeatherConfig {
	return WeatherConfig{
		GeocodeURL:     weather.DefaultGeocodeURL,
		ForecastURL:    weather.DefaultForecastURL,
		TimeoutSeconds: int(weather.DefaultTimeout / time.Second),
	}
}

// Options converts the section into weather client options.
func (w WeatherConfig) Options() weather.Options {
	return weather.Options{
		GeocodeURL:  w.GeocodeURL,
		ForecastURL: w.ForecastURL,
		Timeout:     time.Duration(w.TimeoutSeconds) * time.Second,
	}
}

// MCPConfig configures `toolchat serve`.
type MCPConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

func defaultMCPConfig() MCPConfig {
	return MCPConfig{Addr: "127.0.0.1:8765"}
}

// Config is the root configuration object, loaded from ~/.toolchat/config.yaml.
type Config struct {
	Provider ProviderConfig `json:"provider" yaml:"provider"`
	Agent    AgentConfig    `json:"agent" yaml:"agent"`
	Store    StoreConfig    `json:"store" yaml:"store"`
	Weather  WeatherConfig  `json:"weather" yaml:"weather"`
	MCP      MCPConfig      `json:"mcp" yaml:"mcp"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Provider: defaultProviderConfig(),
		Agent:    defaultAgentConfig(),
		Store:    defaultStoreConfig(),
		Weather:  defaultWeatherConfig(),
		MCP:      defaultMCPConfig(),
	}
}
