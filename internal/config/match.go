package config

import (
	"github.com/toolchat/toolchat/internal/providers"
)

// ProviderName resolves the registry name of the configured provider.
//
// Priority order:
//  1. Explicit provider.name when it is a known registry entry
//  2. Model keyword or prefix match ("gpt-4o" → openai)
//  3. "deepseek"
func (c *Config) ProviderName() string {
	if c.Provider.Name != "" && providers.FindByName(c.Provider.Name) != nil {
		return c.Provider.Name
	}
	if spec := providers.FindByModel(c.Agent.Model); spec != nil {
		return spec.Name
	}
	return "deepseek"
}

// APIKeyEnv names the provider's conventional key variable, falling back to
// EnvAPIKey.
func (c *Config) APIKeyEnv() string {
	if spec := providers.FindByName(c.ProviderName()); spec != nil && spec.EnvKey != "" {
		return spec.EnvKey
	}
	return EnvAPIKey
}

// ProviderParams extracts the values providers.New needs.
func (c *Config) ProviderParams() providers.Params {
	return providers.Params{
		APIKey:       c.Provider.APIKey,
		APIBase:      c.Provider.APIBase,
		ExtraHeaders: c.Provider.ExtraHeaders,
		DefaultModel: c.Agent.Model,
		ProviderName: c.ProviderName(),
	}
}
