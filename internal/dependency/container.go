// Package dependency wires core toolchat services using go.uber.org/dig.
package dependency

import (
	"errors"
	"fmt"

	"go.uber.org/dig"

	"github.com/toolchat/toolchat/internal/agent"
	"github.com/toolchat/toolchat/internal/config"
	"github.com/toolchat/toolchat/internal/memory"
	"github.com/toolchat/toolchat/internal/providers"
	"github.com/toolchat/toolchat/internal/schema"
	"github.com/toolchat/toolchat/internal/tools"
	"github.com/toolchat/toolchat/internal/weather"
)

// ErrNoAPIKey is returned by New when no endpoint credential is configured.
var ErrNoAPIKey = errors.New("no API key configured")

// Container holds the resolved core service singletons.
// Callers use the typed getter methods; they never need to import dig directly.
type Container struct {
	cfg          *config.Config
	store        *memory.Store
	registry     *tools.Registry
	provider     schema.LLMProvider
	orchestrator *agent.Orchestrator
}

func (c *Container) Config() *config.Config             { return c.cfg }
func (c *Container) Store() *memory.Store               { return c.store }
func (c *Container) Registry() *tools.Registry          { return c.registry }
func (c *Container) Provider() schema.LLMProvider       { return c.provider }
func (c *Container) Orchestrator() *agent.Orchestrator { return c.orchestrator }

// New builds and wires every service from cfg, including the model endpoint
// client and the orchestrator.
func New(cfg *config.Config) (*Container, error) {
	d, err := toolGraph(cfg)
	if err != nil {
		return nil, err
	}
	if err := d.Provide(newProvider); err != nil {
		return nil, err
	}
	if err := d.Provide(newSettings); err != nil {
		return nil, err
	}
	if err := d.Provide(newOrchestrator); err != nil {
		return nil, err
	}

	var result *Container
	err = d.Invoke(func(
		store *memory.Store,
		registry *tools.Registry,
		provider schema.LLMProvider,
		orch *agent.Orchestrator,
	) {
		result = &Container{
			cfg:          cfg,
			store:        store,
			registry:     registry,
			provider:     provider,
			orchestrator: orch,
		}
	})
	if err != nil {
		return nil, dig.RootCause(err)
	}
	return result, nil
}

// NewTools wires only the store, the weather client and the registry. It
// needs no endpoint credential.
func NewTools(cfg *config.Config) (*Container, error) {
	d, err := toolGraph(cfg)
	if err != nil {
		return nil, err
	}

	var result *Container
	err = d.Invoke(func(store *memory.Store, registry *tools.Registry) {
		result = &Container{cfg: cfg, store: store, registry: registry}
	})
	if err != nil {
		return nil, dig.RootCause(err)
	}
	return result, nil
}

func toolGraph(cfg *config.Config) (*dig.Container, error) {
	d := dig.New()
	for _, ctor := range []any{
		func() *config.Config { return cfg },
		newStore,
		newWeatherClient,
		newRegistry,
	} {
		if err := d.Provide(ctor); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func newStore(cfg *config.Config) *memory.Store {
	return memory.Open(cfg.Store.Path)
}

func newWeatherClient(cfg *config.Config) *weather.Client {
	return weather.NewClient(cfg.Weather.Options())
}

func newRegistry(w *weather.Client, store *memory.Store) (*tools.Registry, error) {
	return tools.NewDefaultRegistry(w, store)
}

func newProvider(cfg *config.Config) (schema.LLMProvider, error) {
	if cfg.Provider.APIKey == "" {
		return nil, fmt.Errorf("%w: set %s in .env or edit %s", ErrNoAPIKey, config.EnvAPIKey, config.ConfigPath())
	}
	return providers.New(cfg.ProviderParams()), nil
}

func newSettings(cfg *config.Config, p schema.LLMProvider) schema.AgentSettings {
	model := cfg.Agent.Model
	if model == "" {
		model = p.DefaultModel()
	}
	return schema.NewAgentSettings(model, cfg.Agent.Temperature, cfg.Agent.MaxTokens, cfg.Agent.SystemPrompt)
}

func newOrchestrator(p schema.LLMProvider, reg *tools.Registry, settings schema.AgentSettings) *agent.Orchestrator {
	return agent.NewOrchestrator(p, reg, settings)
}
