package tools

import "github.com/toolchat/toolchat/internal/schema"

// NewDefaultRegistry registers the weather tool and the four memory tools.
func NewDefaultRegistry(lookup WeatherLookup, store schema.MemoryStore) (*Registry, error) {
	return NewRegistryBuilder().
		WithTool(NewWeatherTool(lookup)).
		WithTool(NewStorePreferenceTool(store)).
		WithTool(NewGetPreferencesTool(store)).
		WithTool(NewStoreConversationTool(store)).
		WithTool(NewGetConversationsTool(store)).
		Build()
}
