package tools

import (
	"errors"
	"fmt"
	"slices"

	"github.com/toolchat/toolchat/internal/schema"
)

// RegistryBuilder accumulates tools during the construction phase.
// Call Build() to produce an immutable Registry ready for use.
type RegistryBuilder struct {
	tools map[string]schema.Tool
	dups  []string
}

// NewRegistryBuilder returns a fresh RegistryBuilder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{tools: make(map[string]schema.Tool)}
}

// WithTool adds a tool under its descriptor name and returns the builder,
// enabling chaining.
func (b *RegistryBuilder) WithTool(tool schema.Tool) *RegistryBuilder {
	name := tool.Descriptor().Name
	if _, ok := b.tools[name]; ok {
		b.dups = append(b.dups, name)
	}
	b.tools[name] = tool
	return b
}

// Build checks that the handler table matches Advertised() exactly and
// produces the Registry.
func (b *RegistryBuilder) Build() (*Registry, error) {
	var errs []error
	for _, name := range b.dups {
		errs = append(errs, fmt.Errorf("tool %q registered twice", name))
	}

	advertised := Advertised()
	ordered := make([]schema.Tool, 0, len(advertised))
	for _, name := range advertised {
		t, ok := b.tools[string(name)]
		if !ok {
			errs = append(errs, fmt.Errorf("advertised tool %q has no handler", name))
			continue
		}
		ordered = append(ordered, t)
	}

	extra := make([]string, 0)
	for name := range b.tools {
		if !slices.Contains(advertised, ToolName(name)) {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	for _, name := range extra {
		errs = append(errs, fmt.Errorf("tool %q is not advertised", name))
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("build tool registry: %w", errors.Join(errs...))
	}
	return &Registry{tools: *NewToolList(ordered...)}, nil
}
