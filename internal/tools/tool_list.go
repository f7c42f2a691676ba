package tools

import (
	"github.com/toolchat/toolchat/internal/schema"
)

// ToolList is an ordered set of tools keyed by descriptor name.
type ToolList struct {
	order []string
	tools map[string]schema.Tool
}

// NewToolList builds a list in the given order. A later tool replaces an
// earlier one with the same name, keeping the earlier position.
func NewToolList(ts ...schema.Tool) *ToolList {
	list := &ToolList{tools: make(map[string]schema.Tool, len(ts))}
	for _, t := range ts {
		list.Add(t)
	}
	return list
}

// Get returns the tool with the given name, or nil if not found.
func (l *ToolList) Get(name string) schema.Tool {
	return l.tools[name]
}

// Add registers a tool, replacing any existing tool with the same name.
func (l *ToolList) Add(t schema.Tool) schema.Tool {
	name := t.Descriptor().Name
	if _, ok := l.tools[name]; !ok {
		l.order = append(l.order, name)
	}
	l.tools[name] = t
	return t
}

// Descriptors returns every descriptor in order.
func (l *ToolList) Descriptors() []schema.ToolDescriptor {
	out := make([]schema.ToolDescriptor, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.tools[name].Descriptor())
	}
	return out
}

// Definitions returns all tool definitions in OpenAI function-calling format.
func (l *ToolList) Definitions() []map[string]any {
	list := make([]map[string]any, 0, len(l.order))
	for _, d := range l.Descriptors() {
		list = append(list, d.Definition())
	}
	return list
}
