package llmutils

import (
	"fmt"
	"sort"
	"strings"
)

// Truncate shortens a string to at most n runes, adding "..." if it was truncated.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// StringOrDefault returns s if it's not empty, or def if s is empty.
func StringOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// ToolHint renders a tool call for display, e.g. `get_weather(city="Tokyo")`.
// Keys are sorted and long values shortened.
func ToolHint(name string, args map[string]string) string {
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%q", k, Truncate(args[k], 40)))
	}
	return name + "(" + strings.Join(parts, ", ") + ")"
}
