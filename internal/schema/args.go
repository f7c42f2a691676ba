package schema

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// ToolArgs is the argument bundle passed to a tool. Lookups of absent keys
// yield "", so handlers treat missing arguments permissively.
type ToolArgs map[string]string

// String returns the value for key, or "" when absent.
func (a ToolArgs) String(key string) string {
	return a[key]
}

// Optional returns the value for key and whether it was supplied non-empty.
func (a ToolArgs) Optional(key string) (string, bool) {
	v := a[key]
	return v, v != ""
}

// ArgsFromJSON converts the model's serialized argument bundle into ToolArgs.
// Strings are kept verbatim, null values are dropped and anything else is
// kept as its JSON text. Malformed input is repaired where possible and
// otherwise produces empty arguments.
func ArgsFromJSON(raw string) ToolArgs {
	parsed, err := repairJSON(raw)
	if err != nil {
		slog.Warn("failed to parse tool arguments", "err", err)
	}
	return ArgsFromMap(parsed)
}

// ArgsFromMap converts a decoded JSON object into ToolArgs.
func ArgsFromMap(m map[string]any) ToolArgs {
	out := make(ToolArgs, len(m))
	for k, v := range m {
		switch tv := v.(type) {
		case nil:
			continue
		case string:
			out[k] = tv
		default:
			b, err := json.Marshal(tv)
			if err != nil {
				out[k] = fmt.Sprint(tv)
				continue
			}
			out[k] = string(b)
		}
	}
	return out
}

// repairJSON attempts to unmarshal JSON, retrying after stripping trailing
// garbage characters. This handles some LLMs that emit truncated tool arguments.
func repairJSON(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err == nil {
		return out, nil
	}

	// Attempt 1: trim trailing non-JSON characters.
	stripped := strings.TrimRight(raw, " \t\n\r}]")
	if !strings.HasSuffix(stripped, "}") {
		stripped += "}"
	}
	out = nil
	if err := json.Unmarshal([]byte(stripped), &out); err == nil {
		return out, nil
	}

	// Attempt 2: find the last complete JSON object.
	if i := strings.LastIndex(raw, "}"); i >= 0 {
		out = nil
		if err := json.Unmarshal([]byte(raw[:i+1]), &out); err == nil {
			return out, nil
		}
	}

	return map[string]any{}, fmt.Errorf("cannot repair JSON: %s", raw)
}
