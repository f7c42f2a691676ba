package schema

import "context"

// Tool is the interface every locally executed, LLM-callable tool satisfies.
//
// Execute never returns an error: failures are reported inside the result
// under the "error" key, because the result is serialized verbatim back into
// the transcript for the model to read.
type Tool interface {
	Descriptor() ToolDescriptor
	Execute(ctx context.Context, args ToolArgs) ToolResult
}

// Param describes one named tool parameter.
type Param struct {
	Name        string
	Type        string // JSON Schema type, e.g. "string"
	Description string
	Required    bool
}

// ToolDescriptor is the static metadata advertised to the model.
type ToolDescriptor struct {
	Name        string
	Description string
	Params      []Param
}

// JSONSchema renders the parameter list as a JSON Schema object.
func (d ToolDescriptor) JSONSchema() map[string]any {
	props := make(map[string]any, len(d.Params))
	required := make([]string, 0, len(d.Params))
	for _, p := range d.Params {
		props[p.Name] = map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Required {
			required = append(required, p.Name)
		}
	}
	out := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

// Definition returns the descriptor in OpenAI function-calling format.
func (d ToolDescriptor) Definition() map[string]any {
	return map[string]any{
		"type": "function",
		"function": map[string]any{
			"name":        d.Name,
			"description": d.Description,
			"parameters":  d.JSONSchema(),
		},
	}
}

// ToolResult is the structured payload a tool returns.
type ToolResult map[string]any

// ErrorResult builds a payload carrying only an error message.
func ErrorResult(msg string) ToolResult {
	return ToolResult{"error": msg}
}

// Err returns the payload's error message, if any.
func (r ToolResult) Err() (string, bool) {
	msg, ok := r["error"].(string)
	return msg, ok
}
