package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/toolchat/toolchat/internal/schema"
	"github.com/toolchat/toolchat/internal/shared/llmutils"
)

// ToolName is the canonical name of a built-in tool.
type ToolName string

const (
	ToolGetWeather        ToolName = "get_weather"
	ToolStorePreference   ToolName = "store_preference"
	ToolGetPreferences    ToolName = "get_preferences"
	ToolStoreConversation ToolName = "store_conversation"
	ToolGetConversations  ToolName = "get_conversations"
)

// Advertised lists every tool offered to the model, in advertisement order.
func Advertised() []ToolName {
	return []ToolName{
		ToolGetWeather,
		ToolStorePreference,
		ToolGetPreferences,
		ToolStoreConversation,
		ToolGetConversations,
	}
}

// maxLoggedArgs bounds the argument text written to the tool-call log line.
const maxLoggedArgs = 200

// Registry maps advertised tool names to their handlers. It is immutable
// once built and safe for concurrent use.
type Registry struct {
	tools ToolList
}

// Definitions returns the tool list in OpenAI function-calling format.
func (r *Registry) Definitions() []map[string]any {
	return r.tools.Definitions()
}

// Descriptors returns the static descriptor of every tool.
func (r *Registry) Descriptors() []schema.ToolDescriptor {
	return r.tools.Descriptors()
}

// Dispatch runs the handler registered under name. It never fails: unknown
// names and handler panics come back as {"error": ...} payloads.
func (r *Registry) Dispatch(ctx context.Context, name string, args schema.ToolArgs) (result schema.ToolResult) {
	logArgs := []any{"name", name, "args", llmutils.Truncate(formatArgs(args), maxLoggedArgs)}
	if tc := TurnCtx(ctx); tc.TurnID != "" {
		logArgs = append(logArgs, "turn", tc.TurnID)
	}
	slog.Info("Tool call", logArgs...)

	tool := r.tools.Get(name)
	if tool == nil {
		return schema.ErrorResult("Unknown tool: " + name)
	}
	if args == nil {
		args = schema.ToolArgs{}
	}

	defer func() {
		if p := recover(); p != nil {
			slog.Error("tool panicked", "name", name, "panic", p)
			result = schema.ErrorResult(fmt.Sprintf("Tool %s failed: %v", name, p))
		}
	}()

	result = tool.Execute(ctx, args)
	if result == nil {
		result = schema.ToolResult{}
	}
	return result
}

func marshalResult(res schema.ToolResult) ([]byte, error) {
	if res == nil {
		res = schema.ToolResult{}
	}
	return json.Marshal(res)
}

func formatArgs(args schema.ToolArgs) string {
	b, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprint(map[string]string(args))
	}
	return string(b)
}
