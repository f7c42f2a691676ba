package schema

import "context"

// ChatOptions configures a single LLM chat request.
type ChatOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

func NewChatOptions(model string, maxTokens int, temperature float64) ChatOptions {
	return ChatOptions{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

type ToolCallRequest struct {
	Id        string
	Name      string
	Arguments string // raw JSON as sent by the model
}

// LLMResponse is the normalised response from any LLM provider.
type LLMResponse struct {
	Content      *string // nil when the response contains only tool calls
	ToolCalls    []ToolCallRequest
	FinishReason string
	Usage        map[string]int // "prompt_tokens", "completion_tokens", "total_tokens"
}

// HasToolCalls reports whether the response contains at least one tool call.
func (r LLMResponse) HasToolCalls() bool { return len(r.ToolCalls) > 0 }

// Reply folds the response into one of its two variants. A response that
// carries tool calls is a ToolCallIntent for the first call; anything else is
// a TextReply (possibly empty).
func (r LLMResponse) Reply() Reply {
	if r.HasToolCalls() {
		tc := r.ToolCalls[0]
		return ToolCallIntent{ID: tc.Id, Name: tc.Name, Arguments: tc.Arguments}
	}
	text := ""
	if r.Content != nil {
		text = *r.Content
	}
	return TextReply{Text: text}
}

// Reply is the model's answer to one request: either TextReply or ToolCallIntent.
type Reply interface {
	isReply()
}

// TextReply is a plain assistant answer.
type TextReply struct {
	Text string
}

// ToolCallIntent is the model asking for a tool to be run.
type ToolCallIntent struct {
	ID        string
	Name      string
	Arguments string
}

func (TextReply) isReply()      {}
func (ToolCallIntent) isReply() {}

// Args decodes the intent's argument bundle.
func (i ToolCallIntent) Args() ToolArgs { return ArgsFromJSON(i.Arguments) }

// ToolCall converts the intent into the transcript representation.
func (i ToolCallIntent) ToolCall() ToolCall {
	return ToolCall{ID: i.ID, Name: i.Name, Arguments: i.Arguments}
}

// LLMProvider is the interface every LLM backend must satisfy.
// A nil or empty tools slice disables tool invocation for the request.
type LLMProvider interface {
	Chat(ctx context.Context, messages Messages, tools []map[string]any, opts ChatOptions) (LLMResponse, error)
	DefaultModel() string
}
