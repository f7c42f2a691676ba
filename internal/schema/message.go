package schema

// Roles used in the transcript.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall represents one function call in an assistant message.
// Arguments is the serialized JSON argument bundle exactly as the model sent it.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToWireMap serialises a ToolCall into the OpenAI wire-format map.
// Used by provider implementations when building the JSON request body.
func (tc ToolCall) ToWireMap() map[string]any {
	args := tc.Arguments
	if args == "" {
		args = "{}"
	}
	return map[string]any{
		"id":   tc.ID,
		"type": "function",
		"function": map[string]any{
			"name":      tc.Name,
			"arguments": args,
		},
	}
}

// Message is one entry in the conversation transcript.
//
// Role is one of: "system", "user", "assistant", "tool".
//
// Content holds the message text:
//   - system / user / tool: plain string
//   - assistant: *string (nil when the entry is a tool-call intent)
//
// ToolCalls is populated for assistant tool-call intents.
// ToolCallID and ToolName are set for tool-result messages.
type Message struct {
	Role       string
	Content    any // string | *string
	ToolCalls  []ToolCall
	ToolCallID string // "tool" role only
	ToolName   string // "tool" role only
}

// Text returns the textual content of the message, or "" when there is none.
func (m Message) Text() string {
	switch c := m.Content.(type) {
	case string:
		return c
	case *string:
		if c != nil {
			return *c
		}
	}
	return ""
}

// IsToolCallIntent reports whether m is an assistant entry carrying a tool call.
func (m Message) IsToolCallIntent() bool {
	return m.Role == RoleAssistant && len(m.ToolCalls) > 0
}

func NewSystemMessage(content string) Message {
	return Message{
		Role:    RoleSystem,
		Content: content,
	}
}

func NewUserMessage(content string) Message {
	return Message{
		Role:    RoleUser,
		Content: content,
	}
}

func NewAssistantMessage(content *string, toolCalls []ToolCall) Message {
	return Message{
		Role:      RoleAssistant,
		Content:   content,
		ToolCalls: toolCalls,
	}
}

func NewToolResultMessage(toolCallID, toolName, result string) Message {
	return Message{
		Role:       RoleTool,
		Content:    result,
		ToolCallID: toolCallID,
		ToolName:   toolName,
	}
}
