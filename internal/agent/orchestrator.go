// Package agent runs the conversation loop between the user, the model
// endpoint and the local tool registry.
package agent

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/toolchat/toolchat/internal/schema"
	"github.com/toolchat/toolchat/internal/shared/llmutils"
	"github.com/toolchat/toolchat/internal/tools"
)

// State is the orchestrator's position in one user turn.
type State int

const (
	StateAwaitingUserInput State = iota
	StateRequestingReply
	StateDispatchingTool
	StateRequestingFinalReply
)

func (s State) String() string {
	switch s {
	case StateAwaitingUserInput:
		return "awaiting_user_input"
	case StateRequestingReply:
		return "requesting_reply"
	case StateDispatchingTool:
		return "dispatching_tool"
	case StateRequestingFinalReply:
		return "requesting_final_reply"
	}
	return "unknown"
}

// ToolDispatcher advertises tools and executes them by name.
type ToolDispatcher interface {
	Definitions() []map[string]any
	Dispatch(ctx context.Context, name string, args schema.ToolArgs) schema.ToolResult
}

// Orchestrator owns one transcript and drives it through at most two
// endpoint requests per user message. It is not safe for concurrent use.
type Orchestrator struct {
	provider schema.LLMProvider
	tools    ToolDispatcher
	settings schema.AgentSettings

	transcript schema.Messages
	state      State
	onToolCall func(name string, args schema.ToolArgs)
}

// NewOrchestrator creates an Orchestrator with an empty transcript.
func NewOrchestrator(provider schema.LLMProvider, dispatcher ToolDispatcher, settings schema.AgentSettings) *Orchestrator {
	return &Orchestrator{
		provider:   provider,
		tools:      dispatcher,
		settings:   settings,
		transcript: schema.NewMessages(),
		state:      StateAwaitingUserInput,
	}
}

// OnToolCall registers fn to be called before each tool dispatch.
func (o *Orchestrator) OnToolCall(fn func(name string, args schema.ToolArgs)) {
	o.onToolCall = fn
}

// State reports where the current turn is.
func (o *Orchestrator) State() State { return o.state }

// Transcript returns a copy of the conversation so far.
func (o *Orchestrator) Transcript() schema.Messages { return o.transcript.Clone() }

// Chat appends text to the transcript and returns the assistant's answer.
// Endpoint failures come back as "Error: ..." or
// "Error processing tool result: ..." strings; entries already appended stay.
func (o *Orchestrator) Chat(ctx context.Context, text string) string {
	turnID := uuid.NewString()
	ctx = tools.WithTurn(ctx, tools.TurnContext{TurnID: turnID})
	slog.Info("Processing message", "turn", turnID, "content", llmutils.Truncate(text, 80))

	o.transcript.AddUser(text)
	defer func() { o.state = StateAwaitingUserInput }()

	o.state = StateRequestingReply
	resp, err := o.provider.Chat(ctx, o.request(), o.tools.Definitions(), o.chatOptions())
	if err != nil {
		slog.Error("LLM error", "turn", turnID, "err", err)
		return "Error: " + err.Error()
	}

	switch reply := resp.Reply().(type) {
	case schema.ToolCallIntent:
		if n := len(resp.ToolCalls); n > 1 {
			slog.Warn("model requested several tool calls, running the first", "turn", turnID, "count", n)
		}
		return o.runTool(ctx, reply)
	case schema.TextReply:
		o.transcript.AddAssistantText(reply.Text)
		return reply.Text
	}
	return ""
}

func (o *Orchestrator) runTool(ctx context.Context, intent schema.ToolCallIntent) string {
	if intent.ID == "" {
		intent.ID = "call_" + uuid.NewString()
	}
	args := intent.Args()
	if o.onToolCall != nil {
		o.onToolCall(intent.Name, args)
	}

	o.transcript.AddToolCall(intent.ToolCall())

	o.state = StateDispatchingTool
	result := o.tools.Dispatch(ctx, intent.Name, args)
	o.transcript.AddToolResult(intent.ID, intent.Name, tools.FormatResult(result))

	o.state = StateRequestingFinalReply
	resp, err := o.provider.Chat(ctx, o.request(), nil, o.chatOptions())
	if err != nil {
		slog.Error("LLM error after tool call", "tool", intent.Name, "err", err)
		return "Error processing tool result: " + err.Error()
	}

	text := ""
	if resp.Content != nil {
		text = *resp.Content
	}
	o.transcript.AddAssistantText(text)
	return text
}

// request builds the messages sent to the endpoint: the optional system
// prompt followed by the transcript.
func (o *Orchestrator) request() schema.Messages {
	if o.settings.SystemPrompt == "" {
		return o.transcript.Clone()
	}
	msgs := schema.NewMessages()
	msgs.AddSystem(o.settings.SystemPrompt)
	msgs.Messages = append(msgs.Messages, o.transcript.Messages...)
	return msgs
}

func (o *Orchestrator) chatOptions() schema.ChatOptions {
	return schema.NewChatOptions(o.settings.Model, o.settings.MaxTokens, o.settings.Temperature)
}
