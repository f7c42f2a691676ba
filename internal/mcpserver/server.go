// Package mcpserver exposes the tool registry and the memory store over the
// Model Context Protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/toolchat/toolchat/internal/memory"
	"github.com/toolchat/toolchat/internal/schema"
	"github.com/toolchat/toolchat/internal/shared/llmutils"
	"github.com/toolchat/toolchat/internal/tools"
)

const (
	serverName = "toolchat"

	uriPreferences   = "memory://preferences"
	uriConversations = "memory://conversations"
)

// Deps holds dependencies for the MCP server.
type Deps struct {
	Registry *tools.Registry
	Store    *memory.Store // optional; resources are skipped when nil
	Version  string
}

// New creates an MCP server with every registry tool and the memory
// resources registered.
func New(deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		llmutils.StringOrDefault(deps.Version, "dev"),
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("toolchat: current weather lookups and a small preference and conversation memory."),
		server.WithRecovery(),
	)

	for _, d := range deps.Registry.Descriptors() {
		s.AddTool(toolFor(d), handlerFor(deps.Registry, d.Name))
	}

	if deps.Store != nil {
		s.AddResource(
			mcp.NewResource(
				uriPreferences,
				"Preferences",
				mcp.WithResourceDescription("Stored preferences by category"),
				mcp.WithMIMEType("application/json"),
			),
			jsonResource(func() any { return deps.Store.Preferences() }),
		)
		s.AddResource(
			mcp.NewResource(
				uriConversations,
				"Conversations",
				mcp.WithResourceDescription("Every stored conversation summary"),
				mcp.WithMIMEType("application/json"),
			),
			jsonResource(func() any { return deps.Store.Conversations() }),
		)
	}

	return s
}

// toolFor converts a descriptor into an MCP tool definition.
func toolFor(d schema.ToolDescriptor) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(d.Description)}
	for _, p := range d.Params {
		props := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			props = append(props, mcp.Required())
		}
		opts = append(opts, mcp.WithString(p.Name, props...))
	}
	return mcp.NewTool(d.Name, opts...)
}

// handlerFor routes an MCP call through the registry so both front ends
// share one dispatch path.
func handlerFor(reg *tools.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := schema.ArgsFromMap(req.GetArguments())
		res := reg.Dispatch(ctx, name, args)

		text := tools.FormatResult(res)
		if _, isErr := res.Err(); isErr {
			return mcpError(text), nil
		}
		return mcpText(text), nil
	}
}

func jsonResource(snapshot func() any) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		b, err := json.Marshal(snapshot())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", req.Params.URI, err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
