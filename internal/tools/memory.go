package tools

import (
	"context"

	"github.com/toolchat/toolchat/internal/schema"
)

// StorePreferenceTool records a preference under a category.
type StorePreferenceTool struct {
	store schema.MemoryStore
}

// NewStorePreferenceTool creates a StorePreferenceTool backed by store.
func NewStorePreferenceTool(store schema.MemoryStore) *StorePreferenceTool {
	return &StorePreferenceTool{store: store}
}

func (t *StorePreferenceTool) Descriptor() schema.ToolDescriptor {
	return schema.ToolDescriptor{
		Name:        string(ToolStorePreference),
		Description: "Store a user preference",
		Params: []schema.Param{
			{Name: "category", Type: "string", Description: "Category like 'travel', 'food', etc.", Required: true},
			{Name: "preference", Type: "string", Description: "The preference to store", Required: true},
		},
	}
}

func (t *StorePreferenceTool) Execute(_ context.Context, args schema.ToolArgs) schema.ToolResult {
	return t.store.StorePreference(args.String("category"), args.String("preference"))
}

// GetPreferencesTool reads one category, or all of them.
type GetPreferencesTool struct {
	store schema.MemoryStore
}

// NewGetPreferencesTool creates a GetPreferencesTool backed by store.
func NewGetPreferencesTool(store schema.MemoryStore) *GetPreferencesTool {
	return &GetPreferencesTool{store: store}
}

func (t *GetPreferencesTool) Descriptor() schema.ToolDescriptor {
	return schema.ToolDescriptor{
		Name:        string(ToolGetPreferences),
		Description: "Get stored user preferences",
		Params: []schema.Param{
			{Name: "category", Type: "string", Description: "Specific category or all if not specified"},
		},
	}
}

func (t *GetPreferencesTool) Execute(_ context.Context, args schema.ToolArgs) schema.ToolResult {
	return t.store.GetPreferences(args.String("category"))
}

// StoreConversationTool appends a conversation summary.
type StoreConversationTool struct {
	store schema.MemoryStore
}

// NewStoreConversationTool creates a StoreConversationTool backed by store.
func NewStoreConversationTool(store schema.MemoryStore) *StoreConversationTool {
	return &StoreConversationTool{store: store}
}

func (t *StoreConversationTool) Descriptor() schema.ToolDescriptor {
	return schema.ToolDescriptor{
		Name:        string(ToolStoreConversation),
		Description: "Store a summary of a conversation for later recall",
		Params: []schema.Param{
			{Name: "topic", Type: "string", Description: "Short topic of the conversation", Required: true},
			{Name: "summary", Type: "string", Description: "Summary of what was discussed", Required: true},
		},
	}
}

func (t *StoreConversationTool) Execute(_ context.Context, args schema.ToolArgs) schema.ToolResult {
	return t.store.StoreConversation(args.String("topic"), args.String("summary"))
}

// GetConversationsTool searches stored summaries by topic.
type GetConversationsTool struct {
	store schema.MemoryStore
}

// NewGetConversationsTool creates a GetConversationsTool backed by store.
func NewGetConversationsTool(store schema.MemoryStore) *GetConversationsTool {
	return &GetConversationsTool{store: store}
}

func (t *GetConversationsTool) Descriptor() schema.ToolDescriptor {
	return schema.ToolDescriptor{
		Name:        string(ToolGetConversations),
		Description: "Get stored conversation summaries, filtered by topic or the most recent ones",
		Params: []schema.Param{
			{Name: "topic", Type: "string", Description: "Topic to search for; the five most recent when omitted"},
		},
	}
}

func (t *GetConversationsTool) Execute(_ context.Context, args schema.ToolArgs) schema.ToolResult {
	return t.store.GetConversations(args.String("topic"))
}
