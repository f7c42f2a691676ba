package schema

// MemoryStore is the preference and conversation memory the memory tools
// operate on. Every method returns the payload handed back to the model.
type MemoryStore interface {
	StorePreference(category, preference string) map[string]any
	GetPreferences(category string) map[string]any
	StoreConversation(topic, summary string) map[string]any
	GetConversations(topic string) map[string]any
}
