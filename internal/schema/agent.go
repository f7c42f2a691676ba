package schema

type AgentSettings struct {
	Model        string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string
}

func NewAgentSettings(model string, temperature float64, maxTokens int, systemPrompt string) AgentSettings {
	return AgentSettings{
		Model:        model,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
		SystemPrompt: systemPrompt,
	}
}
