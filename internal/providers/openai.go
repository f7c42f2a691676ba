// Package providers talks to OpenAI-compatible chat-completion endpoints.
package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/toolchat/toolchat/internal/schema"
)

// DefaultTimeout bounds one chat-completion round trip.
const DefaultTimeout = 120 * time.Second

// OpenAIProvider makes direct HTTP calls to any OpenAI-compatible endpoint.
type OpenAIProvider struct {
	apiKey       string
	apiBase      string
	defaultModel string
	extraHeaders map[string]string
	gateway      *ProviderSpec // non-nil for gateway providers
	spec         *ProviderSpec // non-nil for standard providers
	httpClient   *http.Client
}

// NewOpenAIProvider constructs a provider from raw config values.
// The caller extracts these from config.Config to avoid an import cycle.
func NewOpenAIProvider(
	apiKey, apiBase, defaultModel, providerName string,
	extraHeaders map[string]string,
) *OpenAIProvider {
	gateway := FindGateway(providerName, apiKey, apiBase)

	var spec *ProviderSpec
	if gateway == nil {
		spec = FindByName(providerName)
		if spec == nil {
			spec = FindByModel(defaultModel)
		}
	}

	effectiveBase := apiBase
	if effectiveBase == "" {
		if gateway != nil && gateway.DefaultAPIBase != "" {
			effectiveBase = gateway.DefaultAPIBase
		} else if spec != nil && spec.DefaultAPIBase != "" {
			effectiveBase = spec.DefaultAPIBase
		} else {
			effectiveBase = "https://api.openai.com/v1"
		}
	}
	effectiveBase = strings.TrimRight(effectiveBase, "/")

	return &OpenAIProvider{
		apiKey:       apiKey,
		apiBase:      effectiveBase,
		defaultModel: defaultModel,
		extraHeaders: extraHeaders,
		gateway:      gateway,
		spec:         spec,
		httpClient:   &http.Client{Timeout: DefaultTimeout},
	}
}

func (p *OpenAIProvider) DefaultModel() string { return p.defaultModel }

// APIBase returns the resolved endpoint base URL.
func (p *OpenAIProvider) APIBase() string { return p.apiBase }

// Chat implements schema.LLMProvider. Tools are advertised with
// tool_choice "auto" only when tools is non-empty.
func (p *OpenAIProvider) Chat(
	ctx context.Context,
	messages schema.Messages,
	tools []map[string]any,
	opts schema.ChatOptions,
) (schema.LLMResponse, error) {
	model := opts.Model
	if model == "" {
		model = p.defaultModel
	}

	body := map[string]any{
		"model":       p.resolveModel(model),
		"messages":    sanitizeMessages(messages),
		"temperature": opts.Temperature,
	}
	if opts.MaxTokens > 0 {
		body["max_tokens"] = opts.MaxTokens
	}
	if len(tools) > 0 {
		body["tools"] = tools
		body["tool_choice"] = "auto"
	}

	data, err := json.Marshal(body)
	if err != nil {
		return schema.LLMResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.apiBase+"/chat/completions", bytes.NewReader(data))
	if err != nil {
		return schema.LLMResponse{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	for k, v := range p.extraHeaders {
		req.Header.Set(k, v)
	}

	slog.Debug("chat request", "model", body["model"], "messages", messages.Len(), "tools", len(tools))

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return schema.LLMResponse{}, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return schema.LLMResponse{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return schema.LLMResponse{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, friendlyHTTPError(resp.StatusCode, raw))
	}

	return parseOpenAIResponse(raw)
}

// resolveModel strips routing prefixes from the model string so the provider
// API receives the bare model name it expects.
//
// Gateway providers (OpenRouter) keep the "provider/model" sub-prefix because
// the gateway needs it for routing; only the gateway's own prefix is
// stripped. Standard providers strip their own name prefix.
func (p *OpenAIProvider) resolveModel(model string) string {
	if p.gateway != nil {
		if p.gateway.StripModelPrefix {
			if i := strings.LastIndex(model, "/"); i >= 0 {
				return model[i+1:]
			}
			return model
		}
		if pfx := p.gateway.RoutingPrefix; pfx != "" {
			full := pfx + "/"
			if strings.HasPrefix(strings.ToLower(model), full) {
				model = model[len(full):]
			}
		}
		return model
	}

	if p.spec != nil {
		if p.spec.IsDirect {
			return model
		}
		for _, pfx := range []string{p.spec.RoutingPrefix, p.spec.Name} {
			if pfx == "" {
				continue
			}
			full := pfx + "/"
			if strings.HasPrefix(strings.ToLower(model), full) {
				return model[len(full):]
			}
		}
	}
	if prefix, rest, ok := strings.Cut(model, "/"); ok {
		norm := strings.ReplaceAll(strings.ToLower(prefix), "-", "_")
		if FindByName(norm) != nil {
			return rest
		}
	}
	return model
}

// messageToWireMap converts a typed Message to the OpenAI wire-format map.
func messageToWireMap(m schema.Message) map[string]any {
	wire := map[string]any{
		"role":    m.Role,
		"content": m.Content,
	}
	switch m.Role {
	case schema.RoleAssistant:
		// Strict providers require "content" even for tool-call-only messages.
		if s, ok := m.Content.(*string); ok && s == nil {
			wire["content"] = nil
		}
		if len(m.ToolCalls) > 0 {
			raw := make([]map[string]any, len(m.ToolCalls))
			for i, tc := range m.ToolCalls {
				raw[i] = tc.ToWireMap()
			}
			wire["tool_calls"] = raw
		}
	case schema.RoleTool:
		wire["tool_call_id"] = m.ToolCallID
		wire["name"] = m.ToolName
	}
	return wire
}

func sanitizeMessages(messages schema.Messages) []map[string]any {
	out := make([]map[string]any, 0, messages.Len())
	for _, m := range messages.Messages {
		out = append(out, messageToWireMap(m))
	}
	return out
}

// openAIRespBody is the subset of the OpenAI chat completion response we care about.
type openAIRespBody struct {
	Choices []struct {
		Message struct {
			Content   any `json:"content"`
			ToolCalls []struct {
				ID       string `json:"id"`
				Function struct {
					Name      string `json:"name"`
					Arguments string `json:"arguments"`
				} `json:"function"`
			} `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

func parseOpenAIResponse(raw []byte) (schema.LLMResponse, error) {
	var body openAIRespBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return schema.LLMResponse{}, fmt.Errorf("parse OpenAI response: %w", err)
	}
	if len(body.Choices) == 0 {
		return schema.LLMResponse{}, errors.New("empty choices in response")
	}

	msg := body.Choices[0].Message

	var content *string
	if c, ok := msg.Content.(string); ok && c != "" {
		content = &c
	}

	var toolCalls []schema.ToolCallRequest
	for _, tc := range msg.ToolCalls {
		toolCalls = append(toolCalls, schema.ToolCallRequest{
			Id:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	usage := map[string]int{
		"prompt_tokens":     body.Usage.PromptTokens,
		"completion_tokens": body.Usage.CompletionTokens,
		"total_tokens":      body.Usage.TotalTokens,
	}

	finish := body.Choices[0].FinishReason
	if finish == "" {
		finish = "stop"
	}

	return schema.LLMResponse{
		Content:      content,
		ToolCalls:    toolCalls,
		FinishReason: finish,
		Usage:        usage,
	}, nil
}

func friendlyHTTPError(code int, body []byte) string {
	if code == http.StatusTooManyRequests {
		return "rate limit exceeded"
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 300 {
		s = s[:300]
	}
	return s
}
