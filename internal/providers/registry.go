package providers

import "strings"

// ProviderSpec is the metadata record for one LLM provider.
type ProviderSpec struct {
	Name        string   // config field name, e.g. "deepseek"
	Keywords    []string // model-name keywords for matching (lowercase)
	EnvKey      string   // conventional env var for the API key
	DisplayName string   // shown in `toolchat status`

	RoutingPrefix string // model prefix used for routing, stripped before sending

	IsGateway           bool   // routes any model (OpenRouter)
	DetectByKeyPrefix   string // match api_key prefix to identify gateway
	DetectByBaseKeyword string // match substring in api_base URL
	DefaultAPIBase      string // fallback base URL when none is configured

	StripModelPrefix bool // strip "provider/" before using the model name

	IsDirect bool // user-supplied endpoint, no routing rules
}

// Label returns the display name, defaulting to Title-cased Name.
func (s ProviderSpec) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return strings.ToTitle(s.Name[:1]) + s.Name[1:]
}

// PROVIDERS is the registry. Order = match priority.
var PROVIDERS = []ProviderSpec{
	{
		Name:        "custom",
		DisplayName: "Custom",
		IsDirect:    true,
	},
	{
		Name:                "openrouter",
		Keywords:            []string{"openrouter"},
		EnvKey:              "OPENROUTER_API_KEY",
		DisplayName:         "OpenRouter",
		RoutingPrefix:       "openrouter",
		IsGateway:           true,
		DetectByKeyPrefix:   "sk-or-",
		DetectByBaseKeyword: "openrouter",
		DefaultAPIBase:      "https://openrouter.ai/api/v1",
	},
	{
		Name:           "openai",
		Keywords:       []string{"openai", "gpt"},
		EnvKey:         "OPENAI_API_KEY",
		DisplayName:    "OpenAI",
		DefaultAPIBase: "https://api.openai.com/v1",
	},
	{
		Name:           "deepseek",
		Keywords:       []string{"deepseek"},
		EnvKey:         "DEEPSEEK_API_KEY",
		DisplayName:    "DeepSeek",
		RoutingPrefix:  "deepseek",
		DefaultAPIBase: "https://api.deepseek.com",
	},
}

// FindByModel matches a standard provider by model-name keyword (case-insensitive).
// Gateways are skipped; those are matched by api_key/api_base.
func FindByModel(model string) *ProviderSpec {
	modelLower := strings.ToLower(model)
	modelNorm := strings.ReplaceAll(modelLower, "-", "_")
	modelPrefix, _, _ := strings.Cut(modelLower, "/")
	normalizedPrefix := strings.ReplaceAll(modelPrefix, "-", "_")

	var std []int
	for i := range PROVIDERS {
		if !PROVIDERS[i].IsGateway {
			std = append(std, i)
		}
	}

	// Prefer explicit provider prefix.
	for _, i := range std {
		spec := &PROVIDERS[i]
		if modelPrefix != "" && normalizedPrefix == spec.Name {
			return spec
		}
	}

	for _, i := range std {
		spec := &PROVIDERS[i]
		for _, kw := range spec.Keywords {
			kw = strings.ToLower(kw)
			kwNorm := strings.ReplaceAll(kw, "-", "_")
			if strings.Contains(modelLower, kw) || strings.Contains(modelNorm, kwNorm) {
				return spec
			}
		}
	}
	return nil
}

// FindGateway detects the gateway provider.
// Priority: (1) explicit provider name, (2) api_key prefix, (3) api_base keyword.
func FindGateway(providerName, apiKey, apiBase string) *ProviderSpec {
	if providerName != "" {
		if s := FindByName(providerName); s != nil && s.IsGateway {
			return s
		}
	}
	for i := range PROVIDERS {
		spec := &PROVIDERS[i]
		if spec.DetectByKeyPrefix != "" && strings.HasPrefix(apiKey, spec.DetectByKeyPrefix) {
			return spec
		}
		if spec.DetectByBaseKeyword != "" && strings.Contains(apiBase, spec.DetectByBaseKeyword) {
			return spec
		}
	}
	return nil
}

// FindByName returns the ProviderSpec whose Name equals name.
func FindByName(name string) *ProviderSpec {
	for i := range PROVIDERS {
		if PROVIDERS[i].Name == name {
			return &PROVIDERS[i]
		}
	}
	return nil
}
