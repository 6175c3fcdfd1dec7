package provider

import "github.com/routellm/llm-router/internal/catalog"

// ForProvider builds the Client for name using apiKey, selecting the
// Anthropic-specific client for anthropic and the shared OpenAI-compatible
// client for every other supported provider (spec §4.2/§4.3).
func ForProvider(name catalog.ProviderName, apiKey string) Client {
	switch name {
	case catalog.ProviderAnthropic:
		return NewAnthropicClient(apiKey)
	case catalog.ProviderOpenAI:
		return NewOpenAICompatClient(string(catalog.ProviderOpenAI), OpenAIBaseURL, apiKey)
	case catalog.ProviderGoogle:
		return NewOpenAICompatClient(string(catalog.ProviderGoogle), GoogleBaseURL, apiKey)
	case catalog.ProviderDeepSeek:
		return NewOpenAICompatClient(string(catalog.ProviderDeepSeek), DeepSeekBaseURL, apiKey)
	case catalog.ProviderOpenRouter:
		return NewOpenAICompatClient(string(catalog.ProviderOpenRouter), OpenRouterBaseURL, apiKey)
	default:
		return NewOpenAICompatClient(string(catalog.ProviderOpenRouter), OpenRouterBaseURL, apiKey)
	}
}
