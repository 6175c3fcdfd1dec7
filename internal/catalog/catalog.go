// Package catalog provides C5, the per-provider model catalogue: a static
// list of model profiles and the shared filter predicate over them.
package catalog

import "github.com/routellm/llm-router/internal/types"

// Catalogue is the capability the orchestrator depends on for one
// provider's models.
type Catalogue interface {
	// GetAll returns the full static model list for this provider.
	GetAll() []types.ModelProfile

	// GetCandidates returns models passing the shared filter (spec §4.2).
	GetCandidates(sensitivity types.PrivacySensitivity, minContextWindow int, maxCostPer1M *float64) []types.ModelProfile
}

// staticCatalogue is the shared implementation every provider uses,
// parameterised only by its model list.
type staticCatalogue struct {
	models []types.ModelProfile
}

func newStaticCatalogue(models []types.ModelProfile) *staticCatalogue {
	return &staticCatalogue{models: models}
}

func (c *staticCatalogue) GetAll() []types.ModelProfile {
	out := make([]types.ModelProfile, len(c.models))
	copy(out, c.models)
	return out
}

func (c *staticCatalogue) GetCandidates(sensitivity types.PrivacySensitivity, minContextWindow int, maxCostPer1M *float64) []types.ModelProfile {
	return FilterCandidates(c.models, sensitivity, minContextWindow, maxCostPer1M)
}

// FilterCandidates applies the shared §4.2 filter: keep a model iff all
// three clauses hold. Empty input yields empty output.
func FilterCandidates(models []types.ModelProfile, sensitivity types.PrivacySensitivity, minContextWindow int, maxCostPer1M *float64) []types.ModelProfile {
	out := make([]types.ModelProfile, 0, len(models))
	for _, m := range models {
		if sensitivity.RequiresSensitiveSupport() && !m.SupportsSensitive {
			continue
		}
		if m.ContextWindow < minContextWindow {
			continue
		}
		if maxCostPer1M != nil && m.CostPer1MInput > *maxCostPer1M {
			continue
		}
		out = append(out, m)
	}
	return out
}

// ProviderName identifies one of the five supported providers.
type ProviderName string

const (
	ProviderOpenRouter ProviderName = "openrouter"
	ProviderGoogle     ProviderName = "google"
	ProviderAnthropic  ProviderName = "anthropic"
	ProviderOpenAI     ProviderName = "openai"
	ProviderDeepSeek   ProviderName = "deepseek"
)

// ForProvider returns the catalogue for name, defaulting to openrouter
// for any unrecognised value (spec §4.2).
func ForProvider(name ProviderName) Catalogue {
	switch name {
	case ProviderGoogle:
		return newStaticCatalogue(googleModels)
	case ProviderAnthropic:
		return newStaticCatalogue(anthropicModels)
	case ProviderOpenAI:
		return newStaticCatalogue(openAIModels)
	case ProviderDeepSeek:
		return newStaticCatalogue(deepSeekModels)
	case ProviderOpenRouter:
		return newStaticCatalogue(openRouterModels)
	default:
		return newStaticCatalogue(openRouterModels)
	}
}
