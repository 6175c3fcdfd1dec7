package catalog

import "github.com/routellm/llm-router/internal/types"

// qs is a shorthand constructor for a fully-populated quality score map,
// keeping the seed tables below readable as one line per model.
func qs(simple, code, reasoning, dataAnalysis, creative int) map[types.TaskCategory]int {
	return map[types.TaskCategory]int{
		types.CategorySimple:       simple,
		types.CategoryCode:         code,
		types.CategoryReasoning:    reasoning,
		types.CategoryDataAnalysis: dataAnalysis,
		types.CategoryCreative:     creative,
	}
}

// openRouterModels is the default fallback catalogue: a cross-section of
// models proxied through OpenRouter, spanning every tier and latency band.
var openRouterModels = []types.ModelProfile{
	{
		ID: "openrouter/auto", DisplayName: "OpenRouter Auto", Tier: types.TierGeneral,
		CostPer1MInput: 0.5, CostPer1MOutput: 1.5, ContextWindow: 128000,
		Strengths: []types.TaskCategory{types.CategorySimple}, SupportsSensitive: false,
		LatencyTier: types.LatencyFast, QualityScore: qs(7, 6, 6, 6, 6),
	},
	{
		ID: "meta-llama/llama-3.1-8b-instruct", DisplayName: "Llama 3.1 8B", Tier: types.TierGeneral,
		CostPer1MInput: 0.1, CostPer1MOutput: 0.1, ContextWindow: 131072,
		Strengths: []types.TaskCategory{types.CategorySimple}, SupportsSensitive: false,
		LatencyTier: types.LatencyFast, QualityScore: qs(7, 5, 4, 4, 5),
	},
	{
		ID: "meta-llama/llama-3.1-70b-instruct", DisplayName: "Llama 3.1 70B", Tier: types.TierMedium,
		CostPer1MInput: 0.6, CostPer1MOutput: 0.8, ContextWindow: 131072,
		Strengths: []types.TaskCategory{types.CategoryCode, types.CategoryReasoning}, SupportsSensitive: false,
		LatencyTier: types.LatencyMedium, QualityScore: qs(7, 7, 7, 6, 6),
	},
	{
		ID: "qwen/qwen-2.5-72b-instruct", DisplayName: "Qwen 2.5 72B", Tier: types.TierHard,
		CostPer1MInput: 0.9, CostPer1MOutput: 0.9, ContextWindow: 131072,
		Strengths: []types.TaskCategory{types.CategoryCode, types.CategoryDataAnalysis}, SupportsSensitive: false,
		LatencyTier: types.LatencySlow, QualityScore: qs(7, 8, 7, 8, 6),
	},
}

// googleModels maps to Gemini's family.
var googleModels = []types.ModelProfile{
	{
		ID: "google/gemini-1.5-flash", DisplayName: "Gemini 1.5 Flash", Tier: types.TierGeneral,
		CostPer1MInput: 0.075, CostPer1MOutput: 0.3, ContextWindow: 1000000,
		Strengths: []types.TaskCategory{types.CategorySimple, types.CategoryDataAnalysis}, SupportsSensitive: true,
		LatencyTier: types.LatencyFast, QualityScore: qs(8, 6, 6, 7, 6),
	},
	{
		ID: "google/gemini-1.5-pro", DisplayName: "Gemini 1.5 Pro", Tier: types.TierHard,
		CostPer1MInput: 1.25, CostPer1MOutput: 5.0, ContextWindow: 2000000,
		Strengths: []types.TaskCategory{types.CategoryReasoning, types.CategoryDataAnalysis}, SupportsSensitive: true,
		LatencyTier: types.LatencyMedium, QualityScore: qs(8, 8, 9, 9, 7),
	},
}

// anthropicModels maps to Claude's family.
var anthropicModels = []types.ModelProfile{
	{
		ID: "claude-3-5-haiku-20241022", DisplayName: "Claude 3.5 Haiku", Tier: types.TierGeneral,
		CostPer1MInput: 0.8, CostPer1MOutput: 4.0, ContextWindow: 200000,
		Strengths: []types.TaskCategory{types.CategorySimple, types.CategoryCode}, SupportsSensitive: true,
		LatencyTier: types.LatencyFast, QualityScore: qs(8, 7, 6, 6, 7),
	},
	{
		ID: "claude-3-5-sonnet-20241022", DisplayName: "Claude 3.5 Sonnet", Tier: types.TierMedium,
		CostPer1MInput: 3.0, CostPer1MOutput: 15.0, ContextWindow: 200000,
		Strengths: []types.TaskCategory{types.CategoryCode, types.CategoryReasoning}, SupportsSensitive: true,
		LatencyTier: types.LatencyMedium, QualityScore: qs(8, 9, 9, 8, 8),
	},
	{
		ID: "claude-3-opus-20240229", DisplayName: "Claude 3 Opus", Tier: types.TierHard,
		CostPer1MInput: 15.0, CostPer1MOutput: 75.0, ContextWindow: 200000,
		Strengths: []types.TaskCategory{types.CategoryReasoning, types.CategoryCreative}, SupportsSensitive: true,
		LatencyTier: types.LatencySlow, QualityScore: qs(9, 9, 10, 9, 9),
	},
}

// openAIModels maps to the GPT family.
var openAIModels = []types.ModelProfile{
	{
		ID: "gpt-4o-mini", DisplayName: "GPT-4o Mini", Tier: types.TierGeneral,
		CostPer1MInput: 0.15, CostPer1MOutput: 0.6, ContextWindow: 128000,
		Strengths: []types.TaskCategory{types.CategorySimple, types.CategoryCode}, SupportsSensitive: true,
		LatencyTier: types.LatencyFast, QualityScore: qs(8, 7, 6, 6, 7),
	},
	{
		ID: "gpt-4o", DisplayName: "GPT-4o", Tier: types.TierMedium,
		CostPer1MInput: 2.5, CostPer1MOutput: 10.0, ContextWindow: 128000,
		Strengths: []types.TaskCategory{types.CategoryCode, types.CategoryReasoning}, SupportsSensitive: true,
		LatencyTier: types.LatencyMedium, QualityScore: qs(8, 9, 8, 8, 8),
	},
	{
		ID: "o1-mini", DisplayName: "o1-mini", Tier: types.TierHard,
		CostPer1MInput: 3.0, CostPer1MOutput: 12.0, ContextWindow: 128000,
		Strengths: []types.TaskCategory{types.CategoryReasoning, types.CategoryDataAnalysis}, SupportsSensitive: false,
		LatencyTier: types.LatencySlow, QualityScore: qs(7, 9, 10, 9, 6),
	},
}

// deepSeekModels maps to DeepSeek's family.
var deepSeekModels = []types.ModelProfile{
	{
		ID: "deepseek-chat", DisplayName: "DeepSeek Chat", Tier: types.TierGeneral,
		CostPer1MInput: 0.14, CostPer1MOutput: 0.28, ContextWindow: 64000,
		Strengths: []types.TaskCategory{types.CategorySimple, types.CategoryCode}, SupportsSensitive: false,
		LatencyTier: types.LatencyFast, QualityScore: qs(7, 8, 6, 6, 6),
	},
	{
		ID: "deepseek-reasoner", DisplayName: "DeepSeek Reasoner", Tier: types.TierHard,
		CostPer1MInput: 0.55, CostPer1MOutput: 2.19, ContextWindow: 64000,
		Strengths: []types.TaskCategory{types.CategoryReasoning, types.CategoryDataAnalysis}, SupportsSensitive: false,
		LatencyTier: types.LatencySlow, QualityScore: qs(7, 8, 9, 8, 6),
	},
}
