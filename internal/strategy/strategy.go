// Package strategy provides C7, the routing strategies that rank
// catalogue candidates under a classification context.
package strategy

import (
	"sort"

	"github.com/routellm/llm-router/internal/types"
)

// Strategy ranks candidates for a category, returning a sorted copy of
// the input. Implementations must not mutate the input slice.
type Strategy interface {
	Select(category types.TaskCategory, candidates []types.ModelProfile) []types.ModelProfile
}

type weights struct {
	quality float64
	cost    float64
	latency float64
}

type weighted struct {
	w weights
}

func (s weighted) score(category types.TaskCategory, m types.ModelProfile) float64 {
	quality := float64(m.QualityScore[category])
	costScore := 10 - minFloat(m.CostPer1MInput*5, 10)
	if costScore < 0 {
		costScore = 0
	}
	latencyScore := m.LatencyTier.Weight()

	return s.w.quality*quality + s.w.cost*costScore + s.w.latency*latencyScore
}

// Select sorts a copy of candidates by descending score, stable on ties
// so input order is preserved (spec §4.4).
func (s weighted) Select(category types.TaskCategory, candidates []types.ModelProfile) []types.ModelProfile {
	type scored struct {
		model types.ModelProfile
		score float64
	}

	items := make([]scored, len(candidates))
	for i, m := range candidates {
		items[i] = scored{model: m, score: s.score(category, m)}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].score > items[j].score
	})

	out := make([]types.ModelProfile, len(items))
	for i, it := range items {
		out[i] = it.model
	}
	return out
}

// CostFirst weighs cost most heavily: quality 0.2, cost 0.7, latency 0.1.
func CostFirst() Strategy { return weighted{w: weights{quality: 0.2, cost: 0.7, latency: 0.1}} }

// QualityFirst weighs quality most heavily: quality 0.8, cost 0.1, latency 0.1.
func QualityFirst() Strategy { return weighted{w: weights{quality: 0.8, cost: 0.1, latency: 0.1}} }

// Balanced weighs quality 0.5, cost 0.3, latency 0.2.
func Balanced() Strategy { return weighted{w: weights{quality: 0.5, cost: 0.3, latency: 0.2}} }

// ForName returns the strategy for name, defaulting to Balanced for any
// unrecognised value (spec §4.4).
func ForName(name types.RoutingStrategyName) Strategy {
	switch name {
	case types.StrategyCostFirst:
		return CostFirst()
	case types.StrategyQualityFirst:
		return QualityFirst()
	case types.StrategyBalanced:
		return Balanced()
	default:
		return Balanced()
	}
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
