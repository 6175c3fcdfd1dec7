package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routellm/llm-router/internal/audit"
	"github.com/routellm/llm-router/internal/catalog"
	"github.com/routellm/llm-router/internal/provider"
	"github.com/routellm/llm-router/internal/types"
)

type stubClassifier struct {
	result *types.ClassificationResult
	err    error
}

// Classify returns the scripted result; an unscripted stub answers with a
// confident "simple" classification, as a real classifier never returns a
// nil result without an error.
func (s *stubClassifier) Classify(ctx context.Context, prompt string) (*types.ClassificationResult, error) {
	if s.result == nil && s.err == nil {
		return &types.ClassificationResult{Category: types.CategorySimple, Confidence: 0.9, Scores: map[types.TaskCategory]float64{}}, nil
	}
	return s.result, s.err
}

type stubCatalogue struct {
	all []types.ModelProfile
}

func (c *stubCatalogue) GetAll() []types.ModelProfile { return c.all }
func (c *stubCatalogue) GetCandidates(sensitivity types.PrivacySensitivity, minContextWindow int, maxCostPer1M *float64) []types.ModelProfile {
	return catalog.FilterCandidates(c.all, sensitivity, minContextWindow, maxCostPer1M)
}

type scriptedClient struct {
	// byModel maps model id to a queue of (result, error) outcomes, popped
	// in order on each call.
	byModel map[string][]outcome
	calls   map[string]int
}

type outcome struct {
	result *provider.Result
	err    error
}

func newScriptedClient() *scriptedClient {
	return &scriptedClient{byModel: map[string][]outcome{}, calls: map[string]int{}}
}

func (c *scriptedClient) always(modelID string, result *provider.Result, err error) {
	c.byModel[modelID] = []outcome{{result, err}}
}

func (c *scriptedClient) Complete(ctx context.Context, prompt string, modelID string) (*provider.Result, error) {
	c.calls[modelID]++
	outcomes := c.byModel[modelID]
	if len(outcomes) == 0 {
		return nil, errors.New("no scripted outcome for " + modelID)
	}
	idx := len(outcomes) - 1
	if c.calls[modelID]-1 < len(outcomes) {
		idx = c.calls[modelID] - 1
	}
	o := outcomes[idx]
	return o.result, o.err
}

func testModel(id string, costIn, costOut float64, tier types.LatencyTier) types.ModelProfile {
	return types.ModelProfile{
		ID:                id,
		CostPer1MInput:    costIn,
		CostPer1MOutput:   costOut,
		ContextWindow:     100000,
		SupportsSensitive: true,
		LatencyTier:       tier,
		QualityScore: map[types.TaskCategory]int{
			types.CategorySimple: 5, types.CategoryCode: 5, types.CategoryReasoning: 5,
			types.CategoryDataAnalysis: 5, types.CategoryCreative: 5,
		},
	}
}

func TestComplete_HappyPathForcedModel(t *testing.T) {
	modelA := testModel("provider/model-a", 1.0, 2.0, types.LatencyFast)
	client := newScriptedClient()
	client.always("provider/model-a", &provider.Result{
		Data:      provider.CompletionData{Content: "Hello world", InputTokens: 100, OutputTokens: 50},
		LatencyMs: 200,
	}, nil)

	sink := audit.NewMemorySink()
	r := New(&stubClassifier{}, &stubCatalogue{all: []types.ModelProfile{modelA}}, client, sink)

	resp, err := r.Complete(context.Background(), "hello", types.RoutingOptions{ForceModel: "provider/model-a"})
	require.NoError(t, err)

	assert.Equal(t, "Hello world", resp.Content)
	assert.Equal(t, "provider/model-a", resp.Model)
	assert.False(t, resp.FallbackUsed)
	assert.InDelta(t, 0.0002, resp.EstimatedCostUsd, 1e-6)
	assert.Equal(t, int64(200), resp.LatencyMs)
	assert.Equal(t, 100, resp.Usage.InputTokens)
	assert.Equal(t, 50, resp.Usage.OutputTokens)
}

func TestComplete_CostMath(t *testing.T) {
	modelA := testModel("m", 2.0, 6.0, types.LatencyFast)
	client := newScriptedClient()
	client.always("m", &provider.Result{
		Data:      provider.CompletionData{Content: "x", InputTokens: 500, OutputTokens: 100},
		LatencyMs: 10,
	}, nil)

	r := New(&stubClassifier{}, &stubCatalogue{all: []types.ModelProfile{modelA}}, client, audit.NewMemorySink())
	resp, err := r.Complete(context.Background(), "hi", types.RoutingOptions{ForceModel: "m"})
	require.NoError(t, err)
	assert.InDelta(t, 0.0016, resp.EstimatedCostUsd, 1e-6)
}

func TestComplete_LowConfidenceEscalatesToReasoning(t *testing.T) {
	modelA := testModel("m", 1, 1, types.LatencyFast)
	client := newScriptedClient()
	client.always("m", &provider.Result{Data: provider.CompletionData{Content: "ok"}, LatencyMs: 1}, nil)

	classifier := &stubClassifier{result: &types.ClassificationResult{
		Category: types.CategorySimple, Confidence: 0.3, Scores: map[types.TaskCategory]float64{},
	}}
	r := New(classifier, &stubCatalogue{all: []types.ModelProfile{modelA}}, client, audit.NewMemorySink())

	resp, err := r.Complete(context.Background(), "prompt", types.RoutingOptions{})
	require.NoError(t, err)
	assert.Equal(t, types.CategoryReasoning, resp.Category)
}

func TestComplete_ConfidenceExactlyAtMinimumDoesNotEscalate(t *testing.T) {
	modelA := testModel("m", 1, 1, types.LatencyFast)
	client := newScriptedClient()
	client.always("m", &provider.Result{Data: provider.CompletionData{Content: "ok"}, LatencyMs: 1}, nil)

	classifier := &stubClassifier{result: &types.ClassificationResult{
		Category: types.CategoryCreative, Confidence: 0.5, Scores: map[types.TaskCategory]float64{},
	}}
	r := New(classifier, &stubCatalogue{all: []types.ModelProfile{modelA}}, client, audit.NewMemorySink())

	resp, err := r.Complete(context.Background(), "prompt", types.RoutingOptions{})
	require.NoError(t, err)
	assert.Equal(t, types.CategoryCreative, resp.Category)
}

func TestComplete_AllModelsFail(t *testing.T) {
	modelA := testModel("a", 1, 1, types.LatencyFast)
	modelB := testModel("b", 1, 1, types.LatencyFast)
	client := newScriptedClient()
	client.always("a", nil, errors.New("down"))
	client.always("b", nil, errors.New("down"))

	classifier := &stubClassifier{result: &types.ClassificationResult{Category: types.CategoryCode, Confidence: 0.9, Scores: map[types.TaskCategory]float64{}}}
	r := New(classifier, &stubCatalogue{all: []types.ModelProfile{modelA, modelB}}, client, audit.NewMemorySink())

	_, err := r.Complete(context.Background(), "prompt", types.RoutingOptions{Strategy: types.StrategyQualityFirst})
	require.Error(t, err)
	var allFailed *types.AllModelsFailedError
	assert.ErrorAs(t, err, &allFailed)
	assert.Len(t, allFailed.Attempted, 2)
}

func TestComplete_ForceModelUnknown(t *testing.T) {
	r := New(&stubClassifier{}, &stubCatalogue{all: nil}, newScriptedClient(), audit.NewMemorySink())
	_, err := r.Complete(context.Background(), "hi", types.RoutingOptions{ForceModel: "does-not-exist"})
	require.Error(t, err)
	var unknown *types.UnknownModelError
	assert.ErrorAs(t, err, &unknown)
}

func TestComplete_NoModelsAvailable(t *testing.T) {
	classifier := &stubClassifier{result: &types.ClassificationResult{Category: types.CategoryCode, Confidence: 0.9, Scores: map[types.TaskCategory]float64{}}}
	r := New(classifier, &stubCatalogue{all: nil}, newScriptedClient(), audit.NewMemorySink())

	_, err := r.Complete(context.Background(), "hi", types.RoutingOptions{})
	require.Error(t, err)
	var noModels *types.NoModelsAvailableError
	assert.ErrorAs(t, err, &noModels)
}

func TestComplete_SuccessfulRequestAppendsExactlyOneAuditEntry(t *testing.T) {
	modelA := testModel("m", 1, 1, types.LatencyFast)
	client := newScriptedClient()
	client.always("m", &provider.Result{Data: provider.CompletionData{Content: "ok", InputTokens: 10, OutputTokens: 5}, LatencyMs: 5}, nil)

	sink := audit.NewMemorySink()
	r := New(&stubClassifier{}, &stubCatalogue{all: []types.ModelProfile{modelA}}, client, sink)

	_, err := r.Complete(context.Background(), "hi", types.RoutingOptions{ForceModel: "m", ForceCategory: types.CategorySimple})
	require.NoError(t, err)
	require.NoError(t, r.Close(context.Background()))

	assert.Equal(t, 1, sink.Count())
	assert.Equal(t, "m", sink.Entries[0].Model)
	assert.Equal(t, 1.0, sink.Entries[0].Confidence)
}

func TestComplete_FallbackUsedReflectsRankPosition(t *testing.T) {
	modelA := testModel("a", 1, 1, types.LatencyFast)
	modelB := testModel("b", 1, 1, types.LatencyFast)
	client := newScriptedClient()
	client.always("a", nil, errors.New("down"))
	client.always("b", &provider.Result{Data: provider.CompletionData{Content: "ok"}, LatencyMs: 1}, nil)

	classifier := &stubClassifier{result: &types.ClassificationResult{Category: types.CategoryCode, Confidence: 0.9, Scores: map[types.TaskCategory]float64{}}}
	r := New(classifier, &stubCatalogue{all: []types.ModelProfile{modelA, modelB}}, client, audit.NewMemorySink())

	resp, err := r.Complete(context.Background(), "hi", types.RoutingOptions{Strategy: types.StrategyQualityFirst})
	require.NoError(t, err)
	assert.Equal(t, "b", resp.Model)
	assert.True(t, resp.FallbackUsed)
}

func TestComplete_CircuitOpensThenExcludesModel(t *testing.T) {
	modelA := testModel("a", 1, 1, types.LatencyFast)
	modelB := testModel("b", 1, 1, types.LatencyFast)
	client := newScriptedClient()
	client.always("a", nil, errors.New("down"))
	client.always("b", &provider.Result{Data: provider.CompletionData{Content: "ok"}, LatencyMs: 1}, nil)

	classifier := &stubClassifier{result: &types.ClassificationResult{Category: types.CategoryCode, Confidence: 0.9, Scores: map[types.TaskCategory]float64{}}}
	r := New(classifier, &stubCatalogue{all: []types.ModelProfile{modelA, modelB}}, client, audit.NewMemorySink())

	opts := types.RoutingOptions{Strategy: types.StrategyQualityFirst}
	for i := 0; i < 3; i++ {
		resp, err := r.Complete(context.Background(), "hi", opts)
		require.NoError(t, err)
		assert.Equal(t, "b", resp.Model)
	}

	assert.Equal(t, breaker_Open(r, "a"), true)

	// Fourth call must skip model "a" entirely: no scripted outcome is
	// consumed for it beyond what's already registered, and B is first.
	resp, err := r.Complete(context.Background(), "hi", opts)
	require.NoError(t, err)
	assert.Equal(t, "b", resp.Model)
	assert.False(t, resp.FallbackUsed, "once A is excluded by the breaker, B ranks first")
}

func breaker_Open(r *Router, modelID string) bool {
	return r.breakers.Get(modelID).State().String() == "OPEN"
}
