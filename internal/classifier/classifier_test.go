package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routellm/llm-router/internal/cache"
	"github.com/routellm/llm-router/internal/embedding"
	"github.com/routellm/llm-router/internal/types"
	"github.com/routellm/llm-router/internal/vectorstore"
)

// mockEmbedding is a hand-written test double, matching the teacher's
// pkg/testutil/mocks.go MockEmbeddingClient shape.
type mockEmbedding struct {
	vector    []float32
	callCount int
}

func (m *mockEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	m.callCount++
	return m.vector, nil
}
func (m *mockEmbedding) EstimateTokens(text string) int { return len(text) }
func (m *mockEmbedding) Dimensions() int                { return 3 }
func (m *mockEmbedding) WarmUp(ctx context.Context) error { return nil }

type mockStore struct {
	matches []vectorstore.Match
}

func (m *mockStore) EnsureCollection(ctx context.Context, dimensions int) error { return nil }
func (m *mockStore) Search(ctx context.Context, vector []float32, topK int) ([]vectorstore.Match, error) {
	return m.matches, nil
}
func (m *mockStore) Upsert(ctx context.Context, point vectorstore.Point) error { return nil }

func matchesFor(category string, score float32, n int) []vectorstore.Match {
	out := make([]vectorstore.Match, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, vectorstore.Match{
			ID:      "m",
			Score:   score,
			Payload: map[string]any{"category": category},
		})
	}
	return out
}

func TestClassify_CacheHit(t *testing.T) {
	emb := &mockEmbedding{vector: []float32{0.1, 0.2, 0.3}}
	store := &mockStore{}
	c := cache.NewMemoryCache()
	cl := New(emb, store, c)

	ctx := context.Background()
	key := cache.Key(embedding.HashPrompt("hello"))
	encoded, err := encodeResult(&types.ClassificationResult{
		Category:   types.CategoryCode,
		Confidence: 0.9,
		Scores:     map[types.TaskCategory]float64{types.CategoryCode: 0.9},
		Source:     types.SourceSemantic,
	})
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, key, encoded, cache.TTL))

	result, err := cl.Classify(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, types.SourceCache, result.Source)
	assert.Equal(t, types.CategoryCode, result.Category)
	assert.Equal(t, 0, emb.callCount, "cache hit must not call embed")
}

func TestClassify_FirstPassHighConfidence_NoSecondPass(t *testing.T) {
	emb := &mockEmbedding{vector: []float32{0.1, 0.2, 0.3}}
	store := &mockStore{matches: matchesFor("code", 0.95, 7)}
	cl := New(emb, store, cache.NewMemoryCache())

	result, err := cl.Classify(context.Background(), "write a function")
	require.NoError(t, err)
	assert.Equal(t, types.CategoryCode, result.Category)
	assert.GreaterOrEqual(t, result.Confidence, 0.75)
	assert.InDelta(t, 1.0, sumScores(result.Scores), 1e-6)
}

func TestClassify_LowConfidenceTriggersSecondPass(t *testing.T) {
	emb := &mockEmbedding{vector: []float32{0.1, 0.2, 0.3}}
	// The store ignores K and returns the same two hits to both passes.
	// Linear weighting gives code 0.5/0.9 ≈ 0.556 (< 0.75); cubic weighting
	// gives 0.125/(0.125+0.064) ≈ 0.661, so the second pass wins.
	mixed := append(matchesFor("code", 0.5, 1), matchesFor("creative", 0.4, 1)...)
	store := &mockStore{matches: mixed}
	cl := New(emb, store, cache.NewMemoryCache())

	result, err := cl.Classify(context.Background(), "ambiguous prompt")
	require.NoError(t, err)
	assert.InDelta(t, 0.125/(0.125+0.064), result.Confidence, 1e-6)
}

func TestClassify_NeverCachesBelowThreshold(t *testing.T) {
	emb := &mockEmbedding{vector: []float32{0.1, 0.2, 0.3}}
	mixed := append(matchesFor("code", 0.5, 1), matchesFor("creative", 0.4, 1)...)
	store := &mockStore{matches: mixed}
	c := cache.NewMemoryCache()
	cl := New(emb, store, c)

	_, err := cl.Classify(context.Background(), "ambiguous prompt")
	require.NoError(t, err)
	assert.Equal(t, 0, c.SetCount, "below-threshold results must never be cached")
}

func TestAddExample(t *testing.T) {
	emb := &mockEmbedding{vector: []float32{1, 2, 3}}
	store := &mockStore{}
	cl := New(emb, store, cache.NewMemoryCache())

	err := cl.AddExample(context.Background(), "some text", types.CategoryReasoning)
	require.NoError(t, err)
}

func sumScores(scores map[types.TaskCategory]float64) float64 {
	sum := 0.0
	for _, v := range scores {
		sum += v
	}
	return sum
}
