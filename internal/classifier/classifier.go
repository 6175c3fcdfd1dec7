// Package classifier implements C4, the semantic prompt classifier: a
// two-pass nearest-neighbour classifier backed by embeddings, a vector
// store, and a classification cache.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/routellm/llm-router/internal/cache"
	"github.com/routellm/llm-router/internal/embedding"
	"github.com/routellm/llm-router/internal/types"
	"github.com/routellm/llm-router/internal/vectorstore"
)

const (
	firstPassK     = 7
	secondPassK    = 20
	confidenceHigh = 0.75
)

// Classifier composes the embedding runtime, vector store, and cache into
// the classify/addExample/ensureCollection capability the orchestrator
// depends on.
type Classifier struct {
	embedding embedding.Runtime
	store     vectorstore.Store
	cache     cache.Cache
}

// New builds a Classifier from its three collaborators.
func New(emb embedding.Runtime, store vectorstore.Store, c cache.Cache) *Classifier {
	return &Classifier{embedding: emb, store: store, cache: c}
}

// EnsureCollection creates the backing vector collection if absent.
func (c *Classifier) EnsureCollection(ctx context.Context) error {
	if err := c.store.EnsureCollection(ctx, c.embedding.Dimensions()); err != nil {
		return &types.ClassifierError{Op: "ensureCollection", Cause: err}
	}
	return nil
}

// Classify implements the spec §4.1 algorithm: cache lookup, first-pass
// linear-weighted KNN, optional cubic-weighted second pass, cache write
// on high confidence.
func (c *Classifier) Classify(ctx context.Context, prompt string) (*types.ClassificationResult, error) {
	key := cache.Key(embedding.HashPrompt(prompt))

	if cached, hit, err := c.cache.Get(ctx, key); err != nil {
		return nil, &types.ClassifierError{Op: "cache get", Cause: err}
	} else if hit {
		result, err := decodeResult(cached)
		if err != nil {
			return nil, &types.ClassifierError{Op: "cache decode", Cause: err}
		}
		result.Source = types.SourceCache
		return result, nil
	}

	vector, err := c.embedding.Embed(ctx, prompt)
	if err != nil {
		return nil, &types.ClassifierError{Op: "embed", Cause: err}
	}

	firstPass, err := c.runPass(ctx, vector, firstPassK, linearWeight)
	if err != nil {
		return nil, err
	}
	firstPass.EstimatedInputTokens = c.embedding.EstimateTokens(prompt)

	result := firstPass
	if firstPass.Confidence < confidenceHigh {
		secondPass, err := c.runPass(ctx, vector, secondPassK, cubicWeight)
		if err != nil {
			return nil, err
		}
		secondPass.EstimatedInputTokens = firstPass.EstimatedInputTokens

		if secondPass.Confidence > firstPass.Confidence {
			secondPass.Source = types.SourceSemantic
			result = secondPass
		}
	}

	if result.Confidence >= confidenceHigh {
		encoded, err := encodeResult(result)
		if err == nil {
			// Best-effort: cache-write failure must not fail classification
			// (spec §4.1 step 5, §9 "cache-write path is best-effort").
			_ = c.cache.Set(ctx, key, encoded, cache.TTL)
		}
	}

	return result, nil
}

// AddExample embeds text and upserts a new labelled point, for operator
// feedback corrections (C12 consumes this).
func (c *Classifier) AddExample(ctx context.Context, text string, category types.TaskCategory) error {
	vector, err := c.embedding.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed example: %w", err)
	}

	point := vectorstore.Point{
		ID:      uuid.New().String(),
		Vector:  vector,
		Category: string(category),
		Text:     text,
		Source:   "feedback",
		AddedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	return c.store.Upsert(ctx, point)
}

type weightFunc func(score float32) float64

func linearWeight(score float32) float64 { return float64(score) }

func cubicWeight(score float32) float64 {
	s := float64(score)
	return s * s * s
}

// runPass executes one KNN search and tallies weighted votes per category,
// exactly as spec §4.1 step/scoring describes.
func (c *Classifier) runPass(ctx context.Context, vector []float32, k int, weight weightFunc) (*types.ClassificationResult, error) {
	matches, err := c.store.Search(ctx, vector, k)
	if err != nil {
		return nil, &types.ClassifierError{Op: "vector search", Cause: err}
	}

	scores := make(map[types.TaskCategory]float64, len(types.Categories))
	for _, cat := range types.Categories {
		scores[cat] = 0
	}

	signals := make([]string, 0, len(matches))
	for _, m := range matches {
		catStr, _ := m.Payload["category"].(string)
		cat := types.TaskCategory(catStr)
		if !types.IsValidCategory(cat) {
			continue
		}
		scores[cat] += weight(m.Score)
		signals = append(signals, fmt.Sprintf("%s(%.2f)", cat, m.Score))
	}

	sum := 0.0
	for _, cat := range types.Categories {
		sum += scores[cat]
	}
	divisor := sum
	if divisor == 0 {
		divisor = 1
	}

	normalized := make(map[types.TaskCategory]float64, len(types.Categories))
	var winner types.TaskCategory
	best := -1.0
	for _, cat := range types.Categories {
		n := scores[cat] / divisor
		normalized[cat] = n
		if n > best {
			best = n
			winner = cat
		}
	}

	return &types.ClassificationResult{
		Category:            winner,
		Confidence:          best,
		Scores:               normalized,
		Signals:              signals,
		Source:               types.SourceSemantic,
	}, nil
}

// resultJSON is the cache-serialisable view of a ClassificationResult;
// map keys are stringified so json.Marshal produces stable, sorted output.
type resultJSON struct {
	Category             types.TaskCategory  `json:"category"`
	Confidence           float64             `json:"confidence"`
	Scores               map[string]float64  `json:"scores"`
	Signals              []string            `json:"signals"`
	EstimatedInputTokens int                 `json:"estimatedInputTokens"`
	Source               types.ClassificationSource `json:"source"`
}

func encodeResult(r *types.ClassificationResult) (string, error) {
	scores := make(map[string]float64, len(r.Scores))
	for cat, v := range r.Scores {
		scores[string(cat)] = v
	}
	payload := resultJSON{
		Category:             r.Category,
		Confidence:           r.Confidence,
		Scores:               scores,
		Signals:              r.Signals,
		EstimatedInputTokens: r.EstimatedInputTokens,
		Source:               r.Source,
	}
	b, err := json.Marshal(payload)
	return string(b), err
}

func decodeResult(data string) (*types.ClassificationResult, error) {
	var payload resultJSON
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return nil, err
	}
	scores := make(map[types.TaskCategory]float64, len(payload.Scores))
	for cat, v := range payload.Scores {
		scores[types.TaskCategory(cat)] = v
	}
	return &types.ClassificationResult{
		Category:             payload.Category,
		Confidence:           payload.Confidence,
		Scores:               scores,
		Signals:              payload.Signals,
		EstimatedInputTokens: payload.EstimatedInputTokens,
		Source:               payload.Source,
	}, nil
}
