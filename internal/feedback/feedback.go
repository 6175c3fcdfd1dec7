// Package feedback provides C12, the feedback ingestor: accept corrected
// (prompt, category) pairs from operators and upsert them into the
// classifier's vector store.
package feedback

import (
	"context"
	"fmt"

	"github.com/routellm/llm-router/internal/disjointset"
	"github.com/routellm/llm-router/internal/embedding"
	"github.com/routellm/llm-router/internal/types"
)

// Classifier is the subset of C4 the ingestor depends on.
type Classifier interface {
	AddExample(ctx context.Context, text string, category types.TaskCategory) error
}

// Ingestor validates and applies operator corrections.
type Ingestor struct {
	classifier Classifier

	// bursts groups all corrections of the same prompt hash (with no time
	// window: any repeat joins the earlier burst) so
	// operational dashboards can tell "one prompt corrected five times"
	// from "five different prompts corrected once" — a supplemented
	// feature (see SPEC_FULL.md), not part of the original spec's
	// tracked invariants.
	bursts *disjointset.DSU
}

// New builds an Ingestor around classifier.
func New(classifier Classifier) *Ingestor {
	return &Ingestor{classifier: classifier, bursts: disjointset.New()}
}

// Feedback validates category against the closed set and upserts
// (prompt, category) into the classifier (spec §4.9).
func (i *Ingestor) Feedback(ctx context.Context, prompt string, category types.TaskCategory) error {
	if !types.IsValidCategory(category) {
		return fmt.Errorf("invalid category %q: must be one of %v", category, types.Categories)
	}

	if err := i.classifier.AddExample(ctx, prompt, category); err != nil {
		return fmt.Errorf("failed to add feedback example: %w", err)
	}

	hash := embedding.HashPrompt(prompt)
	root := i.bursts.FindOrCreate(hash)
	i.bursts.Union(root, i.bursts.FindOrCreate(hash+":"+string(category)))

	return nil
}

// BurstCount returns the number of distinct correction bursts observed so
// far, for operational visibility.
func (i *Ingestor) BurstCount() int {
	return i.bursts.CountSets()
}
