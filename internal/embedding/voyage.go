package embedding

import (
	"context"
	"fmt"
	"sync"

	"github.com/austinfhunter/voyageai"
)

const (
	voyageModel      = "voyage-3.5-lite"
	voyageDimensions = 384
)

// VoyageRuntime adapts the Voyage AI embedding API to the Runtime
// capability. The underlying client is a process-wide singleton, mirroring
// the teacher's clients/voyage.voyageService.
type VoyageRuntime struct {
	apiKey string

	once   sync.Once
	client *voyageai.VoyageClient
}

// NewVoyageRuntime creates a runtime bound to the given API key. The
// client itself is constructed lazily on first WarmUp/Embed call.
func NewVoyageRuntime(apiKey string) *VoyageRuntime {
	return &VoyageRuntime{apiKey: apiKey}
}

func (r *VoyageRuntime) ensureClient() *voyageai.VoyageClient {
	r.once.Do(func() {
		r.client = voyageai.NewClient(&voyageai.VoyageClientOpts{Key: r.apiKey})
	})
	return r.client
}

// WarmUp constructs the underlying client and issues one throwaway
// embedding call so the first real request is not the first network hit.
func (r *VoyageRuntime) WarmUp(ctx context.Context) error {
	_, err := r.Embed(ctx, "warmup")
	if err != nil {
		return fmt.Errorf("embedding warmup failed: %w", err)
	}
	return nil
}

// Embed generates a unit vector for text using Voyage's query embedding
// type, matching the teacher's VoyageEmbeddingTypeDefault usage for
// single-text classification calls.
func (r *VoyageRuntime) Embed(ctx context.Context, text string) ([]float32, error) {
	client := r.ensureClient()
	dims := voyageDimensions
	inputType := "query"

	embeddings, err := client.Embed(
		[]string{text},
		voyageModel,
		&voyageai.EmbeddingRequestOpts{
			InputType:       &inputType,
			OutputDimension: &dims,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("could not get embedding: %w", err)
	}
	if len(embeddings.Data) == 0 {
		return nil, fmt.Errorf("voyage returned no embeddings")
	}

	return embeddings.Data[0].Embedding, nil
}

// EstimateTokens delegates to the shared ceil(len/4) heuristic; Voyage's
// own tokenizer is not exposed through the SDK the teacher depends on.
func (r *VoyageRuntime) EstimateTokens(text string) int {
	return EstimateTokens(text)
}

// Dimensions returns the configured embedding dimension.
func (r *VoyageRuntime) Dimensions() int {
	return voyageDimensions
}
