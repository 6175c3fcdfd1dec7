// Package embedding provides C1, the embedding runtime collaborator: text
// to fixed-dimension unit vector, token estimation, and prompt hashing.
package embedding

import (
	"context"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/routellm/llm-router/internal/types"
)

// Runtime is the capability the classifier depends on. Implementations
// must be safe to call concurrently once warmed up (spec §5).
type Runtime interface {
	// Embed turns text into a fixed-dimension unit vector.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EstimateTokens estimates the token count of text.
	EstimateTokens(text string) int

	// Dimensions returns the fixed vector dimension this runtime produces.
	Dimensions() int

	// WarmUp performs any one-time initialisation. Must be called exactly
	// once at boot before the runtime serves requests (spec §5).
	WarmUp(ctx context.Context) error
}

// HashPrompt returns the fast non-cryptographic cache-key fingerprint of
// a prompt: hash(lowercase(trim(prompt))).
func HashPrompt(prompt string) string {
	normalized := strings.ToLower(strings.TrimSpace(prompt))
	sum := xxhash.Sum64String(normalized)
	return strconv.FormatUint(sum, 16)
}

// EstimateTokens implements the spec's shared estimate: ceil(len(text)/4).
func EstimateTokens(text string) int {
	return types.EstimateTokens(text)
}
