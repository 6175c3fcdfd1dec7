// Package provider implements C6, the provider client: executing one
// completion against one model via a provider's HTTP API and normalising
// the response into a common shape.
package provider

import (
	"context"
	"time"
)

// CallDeadline is the overall per-call deadline enforced via cancellation
// (spec §4.3/§5).
const CallDeadline = 30 * time.Second

// CompletionData is the normalised response every provider client
// produces: the first choice's content plus input/output token usage,
// flattened out of the provider's JSON body.
type CompletionData struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Result pairs the normalised data with the measured wall-clock latency.
type Result struct {
	Data      CompletionData
	LatencyMs int64
}

// Client is the capability C11 depends on for one provider.
type Client interface {
	// Complete executes a single-turn completion against modelId.
	Complete(ctx context.Context, prompt string, modelID string) (*Result, error)
}

// measureLatency wraps fn, returning its result alongside the elapsed
// time from just before the call to just after it returns (spec §4.3:
// "measured from the moment just before the request is sent until just
// after the response body is fully read").
func measureLatency(fn func() (CompletionData, error)) (*Result, error) {
	start := time.Now()
	data, err := fn()
	elapsed := time.Since(start)
	if err != nil {
		return nil, err
	}
	return &Result{Data: data, LatencyMs: elapsed.Milliseconds()}, nil
}
