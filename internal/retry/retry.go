// Package retry provides C9, the retry driver: execute an operation up to
// N times with exponential backoff, surfacing the last error. Generalised
// from the teacher's HTTP-specific internal/retry/retry.go into a plain
// operation-based driver, since the orchestrator retries a provider call
// as an opaque unit rather than inspecting status codes itself.
package retry

import (
	"context"
	"time"
)

// Config controls attempt count and backoff. Production defaults are
// attempts=2, baseDelay=300ms (spec §4.6).
type Config struct {
	Attempts  int
	BaseDelay time.Duration
}

// DefaultConfig returns the production retry configuration.
func DefaultConfig() Config {
	return Config{Attempts: 2, BaseDelay: 300 * time.Millisecond}
}

// Op is the operation WithRetry drives. It returns a value on success.
type Op func(ctx context.Context) (any, error)

// WithRetry invokes op up to cfg.Attempts times (first call counted).
// Between attempt i and i+1 it sleeps cfg.BaseDelay * 2^i. On success it
// returns the value immediately without further calls. On context
// cancellation it stops retrying and surfaces the cancellation, since
// retrying a cancelled operation is never correct (spec §5).
func WithRetry(ctx context.Context, cfg Config, op Op) (any, error) {
	var lastErr error

	for attempt := 0; attempt < cfg.Attempts; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		value, err := op(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err

		if attempt < cfg.Attempts-1 {
			delay := cfg.BaseDelay * time.Duration(1<<uint(attempt))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return nil, lastErr
}
