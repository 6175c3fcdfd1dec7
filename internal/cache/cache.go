// Package cache provides C3, the key/value cache with TTL used to short
// circuit classification for previously-seen prompts.
package cache

import (
	"context"
	"time"
)

// TTL is the fixed lifetime of a cached classification (spec §3).
const TTL = 86400 * time.Second

// Cache is the capability the classifier depends on for the read-through
// classification cache.
type Cache interface {
	// Get returns the stored value and true on a hit, or ("", false) on a
	// miss. A miss is normal flow, not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Key builds the classification cache key for a prompt fingerprint, per
// spec §3: "llm:cls:<hashOfPrompt>".
func Key(promptHash string) string {
	return "llm:cls:" + promptHash
}
