// Package audit provides C10, the asynchronous audit log sink.
package audit

import (
	"context"
	"log"
	"time"

	"github.com/routellm/llm-router/internal/types"
)

// Sink is the capability the orchestrator dispatches audit writes to.
// Insert returns its error; Dispatch runs it off the request path and
// logs and drops any failure, so it never blocks or fails the response.
type Sink interface {
	Insert(ctx context.Context, entry types.AuditEntry) error
}

// insertTimeout bounds how long a detached audit write may run.
const insertTimeout = 5 * time.Second

// Dispatch fires entry at sink on its own goroutine with a detached
// context (the request's own context may already be cancelled by the
// time this goroutine runs), logging rather than propagating any
// failure. This is the explicit asynchronous dispatch primitive spec §9
// calls for: fire-and-forget, errors captured inside the boundary.
//
// tracker, if non-nil, lets callers (e.g. graceful shutdown) wait for
// in-flight dispatches to drain.
func Dispatch(sink Sink, entry types.AuditEntry, tracker *Tracker) {
	if tracker != nil {
		tracker.add(1)
	}
	go func() {
		if tracker != nil {
			defer tracker.done()
		}
		ctx, cancel := context.WithTimeout(context.Background(), insertTimeout)
		defer cancel()
		if err := sink.Insert(ctx, entry); err != nil {
			log.Printf("audit insert failed for model %s: %v", entry.Model, err)
		}
	}()
}

// TruncatePreview returns the first 200 characters of prompt, per the
// AuditEntry.PromptPreview contract in spec §3.
func TruncatePreview(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= 200 {
		return prompt
	}
	return string(runes[:200])
}
