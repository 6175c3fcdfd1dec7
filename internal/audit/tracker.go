package audit

import (
	"context"
	"sync"
)

// Tracker lets the orchestrator wait for in-flight fire-and-forget audit
// dispatches to drain during graceful shutdown, restored from the
// teacher's backgroundTasks sync.WaitGroup / closing-flag pattern in
// classifier.go (see SPEC_FULL.md "restored features").
type Tracker struct {
	wg sync.WaitGroup
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) add(n int) { t.wg.Add(n) }
func (t *Tracker) done()     { t.wg.Done() }

// Wait blocks until all tracked dispatches complete or ctx is done,
// whichever comes first.
func (t *Tracker) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
