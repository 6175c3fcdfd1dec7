package audit

import (
	"context"
	"sync"

	"github.com/routellm/llm-router/internal/types"
)

// MemorySink is the in-memory Sink used by tests, matching the teacher's
// hand-rolled-mock-over-mocking-framework style.
type MemorySink struct {
	mu      sync.Mutex
	Entries []types.AuditEntry
	FailNext bool
}

// NewMemorySink returns an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Insert(ctx context.Context, entry types.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailNext {
		s.FailNext = false
		return errInsertFailed
	}
	s.Entries = append(s.Entries, entry)
	return nil
}

// Count returns the number of entries recorded so far.
func (s *MemorySink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Entries)
}

var errInsertFailed = insertError{}

type insertError struct{}

func (insertError) Error() string { return "simulated audit insert failure" }
