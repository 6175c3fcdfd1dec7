// Package breaker provides C8, the per-model three-state circuit breaker.
package breaker

import (
	"sync"
	"time"
)

// State is one of the three circuit breaker states.
type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "CLOSED"
	case Open:
		return "OPEN"
	case HalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

const (
	failureThreshold   = 3
	successThreshold   = 2
	halfOpenTimeout    = 60 * time.Second
)

// Logger receives human-readable state-transition lines (spec §4.5).
type Logger func(format string, args ...any)

// Breaker is a single model's circuit breaker. Not persisted across
// process restarts (spec §1 Non-goals).
type Breaker struct {
	mu sync.Mutex

	modelID string
	logger  Logger

	state               State
	failureCount        int
	successCount        int
	lastFailureTimestamp time.Time
}

// New creates a breaker in the CLOSED state.
func New(modelID string, logger Logger) *Breaker {
	if logger == nil {
		logger = func(string, ...any) {}
	}
	return &Breaker{modelID: modelID, logger: logger, state: Closed}
}

// State returns the current state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// CanExecute reports whether a call may be admitted, transitioning OPEN
// to HALF_OPEN as a probe once the timeout window has elapsed.
func (b *Breaker) CanExecute() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		return true
	case HalfOpen:
		return true
	case Open:
		if time.Since(b.lastFailureTimestamp) >= halfOpenTimeout {
			b.transition(HalfOpen)
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess records a successful call outcome.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case Closed:
		b.failureCount = 0
	case HalfOpen:
		b.successCount++
		if b.successCount >= successThreshold {
			b.resetCounters()
			b.transition(Closed)
		}
	}
}

// RecordFailure records a failed call outcome.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastFailureTimestamp = time.Now()

	switch b.state {
	case Closed:
		b.failureCount++
		if b.failureCount >= failureThreshold {
			b.resetCounters()
			b.transition(Open)
		}
	case HalfOpen:
		b.resetCounters()
		b.transition(Open)
	}
}

// transition moves to next, logging unless it is a no-op self-transition.
// Caller must hold b.mu.
func (b *Breaker) transition(next State) {
	if b.state == next {
		return
	}
	b.logger("circuit breaker for model %s: %s -> %s", b.modelID, b.state, next)
	b.state = next
}

// resetCounters clears both counters. Caller must hold b.mu.
func (b *Breaker) resetCounters() {
	b.failureCount = 0
	b.successCount = 0
}

// Map is the process-wide, thread-safe per-model breaker map the router
// orchestrator owns exclusively (spec §3/§9). Breakers are created lazily
// on first access; "one breaker per model id" holds under concurrent
// lazy initialisation via a single guarding mutex, mirroring the
// teacher's rationale for guarding its DSU with one lock (low contention,
// O(1) critical sections).
type Map struct {
	mu       sync.Mutex
	breakers map[string]*Breaker
	logger   Logger
}

// NewMap creates an empty breaker map.
func NewMap(logger Logger) *Map {
	return &Map{breakers: make(map[string]*Breaker), logger: logger}
}

// Get returns the breaker for modelID, creating a fresh CLOSED one if
// this is the first time modelID has been seen.
func (m *Map) Get(modelID string) *Breaker {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.breakers[modelID]
	if !ok {
		b = New(modelID, m.logger)
		m.breakers[modelID] = b
	}
	return b
}
