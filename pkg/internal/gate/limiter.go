// Package gate implements the upload admission gate: a per-client
// fixed-window rate limiter plus file validation, run before anything is
// persisted.
package gate

import (
	"context"
	"sync"
	"time"
)

// Limits configures the admission gate.
type Limits struct {
	Window      time.Duration // fixed window length
	Limit       int           // admitted uploads per client per window
	MaxFileSize int64         // largest accepted upload in bytes
}

// Decision is the outcome of one rate-limit check.
type Decision struct {
	Admitted  bool
	Remaining int
	ResetAt   time.Time
}

// CounterStore tracks per-client upload counts over fixed windows. Take must
// serialize read-modify-write per client so simultaneous requests from the
// same client never lose an increment.
type CounterStore interface {
	// Take records one attempt for clientID and reports whether it is
	// admitted. A rejected attempt does not mutate the counter.
	Take(ctx context.Context, clientID string, now time.Time) (Decision, error)
	// Sweep drops windows that ended before now and returns how many were
	// removed. Backends with native expiry may make this a no-op.
	Sweep(ctx context.Context, now time.Time) int
}

type windowEntry struct {
	count   int
	resetAt time.Time
}

// MemoryCounterStore is the single-process CounterStore. One mutex guards the
// whole map; contention at wedding-guest scale is negligible.
type MemoryCounterStore struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limits  Limits
}

// NewMemoryCounterStore creates an in-memory counter store.
func NewMemoryCounterStore(limits Limits) *MemoryCounterStore {
	return &MemoryCounterStore{
		entries: make(map[string]*windowEntry),
		limits:  limits,
	}
}

// Take implements the fixed-window counter. The first request from a client,
// or the first after the window lapsed, opens a fresh window with count 1.
func (s *MemoryCounterStore) Take(ctx context.Context, clientID string, now time.Time) (Decision, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[clientID]
	if !ok || !now.Before(entry.resetAt) {
		entry = &windowEntry{count: 1, resetAt: now.Add(s.limits.Window)}
		s.entries[clientID] = entry

		return Decision{Admitted: true, Remaining: s.limits.Limit - 1, ResetAt: entry.resetAt}, nil
	}

	if entry.count >= s.limits.Limit {
		return Decision{Admitted: false, Remaining: 0, ResetAt: entry.resetAt}, nil
	}

	entry.count++

	return Decision{Admitted: true, Remaining: s.limits.Limit - entry.count, ResetAt: entry.resetAt}, nil
}

// Sweep removes entries whose window already ended. Run periodically so the
// map does not grow with every client ever seen.
func (s *MemoryCounterStore) Sweep(ctx context.Context, now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0

	for clientID, entry := range s.entries {
		if !now.Before(entry.resetAt) {
			delete(s.entries, clientID)

			removed++
		}
	}

	return removed
}

// Len reports the number of tracked clients.
func (s *MemoryCounterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}
