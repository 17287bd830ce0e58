// Package dedup provides the session-scoped ledger that guarantees a single
// downstream side effect per entity-creation event.
package dedup

import "sync"

// Ledger is a grow-only set of dedup keys already handled in this session.
// Keys are never removed; the set lives and dies with the process. Construct
// one per process and pass it by reference — it is deliberately not a
// package-level variable.
type Ledger struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{seen: make(map[string]struct{})}
}

// ShouldProcess reports whether the key has not been handled yet. A true
// result marks the key as handled in the same step, so no two callers can
// both receive true for the same key.
func (l *Ledger) ShouldProcess(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[key]; ok {
		return false
	}
	l.seen[key] = struct{}{}
	return true
}

// Seen reports whether the key has been handled, without marking it.
func (l *Ledger) Seen(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.seen[key]
	return ok
}

// Len returns the number of handled keys, for diagnostics.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}
