package ai

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBudgetExhausted is returned when a session has spent its token budget.
var ErrBudgetExhausted = errors.New("session token budget exhausted")

// SessionBudget tracks token usage per session key against a shared limit.
// A limit of zero or less means unlimited.
type SessionBudget struct {
	mu    sync.RWMutex
	limit int64
	usage map[string]int64
}

// NewSessionBudget creates an in-memory budget tracker.
func NewSessionBudget(limit int64) *SessionBudget {
	return &SessionBudget{
		limit: limit,
		usage: make(map[string]int64),
	}
}

// Check reports whether the session has budget remaining.
func (b *SessionBudget) Check(key string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.limit <= 0 {
		return true
	}
	return b.usage[key] < b.limit
}

// Record adds token usage for a session.
func (b *SessionBudget) Record(key string, tokens int) error {
	if tokens < 0 {
		return fmt.Errorf("tokens must be non-negative, got %d", tokens)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.usage[key] += int64(tokens)
	return nil
}

// Usage returns tokens used and the configured limit for a session.
func (b *SessionBudget) Usage(key string) (used, limit int64) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.usage[key], b.limit
}
