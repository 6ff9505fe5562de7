// Package signal provides a single-slot, latest-value-wins handoff between
// goroutines.
package signal

import (
	"context"
	"sync"
)

// Signal holds at most one unread value. Publish overwrites an unread value
// and never blocks; readers consume the value.
//
// The slot is a channel of capacity one so a reader can race it against a
// timer in a select.
type Signal[T any] struct {
	mu   sync.Mutex // serialises writers
	slot chan T
}

func New[T any]() *Signal[T] {
	return &Signal[T]{slot: make(chan T, 1)}
}

// Publish stores v, discarding any value not yet read.
func (s *Signal[T]) Publish(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Drop the unread value, if any. A reader may take it first; either way
	// the slot is empty afterwards and only writers fill it.
	select {
	case <-s.slot:
	default:
	}
	s.slot <- v
}

// Wait consumes the pending value, blocking until one is published.
func (s *Signal[T]) Wait(ctx context.Context) (T, error) {
	select {
	case v := <-s.slot:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// TryTake consumes the pending value without blocking.
func (s *Signal[T]) TryTake() (T, bool) {
	select {
	case v := <-s.slot:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// C exposes the slot for select. A receive consumes the value.
func (s *Signal[T]) C() <-chan T { return s.slot }

// Pending reports whether an unread value is present.
func (s *Signal[T]) Pending() bool { return len(s.slot) > 0 }
