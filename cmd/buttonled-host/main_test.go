package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"buttonled-go/config"
	"buttonled-go/hal"
	"buttonled-go/types"
)

type noIRQPin struct{ *hal.FakePin }

func (noIRQPin) SetIRQ(hal.Edge, func()) error { return errors.New("edge detection unavailable") }

type countingLine struct {
	mu sync.Mutex
	n  int
}

func (l *countingLine) Set(bool) { l.mu.Lock(); l.n++; l.mu.Unlock() }
func (l *countingLine) Toggle()  { l.mu.Lock(); l.n++; l.mu.Unlock() }

func (l *countingLine) writes() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.n
}

func TestServeStopsDriverOnSetupError(t *testing.T) {
	line := &countingLine{}
	s := settings{
		timing:  config.Timing{Debounce: time.Millisecond, LongPress: 10 * time.Millisecond, FastFlash: time.Millisecond, SlowFlash: time.Millisecond},
		initial: types.FastFlash,
	}
	pins := hostPins{button: noIRQPin{hal.NewFakePin(13)}, led: line, close: func() {}}

	if err := serve(context.Background(), s, pins, nopLogger()); err == nil {
		t.Fatal("serve succeeded without an IRQ-capable button")
	}
	// The driver must be gone before the caller reclaims the line.
	n := line.writes()
	time.Sleep(20 * time.Millisecond)
	if got := line.writes(); got != n {
		t.Fatalf("line written %d times after serve returned", got-n)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	line := &countingLine{}
	s := settings{timing: config.Default(), initial: types.On}
	btn := hal.NewFakePin(13)
	_ = btn.ConfigureInput(hal.PullDown)
	pins := hostPins{button: btn, led: line, close: func() {}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, s, pins, nopLogger()) }()
	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("serve = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
