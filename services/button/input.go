package button

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"buttonled-go/hal"
	"buttonled-go/x/logx"
)

const defaultEdgeQueue = 16

// edgeEvent is captured in interrupt context.
type edgeEvent struct {
	level bool
	ts    time.Time
}

// DebouncedInput wraps a raw input line. The IRQ handler queues every level
// change with its timestamp; waits consume the queue, so the caller sleeps
// until an interrupt arrives instead of polling.
//
// Debouncing is a quiet window: Settle marks [now, now+settle) and edge
// waits ignore events stamped inside it.
//
// With invert set, levels are logical: an active-low button (pull-up, wired
// to ground) reads high while pressed.
//
// A DebouncedInput has one reader. Waits must not be called concurrently.
type DebouncedInput struct {
	pin    hal.IRQPin
	settle time.Duration
	invert bool
	clock  clockwork.Clock
	log    logx.Logger

	// Written by the IRQ handler; it must never block.
	edges chan edgeEvent
	drops uint32

	seenDrops  uint32
	quietUntil time.Time
}

// NewDebouncedInput installs an IRQ on both edges of pin.
func NewDebouncedInput(pin hal.IRQPin, settle time.Duration, invert bool, clock clockwork.Clock, log logx.Logger) (*DebouncedInput, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	in := &DebouncedInput{
		pin:    pin,
		settle: settle,
		invert: invert,
		clock:  clock,
		log:    logx.OrNop(log),
		edges:  make(chan edgeEvent, defaultEdgeQueue),
	}
	if err := pin.SetIRQ(hal.EdgeBoth, in.onEdge); err != nil {
		return nil, err
	}
	return in, nil
}

// onEdge is the IRQ handler: register read, timestamp, non-blocking send.
// When the queue is full the oldest event goes so the latest level survives.
func (in *DebouncedInput) onEdge() {
	ev := edgeEvent{level: in.Level(), ts: in.clock.Now()}
	select {
	case in.edges <- ev:
		return
	default:
	}
	atomic.AddUint32(&in.drops, 1)
	select {
	case <-in.edges:
	default:
	}
	select {
	case in.edges <- ev:
	default:
	}
}

// Close removes the IRQ handler.
func (in *DebouncedInput) Close() error { return in.pin.ClearIRQ() }

// Drops returns the number of edge events discarded on queue overflow.
func (in *DebouncedInput) Drops() uint32 { return atomic.LoadUint32(&in.drops) }

// Level returns the instantaneous logical level.
func (in *DebouncedInput) Level() bool { return in.pin.Get() != in.invert }

// WaitForHigh returns once the line reads high, immediately if it already does.
func (in *DebouncedInput) WaitForHigh(ctx context.Context) error { return in.waitLevel(ctx, true) }

// WaitForLow returns once the line reads low, immediately if it already does.
func (in *DebouncedInput) WaitForLow(ctx context.Context) error { return in.waitLevel(ctx, false) }

// WaitForRisingEdge waits for a low-to-high transition outside the quiet
// window and returns the time the interrupt observed it.
func (in *DebouncedInput) WaitForRisingEdge(ctx context.Context) (time.Time, error) {
	return in.waitEdge(ctx, true)
}

// WaitForFallingEdge waits for a high-to-low transition outside the quiet
// window and returns the time the interrupt observed it.
func (in *DebouncedInput) WaitForFallingEdge(ctx context.Context) (time.Time, error) {
	return in.waitEdge(ctx, false)
}

// Settle sleeps for the debounce window. Edges observed during it are
// ignored by later edge waits.
func (in *DebouncedInput) Settle(ctx context.Context) error {
	in.quietUntil = in.clock.Now().Add(in.settle)
	t := in.clock.NewTimer(in.settle)
	defer t.Stop()
	select {
	case <-t.Chan():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (in *DebouncedInput) waitLevel(ctx context.Context, level bool) error {
	for {
		if in.Level() == level {
			return nil
		}
		select {
		case <-in.edges:
			in.noteDrops()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (in *DebouncedInput) waitEdge(ctx context.Context, level bool) (time.Time, error) {
	for {
		select {
		case ev := <-in.edges:
			in.noteDrops()
			if ev.level != level || ev.ts.Before(in.quietUntil) {
				continue
			}
			return ev.ts, nil
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		}
	}
}

func (in *DebouncedInput) noteDrops() {
	d := atomic.LoadUint32(&in.drops)
	if d != in.seenDrops {
		in.log.Warn("edge queue overflow", "pin", in.pin.Number(), "dropped", d-in.seenDrops)
		in.seenDrops = d
	}
}
