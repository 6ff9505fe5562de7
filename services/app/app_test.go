package app

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"buttonled-go/hal"
	"buttonled-go/services/button"
	"buttonled-go/services/led"
	"buttonled-go/types"
	"buttonled-go/x/signal"
	"buttonled-go/x/task"
)

type scriptedPresser struct {
	presses chan types.PressKind
}

func (s *scriptedPresser) WaitForPress(ctx context.Context) (types.PressKind, error) {
	select {
	case k := <-s.presses:
		return k, nil
	case <-ctx.Done():
		return types.Short, ctx.Err()
	}
}

type transition struct {
	kind     types.PressKind
	from, to types.LedMode
}

type harness struct {
	ctrl        *led.Controller
	transitions chan transition
	rendered    chan types.LedMode
	done        chan error
	cancel      context.CancelFunc
}

func newHarness(t *testing.T, p Presser) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	pool := task.NewPool(2, nil)
	line := hal.NewFakePin(2)
	_ = line.ConfigureOutput(false)

	h := &harness{
		transitions: make(chan transition, 16),
		rendered:    make(chan types.LedMode, 16),
		done:        make(chan error, 1),
		cancel:      cancel,
	}
	ctrl, err := led.New(ctx, pool, line, signal.New[types.LedMode](), led.Config{
		Intervals: led.Intervals{Fast: 250 * time.Millisecond, Slow: 750 * time.Millisecond},
		Observe:   func(m types.LedMode) { h.rendered <- m },
	})
	if err != nil {
		t.Fatalf("led.New: %v", err)
	}
	h.ctrl = ctrl
	go func() {
		h.done <- Run(ctx, p, ctrl, nil, Hooks{
			OnPress: func(k types.PressKind, from, to types.LedMode) {
				h.transitions <- transition{k, from, to}
			},
		})
	}()
	t.Cleanup(func() {
		cancel()
		pool.Wait()
	})
	return h
}

func (h *harness) expect(t *testing.T, want transition) {
	t.Helper()
	select {
	case got := <-h.transitions:
		if got != want {
			t.Fatalf("transition = %+v, want %+v", got, want)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for %+v", want)
	}
}

// settledOn drains rendered modes until m is seen.
func (h *harness) settledOn(t *testing.T, m types.LedMode) {
	t.Helper()
	timeout := time.After(time.Second)
	for {
		select {
		case got := <-h.rendered:
			if got == m {
				return
			}
		case <-timeout:
			t.Fatalf("driver never rendered %s", m)
		}
	}
}

func TestShortPressesCycle(t *testing.T) {
	p := &scriptedPresser{presses: make(chan types.PressKind)}
	h := newHarness(t, p)

	want := []transition{
		{types.Short, types.FastFlash, types.SlowFlash},
		{types.Short, types.SlowFlash, types.On},
		{types.Short, types.On, types.Off},
		{types.Short, types.Off, types.FastFlash},
	}
	for _, tr := range want {
		p.presses <- types.Short
		h.expect(t, tr)
	}
	h.settledOn(t, types.FastFlash)
}

func TestLongPressResets(t *testing.T) {
	p := &scriptedPresser{presses: make(chan types.PressKind)}
	h := newHarness(t, p)

	p.presses <- types.Short
	h.expect(t, transition{types.Short, types.FastFlash, types.SlowFlash})
	p.presses <- types.Short
	h.expect(t, transition{types.Short, types.SlowFlash, types.On})
	h.settledOn(t, types.On)

	p.presses <- types.Long
	h.expect(t, transition{types.Long, types.On, types.FastFlash})
	h.settledOn(t, types.FastFlash)

	// Reset from the default stays there.
	p.presses <- types.Long
	h.expect(t, transition{types.Long, types.FastFlash, types.FastFlash})
}

func TestShortLongShort(t *testing.T) {
	p := &scriptedPresser{presses: make(chan types.PressKind)}
	h := newHarness(t, p)

	for _, k := range []types.PressKind{types.Short, types.Long, types.Short} {
		p.presses <- k
		<-h.transitions
	}
	if h.ctrl.Mode() != types.SlowFlash {
		t.Fatalf("mode = %s, want slow_flash", h.ctrl.Mode())
	}
	h.settledOn(t, types.SlowFlash)
}

func TestRunStopsOnCancel(t *testing.T) {
	p := &scriptedPresser{presses: make(chan types.PressKind)}
	h := newHarness(t, p)
	h.cancel()
	select {
	case err := <-h.done:
		if err != context.Canceled {
			t.Fatalf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

// Physical presses through a fake pin and a fake clock, end to end.
func TestButtonToLed(t *testing.T) {
	fc := clockwork.NewFakeClock()
	pin := hal.NewFakePin(13)
	_ = pin.ConfigureInput(hal.PullDown)
	in, err := button.NewDebouncedInput(pin, 10*time.Millisecond, false, fc, nil)
	if err != nil {
		t.Fatalf("NewDebouncedInput: %v", err)
	}
	defer in.Close()
	mon := button.NewMonitor(in, button.Classifier{LongPress: 500 * time.Millisecond}, nil)
	h := newHarness(t, mon)

	press := func(hold time.Duration) {
		pin.Set(true)
		fc.BlockUntil(1)
		fc.Advance(hold)
		pin.Set(false)
		fc.BlockUntil(1)
		fc.Advance(10 * time.Millisecond)
	}

	press(100 * time.Millisecond)
	h.expect(t, transition{types.Short, types.FastFlash, types.SlowFlash})
	press(600 * time.Millisecond)
	h.expect(t, transition{types.Long, types.SlowFlash, types.FastFlash})
	press(50 * time.Millisecond)
	h.expect(t, transition{types.Short, types.FastFlash, types.SlowFlash})
	h.settledOn(t, types.SlowFlash)
}
