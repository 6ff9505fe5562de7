package led

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"buttonled-go/types"
	"buttonled-go/x/logx"
	"buttonled-go/x/signal"
)

// Line is the output the driver owns. hal.GPIOPin and hal.PixelLine
// satisfy it.
type Line interface {
	Set(level bool)
	Toggle()
}

// Intervals are the toggle periods of the flashing modes.
type Intervals struct {
	Fast time.Duration
	Slow time.Duration
}

// Driver renders the current mode on its Line. It is the only writer of
// the line for as long as Run executes.
type Driver struct {
	line      Line
	sig       *signal.Signal[types.LedMode]
	intervals Intervals
	clock     clockwork.Clock
	log       logx.Logger
	observe   func(types.LedMode)

	mode atomic.Uint32
}

// DriverConfig configures NewDriver. Clock, Log and Observe are optional.
type DriverConfig struct {
	Initial   types.LedMode
	Intervals Intervals
	Clock     clockwork.Clock
	Log       logx.Logger
	// Observe is called from the driver goroutine each time a mode is adopted,
	// including the initial one.
	Observe func(types.LedMode)
}

func NewDriver(line Line, sig *signal.Signal[types.LedMode], cfg DriverConfig) *Driver {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	d := &Driver{
		line:      line,
		sig:       sig,
		intervals: cfg.Intervals,
		clock:     cfg.Clock,
		log:       logx.OrNop(cfg.Log),
		observe:   cfg.Observe,
	}
	d.mode.Store(uint32(cfg.Initial))
	return d
}

// Mode returns the mode currently rendered.
func (d *Driver) Mode() types.LedMode { return types.LedMode(d.mode.Load()) }

// Run drives the line until ctx is done. With a background context it
// never returns. Its only suspension points are the timer-or-signal race of
// the flashing modes and the signal wait of the steady modes.
func (d *Driver) Run(ctx context.Context) error {
	mode := d.Mode()
	d.adopt(mode)
	for {
		var (
			next    types.LedMode
			changed bool
			err     error
		)
		if mode.Flashing() {
			d.line.Toggle()
			next, changed, err = d.flashWait(ctx, d.interval(mode))
		} else {
			d.line.Set(mode == types.On)
			next, err = d.sig.Wait(ctx)
			changed = true
		}
		if err != nil {
			return err
		}
		if changed {
			mode = next
			d.adopt(mode)
		}
	}
}

// flashWait races one flash interval against the signal. A mode that is
// pending when the timer fires still wins.
func (d *Driver) flashWait(ctx context.Context, interval time.Duration) (types.LedMode, bool, error) {
	t := d.clock.NewTimer(interval)
	defer t.Stop()
	select {
	case m := <-d.sig.C():
		return m, true, nil
	case <-t.Chan():
		if m, ok := d.sig.TryTake(); ok {
			return m, true, nil
		}
		return 0, false, nil
	case <-ctx.Done():
		return 0, false, ctx.Err()
	}
}

func (d *Driver) interval(m types.LedMode) time.Duration {
	if m == types.SlowFlash {
		return d.intervals.Slow
	}
	return d.intervals.Fast
}

func (d *Driver) adopt(m types.LedMode) {
	d.mode.Store(uint32(m))
	d.log.Debug("led mode adopted", "mode", m)
	if d.observe != nil {
		d.observe(m)
	}
}
