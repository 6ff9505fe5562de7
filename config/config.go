// Package config holds the timing constants of the core. The firmware uses
// Default() as-is; host builds may override values from a TOML file.
package config

import (
	"time"

	"buttonled-go/errcode"
)

const (
	// DebounceDelay is the settle window ignored after every edge.
	DebounceDelay = 10 * time.Millisecond
	// LongPressDuration is the inclusive lower bound of a long press.
	LongPressDuration = 500 * time.Millisecond
	// FastFlashDelay is the toggle interval in fast-flash mode.
	FastFlashDelay = 250 * time.Millisecond
	// SlowFlashDelay is the toggle interval in slow-flash mode.
	SlowFlashDelay = 750 * time.Millisecond
)

// Timing gathers the four tunables.
type Timing struct {
	Debounce  time.Duration
	LongPress time.Duration
	FastFlash time.Duration
	SlowFlash time.Duration
}

func Default() Timing {
	return Timing{
		Debounce:  DebounceDelay,
		LongPress: LongPressDuration,
		FastFlash: FastFlashDelay,
		SlowFlash: SlowFlashDelay,
	}
}

// Validate rejects non-positive durations and a debounce window that would
// swallow a whole long press.
func (t Timing) Validate() error {
	switch {
	case t.Debounce <= 0:
		return &errcode.E{C: errcode.InvalidParams, Op: "config.Timing", Msg: "debounce must be positive"}
	case t.LongPress <= 0:
		return &errcode.E{C: errcode.InvalidParams, Op: "config.Timing", Msg: "long_press must be positive"}
	case t.FastFlash <= 0:
		return &errcode.E{C: errcode.InvalidParams, Op: "config.Timing", Msg: "fast_flash must be positive"}
	case t.SlowFlash <= 0:
		return &errcode.E{C: errcode.InvalidParams, Op: "config.Timing", Msg: "slow_flash must be positive"}
	case t.Debounce >= t.LongPress:
		return &errcode.E{C: errcode.InvalidParams, Op: "config.Timing", Msg: "debounce must be shorter than long_press"}
	}
	return nil
}
