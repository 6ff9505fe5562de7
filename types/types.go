package types

import "errors"

// ---- Press classification ----

// PressKind is the category of one completed button press.
type PressKind uint8

const (
	Short PressKind = iota
	Long
)

func (k PressKind) String() string {
	switch k {
	case Short:
		return "short"
	case Long:
		return "long"
	default:
		return "unknown"
	}
}

// ---- LED modes ----

// LedMode is the behaviour the LED renders.
type LedMode uint8

const (
	FastFlash LedMode = iota
	SlowFlash
	On
	Off
)

// DefaultLedMode is the mode at boot and after a reset.
const DefaultLedMode = FastFlash

// ledModes is the cyclic advancement order.
var ledModes = [...]LedMode{FastFlash, SlowFlash, On, Off}

// Fails to compile if ledModes is ever emptied.
const _ = uint(len(ledModes) - 1)

// LedModes returns every mode in advancement order.
func LedModes() []LedMode {
	out := make([]LedMode, len(ledModes))
	copy(out, ledModes[:])
	return out
}

// Next returns the mode that follows m, wrapping after the last one.
// A value outside the known set wraps to the first mode.
func (m LedMode) Next() LedMode {
	for i, v := range ledModes {
		if v == m {
			return ledModes[(i+1)%len(ledModes)]
		}
	}
	return ledModes[0]
}

// Flashing reports whether m toggles the output on a timer.
func (m LedMode) Flashing() bool { return m == FastFlash || m == SlowFlash }

func (m LedMode) String() string {
	switch m {
	case FastFlash:
		return "fast_flash"
	case SlowFlash:
		return "slow_flash"
	case On:
		return "on"
	case Off:
		return "off"
	default:
		return "unknown"
	}
}

var ErrUnknownLedMode = errors.New("unknown_led_mode")

// ParseLedMode is the inverse of LedMode.String.
func ParseLedMode(s string) (LedMode, error) {
	for _, m := range ledModes {
		if m.String() == s {
			return m, nil
		}
	}
	return DefaultLedMode, ErrUnknownLedMode
}
