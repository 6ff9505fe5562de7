// Package app wires a press source to an LED controller.
package app

import (
	"context"

	"buttonled-go/types"
	"buttonled-go/x/logx"
)

// Presser blocks until the next classified press. *button.Monitor satisfies it.
type Presser interface {
	WaitForPress(ctx context.Context) (types.PressKind, error)
}

// ModeSetter is the subset of *led.Controller the loop drives.
type ModeSetter interface {
	Advance() types.LedMode
	Reset() types.LedMode
	Mode() types.LedMode
}

// Hooks observe the loop. Nil fields are skipped.
type Hooks struct {
	OnPress func(kind types.PressKind, from, to types.LedMode)
}

// Run maps every press onto the controller: a short press advances the
// mode, a long press resets it. It returns only when WaitForPress fails,
// which happens only once ctx is done.
func Run(ctx context.Context, p Presser, leds ModeSetter, log logx.Logger, hooks Hooks) error {
	log = logx.OrNop(log)
	log.Info("button loop started", "mode", leds.Mode())
	for {
		kind, err := p.WaitForPress(ctx)
		if err != nil {
			log.Info("button loop stopped", "err", err)
			return err
		}
		var from types.LedMode
		switch kind {
		case types.Long:
			from = leds.Reset()
		default:
			from = leds.Advance()
		}
		to := leds.Mode()
		log.Info("led mode changed", "press", kind, "from", from, "to", to)
		if hooks.OnPress != nil {
			hooks.OnPress(kind, from, to)
		}
	}
}
