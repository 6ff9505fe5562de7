package button

import (
	"context"
	"time"

	"buttonled-go/types"
	"buttonled-go/x/logx"
)

// Input is the subset of DebouncedInput a Monitor drives.
type Input interface {
	WaitForRisingEdge(ctx context.Context) (time.Time, error)
	WaitForFallingEdge(ctx context.Context) (time.Time, error)
	Settle(ctx context.Context) error
}

// Monitor turns one press-and-release into a PressKind.
type Monitor struct {
	in  Input
	cls Classifier
	log logx.Logger
}

func NewMonitor(in Input, cls Classifier, log logx.Logger) *Monitor {
	return &Monitor{in: in, cls: cls, log: logx.OrNop(log)}
}

// Measure waits for a full press and returns its duration.
//
// The clock starts at the raw rising edge, before settling, and stops at the
// first falling edge after the press settled. The first settle window is
// therefore part of the measured duration.
func (m *Monitor) Measure(ctx context.Context) (time.Duration, error) {
	start, err := m.in.WaitForRisingEdge(ctx)
	if err != nil {
		return 0, err
	}
	if err := m.in.Settle(ctx); err != nil {
		return 0, err
	}
	end, err := m.in.WaitForFallingEdge(ctx)
	if err != nil {
		return 0, err
	}
	held := end.Sub(start)
	// Release chatter must not start the next press.
	if err := m.in.Settle(ctx); err != nil {
		return 0, err
	}
	return held, nil
}

// WaitForPress blocks until a press completes and classifies it. It only
// fails when ctx is done.
func (m *Monitor) WaitForPress(ctx context.Context) (types.PressKind, error) {
	held, err := m.Measure(ctx)
	if err != nil {
		return types.Short, err
	}
	kind := m.cls.Classify(held)
	m.log.Debug("press", "held", held, "kind", kind)
	return kind, nil
}
