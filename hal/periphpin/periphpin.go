// Package periphpin adapts periph.io GPIO lines (Raspberry Pi and other
// Linux boards) to hal.IRQPin.
package periphpin

import (
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"buttonled-go/errcode"
	"buttonled-go/hal"
)

var (
	initOnce sync.Once
	initErr  error
)

// Init loads the periph host drivers once.
func Init() error {
	initOnce.Do(func() {
		_, initErr = host.Init()
	})
	return initErr
}

// ByName looks up a line by periph name ("GPIO13", "P1_33", "13").
func ByName(name string) (*Pin, error) {
	if err := Init(); err != nil {
		return nil, err
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "periphpin.ByName", Msg: name}
	}
	return New(p), nil
}

// Pin wraps a gpio.PinIO. Interrupts are delivered by a goroutine parked in
// WaitForEdge, which the kernel wakes on the configured edge.
type Pin struct {
	p gpio.PinIO

	mu    sync.Mutex
	pull  gpio.Pull
	level gpio.Level // last written level, for Toggle
	stop  chan struct{}
	done  chan struct{}
}

func New(p gpio.PinIO) *Pin { return &Pin{p: p, pull: gpio.PullNoChange} }

func (g *Pin) ConfigureInput(pull hal.Pull) error {
	g.mu.Lock()
	g.pull = toPull(pull)
	g.mu.Unlock()
	return g.p.In(g.pull, gpio.NoEdge)
}

func (g *Pin) ConfigureOutput(initial bool) error {
	g.mu.Lock()
	g.level = gpio.Level(initial)
	g.mu.Unlock()
	return g.p.Out(gpio.Level(initial))
}

func (g *Pin) Set(level bool) {
	g.mu.Lock()
	g.level = gpio.Level(level)
	g.mu.Unlock()
	_ = g.p.Out(gpio.Level(level))
}

func (g *Pin) Get() bool { return g.p.Read() == gpio.High }

func (g *Pin) Toggle() {
	g.mu.Lock()
	g.level = !g.level
	l := g.level
	g.mu.Unlock()
	_ = g.p.Out(l)
}

func (g *Pin) Number() int { return g.p.Number() }

func (g *Pin) String() string { return g.p.String() }

func (g *Pin) SetIRQ(edge hal.Edge, handler func()) error {
	if err := g.ClearIRQ(); err != nil {
		return err
	}
	g.mu.Lock()
	pull := g.pull
	g.mu.Unlock()
	if err := g.p.In(pull, toEdge(edge)); err != nil {
		return err
	}
	if edge == hal.EdgeNone {
		return nil
	}

	stop := make(chan struct{})
	done := make(chan struct{})
	g.mu.Lock()
	g.stop, g.done = stop, done
	g.mu.Unlock()

	go func() {
		defer close(done)
		for {
			// A negative timeout waits until an edge or Halt.
			fired := g.p.WaitForEdge(-1)
			select {
			case <-stop:
				return
			default:
			}
			if fired {
				handler()
			}
		}
	}()
	return nil
}

func (g *Pin) ClearIRQ() error {
	g.mu.Lock()
	stop, done := g.stop, g.done
	g.stop, g.done = nil, nil
	g.mu.Unlock()
	if stop == nil {
		return nil
	}
	close(stop)
	err := g.p.Halt()
	select {
	case <-done:
	case <-time.After(time.Second):
	}
	return err
}

func toPull(p hal.Pull) gpio.Pull {
	switch p {
	case hal.PullUp:
		return gpio.PullUp
	case hal.PullDown:
		return gpio.PullDown
	default:
		return gpio.Float
	}
}

func toEdge(e hal.Edge) gpio.Edge {
	switch e {
	case hal.EdgeRising:
		return gpio.RisingEdge
	case hal.EdgeFalling:
		return gpio.FallingEdge
	case hal.EdgeBoth:
		return gpio.BothEdges
	default:
		return gpio.NoEdge
	}
}
