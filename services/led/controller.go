package led

import (
	"context"

	"github.com/jonboulle/clockwork"

	"buttonled-go/errcode"
	"buttonled-go/types"
	"buttonled-go/x/logx"
	"buttonled-go/x/signal"
)

// TaskName is the name the driver is spawned under.
const TaskName = "led_driver"

// Spawner launches a long-lived task. task.Pool satisfies it.
type Spawner interface {
	Spawn(name string, fn func()) error
}

// Config configures New. Zero Initial and Default both mean FastFlash.
type Config struct {
	Initial   types.LedMode
	Default   types.LedMode
	Intervals Intervals
	Clock     clockwork.Clock
	Log       logx.Logger
	// Observe receives every mode the driver adopts.
	Observe func(types.LedMode)
}

// Controller holds the requested mode and publishes every change to the
// driver. The driver's rendered mode may lag until it reads the signal.
// A Controller is used from one goroutine.
type Controller struct {
	mode   types.LedMode
	def    types.LedMode
	sig    *signal.Signal[types.LedMode]
	driver *Driver
	log    logx.Logger
}

// New spawns the driver for line and returns its controller. If the
// spawner refuses the task, New fails with errcode.TaskSpawn and no
// controller exists.
func New(ctx context.Context, sp Spawner, line Line, sig *signal.Signal[types.LedMode], cfg Config) (*Controller, error) {
	c := &Controller{
		mode: cfg.Initial,
		def:  cfg.Default,
		sig:  sig,
		log:  logx.OrNop(cfg.Log),
	}
	c.driver = NewDriver(line, sig, DriverConfig{
		Initial:   cfg.Initial,
		Intervals: cfg.Intervals,
		Clock:     cfg.Clock,
		Log:       cfg.Log,
		Observe:   cfg.Observe,
	})
	d := c.driver
	if err := sp.Spawn(TaskName, func() {
		if err := d.Run(ctx); err != nil {
			c.log.Debug("led driver stopped", "err", err)
		}
	}); err != nil {
		return nil, errcode.Wrap(errcode.TaskSpawn, "led.New", err)
	}
	c.log.Info("led driver started", "mode", cfg.Initial)
	return c, nil
}

// Advance moves to the next mode in cyclic order and returns the previous one.
func (c *Controller) Advance() types.LedMode {
	return c.SetMode(c.mode.Next())
}

// SetMode forces m and returns the previous mode.
func (c *Controller) SetMode(m types.LedMode) types.LedMode {
	old := c.mode
	c.mode = m
	c.sig.Publish(m)
	return old
}

// Reset returns to the configured default mode and returns the previous one.
func (c *Controller) Reset() types.LedMode { return c.SetMode(c.def) }

// Mode returns the requested mode.
func (c *Controller) Mode() types.LedMode { return c.mode }

// Rendered returns the mode the driver currently renders.
func (c *Controller) Rendered() types.LedMode { return c.driver.Mode() }
