//go:build rp2040 || rp2350

// Command pico-buttonled is the RP2 firmware: one push button cycles the
// LED through its modes, a long press resets it.
package main

import (
	"context"
	"io"
	"machine"
	"time"

	"github.com/jangala-dev/tinygo-uartx/uartx"

	"buttonled-go/config"
	"buttonled-go/errcode"
	"buttonled-go/hal"
	"buttonled-go/services/app"
	"buttonled-go/services/button"
	"buttonled-go/services/led"
	"buttonled-go/types"
	"buttonled-go/x/logx"
	"buttonled-go/x/signal"
	"buttonled-go/x/task"
)

const (
	buttonPin = 13 // GP13, active high, pulled down
	ledPin    = 2  // GP2

	// Only the LED driver runs as a spawned task; the button loop owns main.
	taskSlots = 1
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)

	log := logx.NewPrinter(logSink(), logx.LevelInfo)
	log.Info("boot")

	if err := run(context.Background(), log); err != nil {
		log.Error("fatal", "err", err)
	}
	halt()
}

func run(ctx context.Context, log *logx.Printer) error {
	timing := config.Default()
	if err := timing.Validate(); err != nil {
		return err
	}

	pool := task.NewPool(taskSlots, log.With("svc", "task"))

	line, err := newLedLine(ledPin)
	if err != nil {
		return err
	}
	leds, err := led.New(ctx, pool, line, signal.New[types.LedMode](), led.Config{
		Initial:   types.DefaultLedMode,
		Default:   types.DefaultLedMode,
		Intervals: led.Intervals{Fast: timing.FastFlash, Slow: timing.SlowFlash},
		Log:       log.With("svc", "led"),
	})
	if err != nil {
		return err
	}

	pin, ok := hal.PinByNumber(buttonPin)
	if !ok {
		return &errcode.E{C: errcode.UnknownPin, Op: "button", Msg: "GP13"}
	}
	if err := pin.ConfigureInput(hal.PullDown); err != nil {
		return err
	}
	in, err := button.NewDebouncedInput(pin, timing.Debounce, false, nil, log.With("svc", "button"))
	if err != nil {
		return err
	}
	mon := button.NewMonitor(in, button.Classifier{LongPress: timing.LongPress}, log.With("svc", "button"))

	return app.Run(ctx, mon, leds, log, app.Hooks{})
}

// logSink mirrors log lines to USB CDC and to UART0 (GP0/GP1).
func logSink() io.Writer {
	u := uartx.UART0
	if err := u.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	}); err != nil {
		println("uart0 configure error")
		return machine.Serial
	}
	return io.MultiWriter(machine.Serial, u)
}

func halt() {
	for {
		time.Sleep(time.Hour)
	}
}
