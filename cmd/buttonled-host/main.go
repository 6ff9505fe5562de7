// Command buttonled-host runs the button/LED core on a Linux board through
// periph.io, or on fake pins driven from stdin for a dry run.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"buttonled-go/hal"
	"buttonled-go/services/app"
	"buttonled-go/services/button"
	"buttonled-go/services/led"
	"buttonled-go/types"
	"buttonled-go/x/signal"
	"buttonled-go/x/task"
)

func main() {
	if err := newRootCmd(os.Stdin).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "buttonled-host",
		Short: "Cycle an LED through its modes with a push button",
		Long: `Short presses advance the LED mode (fast flash, slow flash, on, off).
A press held for the long-press duration resets it to fast flash.

With --fake-pins the GPIO lines are simulated: type "s" for a short press
or "l" for a long press on stdin.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolve(cmd, opts)
			if err != nil {
				return err
			}
			log, err := newLogger(os.Stderr, s.logLevel, s.logFormat)
			if err != nil {
				return err
			}
			ctx, stop := ossignal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, s, stdin, log)
		},
	}
	bindFlags(cmd.Flags(), opts)
	return cmd
}

func run(ctx context.Context, s settings, stdin io.Reader, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pins, err := openPins(ctx, s, stdin, log)
	if err != nil {
		return err
	}
	err = serve(ctx, s, pins, log)
	pins.close()
	if errors.Is(err, context.Canceled) {
		log.Info("shutdown")
		return nil
	}
	return err
}

// serve runs the core on pins. It returns only after the LED driver has
// stopped, so the caller may take the lines back.
func serve(ctx context.Context, s settings, pins hostPins, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	pool := task.NewPool(1, log.With("svc", "task"))
	defer func() {
		cancel()
		pool.Wait()
	}()

	reg := prometheus.NewRegistry()
	m := newMetrics(reg)

	leds, err := led.New(ctx, pool, pins.led, signal.New[types.LedMode](), led.Config{
		Initial:   s.initial,
		Default:   types.DefaultLedMode,
		Intervals: led.Intervals{Fast: s.timing.FastFlash, Slow: s.timing.SlowFlash},
		Log:       log.With("svc", "led"),
		Observe:   m.observeRendered,
	})
	if err != nil {
		return err
	}
	m.observeRequested(leds.Mode())

	in, err := button.NewDebouncedInput(pins.button, s.timing.Debounce, s.buttonPull == hal.PullUp, nil, log.With("svc", "button"))
	if err != nil {
		return err
	}
	defer in.Close()
	m.watchDrops(in.Drops)
	mon := button.NewMonitor(in, button.Classifier{LongPress: s.timing.LongPress}, log.With("svc", "button"))

	if s.metricsAddr != "" {
		srv := &http.Server{
			Addr:              s.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			log.Info("metrics listening", "addr", s.metricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "err", err)
			}
		}()
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer scancel()
			_ = srv.Shutdown(sctx)
		}()
	}

	return app.Run(ctx, mon, leds, log, app.Hooks{OnPress: m.onPress})
}
