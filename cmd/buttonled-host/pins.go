package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"buttonled-go/config"
	"buttonled-go/errcode"
	"buttonled-go/hal"
	"buttonled-go/hal/periphpin"
	"buttonled-go/services/led"
)

type hostPins struct {
	button hal.IRQPin
	led    led.Line
	close  func()
}

func openPins(ctx context.Context, s settings, stdin io.Reader, log *slog.Logger) (hostPins, error) {
	if s.fakePins {
		return openFakePins(ctx, s, stdin, log)
	}
	btn, err := periphpin.ByName(s.buttonPin)
	if err != nil {
		return hostPins{}, err
	}
	if err := btn.ConfigureInput(s.buttonPull); err != nil {
		return hostPins{}, err
	}
	out, err := periphpin.ByName(s.ledPin)
	if err != nil {
		return hostPins{}, err
	}
	if err := out.ConfigureOutput(false); err != nil {
		return hostPins{}, err
	}
	log.Info("pins ready", "button", btn.String(), "led", out.String())
	return hostPins{
		button: btn,
		led:    out,
		close:  func() { out.Set(false) },
	}, nil
}

func openFakePins(ctx context.Context, s settings, stdin io.Reader, log *slog.Logger) (hostPins, error) {
	bn, err := fakePinNumber("button-pin", s.buttonPin)
	if err != nil {
		return hostPins{}, err
	}
	ln, err := fakePinNumber("led-pin", s.ledPin)
	if err != nil {
		return hostPins{}, err
	}
	var f hal.FakePinFactory
	btn, out := f.Get(bn), f.Get(ln)
	_ = btn.ConfigureInput(s.buttonPull)
	_ = out.ConfigureOutput(false)

	// A pulled-up button is wired to ground and reads low while pressed.
	go pressFromInput(ctx, stdin, btn, s.buttonPull != hal.PullUp, s.timing, log)
	log.Info("fake pins ready", "button", bn, "led", ln)
	return hostPins{button: btn, led: out, close: func() {}}, nil
}

// fakePinNumber accepts "13" or a periph style "GPIO13".
func fakePinNumber(flag, name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(strings.ToUpper(name), "GPIO"))
	if err != nil || n < 0 {
		return 0, &errcode.E{C: errcode.UnknownPin, Op: flag, Msg: name}
	}
	return n, nil
}

// pressFromInput turns "s" and "l" lines into short and long presses on a
// fake button line that reads active while pressed.
func pressFromInput(ctx context.Context, r io.Reader, btn *hal.FakePin, active bool, t config.Timing, log *slog.Logger) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		var hold time.Duration
		switch strings.TrimSpace(sc.Text()) {
		case "s", "short":
			hold = (t.Debounce + t.LongPress) / 2
		case "l", "long":
			hold = t.LongPress + t.LongPress/5
		case "":
			continue
		default:
			log.Warn("unknown input, want s or l", "line", sc.Text())
			continue
		}
		btn.Set(active)
		select {
		case <-time.After(hold):
		case <-ctx.Done():
			return
		}
		btn.Set(!active)
	}
}
