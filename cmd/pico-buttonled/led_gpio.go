//go:build (rp2040 || rp2350) && !neopixel

package main

import (
	"buttonled-go/errcode"
	"buttonled-go/hal"
	"buttonled-go/services/led"
)

func newLedLine(n int) (led.Line, error) {
	p, ok := hal.DefaultPinFactory().ByNumber(n)
	if !ok {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "led"}
	}
	if err := p.ConfigureOutput(false); err != nil {
		return nil, err
	}
	return p, nil
}
