//go:build (rp2040 || rp2350) && neopixel

package main

import (
	"image/color"
	"machine"

	"buttonled-go/errcode"
	"buttonled-go/hal"
	"buttonled-go/services/led"
)

// Boards with an addressable RGB LED on the given pin instead of a plain LED.
func newLedLine(n int) (led.Line, error) {
	if n < 0 || n > 28 {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "led"}
	}
	return hal.NewPixelLine(machine.Pin(n), color.RGBA{R: 0x20, G: 0x20, B: 0x20}), nil
}
