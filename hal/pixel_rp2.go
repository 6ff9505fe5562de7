//go:build rp2040 || rp2350

package hal

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// PixelLine drives a single WS2812 pixel as an on/off output, for boards
// whose only user LED is an addressable RGB LED.
type PixelLine struct {
	dev   ws2812.Device
	on    color.RGBA
	buf   [1]color.RGBA
	level bool
}

func NewPixelLine(pin machine.Pin, on color.RGBA) *PixelLine {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	l := &PixelLine{dev: ws2812.New(pin), on: on}
	l.Set(false)
	return l
}

func (l *PixelLine) Set(level bool) {
	l.level = level
	if level {
		l.buf[0] = l.on
	} else {
		l.buf[0] = color.RGBA{}
	}
	_ = l.dev.WriteColors(l.buf[:])
}

func (l *PixelLine) Get() bool { return l.level }
func (l *PixelLine) Toggle()   { l.Set(!l.level) }
