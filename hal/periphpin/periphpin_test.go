package periphpin

import (
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"buttonled-go/hal"
)

var _ hal.IRQPin = (*Pin)(nil)

func TestOutputAndToggle(t *testing.T) {
	tp := &gpiotest.Pin{N: "GPIO2", Num: 2}
	p := New(tp)

	if err := p.ConfigureOutput(false); err != nil {
		t.Fatalf("ConfigureOutput: %v", err)
	}
	p.Toggle()
	if !p.Get() {
		t.Fatal("Toggle from low did not drive high")
	}
	p.Toggle()
	if p.Get() {
		t.Fatal("second Toggle did not drive low")
	}
	p.Set(true)
	if tp.Read() != gpio.High {
		t.Fatal("Set(true) not forwarded")
	}
	if p.Number() != 2 {
		t.Fatalf("Number = %d", p.Number())
	}
}

func TestIRQDelivery(t *testing.T) {
	tp := &gpiotest.Pin{N: "GPIO13", Num: 13, EdgesChan: make(chan gpio.Level)}
	p := New(tp)
	if err := p.ConfigureInput(hal.PullDown); err != nil {
		t.Fatalf("ConfigureInput: %v", err)
	}

	levels := make(chan bool, 4)
	if err := p.SetIRQ(hal.EdgeBoth, func() { levels <- p.Get() }); err != nil {
		t.Fatalf("SetIRQ: %v", err)
	}

	tp.EdgesChan <- gpio.High
	select {
	case l := <-levels:
		if !l {
			t.Fatal("handler saw low after rising edge")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for IRQ handler")
	}
}

func TestMappings(t *testing.T) {
	if toPull(hal.PullUp) != gpio.PullUp || toPull(hal.PullDown) != gpio.PullDown || toPull(hal.PullNone) != gpio.Float {
		t.Fatal("pull mapping")
	}
	if toEdge(hal.EdgeBoth) != gpio.BothEdges || toEdge(hal.EdgeNone) != gpio.NoEdge {
		t.Fatal("edge mapping")
	}
}
