//go:build !rp2040 && !rp2350

package hal

import "sync"

// FakePin implements IRQPin in memory for host tests and dry runs.
// Set fires the IRQ handler synchronously, outside the lock, like an
// interrupt that preempts the writer.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	modeOut bool
	pull    Pull
	irqEdge Edge
	irqFunc func()
	writes  int
	toggles int
}

func NewFakePin(n int) *FakePin { return &FakePin{number: n} }

func (p *FakePin) ConfigureInput(pull Pull) error {
	p.mu.Lock()
	p.modeOut = false
	p.pull = pull
	p.level = pull == PullUp
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ConfigureOutput(initial bool) error {
	p.mu.Lock()
	p.modeOut = true
	p.level = initial
	p.mu.Unlock()
	return nil
}

func (p *FakePin) Set(level bool) {
	p.mu.Lock()
	p.writes++
	p.setLocked(level)
}

func (p *FakePin) Toggle() {
	p.mu.Lock()
	p.toggles++
	p.setLocked(!p.level)
}

// setLocked updates the level and releases the lock before running the
// handler, so the handler may call Get.
func (p *FakePin) setLocked(level bool) {
	old := p.level
	p.level = level
	irq := p.irqFunc
	want := irq != nil && IRQWanted(p.irqEdge, EdgeFrom(old, level))
	p.mu.Unlock()
	if want {
		irq()
	}
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

func (p *FakePin) Number() int { return p.number }

func (p *FakePin) SetIRQ(edge Edge, handler func()) error {
	p.mu.Lock()
	p.irqEdge = edge
	p.irqFunc = handler
	p.mu.Unlock()
	return nil
}

func (p *FakePin) ClearIRQ() error {
	p.mu.Lock()
	p.irqEdge = EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

// Toggles returns how many times Toggle was called.
func (p *FakePin) Toggles() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.toggles
}

// Writes returns how many times Set was called.
func (p *FakePin) Writes() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.writes
}

// IsOutput reports the configured direction.
func (p *FakePin) IsOutput() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modeOut
}

// FakePinFactory returns stable *FakePin instances per number.
type FakePinFactory struct {
	mu   sync.Mutex
	pins map[int]*FakePin
}

func (f *FakePinFactory) ByNumber(n int) (GPIOPin, bool) {
	return f.Get(n), true
}

// Get returns the *FakePin for n, creating it on first use.
func (f *FakePinFactory) Get(n int) *FakePin {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pins == nil {
		f.pins = make(map[int]*FakePin)
	}
	p, ok := f.pins[n]
	if !ok {
		p = NewFakePin(n)
		f.pins[n] = p
	}
	return p
}
