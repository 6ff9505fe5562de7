// Package task runs long-lived units of work from a statically sized set of
// slots, the way an embedded executor holds a fixed task arena.
package task

import (
	"sync"

	"buttonled-go/errcode"
	"buttonled-go/x/logx"
)

// ErrPoolFull is returned by Spawn when every slot is taken.
var ErrPoolFull = &errcode.E{C: errcode.TaskSpawn, Msg: "no free task slot"}

type Pool struct {
	mu      sync.Mutex
	slots   int
	running map[string]int
	n       int
	wg      sync.WaitGroup
	log     logx.Logger
}

// NewPool returns a pool with the given number of slots (at least one).
func NewPool(slots int, log logx.Logger) *Pool {
	if slots <= 0 {
		slots = 1
	}
	return &Pool{
		slots:   slots,
		running: map[string]int{},
		log:     logx.OrNop(log),
	}
}

// Spawn starts fn on its own goroutine if a slot is free. The slot is
// released when fn returns. It never retries.
func (p *Pool) Spawn(name string, fn func()) error {
	p.mu.Lock()
	if p.n >= p.slots {
		p.mu.Unlock()
		p.log.Error("task spawn rejected", "task", name, "slots", p.slots)
		return ErrPoolFull
	}
	p.n++
	p.running[name]++
	p.wg.Add(1)
	p.mu.Unlock()

	p.log.Debug("task spawned", "task", name)
	go func() {
		defer p.release(name)
		fn()
	}()
	return nil
}

func (p *Pool) release(name string) {
	p.mu.Lock()
	p.n--
	if p.running[name]--; p.running[name] == 0 {
		delete(p.running, name)
	}
	p.mu.Unlock()
	p.wg.Done()
	p.log.Debug("task exited", "task", name)
}

// Running returns the number of occupied slots.
func (p *Pool) Running() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.n
}

// Has reports whether a task with the given name is running.
func (p *Pool) Has(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running[name] > 0
}

// Wait blocks until every spawned task has returned.
func (p *Pool) Wait() { p.wg.Wait() }
