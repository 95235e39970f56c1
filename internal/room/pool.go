package room

import (
	"log/slog"
	"sync"
)

// ScratchPool hands out Scratch workers so concurrent flood fills never share
// an accessor or stamp arrays. A Scratch is owned by exactly one goroutine
// between Acquire and Release. Every Scratch ever created is tracked so Close
// can dispose all accessors at shutdown.
//
// There is no size bound: the pool grows to the peak number of concurrent
// fills and keeps that many workers until Close.
type ScratchPool struct {
	newAccessor AccessorFactory

	mu     sync.Mutex
	idle   []*Scratch
	all    map[*Scratch]struct{}
	closed bool
}

// NewScratchPool creates an empty pool. newAccessor is called once per new Scratch.
func NewScratchPool(newAccessor AccessorFactory) *ScratchPool {
	return &ScratchPool{
		newAccessor: newAccessor,
		all:         make(map[*Scratch]struct{}),
	}
}

// Acquire returns a Scratch exclusively owned by the caller until Release.
// After Close it still works, but returned workers are disposed on Release.
func (p *ScratchPool) Acquire() *Scratch {
	p.mu.Lock()
	if n := len(p.idle); n > 0 {
		s := p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
		p.mu.Unlock()
		return s
	}
	closed := p.closed
	p.mu.Unlock()

	s := newScratch(p.newAccessor())
	if !closed {
		p.mu.Lock()
		p.all[s] = struct{}{}
		p.mu.Unlock()
	}
	return s
}

// Release returns s to the pool. s must not be used afterwards.
func (p *ScratchPool) Release(s *Scratch) {
	p.mu.Lock()
	if p.closed {
		delete(p.all, s)
		p.mu.Unlock()
		s.access.Dispose()
		return
	}
	p.idle = append(p.idle, s)
	p.mu.Unlock()
}

// With runs fn with a scratch acquired for the duration of the call.
func (p *ScratchPool) With(fn func(s *Scratch)) {
	s := p.Acquire()
	defer p.Release(s)
	fn(s)
}

// Size returns how many workers the pool tracks (idle plus in use).
func (p *ScratchPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.all)
}

// Idle returns how many workers are waiting for reuse.
func (p *ScratchPool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle)
}

// Close disposes every idle worker now; workers still in use are disposed
// when released. Safe to call more than once.
func (p *ScratchPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	idle := p.idle
	p.idle = nil
	for _, s := range idle {
		delete(p.all, s)
	}
	inUse := len(p.all)
	p.mu.Unlock()

	for _, s := range idle {
		s.access.Dispose()
	}
	slog.Info("scratch pool disposed", "disposed", len(idle), "in_use", inUse)
}
