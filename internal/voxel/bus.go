package voxel

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// DirtyReason tells subscribers why a chunk was marked dirty.
type DirtyReason uint8

const (
	DirtyBlock DirtyReason = iota
	DirtyLight
	DirtyLoaded
	DirtyUnloaded
)

func (r DirtyReason) String() string {
	switch r {
	case DirtyBlock:
		return "block"
	case DirtyLight:
		return "light"
	case DirtyLoaded:
		return "loaded"
	case DirtyUnloaded:
		return "unloaded"
	default:
		return "unknown"
	}
}

// DirtyHandler receives chunk dirty notifications.
// Handlers run in the publisher's goroutine and must return quickly.
type DirtyHandler func(pos ChunkPos, reason DirtyReason)

// DirtyBus is an in-process fan-out of chunk dirty notifications.
// Safe for concurrent use.
type DirtyBus struct {
	mu       sync.RWMutex
	handlers map[string]DirtyHandler

	published atomic.Uint64
}

// NewDirtyBus creates a bus with no subscribers.
func NewDirtyBus() *DirtyBus {
	return &DirtyBus{handlers: make(map[string]DirtyHandler)}
}

// Subscription is a handle for a registered handler.
type Subscription struct {
	id  string
	bus *DirtyBus
}

// ID returns the unique subscription id.
func (s *Subscription) ID() string {
	return s.id
}

// Cancel removes the handler. Multiple calls are safe.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	s.bus.mu.Lock()
	delete(s.bus.handlers, s.id)
	s.bus.mu.Unlock()
}

// Subscribe registers h for every future Publish.
func (b *DirtyBus) Subscribe(h DirtyHandler) *Subscription {
	id := uuid.NewString()
	b.mu.Lock()
	b.handlers[id] = h
	b.mu.Unlock()
	return &Subscription{id: id, bus: b}
}

// Unsubscribe is equivalent to sub.Cancel(). Nil is ignored.
func (b *DirtyBus) Unsubscribe(sub *Subscription) {
	sub.Cancel()
}

// Publish delivers the notification synchronously to all subscribers.
func (b *DirtyBus) Publish(pos ChunkPos, reason DirtyReason) {
	b.published.Add(1)

	// Copy handlers so a handler may unsubscribe without deadlocking.
	b.mu.RLock()
	handlers := make([]DirtyHandler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(pos, reason)
	}
}

// Subscribers returns the number of active subscriptions.
func (b *DirtyBus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}

// Published returns how many notifications were published.
func (b *DirtyBus) Published() uint64 {
	return b.published.Load()
}
