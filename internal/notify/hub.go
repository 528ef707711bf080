// Package notify is a tiny synchronous observer used to tell independent
// components that shared state (configuration, authentication) changed.
package notify

import (
	"sync"
)

// Hub fans a value out to every current subscriber. Subscribers are called in
// subscription order on the publishing goroutine and must not block.
type Hub[T any] struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]func(T)
	order  []int
}

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (h *Hub[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs == nil {
		h.subs = make(map[int]func(T))
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	h.order = append(h.order, id)

	var once sync.Once
	return func() {
		once.Do(func() { h.remove(id) })
	}
}

func (h *Hub[T]) remove(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
	for i, v := range h.order {
		if v == id {
			h.order = append(h.order[:i], h.order[i+1:]...)
			break
		}
	}
}

// Publish delivers v to a snapshot of the subscribers, so a subscriber may
// unsubscribe itself while being called.
func (h *Hub[T]) Publish(v T) {
	h.mu.RLock()
	fns := make([]func(T), 0, len(h.order))
	for _, id := range h.order {
		fns = append(fns, h.subs[id])
	}
	h.mu.RUnlock()

	for _, fn := range fns {
		fn(v)
	}
}
