package store

import (
	"sync"

	"refdesk/internal/types"
)

// Change says "this collection changed for this owner and scope"; the
// daemon reacts by pushing a fresh snapshot to matching SSE streams.
type Change struct {
	Collection types.Collection
	OwnerID    string
	Scope      types.Scope
}

// Hub fans change notifications out to stream subscribers. Sends never
// block: a subscriber that is not keeping up misses intermediate
// ticks, which is fine because every tick means "re-list", not "apply
// this delta".
type Hub struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Change
}

func NewHub() *Hub {
	return &Hub{subs: map[int]chan Change{}}
}

func (h *Hub) Subscribe() (<-chan Change, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan Change, 16)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if existing, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(existing)
		}
	}
	return ch, cancel
}

func (h *Hub) Publish(change Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- change:
		default:
		}
	}
}
