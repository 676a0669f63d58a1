package sync

import (
	"context"
	"errors"
	gosync "sync"

	"refdesk/internal/store"
)

// ErrFeedClosed marks a live feed whose stream ended without being
// released; the transport dropped and no automatic retry is made.
var ErrFeedClosed = errors.New("live feed closed")

// FeedState is the observable result of one live query. Items always
// reflect exactly the latest remote snapshot, in remote-assigned
// order; no merging happens across pushes.
type FeedState struct {
	Items   []store.Document
	Loading bool
	Err     error
}

// Handle is one consumer's view of a live feed. State returns the
// latest snapshot; Changed ticks after each update. After Release the
// state is frozen: late snapshots never touch a released handle.
type Handle struct {
	manager *Manager
	feed    *feed

	mu       gosync.Mutex
	released bool
	state    FeedState
	changed  chan struct{}
}

func (h *Handle) State() FeedState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Changed delivers a tick after each state update. Ticks coalesce:
// a slow consumer sees one tick for a burst of updates and reads the
// latest state.
func (h *Handle) Changed() <-chan struct{} {
	return h.changed
}

func (h *Handle) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.mu.Unlock()

	if h.manager != nil && h.feed != nil {
		h.manager.release(h.feed, h)
	}
}

func (h *Handle) apply(state FeedState) {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.state = state
	h.mu.Unlock()

	select {
	case h.changed <- struct{}{}:
	default:
	}
}

// Manager owns every live feed. One listener per key: subscribing
// twice with the same key attaches a second handle to the same feed
// instead of opening a second stream, and the stream is torn down
// when the last handle releases.
type Manager struct {
	store DocStore

	mu    gosync.Mutex
	feeds map[*Key]*feed
}

func NewManager(docStore DocStore) *Manager {
	return &Manager{store: docStore, feeds: map[*Key]*feed{}}
}

// Subscribe attaches to the live feed for key. A nil key (no
// principal) yields an immediately-resolved empty handle and no
// remote call.
func (m *Manager) Subscribe(key *Key) *Handle {
	if key == nil {
		return &Handle{
			state:   FeedState{Items: []store.Document{}},
			changed: make(chan struct{}, 1),
		}
	}

	m.mu.Lock()
	f, ok := m.feeds[key]
	if !ok {
		f = &feed{
			key:     key,
			state:   FeedState{Items: []store.Document{}, Loading: true},
			handles: map[*Handle]struct{}{},
		}
		m.feeds[key] = f
		go f.run(m.store)
	}
	handle := &Handle{
		manager: m,
		feed:    f,
		changed: make(chan struct{}, 1),
	}
	f.mu.Lock()
	handle.state = f.state
	f.handles[handle] = struct{}{}
	f.mu.Unlock()
	m.mu.Unlock()

	return handle
}

func (m *Manager) release(f *feed, h *Handle) {
	m.mu.Lock()
	f.mu.Lock()
	delete(f.handles, h)
	last := len(f.handles) == 0
	if last {
		f.closed = true
		if f.cancel != nil {
			f.cancel()
		}
		delete(m.feeds, f.key)
	}
	f.mu.Unlock()
	m.mu.Unlock()
}

type feed struct {
	key *Key

	mu      gosync.Mutex
	state   FeedState
	handles map[*Handle]struct{}
	cancel  func()
	closed  bool
}

func (f *feed) run(docStore DocStore) {
	ch, cancel, err := docStore.FollowCollection(context.Background(), f.key.Collection, f.key.Scope)

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		if err == nil {
			cancel()
		}
		return
	}
	if err != nil {
		f.broadcastLocked(FeedState{Items: f.state.Items, Err: err})
		return
	}
	f.cancel = cancel
	f.mu.Unlock()

	for items := range ch {
		if items == nil {
			items = []store.Document{}
		}
		f.mu.Lock()
		if f.closed {
			f.mu.Unlock()
			return
		}
		f.broadcastLocked(FeedState{Items: items})
	}

	// Stream ended without a release: transport loss. Keep the last
	// known items so the UI can label them stale rather than blank.
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.broadcastLocked(FeedState{Items: f.state.Items, Err: ErrFeedClosed})
}

// broadcastLocked sets the state and fans it out. Caller holds f.mu;
// the lock is released before handle callbacks run.
func (f *feed) broadcastLocked(state FeedState) {
	f.state = state
	targets := make([]*Handle, 0, len(f.handles))
	for h := range f.handles {
		targets = append(targets, h)
	}
	f.mu.Unlock()
	for _, h := range targets {
		h.apply(state)
	}
}
