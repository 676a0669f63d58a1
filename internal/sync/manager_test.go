package sync

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"refdesk/internal/store"
	"refdesk/internal/types"
)

func waitForChange(t *testing.T, handle *Handle) {
	t.Helper()
	select {
	case <-handle.Changed():
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for feed change")
	}
}

func TestSubscribeNilKeyResolvesEmpty(t *testing.T) {
	fake := newFakeDocStore()
	manager := NewManager(fake)

	handle := manager.Subscribe(nil)
	state := handle.State()
	if state.Loading {
		t.Fatalf("nil key handle must not be loading")
	}
	if len(state.Items) != 0 || state.Err != nil {
		t.Fatalf("expected empty resolved state, got %+v", state)
	}
	if follows, _ := fake.counts(); follows != 0 {
		t.Fatalf("nil key must not open a remote listener")
	}
	handle.Release()
}

func TestSnapshotsReplaceNotAccumulate(t *testing.T) {
	fake := newFakeDocStore()
	manager := NewManager(fake)
	builder := NewKeyBuilder()
	key := builder.Build("p-1", types.CollectionHotkeys, types.ScopeRevit)

	handle := manager.Subscribe(key)
	defer handle.Release()
	if !handle.State().Loading {
		t.Fatalf("fresh handle must begin loading")
	}

	first := []store.Document{{"id": "01A"}, {"id": "01B"}}
	second := []store.Document{{"id": "01C"}}

	fake.push(first)
	waitForChange(t, handle)
	state := handle.State()
	if state.Loading || state.Err != nil {
		t.Fatalf("unexpected state after push: %+v", state)
	}
	if diff := cmp.Diff(first, state.Items); diff != "" {
		t.Fatalf("first snapshot mismatch (-want +got):\n%s", diff)
	}

	fake.push(second)
	waitForChange(t, handle)
	if diff := cmp.Diff(second, handle.State().Items); diff != "" {
		t.Fatalf("second snapshot must replace the first (-want +got):\n%s", diff)
	}
}

func TestOneListenerPerKey(t *testing.T) {
	fake := newFakeDocStore()
	manager := NewManager(fake)
	builder := NewKeyBuilder()
	key := builder.Build("p-1", types.CollectionHotkeys, types.ScopeRevit)

	first := manager.Subscribe(key)
	second := manager.Subscribe(key)
	defer first.Release()
	defer second.Release()

	fake.push([]store.Document{{"id": "01A"}})
	waitForChange(t, first)
	waitForChange(t, second)

	if follows, _ := fake.counts(); follows != 1 {
		t.Fatalf("expected exactly one listener, got %d", follows)
	}
	if len(second.State().Items) != 1 {
		t.Fatalf("second handle must observe the shared feed")
	}
}

func TestDistinctKeysOpenDistinctListeners(t *testing.T) {
	fake := newFakeDocStore()
	manager := NewManager(fake)
	builder := NewKeyBuilder()

	revit := manager.Subscribe(builder.Build("p-1", types.CollectionHotkeys, types.ScopeRevit))
	autocad := manager.Subscribe(builder.Build("p-1", types.CollectionHotkeys, types.ScopeAutoCAD))
	defer revit.Release()
	defer autocad.Release()

	fake.push([]store.Document{{"id": "01A"}})
	waitForChange(t, revit)
	waitForChange(t, autocad)

	if follows, _ := fake.counts(); follows != 2 {
		t.Fatalf("expected two listeners, got %d", follows)
	}
}

func TestReleaseClosesListenerAndFreezesState(t *testing.T) {
	fake := newFakeDocStore()
	manager := NewManager(fake)
	builder := NewKeyBuilder()
	key := builder.Build("p-1", types.CollectionNotes, types.ScopeRevit)

	handle := manager.Subscribe(key)
	fake.push([]store.Document{{"id": "01A"}})
	waitForChange(t, handle)

	handle.Release()
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, cancels := fake.counts(); cancels == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("release must cancel the remote listener")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// A snapshot racing the release must not reach the handle.
	before := handle.State()
	handleApplyAfterRelease(handle)
	after := handle.State()
	if diff := cmp.Diff(before, after, cmp.Comparer(func(a, b error) bool { return errors.Is(a, b) || errors.Is(b, a) || (a == nil && b == nil) })); diff != "" {
		t.Fatalf("released handle state changed (-before +after):\n%s", diff)
	}
}

func handleApplyAfterRelease(h *Handle) {
	h.apply(FeedState{Items: []store.Document{{"id": "stale"}}})
}

func TestResubscribeAfterFullReleaseOpensFreshListener(t *testing.T) {
	fake := newFakeDocStore()
	manager := NewManager(fake)
	builder := NewKeyBuilder()
	key := builder.Build("p-1", types.CollectionNotes, types.ScopeSketchUp)

	first := manager.Subscribe(key)
	fake.push([]store.Document{{"id": "01A"}})
	waitForChange(t, first)
	first.Release()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, cancels := fake.counts(); cancels == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("first listener never cancelled")
		}
		time.Sleep(5 * time.Millisecond)
	}

	second := manager.Subscribe(key)
	defer second.Release()
	if !second.State().Loading {
		t.Fatalf("fresh subscription must start loading again")
	}
	deadline = time.Now().Add(2 * time.Second)
	for {
		if follows, _ := fake.counts(); follows == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("resubscribe must open a new listener")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestListenerOpenErrorSurfacesOnHandle(t *testing.T) {
	fake := newFakeDocStore()
	fake.openErr = errors.New("connection refused")
	manager := NewManager(fake)
	builder := NewKeyBuilder()

	handle := manager.Subscribe(builder.Build("p-1", types.CollectionHotkeys, types.ScopeRevit))
	defer handle.Release()

	waitForChange(t, handle)
	state := handle.State()
	if state.Loading {
		t.Fatalf("failed feed must not stay loading")
	}
	if state.Err == nil {
		t.Fatalf("expected listener error on handle")
	}
}

func TestStreamEndSurfacesFeedClosed(t *testing.T) {
	fake := newFakeDocStore()
	manager := NewManager(fake)
	builder := NewKeyBuilder()

	handle := manager.Subscribe(builder.Build("p-1", types.CollectionHotkeys, types.ScopeRevit))
	defer handle.Release()

	fake.push([]store.Document{{"id": "01A"}})
	waitForChange(t, handle)

	fake.endStream(0)

	waitForChange(t, handle)
	state := handle.State()
	if !errors.Is(state.Err, ErrFeedClosed) {
		t.Fatalf("expected ErrFeedClosed, got %v", state.Err)
	}
	if len(state.Items) != 1 {
		t.Fatalf("last known items must survive transport loss")
	}
}
