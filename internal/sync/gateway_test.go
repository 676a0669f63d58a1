package sync

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"refdesk/internal/store"
	"refdesk/internal/types"
)

func waitForMutations(t *testing.T, fake *fakeDocStore, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-fake.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout waiting for mutation %d of %d", i+1, n)
		}
	}
}

func TestGatewayForwardsInIssuanceOrder(t *testing.T) {
	fake := newFakeDocStore()
	gateway := NewGateway(fake, NewErrorSink(8))
	defer gateway.Close()

	gateway.Create(types.CollectionNotes, store.Document{"title": "a"})
	gateway.Replace(types.CollectionNotes, "01A", store.Document{"title": "b"})
	gateway.Patch(types.CollectionNotes, "01A", store.Document{"title": "c"})
	gateway.Delete(types.CollectionNotes, "01A")

	waitForMutations(t, fake, 4)
	want := []string{
		"create notes ",
		"replace notes 01A",
		"patch notes 01A",
		"delete notes 01A",
	}
	if diff := cmp.Diff(want, fake.mutationLog()); diff != "" {
		t.Fatalf("mutation order mismatch (-want +got):\n%s", diff)
	}
}

func TestGatewayReportsFailuresToSink(t *testing.T) {
	fake := newFakeDocStore()
	fake.failOps["delete"] = errors.New("permission denied")
	sink := NewErrorSink(8)
	gateway := NewGateway(fake, sink)
	defer gateway.Close()

	gateway.Delete(types.CollectionHotkeys, "01A")

	select {
	case mutErr := <-sink.Errors():
		if mutErr.Op != "delete" || mutErr.Collection != types.CollectionHotkeys || mutErr.ID != "01A" {
			t.Fatalf("unexpected mutation error: %+v", mutErr)
		}
		if !errors.Is(mutErr, fake.failOps["delete"]) {
			t.Fatalf("expected wrapped cause, got %v", mutErr.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for sink report")
	}
}

func TestGatewayDoesNotBlockCaller(t *testing.T) {
	fake := newFakeDocStore()
	gateway := NewGateway(fake, NewErrorSink(8))
	defer gateway.Close()

	start := time.Now()
	for i := 0; i < 32; i++ {
		gateway.Create(types.CollectionNotes, store.Document{"title": "x"})
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("enqueue took too long: %s", elapsed)
	}
	waitForMutations(t, fake, 32)
}

func TestGatewayCloseDrainsQueue(t *testing.T) {
	fake := newFakeDocStore()
	gateway := NewGateway(fake, NewErrorSink(8))

	for i := 0; i < 8; i++ {
		gateway.Create(types.CollectionNotes, store.Document{"title": "x"})
	}
	gateway.Close()

	if got := len(fake.mutationLog()); got != 8 {
		t.Fatalf("expected all queued mutations to drain, got %d", got)
	}

	// Post-close mutations are rejected onto the sink, not executed.
	gateway.Delete(types.CollectionNotes, "01A")
	if got := len(fake.mutationLog()); got != 8 {
		t.Fatalf("mutation executed after close")
	}
}
