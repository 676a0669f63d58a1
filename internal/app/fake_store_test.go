package app

import (
	"context"
	gosync "sync"
	"testing"
	"time"

	"refdesk/internal/store"
	"refdesk/internal/types"
)

type recordedMutation struct {
	op         string
	collection types.Collection
	id         string
	fields     store.Document
}

// fakeDocStore satisfies sync.DocStore. Every feed opens onto an
// immediate empty snapshot; mutations are recorded and signalled on
// the done channel so tests can wait out the async gateway.
type fakeDocStore struct {
	mu        gosync.Mutex
	mutations []recordedMutation
	done      chan struct{}
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{done: make(chan struct{}, 64)}
}

func (f *fakeDocStore) FollowCollection(ctx context.Context, collection types.Collection, scope types.Scope) (<-chan []store.Document, func(), error) {
	ch := make(chan []store.Document, 1)
	ch <- []store.Document{}
	return ch, func() {}, nil
}

func (f *fakeDocStore) CreateDocument(ctx context.Context, collection types.Collection, fields store.Document) (store.Document, error) {
	f.record(recordedMutation{op: "create", collection: collection, fields: fields})
	return fields, nil
}

func (f *fakeDocStore) SetDocument(ctx context.Context, collection types.Collection, id string, fields store.Document) (store.Document, error) {
	f.record(recordedMutation{op: "set", collection: collection, id: id, fields: fields})
	return fields, nil
}

func (f *fakeDocStore) UpdateDocument(ctx context.Context, collection types.Collection, id string, fields store.Document) (store.Document, error) {
	f.record(recordedMutation{op: "update", collection: collection, id: id, fields: fields})
	return fields, nil
}

func (f *fakeDocStore) DeleteDocument(ctx context.Context, collection types.Collection, id string) error {
	f.record(recordedMutation{op: "delete", collection: collection, id: id})
	return nil
}

func (f *fakeDocStore) record(m recordedMutation) {
	f.mu.Lock()
	f.mutations = append(f.mutations, m)
	f.mu.Unlock()
	f.done <- struct{}{}
}

func (f *fakeDocStore) waitMutations(t *testing.T, n int) []recordedMutation {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for i := 0; i < n; i++ {
		select {
		case <-f.done:
		case <-deadline:
			t.Fatalf("timed out waiting for mutation %d of %d", i+1, n)
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedMutation(nil), f.mutations...)
}
