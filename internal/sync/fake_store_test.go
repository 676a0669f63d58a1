package sync

import (
	"context"
	"fmt"
	gosync "sync"

	"refdesk/internal/store"
	"refdesk/internal/types"
)

// fakeDocStore is a controllable stand-in for the daemon client:
// tests push snapshots by hand and inspect the mutation log.
type fakeDocStore struct {
	mu          gosync.Mutex
	followCount int
	cancelCount int
	openErr     error
	feeds       []*fakeFeed

	mutations []string
	failOps   map[string]error
	done      chan struct{}
}

type fakeFeed struct {
	ch   chan []store.Document
	once gosync.Once
}

func (ff *fakeFeed) end() {
	ff.once.Do(func() { close(ff.ch) })
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{
		failOps: map[string]error{},
		done:    make(chan struct{}, 64),
	}
}

func (f *fakeDocStore) FollowCollection(ctx context.Context, collection types.Collection, scope types.Scope) (<-chan []store.Document, func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.openErr != nil {
		return nil, nil, f.openErr
	}
	f.followCount++
	feed := &fakeFeed{ch: make(chan []store.Document, 16)}
	f.feeds = append(f.feeds, feed)
	cancel := func() {
		f.mu.Lock()
		f.cancelCount++
		f.mu.Unlock()
		feed.end()
	}
	return feed.ch, cancel, nil
}

func (f *fakeDocStore) push(items []store.Document) {
	f.mu.Lock()
	feeds := append([]*fakeFeed(nil), f.feeds...)
	f.mu.Unlock()
	for _, feed := range feeds {
		feed.ch <- items
	}
}

// endStream simulates a server-side stream drop for feed i.
func (f *fakeDocStore) endStream(i int) {
	f.mu.Lock()
	feed := f.feeds[i]
	f.mu.Unlock()
	feed.end()
}

func (f *fakeDocStore) counts() (follows, cancels int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.followCount, f.cancelCount
}

func (f *fakeDocStore) record(op string, collection types.Collection, id string) error {
	f.mu.Lock()
	f.mutations = append(f.mutations, fmt.Sprintf("%s %s %s", op, collection, id))
	err := f.failOps[op]
	f.mu.Unlock()
	f.done <- struct{}{}
	return err
}

func (f *fakeDocStore) mutationLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.mutations...)
}

func (f *fakeDocStore) CreateDocument(ctx context.Context, collection types.Collection, fields store.Document) (store.Document, error) {
	return fields, f.record("create", collection, "")
}

func (f *fakeDocStore) SetDocument(ctx context.Context, collection types.Collection, id string, fields store.Document) (store.Document, error) {
	return fields, f.record("replace", collection, id)
}

func (f *fakeDocStore) UpdateDocument(ctx context.Context, collection types.Collection, id string, fields store.Document) (store.Document, error) {
	return fields, f.record("patch", collection, id)
}

func (f *fakeDocStore) DeleteDocument(ctx context.Context, collection types.Collection, id string) error {
	return f.record("delete", collection, id)
}
