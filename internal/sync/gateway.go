package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	"refdesk/internal/store"
	"refdesk/internal/types"
)

// MutationError is what a failed fire-and-forget mutation looks like
// on the error sink: enough context to show the user what was lost.
type MutationError struct {
	Op         string
	Collection types.Collection
	ID         string
	Err        error
}

func (e MutationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("%s %s/%s: %v", e.Op, e.Collection, e.ID, e.Err)
}

func (e MutationError) Unwrap() error {
	return e.Err
}

// ErrorSink is the process-wide observer for mutation failures.
// Reports never block; when nobody drains the sink, the newest
// reports are dropped.
type ErrorSink struct {
	ch chan MutationError
}

func NewErrorSink(buffer int) *ErrorSink {
	if buffer <= 0 {
		buffer = 32
	}
	return &ErrorSink{ch: make(chan MutationError, buffer)}
}

func (s *ErrorSink) Report(err MutationError) {
	select {
	case s.ch <- err:
	default:
	}
}

func (s *ErrorSink) Errors() <-chan MutationError {
	return s.ch
}

const mutationTimeout = 15 * time.Second

type mutationTask struct {
	op         string
	collection types.Collection
	id         string
	fields     store.Document
}

// Gateway issues mutations without making the caller wait. A single
// worker drains the queue, so two mutations issued in order against
// the same document reach the remote store in that order; failures go
// to the sink, never back to the call site.
type Gateway struct {
	store DocStore
	sink  *ErrorSink

	mu     gosync.Mutex
	closed bool
	tasks  chan mutationTask
	stopCh chan struct{}
	wg     gosync.WaitGroup
}

func NewGateway(docStore DocStore, sink *ErrorSink) *Gateway {
	if sink == nil {
		sink = NewErrorSink(0)
	}
	g := &Gateway{
		store:  docStore,
		sink:   sink,
		tasks:  make(chan mutationTask, 64),
		stopCh: make(chan struct{}),
	}
	g.wg.Add(1)
	go g.loop()
	return g
}

func (g *Gateway) Create(collection types.Collection, fields store.Document) {
	g.enqueue(mutationTask{op: "create", collection: collection, fields: fields})
}

// Replace merges the payload into the existing document rather than
// overwriting it wholesale; editors only carry the fields the user
// sees, and the rest must survive.
func (g *Gateway) Replace(collection types.Collection, id string, fields store.Document) {
	g.enqueue(mutationTask{op: "replace", collection: collection, id: id, fields: fields})
}

func (g *Gateway) Patch(collection types.Collection, id string, fields store.Document) {
	g.enqueue(mutationTask{op: "patch", collection: collection, id: id, fields: fields})
}

func (g *Gateway) Delete(collection types.Collection, id string) {
	g.enqueue(mutationTask{op: "delete", collection: collection, id: id})
}

// Close stops the worker after the queued mutations drain.
func (g *Gateway) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	close(g.stopCh)
	g.mu.Unlock()
	g.wg.Wait()
}

func (g *Gateway) enqueue(task mutationTask) {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		g.sink.Report(MutationError{
			Op:         task.op,
			Collection: task.collection,
			ID:         task.id,
			Err:        fmt.Errorf("mutation gateway closed"),
		})
		return
	}
	tasks := g.tasks
	g.mu.Unlock()

	select {
	case tasks <- task:
	case <-g.stopCh:
		g.sink.Report(MutationError{
			Op:         task.op,
			Collection: task.collection,
			ID:         task.id,
			Err:        fmt.Errorf("mutation gateway closed"),
		})
	}
}

func (g *Gateway) loop() {
	defer g.wg.Done()
	for {
		select {
		case task := <-g.tasks:
			g.execute(task)
		case <-g.stopCh:
			// Drain what was enqueued before the close.
			for {
				select {
				case task := <-g.tasks:
					g.execute(task)
				default:
					return
				}
			}
		}
	}
}

func (g *Gateway) execute(task mutationTask) {
	ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
	defer cancel()

	var err error
	switch task.op {
	case "create":
		_, err = g.store.CreateDocument(ctx, task.collection, task.fields)
	case "replace":
		_, err = g.store.SetDocument(ctx, task.collection, task.id, task.fields)
	case "patch":
		_, err = g.store.UpdateDocument(ctx, task.collection, task.id, task.fields)
	case "delete":
		err = g.store.DeleteDocument(ctx, task.collection, task.id)
	default:
		err = fmt.Errorf("unknown mutation op %q", task.op)
	}
	if err != nil {
		g.sink.Report(MutationError{
			Op:         task.op,
			Collection: task.collection,
			ID:         task.id,
			Err:        err,
		})
	}
}
