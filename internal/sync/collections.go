package sync

import (
	"refdesk/internal/types"
)

// Feed is a typed view over a live feed handle: same lifecycle, with
// documents decoded into the record type.
type Feed[T any] struct {
	handle *Handle
}

// State returns the latest snapshot as typed records plus the feed's
// loading and error flags.
func (f *Feed[T]) State() (items []T, loading bool, err error) {
	state := f.handle.State()
	return decodeRecords[T](state.Items), state.Loading, state.Err
}

func (f *Feed[T]) Changed() <-chan struct{} {
	return f.handle.Changed()
}

func (f *Feed[T]) Release() {
	f.handle.Release()
}

// Collections is the UI-facing surface of the sync layer: one
// subscription feed per record kind plus fire-and-forget mutations.
// All feeds share one manager (one listener per query) and all
// mutations share one gateway and error sink.
type Collections struct {
	keys      *KeyBuilder
	manager   *Manager
	gateway   *Gateway
	sink      *ErrorSink
	principal string
}

// NewCollections wires the layer around one remote store capability
// and one authenticated principal. An empty principal is allowed:
// every feed then resolves empty and mutations are rejected onto the
// sink.
func NewCollections(docStore DocStore, principal string, sink *ErrorSink) *Collections {
	if sink == nil {
		sink = NewErrorSink(0)
	}
	return &Collections{
		keys:      NewKeyBuilder(),
		manager:   NewManager(docStore),
		gateway:   NewGateway(docStore, sink),
		sink:      sink,
		principal: principal,
	}
}

func (c *Collections) Errors() <-chan MutationError {
	return c.sink.Errors()
}

// Close tears down the mutation gateway. Feeds are released by their
// consumers.
func (c *Collections) Close() {
	c.gateway.Close()
}

func (c *Collections) Hotkeys(scope types.Scope) *Feed[types.Hotkey] {
	return subscribeFeed[types.Hotkey](c, types.CollectionHotkeys, scope)
}

func (c *Collections) Workflows(scope types.Scope) *Feed[types.Workflow] {
	return subscribeFeed[types.Workflow](c, types.CollectionWorkflows, scope)
}

func (c *Collections) Notes(scope types.Scope) *Feed[types.Note] {
	return subscribeFeed[types.Note](c, types.CollectionNotes, scope)
}

func subscribeFeed[T any](c *Collections, collection types.Collection, scope types.Scope) *Feed[T] {
	key := c.keys.Build(c.principal, collection, scope)
	return &Feed[T]{handle: c.manager.Subscribe(key)}
}

func (c *Collections) CreateHotkey(hotkey types.Hotkey) {
	c.create(types.CollectionHotkeys, types.Hotkey{
		Command:     hotkey.Command,
		Keys:        hotkey.Keys,
		Description: hotkey.Description,
		Scope:       hotkey.Scope,
	})
}

func (c *Collections) ReplaceHotkey(id string, patch types.HotkeyPatch) {
	c.replace(types.CollectionHotkeys, id, patch)
}

func (c *Collections) PatchHotkey(id string, patch types.HotkeyPatch) {
	c.patch(types.CollectionHotkeys, id, patch)
}

func (c *Collections) DeleteHotkey(id string) {
	c.gateway.Delete(types.CollectionHotkeys, id)
}

func (c *Collections) CreateWorkflow(workflow types.Workflow) {
	c.create(types.CollectionWorkflows, types.Workflow{
		Title:       workflow.Title,
		Description: workflow.Description,
		Steps:       workflow.Steps,
		VideoRef:    workflow.VideoRef,
		Scope:       workflow.Scope,
	})
}

func (c *Collections) ReplaceWorkflow(id string, patch types.WorkflowPatch) {
	c.replace(types.CollectionWorkflows, id, patch)
}

func (c *Collections) PatchWorkflow(id string, patch types.WorkflowPatch) {
	c.patch(types.CollectionWorkflows, id, patch)
}

func (c *Collections) DeleteWorkflow(id string) {
	c.gateway.Delete(types.CollectionWorkflows, id)
}

func (c *Collections) CreateNote(note types.Note) {
	c.create(types.CollectionNotes, types.Note{
		Title:   note.Title,
		Content: note.Content,
		Scope:   note.Scope,
	})
}

func (c *Collections) ReplaceNote(id string, patch types.NotePatch) {
	c.replace(types.CollectionNotes, id, patch)
}

func (c *Collections) PatchNote(id string, patch types.NotePatch) {
	c.patch(types.CollectionNotes, id, patch)
}

func (c *Collections) DeleteNote(id string) {
	c.gateway.Delete(types.CollectionNotes, id)
}

func (c *Collections) create(collection types.Collection, payload any) {
	fields, err := encodeFields(payload)
	if err != nil {
		c.sink.Report(MutationError{Op: "create", Collection: collection, Err: err})
		return
	}
	c.gateway.Create(collection, fields)
}

func (c *Collections) replace(collection types.Collection, id string, payload any) {
	fields, err := encodeFields(payload)
	if err != nil {
		c.sink.Report(MutationError{Op: "replace", Collection: collection, ID: id, Err: err})
		return
	}
	c.gateway.Replace(collection, id, fields)
}

func (c *Collections) patch(collection types.Collection, id string, payload any) {
	fields, err := encodeFields(payload)
	if err != nil {
		c.sink.Report(MutationError{Op: "patch", Collection: collection, ID: id, Err: err})
		return
	}
	c.gateway.Patch(collection, id, fields)
}
