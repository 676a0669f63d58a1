package daemon

import (
	"context"
	"errors"
	"strings"

	"refdesk/internal/store"
	"refdesk/internal/types"
)

// CollectionService applies the owner and scope rules on top of the
// raw document store: every live document belongs to the daemon's
// principal, every mutation publishes a change so open snapshot
// streams re-push.
type CollectionService struct {
	repo      store.Repository
	hub       *store.Hub
	principal string
}

func NewCollectionService(repo store.Repository, hub *store.Hub, principal string) *CollectionService {
	return &CollectionService{repo: repo, hub: hub, principal: principal}
}

func parseCollection(raw string) (types.Collection, error) {
	switch types.Collection(strings.TrimSpace(raw)) {
	case types.CollectionHotkeys:
		return types.CollectionHotkeys, nil
	case types.CollectionWorkflows:
		return types.CollectionWorkflows, nil
	case types.CollectionNotes:
		return types.CollectionNotes, nil
	}
	return "", invalidError("unknown collection "+raw, nil)
}

func (s *CollectionService) List(ctx context.Context, collection types.Collection, scope types.Scope) ([]store.Document, error) {
	docs, err := s.repo.Docs().List(ctx, collection, store.DocFilter{OwnerID: s.principal, Scope: scope})
	if err != nil {
		return nil, internalError("list documents", err)
	}
	return docs, nil
}

func (s *CollectionService) Create(ctx context.Context, collection types.Collection, fields store.Document) (store.Document, error) {
	scope, err := types.ParseScope(store.Document(fields).Scope())
	if err != nil {
		return nil, invalidError("document scope", err)
	}
	doc := store.Document{}
	for key, value := range fields {
		doc[key] = value
	}
	doc["scope"] = string(scope)
	doc["owner_id"] = s.principal
	created, err := s.repo.Docs().Create(ctx, collection, doc)
	if err != nil {
		return nil, internalError("create document", err)
	}
	s.publish(collection, scope)
	return created, nil
}

// Set merges the payload into the document with the given id. Fields
// absent from the payload keep their stored values; this is what lets
// an editor that only carries visible fields leave the owner id and
// other untouched fields intact.
func (s *CollectionService) Set(ctx context.Context, collection types.Collection, id string, fields store.Document) (store.Document, error) {
	return s.merge(ctx, collection, id, fields)
}

// Update is a partial patch; it shares Set's merge semantics because
// both are field-merges against the stored document.
func (s *CollectionService) Update(ctx context.Context, collection types.Collection, id string, fields store.Document) (store.Document, error) {
	return s.merge(ctx, collection, id, fields)
}

func (s *CollectionService) merge(ctx context.Context, collection types.Collection, id string, fields store.Document) (store.Document, error) {
	existing, err := s.owned(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if rawScope, ok := fields["scope"].(string); ok {
		scope, err := types.ParseScope(rawScope)
		if err != nil {
			return nil, invalidError("document scope", err)
		}
		fields["scope"] = string(scope)
	}
	merged, err := s.repo.Docs().Merge(ctx, collection, id, fields)
	if err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			return nil, notFoundError("document "+id, err)
		}
		return nil, internalError("merge document", err)
	}
	s.publish(collection, types.Scope(existing.Scope()))
	if merged.Scope() != existing.Scope() {
		s.publish(collection, types.Scope(merged.Scope()))
	}
	return merged, nil
}

func (s *CollectionService) Delete(ctx context.Context, collection types.Collection, id string) error {
	existing, err := s.owned(ctx, collection, id)
	if err != nil {
		return err
	}
	if err := s.repo.Docs().Delete(ctx, collection, id); err != nil {
		if errors.Is(err, store.ErrDocNotFound) {
			return notFoundError("document "+id, err)
		}
		return internalError("delete document", err)
	}
	s.publish(collection, types.Scope(existing.Scope()))
	return nil
}

// Subscribe opens a live snapshot feed for one (collection, scope)
// pair. The current snapshot is pushed immediately, then a fresh one
// after every matching change. The feed closes when ctx is done or
// cancel is called.
func (s *CollectionService) Subscribe(ctx context.Context, collection types.Collection, scope types.Scope) (<-chan []store.Document, func(), error) {
	if !scope.Valid() {
		return nil, nil, invalidError("query scope "+string(scope), nil)
	}
	ctx, cancel := context.WithCancel(ctx)
	changes, unsubscribe := s.hub.Subscribe()

	out := make(chan []store.Document, 4)
	go func() {
		defer close(out)
		defer unsubscribe()

		push := func() bool {
			docs, err := s.List(ctx, collection, scope)
			if err != nil {
				return false
			}
			select {
			case out <- docs:
				return true
			case <-ctx.Done():
				return false
			}
		}
		if !push() {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case change, ok := <-changes:
				if !ok {
					return
				}
				if change.Collection != collection || change.Scope != scope {
					continue
				}
				if change.OwnerID != "" && change.OwnerID != s.principal {
					continue
				}
				if !push() {
					return
				}
			}
		}
	}()
	return out, cancel, nil
}

func (s *CollectionService) owned(ctx context.Context, collection types.Collection, id string) (store.Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalidError("document id is required", nil)
	}
	doc, found, err := s.repo.Docs().Get(ctx, collection, id)
	if err != nil {
		return nil, internalError("load document", err)
	}
	// Documents owned by another principal are invisible, not forbidden.
	if !found || doc.OwnerID() != s.principal {
		return nil, notFoundError("document "+id, store.ErrDocNotFound)
	}
	return doc, nil
}

func (s *CollectionService) publish(collection types.Collection, scope types.Scope) {
	s.hub.Publish(store.Change{
		Collection: collection,
		OwnerID:    s.principal,
		Scope:      scope,
	})
}
