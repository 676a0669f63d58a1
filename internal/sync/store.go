// Package sync is the reactive layer between the UI and the remote
// document store: live subscriptions deduplicated by query key,
// fire-and-forget mutations with a side-channel error sink, and pure
// helpers that merge static reference data with live records into one
// ordered view.
package sync

import (
	"context"
	"encoding/json"

	"refdesk/internal/store"
	"refdesk/internal/types"
)

// DocStore is the remote-store capability this layer consumes. The
// daemon client satisfies it; tests use fakes. Follow feeds full
// snapshots in remote-assigned order; each mutation is an independent
// remote call.
type DocStore interface {
	FollowCollection(ctx context.Context, collection types.Collection, scope types.Scope) (<-chan []store.Document, func(), error)
	CreateDocument(ctx context.Context, collection types.Collection, fields store.Document) (store.Document, error)
	SetDocument(ctx context.Context, collection types.Collection, id string, fields store.Document) (store.Document, error)
	UpdateDocument(ctx context.Context, collection types.Collection, id string, fields store.Document) (store.Document, error)
	DeleteDocument(ctx context.Context, collection types.Collection, id string) error
}

// decodeRecords converts raw documents into a typed record slice,
// preserving order. Documents that fail to decode are skipped rather
// than failing the whole snapshot.
func decodeRecords[T any](docs []store.Document) []T {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			continue
		}
		var record T
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		out = append(out, record)
	}
	return out
}

// encodeFields flattens a payload struct into the document field map
// the store merges. Nil pointer fields drop out via omitempty, which
// is what keeps unedited fields alive on the remote document.
func encodeFields(payload any) (store.Document, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var fields store.Document
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
