// Package store owns the durable side of the document collections:
// one document per record, one collection per record kind, every live
// document scoped to its owning principal. Backends share the same
// JSON document model so field-merge semantics behave identically
// regardless of where the bytes land.
package store

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"refdesk/internal/types"
)

const (
	RepositoryBackendBbolt    = "bbolt"
	RepositoryBackendFile     = "file"
	RepositoryBackendPostgres = "postgres"
)

var (
	ErrDocNotFound       = errors.New("document not found")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Document is the stored shape of a record: a flat JSON object with
// reserved keys (id, owner_id, is_custom, created_at, updated_at)
// managed by the store itself.
type Document map[string]any

func (d Document) ID() string {
	id, _ := d["id"].(string)
	return id
}

func (d Document) OwnerID() string {
	owner, _ := d["owner_id"].(string)
	return owner
}

func (d Document) Scope() string {
	scope, _ := d["scope"].(string)
	return scope
}

// DocFilter narrows List to one principal and one product context.
// Empty fields match everything.
type DocFilter struct {
	OwnerID string
	Scope   types.Scope
}

func (f DocFilter) matches(doc Document) bool {
	if doc == nil {
		return false
	}
	if f.OwnerID != "" && doc.OwnerID() != f.OwnerID {
		return false
	}
	if f.Scope != "" && doc.Scope() != string(f.Scope) {
		return false
	}
	return true
}

// DocStore is the per-collection document interface every backend
// implements. Create assigns the id; Merge overlays only the provided
// fields onto the stored document, which is what keeps owner ids and
// other unedited fields alive across partial writes.
type DocStore interface {
	List(ctx context.Context, collection types.Collection, filter DocFilter) ([]Document, error)
	Get(ctx context.Context, collection types.Collection, id string) (Document, bool, error)
	Create(ctx context.Context, collection types.Collection, fields Document) (Document, error)
	Merge(ctx context.Context, collection types.Collection, id string, fields Document) (Document, error)
	Delete(ctx context.Context, collection types.Collection, id string) error
}

type Repository interface {
	Docs() DocStore
	Backend() string
	Close() error
}

// newDocID returns a ULID so that id order is creation order; list
// results sorted by id are therefore in remote-assigned order, which
// is the order the live feed preserves.
func newDocID() string {
	return ulid.Make().String()
}

func sortDocs(docs []Document) {
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ID() < docs[j].ID()
	})
}

// applyCreateFields stamps the reserved keys onto a new document.
// Caller-provided reserved keys are overridden, never trusted.
func applyCreateFields(fields Document, now time.Time) Document {
	doc := cloneDoc(fields)
	if doc == nil {
		doc = Document{}
	}
	doc["id"] = newDocID()
	doc["is_custom"] = true
	doc["created_at"] = now.UTC().Format(time.RFC3339Nano)
	doc["updated_at"] = now.UTC().Format(time.RFC3339Nano)
	return doc
}

// mergeFields overlays payload onto existing. Reserved identity keys
// are kept from the stored document; updated_at is bumped.
func mergeFields(existing, payload Document, now time.Time) Document {
	doc := cloneDoc(existing)
	for key, value := range payload {
		switch key {
		case "id", "owner_id", "is_custom", "created_at", "updated_at":
			continue
		}
		doc[key] = value
	}
	doc["updated_at"] = now.UTC().Format(time.RFC3339Nano)
	return doc
}

func cloneDoc(doc Document) Document {
	if doc == nil {
		return nil
	}
	out := make(Document, len(doc))
	for key, value := range doc {
		out[key] = value
	}
	return out
}

func validCollection(collection types.Collection) bool {
	switch collection {
	case types.CollectionHotkeys, types.CollectionWorkflows, types.CollectionNotes:
		return true
	}
	return false
}
