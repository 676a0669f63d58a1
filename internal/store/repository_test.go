package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"refdesk/internal/types"
)

func openBackends(t *testing.T) map[string]Repository {
	t.Helper()
	fileRepo, err := NewFileRepository(filepath.Join(t.TempDir(), "collections"))
	if err != nil {
		t.Fatalf("open file repository: %v", err)
	}
	bboltRepo, err := NewBboltRepository(filepath.Join(t.TempDir(), "refdesk.db"))
	if err != nil {
		t.Fatalf("open bbolt repository: %v", err)
	}
	repos := map[string]Repository{
		RepositoryBackendFile:  fileRepo,
		RepositoryBackendBbolt: bboltRepo,
	}
	t.Cleanup(func() {
		for _, repo := range repos {
			_ = repo.Close()
		}
	})
	return repos
}

func TestCreateStampsReservedFields(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			doc, err := repo.Docs().Create(ctx, types.CollectionHotkeys, Document{
				"id":       "attacker-controlled",
				"command":  "Align",
				"scope":    "Revit",
				"owner_id": "p1",
			})
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if doc.ID() == "" || doc.ID() == "attacker-controlled" {
				t.Fatalf("expected store-assigned id, got %q", doc.ID())
			}
			if doc["is_custom"] != true {
				t.Fatalf("expected is_custom=true, got %#v", doc["is_custom"])
			}
			if doc.OwnerID() != "p1" {
				t.Fatalf("expected owner to pass through, got %q", doc.OwnerID())
			}
			created, _ := doc["created_at"].(string)
			if _, err := time.Parse(time.RFC3339Nano, created); err != nil {
				t.Fatalf("created_at not RFC3339: %q (%v)", created, err)
			}
		})
	}
}

func TestMergePreservesUnsentFields(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			doc, err := repo.Docs().Create(ctx, types.CollectionHotkeys, Document{
				"command":     "Align",
				"keys":        "AL",
				"description": "Align elements.",
				"scope":       "Revit",
				"owner_id":    "p1",
			})
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			merged, err := repo.Docs().Merge(ctx, types.CollectionHotkeys, doc.ID(), Document{
				"keys": "AA",
			})
			if err != nil {
				t.Fatalf("merge: %v", err)
			}
			if merged["keys"] != "AA" {
				t.Fatalf("expected merged keys, got %#v", merged["keys"])
			}
			if merged["description"] != "Align elements." {
				t.Fatalf("unsent field was dropped: %#v", merged["description"])
			}
			if merged.OwnerID() != "p1" || merged.ID() != doc.ID() {
				t.Fatalf("identity fields changed: %#v", merged)
			}
		})
	}
}

func TestMergeIgnoresReservedKeysInPayload(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			doc, err := repo.Docs().Create(ctx, types.CollectionNotes, Document{
				"title":    "Original",
				"scope":    "Revit",
				"owner_id": "p1",
			})
			if err != nil {
				t.Fatalf("create: %v", err)
			}

			merged, err := repo.Docs().Merge(ctx, types.CollectionNotes, doc.ID(), Document{
				"id":        "forged",
				"owner_id":  "p2",
				"is_custom": false,
				"title":     "Edited",
			})
			if err != nil {
				t.Fatalf("merge: %v", err)
			}
			if merged.ID() != doc.ID() || merged.OwnerID() != "p1" || merged["is_custom"] != true {
				t.Fatalf("reserved keys were overwritten: %#v", merged)
			}
			if merged["title"] != "Edited" {
				t.Fatalf("expected title merge, got %#v", merged["title"])
			}
		})
	}
}

func TestMergeMissingDocument(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			_, err := repo.Docs().Merge(ctx, types.CollectionNotes, "01MISSING", Document{"title": "x"})
			if !errors.Is(err, ErrDocNotFound) {
				t.Fatalf("expected ErrDocNotFound, got %v", err)
			}
		})
	}
}

func TestDeleteRemovesDocument(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			doc, err := repo.Docs().Create(ctx, types.CollectionWorkflows, Document{
				"title": "Doomed", "scope": "Revit", "owner_id": "p1",
			})
			if err != nil {
				t.Fatalf("create: %v", err)
			}
			if err := repo.Docs().Delete(ctx, types.CollectionWorkflows, doc.ID()); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if _, found, err := repo.Docs().Get(ctx, types.CollectionWorkflows, doc.ID()); err != nil || found {
				t.Fatalf("expected document gone, found=%v err=%v", found, err)
			}
			if err := repo.Docs().Delete(ctx, types.CollectionWorkflows, doc.ID()); !errors.Is(err, ErrDocNotFound) {
				t.Fatalf("expected ErrDocNotFound on second delete, got %v", err)
			}
		})
	}
}

func TestListFiltersByOwnerAndScope(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			seed := []Document{
				{"title": "mine revit", "scope": "Revit", "owner_id": "p1"},
				{"title": "mine sketchup", "scope": "SketchUp", "owner_id": "p1"},
				{"title": "theirs revit", "scope": "Revit", "owner_id": "p2"},
			}
			for _, doc := range seed {
				if _, err := repo.Docs().Create(ctx, types.CollectionNotes, doc); err != nil {
					t.Fatalf("create: %v", err)
				}
			}

			docs, err := repo.Docs().List(ctx, types.CollectionNotes, DocFilter{OwnerID: "p1", Scope: types.ScopeRevit})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			titles := make([]string, 0, len(docs))
			for _, doc := range docs {
				title, _ := doc["title"].(string)
				titles = append(titles, title)
			}
			if diff := cmp.Diff([]string{"mine revit"}, titles); diff != "" {
				t.Fatalf("unexpected titles (-want +got):\n%s", diff)
			}
		})
	}
}

func TestListOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			var ids []string
			for _, title := range []string{"first", "second", "third"} {
				doc, err := repo.Docs().Create(ctx, types.CollectionNotes, Document{
					"title": title, "scope": "Revit", "owner_id": "p1",
				})
				if err != nil {
					t.Fatalf("create: %v", err)
				}
				ids = append(ids, doc.ID())
			}

			docs, err := repo.Docs().List(ctx, types.CollectionNotes, DocFilter{OwnerID: "p1"})
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			var got []string
			for _, doc := range docs {
				got = append(got, doc.ID())
			}
			if diff := cmp.Diff(ids, got); diff != "" {
				t.Fatalf("unexpected order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnknownCollectionRejected(t *testing.T) {
	ctx := context.Background()
	for backend, repo := range openBackends(t) {
		t.Run(backend, func(t *testing.T) {
			_, err := repo.Docs().List(ctx, types.Collection("sessions"), DocFilter{})
			if !errors.Is(err, ErrUnknownCollection) {
				t.Fatalf("expected ErrUnknownCollection, got %v", err)
			}
		})
	}
}
