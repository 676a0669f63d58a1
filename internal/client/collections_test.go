package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"refdesk/internal/store"
	"refdesk/internal/types"
)

func newFakeServerClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return &Client{
		baseURL: server.URL,
		token:   "token",
		http: &http.Client{
			Timeout: 2 * time.Second,
		},
	}
}

func TestClientListDocumentsPathAndAuth(t *testing.T) {
	var seenPath, seenAuth string
	c := newFakeServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		seenPath = r.URL.RequestURI()
		seenAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"id":"01A","command":"Trim"}]}`))
	})

	docs, err := c.ListDocuments(context.Background(), types.CollectionHotkeys, types.ScopeRevit)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if seenPath != "/v1/hotkeys?scope=Revit" {
		t.Fatalf("unexpected request path: %s", seenPath)
	}
	if seenAuth != "Bearer token" {
		t.Fatalf("unexpected auth header: %s", seenAuth)
	}
	if len(docs) != 1 || docs[0].ID() != "01A" {
		t.Fatalf("unexpected documents: %+v", docs)
	}
}

func TestClientCreateDocument(t *testing.T) {
	var seenMethod string
	var seenBody store.Document
	c := newFakeServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		seenMethod = r.Method
		_ = json.NewDecoder(r.Body).Decode(&seenBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"01B","title":"note"}`))
	})

	doc, err := c.CreateDocument(context.Background(), types.CollectionNotes, store.Document{
		"title": "note",
		"scope": "Revit",
	})
	if err != nil {
		t.Fatalf("CreateDocument: %v", err)
	}
	if seenMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", seenMethod)
	}
	if seenBody["title"] != "note" {
		t.Fatalf("unexpected body: %+v", seenBody)
	}
	if doc.ID() != "01B" {
		t.Fatalf("unexpected document id: %s", doc.ID())
	}
}

func TestClientSetAndUpdateUseDocumentPath(t *testing.T) {
	var paths []string
	var methods []string
	c := newFakeServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		methods = append(methods, r.Method)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"01C"}`))
	})

	if _, err := c.SetDocument(context.Background(), types.CollectionWorkflows, "01C", store.Document{"name": "x"}); err != nil {
		t.Fatalf("SetDocument: %v", err)
	}
	if _, err := c.UpdateDocument(context.Background(), types.CollectionWorkflows, "01C", store.Document{"name": "y"}); err != nil {
		t.Fatalf("UpdateDocument: %v", err)
	}
	if paths[0] != "/v1/workflows/01C" || paths[1] != "/v1/workflows/01C" {
		t.Fatalf("unexpected paths: %v", paths)
	}
	if methods[0] != http.MethodPut || methods[1] != http.MethodPatch {
		t.Fatalf("unexpected methods: %v", methods)
	}
}

func TestClientDeleteDocumentRequiresID(t *testing.T) {
	c := newFakeServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("unexpected request: %s", r.URL.Path)
	})
	if err := c.DeleteDocument(context.Background(), types.CollectionNotes, "  "); err == nil {
		t.Fatalf("expected error for empty id")
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	c := newFakeServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"document missing"}`))
	})

	_, err := c.UpdateDocument(context.Background(), types.CollectionNotes, "01D", store.Document{"title": "x"})
	apiErr := asAPIError(err)
	if apiErr == nil {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "document missing" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestClientIdentity(t *testing.T) {
	c := newFakeServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"principal_id":"p-123"}`))
	})

	principal, err := c.Identity(context.Background())
	if err != nil {
		t.Fatalf("Identity: %v", err)
	}
	if principal != "p-123" {
		t.Fatalf("unexpected principal: %s", principal)
	}
}
