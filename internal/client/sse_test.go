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

func TestFollowCollectionParsesSnapshots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if got := r.URL.Query().Get("follow"); got != "1" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/event-stream")
		flusher, _ := w.(http.Flusher)

		snapshot := SnapshotResponse{Items: []store.Document{
			{"id": "01A", "command": "Trim", "scope": "Revit"},
		}}
		data, _ := json.Marshal(snapshot)
		_, _ = w.Write(append([]byte("data: "), data...))
		_, _ = w.Write([]byte("\n\n"))
		if flusher != nil {
			flusher.Flush()
		}
	}))
	defer server.Close()

	client := &Client{
		baseURL: server.URL,
		token:   "token",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	ch, stop, err := client.FollowCollection(ctx, types.CollectionHotkeys, types.ScopeRevit)
	if err != nil {
		t.Fatalf("FollowCollection: %v", err)
	}
	defer stop()

	select {
	case docs := <-ch:
		if len(docs) != 1 || docs[0].ID() != "01A" {
			t.Fatalf("unexpected snapshot: %+v", docs)
		}
	case <-time.After(1 * time.Second):
		t.Fatalf("timeout waiting for snapshot")
	}
}

func TestFollowCollectionRejectsErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"query scope"}`))
	}))
	defer server.Close()

	client := &Client{
		baseURL: server.URL,
		token:   "token",
	}

	_, _, err := client.FollowCollection(context.Background(), types.CollectionHotkeys, types.Scope("bogus"))
	apiErr := asAPIError(err)
	if apiErr == nil {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
}
