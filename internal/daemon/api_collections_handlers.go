package daemon

import (
	"encoding/json"
	"net/http"
	"strings"

	"refdesk/internal/logging"
	"refdesk/internal/store"
	"refdesk/internal/types"
)

func (a *API) collectionHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection, err := parseCollection(name)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		switch r.Method {
		case http.MethodGet:
			scope, err := types.ParseScope(r.URL.Query().Get("scope"))
			if err != nil {
				writeServiceError(w, invalidError("query scope", err))
				return
			}
			if isFollowRequest(r) {
				a.streamSnapshots(w, r, collection, scope)
				return
			}
			docs, err := a.Service.List(r.Context(), collection, scope)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, SnapshotResponse{Items: docs})
			return
		case http.MethodPost:
			var fields store.Document
			if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
				return
			}
			doc, err := a.Service.Create(r.Context(), collection, fields)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusCreated, doc)
			return
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		}
	}
}

func (a *API) documentHandler(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		collection, err := parseCollection(name)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		path := strings.TrimPrefix(r.URL.Path, "/v1/"+name+"/")
		id := strings.TrimSpace(strings.Trim(path, "/"))
		if id == "" {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
			return
		}

		switch r.Method {
		case http.MethodPut:
			fields, ok := decodeFields(w, r)
			if !ok {
				return
			}
			doc, err := a.Service.Set(r.Context(), collection, id, fields)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
			return
		case http.MethodPatch:
			fields, ok := decodeFields(w, r)
			if !ok {
				return
			}
			doc, err := a.Service.Update(r.Context(), collection, id, fields)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, doc)
			return
		case http.MethodDelete:
			if err := a.Service.Delete(r.Context(), collection, id); err != nil {
				writeServiceError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
			return
		default:
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		}
	}
}

func decodeFields(w http.ResponseWriter, r *http.Request) (store.Document, bool) {
	var fields store.Document
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
		return nil, false
	}
	return fields, true
}

func (a *API) streamSnapshots(w http.ResponseWriter, r *http.Request, collection types.Collection, scope types.Scope) {
	reqID := logging.NewRequestID()
	ch, cancel, err := a.Service.Subscribe(r.Context(), collection, scope)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	defer cancel()

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	_, _ = w.Write([]byte(":\n\n"))
	flusher.Flush()

	if a.Logger != nil && a.Logger.Enabled(logging.Debug) {
		a.Logger.Debug("snapshot_stream_open",
			logging.F("req_id", reqID),
			logging.F("collection", collection),
			logging.F("scope", scope),
		)
	}

	ctx := r.Context()
	var count int
	for {
		select {
		case <-ctx.Done():
			a.logStreamClose(reqID, collection, count, "ctx_done")
			return
		case docs, ok := <-ch:
			if !ok {
				a.logStreamClose(reqID, collection, count, "channel_closed")
				return
			}
			data, err := json.Marshal(SnapshotResponse{Items: docs})
			if err != nil {
				continue
			}
			count++
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(data)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}

func (a *API) logStreamClose(reqID string, collection types.Collection, count int, reason string) {
	if a.Logger == nil || !a.Logger.Enabled(logging.Debug) {
		return
	}
	a.Logger.Debug("snapshot_stream_close",
		logging.F("req_id", reqID),
		logging.F("collection", collection),
		logging.F("count", count),
		logging.F("reason", reason),
	)
}
