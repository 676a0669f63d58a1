package daemon

import (
	"encoding/json"
	"net/http"

	"refdesk/internal/types"
)

func (a *API) Keymap(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		keymap, err := a.Keymaps.Load(r.Context())
		if err != nil {
			writeServiceError(w, internalError("load keymap", err))
			return
		}
		writeJSON(w, http.StatusOK, keymap)
		return
	case http.MethodPut, http.MethodPatch:
		var req types.Keymap
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json body"})
			return
		}
		if err := a.Keymaps.Save(r.Context(), &req); err != nil {
			writeServiceError(w, internalError("save keymap", err))
			return
		}
		writeJSON(w, http.StatusOK, req)
		return
	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}
