package daemon

import "net/http"

func (a *API) Identity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, IdentityResponse{PrincipalID: a.Principal})
}
