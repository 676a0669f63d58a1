package daemon

import "net/http"

func (a *API) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", a.Health)
	mux.HandleFunc("/v1/identity", a.Identity)
	mux.HandleFunc("/v1/keymap", a.Keymap)
	mux.HandleFunc("/v1/hotkeys", a.collectionHandler("hotkeys"))
	mux.HandleFunc("/v1/hotkeys/", a.documentHandler("hotkeys"))
	mux.HandleFunc("/v1/workflows", a.collectionHandler("workflows"))
	mux.HandleFunc("/v1/workflows/", a.documentHandler("workflows"))
	mux.HandleFunc("/v1/notes", a.collectionHandler("notes"))
	mux.HandleFunc("/v1/notes/", a.documentHandler("notes"))
	mux.HandleFunc("/v1/shutdown", a.ShutdownDaemon)
}
