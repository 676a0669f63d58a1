// Package daemon exposes the document store over HTTP: JSON endpoints
// for mutations, SSE streams for live collection snapshots. The
// client-side sync layer treats this process as "the remote store".
package daemon

import (
	"context"
	"errors"
	"net/http"
	"time"

	"refdesk/internal/logging"
	"refdesk/internal/store"
)

type Daemon struct {
	addr      string
	token     string
	version   string
	principal string
	server    *http.Server
	service   *CollectionService
	keymaps   store.KeymapStore
	logger    logging.Logger
}

func New(addr, token, version, principal string, repo store.Repository, keymaps store.KeymapStore, logger logging.Logger) *Daemon {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Daemon{
		addr:      addr,
		token:     token,
		version:   version,
		principal: principal,
		service:   NewCollectionService(repo, store.NewHub(), principal),
		keymaps:   keymaps,
		logger:    logger,
	}
}

func (d *Daemon) Run(ctx context.Context) error {
	api := &API{
		Version:   d.version,
		Principal: d.principal,
		Service:   d.service,
		Keymaps:   d.keymaps,
		Logger:    d.logger,
	}

	mux := http.NewServeMux()
	api.RegisterRoutes(mux)

	handler := TokenAuthMiddleware(d.token, mux)
	d.server = &http.Server{
		Addr:    d.addr,
		Handler: handler,
	}
	api.Shutdown = d.server.Shutdown

	errCh := make(chan error, 1)
	go func() {
		d.logger.Info("daemon_listening", logging.F("addr", d.addr))
		errCh <- d.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := d.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
