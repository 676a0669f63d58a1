package daemon

import (
	"context"
	"net/http"
	"strings"

	"refdesk/internal/logging"
	"refdesk/internal/store"
)

type API struct {
	Version   string
	Principal string
	Service   *CollectionService
	Keymaps   store.KeymapStore
	Shutdown  func(context.Context) error
	Logger    logging.Logger
}

type IdentityResponse struct {
	PrincipalID string `json:"principal_id"`
}

type SnapshotResponse struct {
	Items []store.Document `json:"items"`
}

func isFollowRequest(r *http.Request) bool {
	follow := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("follow")))
	return follow == "1" || follow == "true" || follow == "yes"
}
