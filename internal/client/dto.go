package client

import "refdesk/internal/store"

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Version string `json:"version"`
	PID     int    `json:"pid"`
}

type IdentityResponse struct {
	PrincipalID string `json:"principal_id"`
}

type SnapshotResponse struct {
	Items []store.Document `json:"items"`
}
