package store

import (
	"errors"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Identity is the authenticated principal the daemon serves. A single
// principal is generated on first start and persisted; every live
// document the daemon writes is owned by it.
type Identity struct {
	PrincipalID string `json:"principal_id"`
}

type IdentityStore interface {
	Load() (*Identity, error)
}

type fileIdentityStore struct {
	path string
	mu   sync.Mutex
}

func NewFileIdentityStore(path string) IdentityStore {
	return &fileIdentityStore{path: path}
}

// Load returns the persisted identity, minting one if the file does
// not exist yet.
func (s *fileIdentityStore) Load() (*Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity := &Identity{}
	err := readJSON(s.path, identity)
	if err == nil && strings.TrimSpace(identity.PrincipalID) != "" {
		return identity, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	identity.PrincipalID = uuid.NewString()
	if err := writeJSONAtomic(s.path, identity); err != nil {
		return nil, err
	}
	return identity, nil
}
